// Package httpx holds small JSON response helpers shared by the handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tpclabs/research-assistant/internal/models"
	"github.com/tpclabs/research-assistant/internal/store"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes an error response with an explicit status.
func Error(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// WriteError maps an operation error onto the HTTP surface:
// missing credentials 428 (the UI routes the user to settings), unknown id
// 404, collaborator failures 502, anything else (storage exhaustion
// included) 500.
func WriteError(w http.ResponseWriter, err error) {
	var collab *models.CollaboratorError
	switch {
	case errors.Is(err, models.ErrCredentialsMissing):
		WriteJSON(w, http.StatusPreconditionRequired, map[string]string{
			"error": "API keys not found",
			"code":  "credentials_missing",
		})
	case errors.Is(err, store.ErrNotFound):
		Error(w, http.StatusNotFound, "research entry not found")
	case errors.As(err, &collab):
		Error(w, http.StatusBadGateway, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "storage failure")
	}
}

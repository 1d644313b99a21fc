// Package settings exposes the stored API key pair over HTTP.
package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tpclabs/research-assistant/internal/httpx"
	"github.com/tpclabs/research-assistant/internal/models"
)

// Store persists the credential pair.
type Store interface {
	Get(ctx context.Context) (models.CredentialPair, error)
	Save(ctx context.Context, pair models.CredentialPair) error
	Delete(ctx context.Context) error
}

// Handler holds the settings HTTP handlers. The app is local and
// single-user, so the raw pair is returned the way the original UI expects.
type Handler struct {
	store Store
	log   *zap.Logger
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Get returns the stored pair, empty strings when unset.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	pair, err := h.store.Get(r.Context())
	if err != nil {
		h.log.Error("load api keys failed", zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// Put overwrites both keys as a unit.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	var pair models.CredentialPair
	if err := json.NewDecoder(r.Body).Decode(&pair); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.Save(r.Context(), pair); err != nil {
		h.log.Error("save api keys failed", zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// Delete clears both keys.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context()); err != nil {
		h.log.Error("delete api keys failed", zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

package content

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tpclabs/research-assistant/internal/httpx"
	"github.com/tpclabs/research-assistant/internal/models"
)

// Handler holds the content-generation HTTP handlers.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Generate produces one article for the session and returns it.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Type.Valid() {
		httpx.Error(w, http.StatusBadRequest, "type must be one of tweet, blog, newsletter, linkedin")
		return
	}

	article, err := h.svc.Generate(r.Context(), id, req.Type)
	if err != nil {
		h.log.Error("generate failed", zap.String("id", id),
			zap.String("type", string(req.Type)), zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, article)
}

// Jobs reports the in-flight and ready generation jobs for a session.
func (h *Handler) Jobs(w http.ResponseWriter, r *http.Request) {
	jobs := h.svc.Jobs(chi.URLParam(r, "id"))
	if jobs == nil {
		jobs = []Job{}
	}
	httpx.WriteJSON(w, http.StatusOK, jobs)
}

package research

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tpclabs/research-assistant/internal/httpx"
	"github.com/tpclabs/research-assistant/internal/models"
)

// Handler holds the research HTTP handlers.
type Handler struct {
	svc      *Service
	sessions SessionStore
	log      *zap.Logger
}

func NewHandler(svc *Service, sessions SessionStore, log *zap.Logger) *Handler {
	return &Handler{svc: svc, sessions: sessions, log: log}
}

// Create runs the research pipeline and returns the persisted session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		httpx.Error(w, http.StatusBadRequest, "topic is required")
		return
	}

	sess, err := h.svc.Research(r.Context(), req.Topic, req.Enhance)
	if err != nil {
		h.log.Error("research failed", zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, sess)
}

// More fetches and appends the next result page for a session.
func (h *Handler) More(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := h.svc.FetchMore(r.Context(), id)
	if err != nil {
		h.log.Error("fetch more failed", zap.String("id", id), zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sess)
}

// List returns the research history, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.ListAll(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	httpx.WriteJSON(w, http.StatusOK, sessions)
}

// Get returns a single session by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := h.sessions.GetByID(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if sess == nil {
		httpx.Error(w, http.StatusNotFound, "research entry not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sess)
}

package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gurukul-labs/tutor-backend/pkg/utils"
)

// SessionCounter reports how many conversations are currently live.
type SessionCounter interface {
	ActiveSessions() int
}

// Handler serves the liveness probe.
type Handler struct {
	sessions SessionCounter
}

// New creates the health handler.
func New(sessions SessionCounter) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the health route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"active_sessions": h.sessions.ActiveSessions(),
	})
}

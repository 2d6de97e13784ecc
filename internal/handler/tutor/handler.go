package tutor

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gurukul-labs/tutor-backend/internal/service/ai"
	tutorservice "github.com/gurukul-labs/tutor-backend/internal/service/tutor"
	"github.com/gurukul-labs/tutor-backend/pkg/utils"
)

// degradedMessage is the only text surfaced on a provider failure; the real
// cause stays in the logs.
const degradedMessage = "The tutor is temporarily unavailable. Please try again in a moment."

// Handler exposes the tutoring chat endpoint.
type Handler struct {
	svc *tutorservice.Service
}

// New creates the chat handler.
func New(svc *tutorservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

// chatPayload accepts both the current and the legacy field names.
type chatPayload struct {
	Message   string `json:"message"`
	Level     string `json:"level"`
	Tier      string `json:"tier"`
	SessionID string `json:"session_id"`
	ChatID    string `json:"chat_id"`
}

func (p chatPayload) tier() string {
	if p.Level != "" {
		return p.Level
	}
	return p.Tier
}

func (p chatPayload) sessionID() string {
	if p.SessionID != "" {
		return p.SessionID
	}
	return p.ChatID
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Respond(r.Context(), tutorservice.ChatRequest{
		Message:   payload.Message,
		Tier:      payload.tier(),
		SessionID: payload.sessionID(),
	})
	if err != nil {
		switch {
		case errors.Is(err, tutorservice.ErrEmptyMessage),
			errors.Is(err, tutorservice.ErrSessionExpired):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ai.ErrCompletionUnavailable):
			utils.RespondError(w, http.StatusBadGateway, degradedMessage)
		default:
			log.Printf("[chat] unexpected error: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

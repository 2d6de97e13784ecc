package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/gurukul-labs/tutor-backend/internal/analysis/admission"
	"github.com/gurukul-labs/tutor-backend/internal/analysis/followup"
	"github.com/gurukul-labs/tutor-backend/internal/model/chat"
	"github.com/gurukul-labs/tutor-backend/internal/model/tier"
	aiservice "github.com/gurukul-labs/tutor-backend/internal/service/ai"
	chatservice "github.com/gurukul-labs/tutor-backend/internal/service/chat"
	tutorservice "github.com/gurukul-labs/tutor-backend/internal/service/tutor"
	"github.com/gurukul-labs/tutor-backend/pkg/utils"
)

// Handler streams tutoring replies via Server-Sent Events. It mirrors the
// orchestrator's request cycle; the greeting and rejection paths emit a
// single message frame instead of provider deltas.
type Handler struct {
	aiSvc    *aiservice.Service
	chatSvc  *chatservice.Service
	tutorSvc *tutorservice.Service
	tiers    tier.Store
	ttl      time.Duration
}

// New creates the stream handler.
func New(aiSvc *aiservice.Service, chatSvc *chatservice.Service, tutorSvc *tutorservice.Service, tiers tier.Store, ttl time.Duration) *Handler {
	return &Handler{
		aiSvc:    aiSvc,
		chatSvc:  chatSvc,
		tutorSvc: tutorSvc,
		tiers:    tiers,
		ttl:      ttl,
	}
}

// Frame is one streamed event.
type Frame struct {
	Event       string   `json:"event"`
	Content     string   `json:"content,omitempty"`
	SessionID   string   `json:"session_id,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Finished    bool     `json:"finished,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// HandleStream runs one streamed exchange for the given message.
func (h *Handler) HandleStream(ctx context.Context, w http.ResponseWriter, sessionID, message, level string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	// Validation mirrors the JSON path: a blank message terminates before
	// any session state changes, while the response is still plain JSON.
	message = strings.TrimSpace(message)
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, tutorservice.ErrEmptyMessage.Error())
		return tutorservice.ErrEmptyMessage
	}

	utils.SetupSSEHeaders(w)

	h.chatSvc.EvictExpired(ctx, time.Now(), h.ttl)

	requested := h.tiers.Resolve(level)
	session, _ := h.chatSvc.GetOrCreate(ctx, sessionID, requested.Name)
	active := h.tiers.Resolve(session.Tier)

	h.send(w, flusher, Frame{Event: "start", SessionID: session.ID})

	if admission.IsGreeting(message) {
		h.finish(w, flusher, session.ID, h.tutorSvc.PickGreeting(), followup.GreetingSuggestions())
		return nil
	}

	if !admission.IsAdmissible(message) {
		h.finish(w, flusher, session.ID, tutorservice.RedirectReply, followup.RedirectSuggestions())
		return nil
	}

	history, err := h.chatSvc.LoadTranscript(ctx, session.ID)
	if err != nil {
		h.sendError(w, flusher, "session expired")
		return err
	}

	userMsg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      chat.RoleUser,
		Content:   message,
	}
	if err := h.chatSvc.SaveMessage(ctx, userMsg); err != nil {
		h.sendError(w, flusher, "session expired")
		return err
	}

	content, err := h.dispatch(ctx, w, flusher, session.ID, active, history, message)
	if err != nil {
		h.sendError(w, flusher, "The tutor is temporarily unavailable. Please try again in a moment.")
		return err
	}

	assistantMsg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      chat.RoleAssistant,
		Content:   content,
	}
	if err := h.chatSvc.SaveMessage(ctx, assistantMsg); err != nil {
		log.Printf("[stream] session=%s evicted before reply append", session.ID)
	}

	h.send(w, flusher, Frame{Event: "suggestions", SessionID: session.ID, Suggestions: followup.Suggest(message, active.Name)})
	h.send(w, flusher, Frame{Event: "end", SessionID: session.ID, Finished: true})

	log.Printf("[stream] completed response for session=%s tier=%s", session.ID, active.Name)
	return nil
}

// dispatch streams deltas when the provider supports it, otherwise falls
// back to one synchronous completion.
func (h *Handler) dispatch(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sessionID string, active tier.Tier, history []chat.Message, message string) (string, error) {
	if h.aiSvc == nil {
		return "", aiservice.ErrCompletionUnavailable
	}

	if !h.aiSvc.StreamingEnabled() {
		content, err := h.aiSvc.Complete(ctx, active.SystemPrompt, history, message, active.Params)
		if err != nil {
			return "", err
		}
		h.send(w, flusher, Frame{Event: "message", SessionID: sessionID, Content: content})
		return content, nil
	}

	stream, err := h.aiSvc.StreamComplete(ctx, active.SystemPrompt, history, message, active.Params)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			h.send(w, flusher, Frame{Event: "delta", SessionID: sessionID, Content: chunk.Content})
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}

	h.send(w, flusher, Frame{Event: "message", SessionID: sessionID, Content: response.Content})
	return response.Content, nil
}

func (h *Handler) finish(w http.ResponseWriter, flusher http.Flusher, sessionID, content string, suggestions []string) {
	h.send(w, flusher, Frame{Event: "message", SessionID: sessionID, Content: content})
	h.send(w, flusher, Frame{Event: "suggestions", SessionID: sessionID, Suggestions: suggestions})
	h.send(w, flusher, Frame{Event: "end", SessionID: sessionID, Finished: true})
}

func (h *Handler) send(w http.ResponseWriter, flusher http.Flusher, frame Frame) {
	utils.SendSSEChunk(w, flusher, frame)
}

func (h *Handler) sendError(w http.ResponseWriter, flusher http.Flusher, message string) {
	h.send(w, flusher, Frame{Event: "error", Error: message})
}

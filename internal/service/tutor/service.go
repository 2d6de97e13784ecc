package tutor

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gurukul-labs/tutor-backend/internal/analysis/admission"
	"github.com/gurukul-labs/tutor-backend/internal/analysis/followup"
	"github.com/gurukul-labs/tutor-backend/internal/model/chat"
	"github.com/gurukul-labs/tutor-backend/internal/model/tier"
	"github.com/gurukul-labs/tutor-backend/internal/service/ai"
	chatservice "github.com/gurukul-labs/tutor-backend/internal/service/chat"
)

var (
	// ErrEmptyMessage rejects a request before any session state changes.
	ErrEmptyMessage = errors.New("field 'message' is required")
	// ErrSessionExpired reports a session evicted between fetch and append;
	// the client recovers by starting a fresh session on its next call.
	ErrSessionExpired = errors.New("session expired")
)

// greetingReplies are the canned welcome messages; one is picked at random.
var greetingReplies = []string{
	"Hello! I'm your AI tutor. What would you like to learn today?",
	"Hi there! Ready to explore a new topic together?",
	"Namaste! Ask me anything from your syllabus and we'll work through it.",
	"Welcome to your study corner. Which subject shall we dig into today?",
}

// RedirectReply is returned when the admission classifier declines a message.
const RedirectReply = "I'm here to help with your studies, so I can't go into that topic. " +
	"Let's get back to learning - ask me about science, maths, history, or anything from your coursework!"

// GreetingReplies returns the canned welcome set; callers asserting on a
// greeting response check membership rather than a specific pick.
func GreetingReplies() []string {
	return append([]string(nil), greetingReplies...)
}

// Completer is the slice of the completion gateway the orchestrator needs;
// tests substitute a double.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, transcript []chat.Message, question string, params tier.Params) (string, error)
}

// ChatRequest is one inbound tutoring message.
type ChatRequest struct {
	Message   string
	Tier      string
	SessionID string
}

// Reply carries the generated (or canned) answer.
type Reply struct {
	MessageID string `json:"message_id"`
	Content   string `json:"content"`
}

// ChatResponse is the outcome of one request/response cycle.
type ChatResponse struct {
	SessionID string   `json:"session_id"`
	Reply     Reply    `json:"reply"`
	FollowUps []string `json:"follow_up_suggestions"`
}

// Service orchestrates one tutoring exchange: session lookup, admission
// filtering, prompt selection, the provider call, and follow-up derivation.
type Service struct {
	store     *chatservice.Service
	tiers     tier.Store
	completer Completer
	ttl       time.Duration
	clock     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService wires the orchestrator with the wall clock and a time-seeded
// random source for greeting replies. completer may be nil when provider
// credentials are absent; requests then degrade to ErrCompletionUnavailable.
func NewService(store *chatservice.Service, tiers tier.Store, completer Completer, ttl time.Duration) *Service {
	return NewServiceWithClock(store, tiers, completer, ttl, time.Now,
		rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewServiceWithClock lets tests pin the eviction clock and seed the
// greeting picker.
func NewServiceWithClock(store *chatservice.Service, tiers tier.Store, completer Completer, ttl time.Duration, clock func() time.Time, rng *rand.Rand) *Service {
	return &Service{
		store:     store,
		tiers:     tiers,
		completer: completer,
		ttl:       ttl,
		clock:     clock,
		rng:       rng,
	}
}

// Respond runs the full request cycle. Classifier and validation outcomes
// never escape as errors: a rejected message yields a normal response with a
// canned redirect. Only ErrEmptyMessage, ErrSessionExpired, and the
// gateway's ErrCompletionUnavailable cross this boundary.
func (s *Service) Respond(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if removed := s.store.EvictExpired(ctx, s.clock(), s.ttl); removed > 0 {
		log.Printf("[tutor] evicted %d expired sessions", removed)
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ChatResponse{}, ErrEmptyMessage
	}

	requested := s.tiers.Resolve(req.Tier)
	session, created := s.store.GetOrCreate(ctx, strings.TrimSpace(req.SessionID), requested.Name)
	if created {
		log.Printf("[tutor] created session=%s tier=%s", session.ID, session.Tier)
	}

	// The session keeps the tier it was created with; a different level on a
	// follow-up request does not reframe an ongoing conversation.
	active := s.tiers.Resolve(session.Tier)

	if admission.IsGreeting(message) {
		return ChatResponse{
			SessionID: session.ID,
			Reply:     Reply{MessageID: uuid.NewString(), Content: s.PickGreeting()},
			FollowUps: followup.GreetingSuggestions(),
		}, nil
	}

	if !admission.IsAdmissible(message) {
		// Policy outcome, not an error. The rejected message is never
		// appended, keeping the stored transcript on-topic.
		return ChatResponse{
			SessionID: session.ID,
			Reply:     Reply{MessageID: uuid.NewString(), Content: RedirectReply},
			FollowUps: followup.RedirectSuggestions(),
		}, nil
	}

	history, err := s.store.LoadTranscript(ctx, session.ID)
	if err != nil {
		return ChatResponse{}, ErrSessionExpired
	}

	userMsg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      chat.RoleUser,
		Content:   message,
	}
	if err := s.store.SaveMessage(ctx, userMsg); err != nil {
		return ChatResponse{}, ErrSessionExpired
	}

	if s.completer == nil {
		return ChatResponse{}, ai.ErrCompletionUnavailable
	}

	// The provider call runs outside any store lock; only the short-held
	// append below touches shared state again.
	content, err := s.completer.Complete(ctx, active.SystemPrompt, history, message, active.Params)
	if err != nil {
		// The user message stays stored: the attempt happened.
		return ChatResponse{}, err
	}

	assistantMsg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Role:      chat.RoleAssistant,
		Content:   content,
	}
	if err := s.store.SaveMessage(ctx, assistantMsg); err != nil {
		// Session evicted mid-call. The reply is still worth returning; the
		// client's next request will mint a fresh session.
		log.Printf("[tutor] session=%s evicted before reply append, dropping turn", session.ID)
	}

	return ChatResponse{
		SessionID: session.ID,
		Reply:     Reply{MessageID: assistantMsg.ID, Content: content},
		FollowUps: followup.Suggest(message, active.Name),
	}, nil
}

// ActiveSessions reports the live session count for the health endpoint.
func (s *Service) ActiveSessions() int {
	return s.store.ActiveSessions()
}

// PickGreeting draws one canned welcome reply from the seeded source.
func (s *Service) PickGreeting() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return greetingReplies[s.rng.Intn(len(greetingReplies))]
}

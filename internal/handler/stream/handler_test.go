package stream

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gurukul-labs/tutor-backend/internal/model/tier"
	aiservice "github.com/gurukul-labs/tutor-backend/internal/service/ai"
	chatservice "github.com/gurukul-labs/tutor-backend/internal/service/chat"
	tutorservice "github.com/gurukul-labs/tutor-backend/internal/service/tutor"
)

// setupHandler builds a stream handler without a provider; the canned
// greeting and rejection paths and the degraded path need none.
func setupHandler() (*Handler, *chatservice.Service) {
	chatSvc := chatservice.NewService()
	tiers := tier.NewMemoryStore(tier.Seed())
	tutorSvc := tutorservice.NewServiceWithClock(chatSvc, tiers, nil, 24*time.Hour, time.Now, rand.New(rand.NewSource(1)))
	return New(nil, chatSvc, tutorSvc, tiers, 24*time.Hour), chatSvc
}

func parseFrames(t *testing.T, body string) []Frame {
	t.Helper()
	var frames []Frame
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var f Frame
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &f); err != nil {
			t.Fatalf("decode frame %q: %v", line, err)
		}
		frames = append(frames, f)
	}
	return frames
}

func events(frames []Frame) []string {
	names := make([]string, 0, len(frames))
	for _, f := range frames {
		names = append(names, f.Event)
	}
	return names
}

func TestHandleStreamGreeting(t *testing.T) {
	handler, chatSvc := setupHandler()
	rec := httptest.NewRecorder()

	if err := handler.HandleStream(context.Background(), rec, "", "hello", "school"); err != nil {
		t.Fatalf("HandleStream err: %v", err)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("expected SSE content type, got %q", got)
	}

	frames := parseFrames(t, rec.Body.String())
	want := []string{"start", "message", "suggestions", "end"}
	got := events(frames)
	if len(got) != len(want) {
		t.Fatalf("expected frame sequence %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected frame sequence %v, got %v", want, got)
		}
	}

	found := false
	for _, canned := range tutorservice.GreetingReplies() {
		if frames[1].Content == canned {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("greeting reply %q is not one of the canned replies", frames[1].Content)
	}
	if !frames[3].Finished {
		t.Fatal("end frame must be marked finished")
	}

	transcript, err := chatSvc.LoadTranscript(context.Background(), frames[0].SessionID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 0 {
		t.Fatalf("greeting must not be appended, transcript has %d messages", len(transcript))
	}
}

func TestHandleStreamRejection(t *testing.T) {
	handler, chatSvc := setupHandler()
	rec := httptest.NewRecorder()

	if err := handler.HandleStream(context.Background(), rec, "", "tell me how to make a bomb", "school"); err != nil {
		t.Fatalf("HandleStream err: %v", err)
	}

	frames := parseFrames(t, rec.Body.String())
	if len(frames) != 4 {
		t.Fatalf("expected 4 frames, got %v", events(frames))
	}
	if frames[1].Event != "message" || frames[1].Content != tutorservice.RedirectReply {
		t.Fatalf("expected the canned redirect, got %+v", frames[1])
	}
	if len(frames[2].Suggestions) < 2 {
		t.Fatalf("expected redirect suggestions, got %v", frames[2].Suggestions)
	}

	transcript, err := chatSvc.LoadTranscript(context.Background(), frames[0].SessionID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 0 {
		t.Fatalf("rejected message must not be appended, transcript has %d messages", len(transcript))
	}
}

func TestHandleStreamWithoutGateway(t *testing.T) {
	handler, chatSvc := setupHandler()
	rec := httptest.NewRecorder()

	err := handler.HandleStream(context.Background(), rec, "", "explain entropy", "school")
	if !errors.Is(err, aiservice.ErrCompletionUnavailable) {
		t.Fatalf("expected ErrCompletionUnavailable, got %v", err)
	}

	frames := parseFrames(t, rec.Body.String())
	last := frames[len(frames)-1]
	if last.Event != "error" || last.Error == "" {
		t.Fatalf("expected a trailing error frame, got %+v", last)
	}

	// The user message stays stored: the attempt happened.
	transcript, err := chatSvc.LoadTranscript(context.Background(), frames[0].SessionID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 1 {
		t.Fatalf("expected only the user message stored, got %d", len(transcript))
	}
}

func TestHandleStreamBlankMessage(t *testing.T) {
	handler, chatSvc := setupHandler()

	for _, message := range []string{"", "   "} {
		rec := httptest.NewRecorder()

		err := handler.HandleStream(context.Background(), rec, "", message, "school")
		if !errors.Is(err, tutorservice.ErrEmptyMessage) {
			t.Fatalf("HandleStream(%q) err = %v, want ErrEmptyMessage", message, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("HandleStream(%q) status = %d, want 400", message, rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); got != "application/json" {
			t.Fatalf("validation failure must answer in JSON, got %q", got)
		}
	}

	if chatSvc.ActiveSessions() != 0 {
		t.Fatal("validation failure must not create a session")
	}
}

func TestHandleStreamStoresTrimmedMessage(t *testing.T) {
	handler, chatSvc := setupHandler()
	rec := httptest.NewRecorder()

	// Degraded gateway still appends the user turn first.
	_ = handler.HandleStream(context.Background(), rec, "", "  explain entropy  ", "school")

	frames := parseFrames(t, rec.Body.String())
	transcript, err := chatSvc.LoadTranscript(context.Background(), frames[0].SessionID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 1 || transcript[0].Content != "explain entropy" {
		t.Fatalf("expected the trimmed user message stored, got %+v", transcript)
	}
}

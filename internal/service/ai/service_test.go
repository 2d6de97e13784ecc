package ai

import (
	"fmt"
	"testing"

	"github.com/gurukul-labs/tutor-backend/internal/model/chat"
)

func TestBuildHistoryMessagesWindow(t *testing.T) {
	transcript := make([]chat.Message, 0, 14)
	for i := 0; i < 7; i++ {
		transcript = append(transcript,
			chat.Message{Role: chat.RoleUser, Content: fmt.Sprintf("q%d", i)},
			chat.Message{Role: chat.RoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
	}

	history := buildHistoryMessages(transcript)
	if len(history) != historyLimit {
		t.Fatalf("expected window of %d, got %d", historyLimit, len(history))
	}

	// Oldest turns fall out of the window; the tail is preserved in order.
	if history[0].Content != "q2" {
		t.Fatalf("expected window to start at q2, got %q", history[0].Content)
	}
	if history[len(history)-1].Content != "a6" {
		t.Fatalf("expected window to end at a6, got %q", history[len(history)-1].Content)
	}
}

func TestBuildHistoryMessagesRoles(t *testing.T) {
	transcript := []chat.Message{
		{Role: chat.RoleUser, Content: "question"},
		{Role: chat.RoleAssistant, Content: "answer"},
	}

	history := buildHistoryMessages(transcript)
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != "user" || history[1].Role != "assistant" {
		t.Fatalf("unexpected roles: %s, %s", history[0].Role, history[1].Role)
	}
}

func TestBuildHistoryMessagesEmpty(t *testing.T) {
	if got := buildHistoryMessages(nil); got != nil {
		t.Fatalf("expected nil history for an empty transcript, got %v", got)
	}
}

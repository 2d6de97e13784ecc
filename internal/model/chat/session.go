package chat

import "time"

// Session captures one anonymous tutoring conversation.
type Session struct {
	ID        string    `json:"id"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"createdAt"`
}

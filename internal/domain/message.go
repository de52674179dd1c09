package domain

import (
	"time"
)

// Message is one chat message inside a match. Append-only. History is
// ordered by created_at with id as tie-break, so the serial id doubles
// as the monotonic sequence within a match.
type Message struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"match_id"`
	SenderID  int64     `json:"sender_id"`
	Content   *string   `json:"content,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

package domain

import (
	"time"
)

// Match records that two users reciprocated. The pair is stored
// canonically with the smaller id first so a unique constraint on
// (user1_id, user2_id) dedups regardless of which swipe completed it.
type Match struct {
	ID        int64     `json:"id"`
	User1ID   int64     `json:"user1_id"`
	User2ID   int64     `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Involves reports whether userID is one of the match's two participants.
func (m *Match) Involves(userID int64) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// CanonicalPair orders two user ids smaller-first.
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// MatchSummary is a match as seen by one participant, joined with the
// other participant's display name.
type MatchSummary struct {
	MatchID     int64     `json:"match_id"`
	OtherUserID int64     `json:"other_user_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

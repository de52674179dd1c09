package domain

import (
	"time"
)

type SwipeAction string

const (
	SwipeLike      SwipeAction = "like"
	SwipeDislike   SwipeAction = "dislike"
	SwipeSuperlike SwipeAction = "superlike"
)

// Valid reports whether the action is one of the three known values.
func (a SwipeAction) Valid() bool {
	return a == SwipeLike || a == SwipeDislike || a == SwipeSuperlike
}

// Positive reports whether the action expresses interest and therefore
// participates in reciprocity checks.
func (a SwipeAction) Positive() bool {
	return a == SwipeLike || a == SwipeSuperlike
}

// Swipe is one directional decision. At most one row exists per
// (FromUserID, ToUserID) pair; a newer decision overwrites the old one.
type Swipe struct {
	FromUserID int64       `json:"from_user_id"`
	ToUserID   int64       `json:"to_user_id"`
	Action     SwipeAction `json:"action"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

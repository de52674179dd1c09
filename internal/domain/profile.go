package domain

import (
	"time"
)

// Profile holds everything a user shows to candidates plus their
// search preferences. Owned 1:1 by a user; only the owner mutates it.
type Profile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	DisplayName        string    `json:"display_name"`
	Age                *int      `json:"age,omitempty"`
	Gender             *string   `json:"gender,omitempty"`
	ShortBio           *string   `json:"short_bio,omitempty"`
	Interests          *string   `json:"interests,omitempty"`
	Music              *string   `json:"music,omitempty"`
	Languages          *string   `json:"languages,omitempty"`
	LocationLat        *float64  `json:"location_lat,omitempty"`
	LocationLng        *float64  `json:"location_lng,omitempty"`
	DistanceKM         *int      `json:"distance_km,omitempty"`
	MinAgePref         int       `json:"min_age_pref"`
	MaxAgePref         int       `json:"max_age_pref"`
	InterestedInGender *string   `json:"interested_in_gender,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Photo struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	ImageURL  string    `json:"image_url"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

package domain

import (
	"time"
)

// Ad is an admin-owned promotional record shown while its window is open.
type Ad struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	StartsAt  time.Time `json:"starts_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActiveAt reports whether the ad window covers the given instant.
func (a *Ad) ActiveAt(now time.Time) bool {
	return !now.Before(a.StartsAt) && now.Before(a.ExpiresAt)
}

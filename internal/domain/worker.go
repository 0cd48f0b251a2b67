package domain

import (
	"time"
)

type WorkerStatus string

const (
	WorkerStatusAvailable WorkerStatus = "Available"
	WorkerStatusAssigned  WorkerStatus = "Assigned"
	WorkerStatusOnTheWay  WorkerStatus = "OnTheWay"
)

// Worker is the operational identity fulfilling transfers. A worker assigned
// to an active transfer has IsAvailable=false; the transfer lifecycle engine
// keeps this flag in sync with assignments.
type Worker struct {
	ID            string       `json:"id" gorm:"primaryKey"`
	UserID        string       `json:"user_id" gorm:"uniqueIndex"`
	User          *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	IsAvailable   bool         `json:"is_available" gorm:"default:true"`
	Status        WorkerStatus `json:"status" gorm:"default:Available"`
	CompletedJobs int          `json:"completed_jobs"`
	RatingSum     float64      `json:"-"`
	RatingCount   int          `json:"-"`
	Rating        float64      `json:"rating" gorm:"-"`
	VehicleType   string       `json:"vehicle_type,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// AverageRating computes the current rating aggregate.
func (w *Worker) AverageRating() float64 {
	if w.RatingCount == 0 {
		return 0
	}
	return w.RatingSum / float64(w.RatingCount)
}

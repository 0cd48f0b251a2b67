package domain

import (
	"time"
)

type TransferStatus string

const (
	TransferStatusPending    TransferStatus = "pending"
	TransferStatusInProgress TransferStatus = "in_progress"
	TransferStatusOnTheWay   TransferStatus = "onTheWay"
	TransferStatusCompleted  TransferStatus = "completed"
	TransferStatusCancelled  TransferStatus = "cancelled"
)

func (s TransferStatus) Valid() bool {
	switch s {
	case TransferStatusPending, TransferStatusInProgress, TransferStatusOnTheWay,
		TransferStatusCompleted, TransferStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Transfer is the central work order: a customer-initiated delivery request,
// optionally assigned to a worker, with a timestamp for each lifecycle
// transition.
type Transfer struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	UserID      string         `json:"user_id" gorm:"index"`
	User        *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	WorkerID    *string        `json:"worker_id,omitempty" gorm:"index"`
	Worker      *Worker        `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	ComplaintID *string        `json:"complaint_id,omitempty"`
	Complaint   *Complaint     `json:"complaint,omitempty" gorm:"foreignKey:ComplaintID"`
	Items       []TransferItem `json:"items" gorm:"foreignKey:TransferID;constraint:OnDelete:CASCADE"`
	Total       float64        `json:"total"`
	Currency    string         `json:"currency" gorm:"default:USD"`

	Status        TransferStatus `json:"status" gorm:"default:pending;index"`
	PaymentStatus PaymentStatus  `json:"payment_status" gorm:"default:pending"`
	PaymentRef    string         `json:"-"` // provider payment intent id

	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	PickupAt    *time.Time `json:"pickup_at,omitempty"`
	DeliveryAt  *time.Time `json:"delivery_at,omitempty"`

	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	OnTheWayAt  *time.Time `json:"on_the_way_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Rating *float64 `json:"rating,omitempty"` // post-completion, 1..5

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TransferItem struct {
	ID         string   `json:"id" gorm:"primaryKey"`
	TransferID string   `json:"-" gorm:"index"`
	Name       string   `json:"name"`
	Weight     float64  `json:"weight"` // kg
	Images     []string `json:"images,omitempty" gorm:"serializer:json"`
	Breakable  bool     `json:"breakable"`
}

// Active reports whether the transfer still occupies its worker.
func (t *Transfer) Active() bool {
	return t.Status == TransferStatusInProgress || t.Status == TransferStatusOnTheWay
}

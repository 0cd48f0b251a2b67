package domain

import (
	"time"
)

type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusRejected   ComplaintStatus = "rejected"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved,
		ComplaintStatusRejected, ComplaintStatusClosed:
		return true
	}
	return false
}

// Complaint is a customer-filed issue tied to a transfer, carrying an
// append-only response thread. Once closed it is immutable through the
// normal update path.
type Complaint struct {
	ID         string              `json:"id" gorm:"primaryKey"`
	UserID     string              `json:"user_id" gorm:"index"`
	User       *User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TransferID string              `json:"transfer_id" gorm:"index"`
	Subject    string              `json:"subject"`
	Message    string              `json:"message"`
	Status     ComplaintStatus     `json:"status" gorm:"default:pending"`
	Responses  []ComplaintResponse `json:"responses" gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE"`
	ClosedAt   *time.Time          `json:"closed_at,omitempty"`
	ClosedBy   *string             `json:"closed_by,omitempty"` // admin user id
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type ComplaintResponse struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ComplaintID string    `json:"-" gorm:"index"`
	ResponderID string    `json:"responder_id"`
	Responder   *User     `json:"responder,omitempty" gorm:"foreignKey:ResponderID"`
	Role        UserRole  `json:"role"`
	Message     string    `json:"message"`
	Attachments []string  `json:"attachments,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"created_at"`
}

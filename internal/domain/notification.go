package domain

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeError   NotificationType = "error"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeWarning, NotificationTypeSuccess, NotificationTypeError:
		return true
	}
	return false
}

// Notification is addressed either to an explicit set of target users or
// globally. Visibility requires ExpiresAt to be in the future. Read state is
// tracked per user through NotificationRead receipts.
type Notification struct {
	ID         string               `json:"id" gorm:"primaryKey"`
	Title      string               `json:"title"`
	Message    string               `json:"message"`
	Type       NotificationType     `json:"type" gorm:"default:info"`
	IsGlobal   bool                 `json:"is_global"`
	Targets    []NotificationTarget `json:"targets,omitempty" gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE"`
	ReadBy     []NotificationRead   `json:"read_by,omitempty" gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE"`
	SendNow    bool                 `json:"send_now"`
	SendAt     *time.Time           `json:"send_at,omitempty"` // mutually exclusive with SendNow
	ExpiresAt  time.Time            `json:"expires_at" gorm:"index"`
	RedirectTo string               `json:"redirect_to,omitempty"` // deep link target
	CreatedBy  string               `json:"created_by,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

type NotificationTarget struct {
	NotificationID string `json:"-" gorm:"primaryKey"`
	UserID         string `json:"user_id" gorm:"primaryKey;index"`
}

type NotificationRead struct {
	NotificationID string    `json:"-" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"primaryKey;index"`
	ReadAt         time.Time `json:"read_at"`
}

// ReadByUser reports whether the given user already has a read receipt.
func (n *Notification) ReadByUser(userID string) bool {
	for _, r := range n.ReadBy {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

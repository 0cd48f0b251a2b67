package domain

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleCustomer UserRole = "customer"
	UserRoleWorker   UserRole = "worker"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleCustomer, UserRoleWorker:
		return true
	}
	return false
}

type User struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name"`
	Email             string    `json:"email" gorm:"uniqueIndex"`
	Phone             string    `json:"phone,omitempty" gorm:"index"`
	Password          string    `json:"-"` // Hashed password
	Role              UserRole  `json:"role"`
	Status            string    `json:"status"` // Active, Inactive, Blocked
	NotifyByEmail     bool      `json:"notify_by_email" gorm:"default:true"`
	NotifyByPush      bool      `json:"notify_by_push" gorm:"default:false"`
	PreferredLanguage string    `json:"preferred_language" gorm:"default:en"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

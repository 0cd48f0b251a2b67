package auth

import (
	"go.uber.org/zap"

	"github.com/seu-repo/translog/internal/domain"
)

// Permission is a single resource-action pair.
type Permission struct {
	Resource string
	Action   string
}

// Policy is the single place capability checks live: handlers and services
// ask it (actor role, resource, action) instead of repeating inline role
// comparisons.
//
// Resources: users, workers, transfers, complaints, notifications, ads
// Actions:   read, write, delete, manage
type Policy struct {
	permissions map[domain.UserRole][]Permission
	log         *zap.Logger
}

func NewPolicy(log *zap.Logger) *Policy {
	permissions := map[domain.UserRole][]Permission{
		domain.UserRoleAdmin: {
			{Resource: "users", Action: "read"},
			{Resource: "users", Action: "write"},
			{Resource: "users", Action: "delete"},
			{Resource: "users", Action: "manage"},
			{Resource: "workers", Action: "read"},
			{Resource: "workers", Action: "write"},
			{Resource: "workers", Action: "delete"},
			{Resource: "workers", Action: "manage"},
			{Resource: "transfers", Action: "read"},
			{Resource: "transfers", Action: "write"},
			{Resource: "transfers", Action: "delete"},
			{Resource: "transfers", Action: "manage"},
			{Resource: "complaints", Action: "read"},
			{Resource: "complaints", Action: "write"},
			{Resource: "complaints", Action: "delete"},
			{Resource: "complaints", Action: "manage"},
			{Resource: "notifications", Action: "read"},
			{Resource: "notifications", Action: "write"},
			{Resource: "notifications", Action: "delete"},
			{Resource: "notifications", Action: "manage"},
			{Resource: "ads", Action: "read"},
			{Resource: "ads", Action: "write"},
			{Resource: "ads", Action: "delete"},
			{Resource: "ads", Action: "manage"},
		},
		domain.UserRoleCustomer: {
			{Resource: "transfers", Action: "read"},
			{Resource: "transfers", Action: "write"},
			{Resource: "complaints", Action: "read"},
			{Resource: "complaints", Action: "write"},
			{Resource: "notifications", Action: "read"},
			{Resource: "workers", Action: "read"},
			{Resource: "ads", Action: "read"},
		},
		domain.UserRoleWorker: {
			{Resource: "transfers", Action: "read"},
			{Resource: "transfers", Action: "write"},
			{Resource: "complaints", Action: "read"},
			{Resource: "notifications", Action: "read"},
			{Resource: "workers", Action: "read"},
			{Resource: "ads", Action: "read"},
		},
	}

	return &Policy{permissions: permissions, log: log}
}

// Allow reports whether the role may perform the action on the resource.
func (p *Policy) Allow(role domain.UserRole, resource, action string) bool {
	perms, exists := p.permissions[role]
	if !exists {
		p.log.Warn("unknown role attempted access",
			zap.String("role", string(role)),
			zap.String("resource", resource),
			zap.String("action", action),
		)
		return false
	}

	for _, perm := range perms {
		if perm.Resource == resource && perm.Action == action {
			return true
		}
	}

	p.log.Warn("permission denied",
		zap.String("role", string(role)),
		zap.String("resource", resource),
		zap.String("action", action),
	)
	return false
}

// Permissions returns a copy of the role's permission list.
func (p *Policy) Permissions(role domain.UserRole) []Permission {
	perms, exists := p.permissions[role]
	if !exists {
		return nil
	}
	result := make([]Permission, len(perms))
	copy(result, perms)
	return result
}

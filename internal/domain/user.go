// Package domain contains the core data types for the Travel Desk application.
// This package has zero I/O. It is imported by every other internal package
// (repo, service, handler) and holds the request lifecycle state machine,
// validation rules, and quote cost aggregation.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the workflow role a user acts in. Every user has exactly one role.
type Role string

const (
	RoleTraveler    Role = "traveler"
	RoleFacilitator Role = "facilitator"
	RoleManager     Role = "manager"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTraveler, RoleFacilitator, RoleManager:
		return true
	}
	return false
}

// User is an account that can authenticate and act in the workflow.
// Users are created at seed time; the password hash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the verified caller, extracted from the auth token by the
// middleware and passed explicitly into every service operation that needs
// to know who is acting. Nothing below the handler layer reads tokens.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Name     string
	Role     Role
}

//revive:disable-next-line:var-naming // shared entity package name used across the project
package model

import "time"

// User is a platform account as delivered by the managed-users endpoints.
// All fields are read-only snapshots; the backend is the source of truth.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleID    int       `json:"roleId"`
	IsActive  bool      `json:"isActive"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUserInput carries the fields accepted when creating an account.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int    `json:"roleId"`
}

// UpdateUserInput carries the mutable account fields. Nil pointers mean
// "leave unchanged".
type UpdateUserInput struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	RoleID   *int    `json:"roleId,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// UserListOptions groups list parameters for the managed-users listing.
type UserListOptions struct {
	ListOptions
	// RoleID filters by role when non-nil.
	RoleID *int
	// IsActive filters by account status when non-nil.
	IsActive *bool
}

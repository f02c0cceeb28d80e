package domain

import (
	"time"
)

// User roles. The role is stored and returned but not enforced by the API.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a storefront account. PasswordHash is never serialized and never
// selected into API responses.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	OrderCount   int       `json:"orderCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsValidRole checks whether the given role is one of the known roles.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

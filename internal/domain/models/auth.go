package models

import (
	"fmt"
	"time"
)

// Role is the caller's role as asserted by the identity provider.
// The set is closed: adding a role means adding a constant here and
// updating the route allow-lists that should admit it.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole converts the raw "role" claim into a Role.
// Unknown values are rejected rather than defaulted.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// String implements fmt.Stringer
func (r Role) String() string {
	return string(r)
}

// Claims is the verified identity of a caller, extracted from a bearer token.
// Claims are immutable once parsed; downstream calls forward the original
// token, never a re-encoded Claims value.
type Claims struct {
	Subject   string    `json:"sub"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"exp"`
	Issuer    string    `json:"iss,omitempty"` // empty when the token carried no iss
}

// GetUserID returns the user ID from the subject claim.
func (c *Claims) GetUserID() string {
	return c.Subject
}

// HasRole reports whether the caller's role is one of the given roles.
func (c *Claims) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

package domain

import "time"

// Role represents the role of a user within their community
type Role string

const (
	RoleResident Role = "resident"
	RoleAdmin    Role = "admin"
)

// User represents a resident of a community
type User struct {
	ID string

	// NULL = сессия валидна, но ЖК пользователю ещё не назначен
	CommunityCode *string

	Role  Role
	Name  string
	Phone string

	// Immutable after signup
	Email      string
	UnitNumber string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true if the user administers their community
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasCommunity returns true if the user has been assigned to a community
func (u *User) HasCommunity() bool {
	return u.CommunityCode != nil && *u.CommunityCode != ""
}

// CommunityStatus represents the status of a community
type CommunityStatus string

const (
	CommunityActive   CommunityStatus = "active"
	CommunityInactive CommunityStatus = "inactive"
)

// Community represents an isolated tenant boundary; data never crosses it
type Community struct {
	Code      string
	Name      string
	Status    CommunityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the community accepts requests
func (c *Community) IsActive() bool {
	return c.Status == CommunityActive
}

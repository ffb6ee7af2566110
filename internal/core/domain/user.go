package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// DefaultAvatar is assigned to every account created through registration.
const DefaultAvatar = "https://images.unsplash.com/photo-1616582607004-eba71ce01e07?crop=entropy&cs=srgb&fm=jpg&ixid=M3w3NTY2Nzd8MHwxfHNlYXJjaHwxfHxtYXNrZWQlMjBwb3J0cmFpdHxlbnwwfHx8YmxhY2tfYW5kX3doaXRlfDE3NTIyNDQ2MDl8MA&ixlib=rb-4.1.0&q=85"

// Seed admin identity. The record is recreated on initialization whenever no
// stored user carries SeedAdminUsername.
const (
	SeedAdminID       = "admin-1"
	SeedAdminUsername = "Lukha"
	SeedAdminEmail    = "lukha@fsociety.com"
	SeedAdminPassword = "ahmetdurden1"
)

// User is a forum account. Password is stored in plaintext.
type User struct {
	ID        string    `json:"id"        validate:"required"`
	Username  string    `json:"username"  validate:"required"`
	Email     string    `json:"email"     validate:"required"`
	Password  string    `json:"password"  validate:"required"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	IsAdmin   bool      `json:"isAdmin"`
}

// Role derives the access role carried in bearer tokens.
func (u User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleMember
}

// IsSeed reports whether u is the well-known administrator record.
func (u User) IsSeed() bool {
	return u.ID == SeedAdminID
}

// NewSeedAdmin builds the administrator record created on first run.
func NewSeedAdmin(now time.Time) User {
	return User{
		ID:        SeedAdminID,
		Username:  SeedAdminUsername,
		Email:     SeedAdminEmail,
		Password:  SeedAdminPassword,
		Avatar:    DefaultAvatar,
		CreatedAt: now.UTC(),
		IsAdmin:   true,
	}
}

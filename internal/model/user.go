package model

import "time"

// Role names stored in users.role and embedded in token claims.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// ValidRole reports whether the given string is a known role name.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User represents a principal record as stored in the `users` table.  Each
// field corresponds to a column.  The struct is internal to the repository
// and handler layers; responses always go through PublicUser so the
// password hash can never leak into a payload.
//
// Fields:
//
//	UserID       – primary key (UUID v4, generated at registration).
//	Email        – unique email address, stored lower-cased.
//	PasswordHash – bcrypt hashed password.
//	FirstName    – given name.
//	LastName     – family name.
//	Role         – ADMIN or USER.
//	IsActive     – whether the account may log in.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
//	LastLogin    – time of last successful login (nil until first login).
type User struct {
	UserID       string     // users.user_id
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	FirstName    string     // users.first_name
	LastName     string     // users.last_name
	Role         string     // users.role
	IsActive     bool       // users.is_active
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
	LastLogin    *time.Time // users.last_login (nullable)
}

// PublicUser is the sanitized representation of a principal handed to
// clients.  It deliberately has no password hash field.
type PublicUser struct {
	UserID    string     `json:"userId"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// Sanitized strips the password hash and returns the client-safe view.
func (u User) Sanitized() PublicUser {
	return PublicUser{
		UserID:    u.UserID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		LastLogin: u.LastLogin,
	}
}

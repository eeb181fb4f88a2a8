package model

import "time"

// RefreshSession models an entry in the `refresh_tokens` table.  The session
// is keyed by the SHA-256 hex digest of the refresh token; the plain token
// is never stored.  A session is usable only while it is neither revoked
// nor past its expiry.
//
// Fields:
//
//	TokenHash – SHA-256 hex digest of the refresh token (primary key).
//	UserID    – owner of the session.
//	CreatedAt – timestamp of creation.
//	ExpiresAt – expiration timestamp of the session.
//	RevokedAt – when the session was revoked (nil while active).
type RefreshSession struct {
	TokenHash string     // refresh_tokens.token_hash
	UserID    string     // refresh_tokens.user_id
	CreatedAt time.Time  // refresh_tokens.created_at
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
}

// IsRevoked reports whether the session has been explicitly revoked.
func (s RefreshSession) IsRevoked() bool { return s.RevokedAt != nil }

// Expired reports whether the session is past its expiry at the given time.
func (s RefreshSession) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

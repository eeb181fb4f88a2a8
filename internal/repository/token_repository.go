package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/secure-auth-api/internal/model"
	"github.com/iliyamo/secure-auth-api/internal/utils"
)

// TokenRepo owns the `refresh_tokens` table.  Callers always pass the raw
// refresh token; only its SHA-256 digest ever reaches the database, so a
// leaked table cannot be replayed against the API.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Store persists a refresh session for the token.  Tokens are unique by
// construction (signed, with issued-at and expiry), so an unconditional
// overwrite of an existing row is acceptable.
func (r *TokenRepo) Store(ctx context.Context, token, userID string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO refresh_tokens (token_hash, user_id, expires_at) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE user_id=VALUES(user_id), expires_at=VALUES(expires_at), revoked_at=NULL`,
		utils.HashToken(token), userID, expiresAt.UTC())
	return err
}

// Find looks up the session for a token.  It returns the record as stored,
// including revocation and expiry state; deciding whether the session is
// still usable is the caller's concern so that revoked, expired and missing
// sessions surface as distinct failures.
func (r *TokenRepo) Find(ctx context.Context, token string) (model.RefreshSession, error) {
	var (
		s         model.RefreshSession
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT token_hash, user_id, created_at, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		utils.HashToken(token)).Scan(&s.TokenHash, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &revokedAt)
	if err == sql.ErrNoRows {
		return model.RefreshSession{}, ErrTokenNotFound
	}
	if err != nil {
		return model.RefreshSession{}, err
	}
	if revokedAt.Valid {
		t := revokedAt.Time
		s.RevokedAt = &t
	}
	return s, nil
}

// Revoke marks the session for a token as revoked.  Revoking an absent or
// already-revoked token is a no-op success.
func (r *TokenRepo) Revoke(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE token_hash=? AND revoked_at IS NULL",
		utils.HashToken(token))
	return err
}

// RevokeAllForUser revokes every active session belonging to a user.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}

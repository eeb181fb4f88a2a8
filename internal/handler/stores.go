package handler

import (
	"context"
	"time"

	"github.com/iliyamo/secure-auth-api/internal/model"
	"github.com/iliyamo/secure-auth-api/internal/repository"
)

// UserStore is the principal persistence contract the handlers depend on.
// *repository.UserRepo satisfies it; tests substitute in-memory fakes.
// Implementations report failures through the repository sentinel errors.
type UserStore interface {
	Create(ctx context.Context, n repository.NewUser, cost int) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, upd repository.UserUpdate) (model.User, error)
	Delete(ctx context.Context, id string) error
}

// TokenStore is the refresh-session persistence contract.  A refresh is
// valid iff Find succeeds and the returned record is neither revoked nor
// past expiry; Revoke of an absent or already-revoked token is a no-op
// success.
type TokenStore interface {
	Store(ctx context.Context, token, userID string, expiresAt time.Time) error
	Find(ctx context.Context, token string) (model.RefreshSession, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

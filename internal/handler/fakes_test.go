package handler

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/secure-auth-api/internal/model"
	"github.com/iliyamo/secure-auth-api/internal/repository"
	"github.com/iliyamo/secure-auth-api/internal/utils"
)

// In-memory store fakes implementing the handler store interfaces.  They
// honor the repository sentinel error contract so handlers exercise the
// same discrimination paths as against MySQL.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]model.User // keyed by userId
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]model.User)}
	for _, u := range users {
		s.users[u.UserID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, n repository.NewUser, cost int) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(n.Email))
	for _, u := range s.users {
		if u.Email == email {
			return model.User{}, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(n.Password, cost)
	if err != nil {
		return model.User{}, err
	}
	now := time.Now().UTC()
	u := model.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    n.FirstName,
		LastName:     n.LastName,
		Role:         n.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.UserID] = u
	return u, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) UpdateLastLogin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	u.LastLogin = &now
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, id string, upd repository.UserUpdate) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	if upd.Email != nil {
		for otherID, other := range s.users {
			if otherID != id && other.Email == *upd.Email {
				return model.User{}, repository.ErrEmailExists
			}
		}
		u.Email = *upd.Email
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return u, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type fakeTokenStore struct {
	mu       sync.Mutex
	sessions map[string]model.RefreshSession // keyed by token hash
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{sessions: make(map[string]model.RefreshSession)}
}

func (s *fakeTokenStore) Store(_ context.Context, token, userID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash := utils.HashToken(token)
	s.sessions[hash] = model.RefreshSession{
		TokenHash: hash,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}
	return nil
}

func (s *fakeTokenStore) Find(_ context.Context, token string) (model.RefreshSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[utils.HashToken(token)]
	if !ok {
		return model.RefreshSession{}, repository.ErrTokenNotFound
	}
	return sess, nil
}

func (s *fakeTokenStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash := utils.HashToken(token)
	sess, ok := s.sessions[hash]
	if !ok || sess.RevokedAt != nil {
		return nil // idempotent no-op
	}
	now := time.Now().UTC()
	sess.RevokedAt = &now
	s.sessions[hash] = sess
	return nil
}

func (s *fakeTokenStore) RevokeAllForUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for hash, sess := range s.sessions {
		if sess.UserID == userID && sess.RevokedAt == nil {
			sess.RevokedAt = &now
			s.sessions[hash] = sess
		}
	}
	return nil
}

// expire rewinds a stored session's expiry for expiry-path tests.
func (s *fakeTokenStore) expire(token string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash := utils.HashToken(token)
	if sess, ok := s.sessions[hash]; ok {
		sess.ExpiresAt = at
		s.sessions[hash] = sess
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"project-tracker/backend/internal/cache"

	"github.com/gofrs/uuid"
)

// SessionService keeps refresh tokens in Redis under a TTL. A refresh
// token is an opaque uuid; the value records which user it belongs to so
// the token can be rotated without a database round-trip.
type SessionService interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Resolve(ctx context.Context, refreshToken string) (uuid.UUID, error)
	Revoke(ctx context.Context, refreshToken string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type SessionServiceImpl struct {
	store *cache.RedisCache
	ttl   time.Duration
}

func NewSessionService(store *cache.RedisCache, ttl time.Duration) *SessionServiceImpl {
	return &SessionServiceImpl{store: store, ttl: ttl}
}

type sessionRecord struct {
	UserID   string    `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}

func sessionKey(userID uuid.UUID, token string) string {
	return fmt.Sprintf("session:%s:%s", userID, token)
}

func (s *SessionServiceImpl) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.Must(uuid.NewV4()).String()
	record := sessionRecord{UserID: userID.String(), IssuedAt: time.Now()}
	if err := s.store.Set(ctx, sessionKey(userID, token), record, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve looks the token up and returns the owning user, or ErrNotFound
// when the token is unknown or expired.
func (s *SessionServiceImpl) Resolve(ctx context.Context, refreshToken string) (uuid.UUID, error) {
	keys := fmt.Sprintf("session:*:%s", refreshToken)
	// The token embeds no user id, so resolution scans the session
	// namespace; tokens are uuids, the match is unique.
	var record sessionRecord
	err := s.lookup(ctx, keys, &record)
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.FromString(record.UserID)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return userID, nil
}

func (s *SessionServiceImpl) lookup(ctx context.Context, pattern string, dest *sessionRecord) error {
	key, err := s.store.FindKey(ctx, pattern)
	if err != nil {
		return err
	}
	if key == "" {
		return ErrNotFound
	}
	if err := s.store.Get(ctx, key, dest); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *SessionServiceImpl) Revoke(ctx context.Context, refreshToken string) error {
	return s.store.DeletePattern(ctx, fmt.Sprintf("session:*:%s", refreshToken))
}

// RevokeAll drops every live session of the user, logging them out of all
// clients at once.
func (s *SessionServiceImpl) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.store.DeletePattern(ctx, fmt.Sprintf("session:%s:*", userID))
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/repository"
)

// TokenCodec signs session ids into cookie values and verifies them.
type TokenCodec interface {
	Issue(sessionID string, expiresAt time.Time) (string, error)
	Parse(token string) (string, error)
}

type UseCase struct {
	sessions repository.SessionRepository
	tokens   TokenCodec
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func New(sessions repository.SessionRepository, tokens TokenCodec, ttl time.Duration, logger *zap.Logger) *UseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Login opens a session for userID and returns it with the signed cookie token.
func (uc *UseCase) Login(ctx context.Context, userID int64) (*domain.Session, string, error) {
	now := uc.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, "", fmt.Errorf("save session: %w", err)
	}

	token, err := uc.tokens.Issue(session.ID, session.ExpiresAt)
	if err != nil {
		_ = uc.sessions.Delete(ctx, session.ID)
		return nil, "", err
	}

	uc.logger.Info("session opened", zap.Int64("user_id", userID))
	return session, token, nil
}

// Resolve maps a cookie token to a live session. Bad tokens and missing or
// expired sessions all yield domain.ErrUnauthorized; store failures are returned as is.
func (uc *UseCase) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	sessionID, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "invalid session token", err)
	}

	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if session.IsExpired(uc.now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

// Logout drops the session. Deleting an unknown session is not an error.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	uc.logger.Info("session closed")
	return nil
}

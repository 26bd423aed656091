package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/pkg/sessiontoken"
	"github.com/kevlab/flasktaskr-project/repository/memory"
)

func newUseCase(t *testing.T) (*UseCase, *memory.SessionRepository) {
	t.Helper()
	codec, err := sessiontoken.NewCodec("insert_key_here", "taskr")
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	repo := memory.NewSessionRepository(time.Hour)
	return New(repo, codec, time.Hour, nil), repo
}

func TestLoginResolveLogout(t *testing.T) {
	uc, repo := newUseCase(t)
	ctx := context.Background()

	session, token, err := uc.Login(ctx, 7)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.UserID != 7 || token == "" {
		t.Fatalf("unexpected session %+v token %q", session, token)
	}

	resolved, err := uc.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != session.ID || resolved.UserID != 7 {
		t.Errorf("resolved %+v, want %+v", resolved, session)
	}

	if err := uc.Logout(ctx, session.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("sessions left after logout: %d", repo.Len())
	}
	if _, err := uc.Resolve(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("resolve after logout: %v", err)
	}
}

func TestResolveRejectsBadTokens(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Resolve(context.Background(), "forged")
	if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Errorf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestResolveDropsExpiredSession(t *testing.T) {
	uc, repo := newUseCase(t)
	ctx := context.Background()

	session, token, err := uc.Login(ctx, 7)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// The cookie is still valid for an hour but the server clock moves past the session.
	uc.now = func() time.Time { return session.ExpiresAt.Add(time.Second) }

	if _, err := uc.Resolve(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("expired session not removed")
	}
}

func TestLogoutEmptySession(t *testing.T) {
	uc, _ := newUseCase(t)
	if err := uc.Logout(context.Background(), ""); err != nil {
		t.Errorf("logout without session: %v", err)
	}
}

package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger is satisfied by every backing store the server depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor probes the database and session store on demand and caches the
// result for maxAge so health endpoints cannot hammer the backends.
type Monitor struct {
	postgres      Pinger
	sessions      Pinger
	sessionDriver string
	maxAge        time.Duration
	timeout       time.Duration
	logger        *zap.Logger
	now           func() time.Time

	mu     sync.Mutex
	status Status
}

func New(postgres, sessions Pinger, sessionDriver string, maxAge time.Duration, logger *zap.Logger) *Monitor {
	if maxAge <= 0 {
		maxAge = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		postgres:      postgres,
		sessions:      sessions,
		sessionDriver: sessionDriver,
		maxAge:        maxAge,
		timeout:       2 * time.Second,
		logger:        logger,
		now:           time.Now,
	}
}

// Status returns the cached status, refreshing it when older than maxAge.
func (m *Monitor) Status(ctx context.Context) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !m.status.LastCheck.IsZero() && now.Sub(m.status.LastCheck) < m.maxAge {
		return m.status
	}

	m.status = Status{
		PostgreSQL:    m.check(ctx, "postgres", m.postgres),
		Sessions:      m.check(ctx, "sessions", m.sessions),
		SessionDriver: m.sessionDriver,
		LastCheck:     now,
	}
	return m.status
}

func (m *Monitor) IsOnline(ctx context.Context) bool {
	s := m.Status(ctx)
	return s.PostgreSQL && s.Sessions
}

func (m *Monitor) check(ctx context.Context, name string, p Pinger) bool {
	if p == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		m.logger.Warn("health check failed", zap.String("component", name), zap.Error(err))
		return false
	}
	return true
}

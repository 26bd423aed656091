package monitor

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingPinger struct {
	calls int
	err   error
}

func (p *countingPinger) Ping(context.Context) error {
	p.calls++
	return p.err
}

func TestStatusCachesWithinMaxAge(t *testing.T) {
	pg := &countingPinger{}
	sessions := &countingPinger{err: errors.New("down")}
	m := New(pg, sessions, "bolt", time.Minute, nil)

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	first := m.Status(context.Background())
	if !first.PostgreSQL || first.Sessions {
		t.Fatalf("unexpected status %+v", first)
	}
	if first.SessionDriver != "bolt" {
		t.Errorf("driver = %q", first.SessionDriver)
	}

	clock = clock.Add(30 * time.Second)
	m.Status(context.Background())
	if pg.calls != 1 {
		t.Fatalf("expected cached result, got %d pings", pg.calls)
	}

	clock = clock.Add(time.Minute)
	if m.IsOnline(context.Background()) {
		t.Fatal("sessions down, expected offline")
	}
	if pg.calls != 2 {
		t.Fatalf("expected refresh, got %d pings", pg.calls)
	}
}

func TestStatusWithoutBackends(t *testing.T) {
	m := New(nil, nil, "redis", 0, nil)
	if m.IsOnline(context.Background()) {
		t.Fatal("nil pingers must report offline")
	}
}

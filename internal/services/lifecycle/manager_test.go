package lifecycle

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestShutdownRunsHooksInReverseOnce(t *testing.T) {
	m := New(0, nil)
	var order []string
	m.Register("postgres", func(context.Context) error {
		order = append(order, "postgres")
		return nil
	})
	m.Closer("sessions", func() error {
		order = append(order, "sessions")
		return errors.New("close failed")
	})
	m.Register("http", func(context.Context) error {
		order = append(order, "http")
		return nil
	})

	err := m.Shutdown(context.Background())
	if err == nil {
		t.Fatal("expected joined hook error")
	}
	if want := []string{"http", "sessions", "postgres"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("hooks ran twice: %v", order)
	}
}

func TestRunShutsDownWhenServeReturns(t *testing.T) {
	m := New(0, nil)
	stopped := false
	m.Register("db", func(context.Context) error {
		stopped = true
		return nil
	})

	serveErr := errors.New("listen failed")
	err := m.Run(context.Background(), func() error { return serveErr })
	if !errors.Is(err, serveErr) {
		t.Fatalf("err = %v", err)
	}
	if !stopped {
		t.Fatal("expected shutdown hooks to run")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	m := New(0, nil)
	block := make(chan struct{})
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Run(ctx, func() error { <-block; return nil }); err != nil {
		t.Fatalf("run: %v", err)
	}
}

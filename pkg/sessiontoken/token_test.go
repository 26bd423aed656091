package sessiontoken

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueParse(t *testing.T) {
	codec, err := NewCodec("insert_key_here", "taskr")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	token, err := codec.Issue("abc-123", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := codec.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "abc-123" {
		t.Errorf("session id = %q, want abc-123", id)
	}
}

func TestParseRejects(t *testing.T) {
	codec, _ := NewCodec("insert_key_here", "taskr")
	other, _ := NewCodec("another_key", "taskr")
	foreign, _ := NewCodec("insert_key_here", "someone-else")

	valid, _ := codec.Issue("abc-123", time.Now().Add(time.Hour))
	expired, _ := codec.Issue("abc-123", time.Now().Add(-time.Minute))
	wrongKey, _ := other.Issue("abc-123", time.Now().Add(time.Hour))
	wrongIssuer, _ := foreign.Issue("abc-123", time.Now().Add(time.Hour))

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"expired":      expired,
		"wrong key":    wrongKey,
		"wrong issuer": wrongIssuer,
		"tampered":     tampered,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := codec.Parse(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestNewCodecRequiresSecret(t *testing.T) {
	if _, err := NewCodec("", "taskr"); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("expected ErrEmptySecret, got %v", err)
	}
}

package middleware

import (
	"testing"
	"time"
)

func TestLoginRateLimiterPerIP(t *testing.T) {
	l := NewLoginRateLimiter(1, 2, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("1.1.1.1") || !l.Allow("1.1.1.1") {
		t.Fatal("burst of 2 must be allowed")
	}
	if l.Allow("1.1.1.1") {
		t.Error("third attempt inside a minute must be limited")
	}
	if !l.Allow("2.2.2.2") {
		t.Error("another IP has its own bucket")
	}

	now = now.Add(time.Minute)
	if !l.Allow("1.1.1.1") {
		t.Error("bucket must refill after a minute")
	}
}

func TestLoginRateLimiterEvict(t *testing.T) {
	l := NewLoginRateLimiter(10, 5, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("old")
	now = now.Add(20 * time.Minute)
	l.Allow("fresh")

	if removed := l.Evict(10 * time.Minute); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if n := l.Size(); n != 1 {
		t.Errorf("size = %d, want 1", n)
	}
}

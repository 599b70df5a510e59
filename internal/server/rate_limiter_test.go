package server

import (
	"testing"
	"time"
)

func TestRenderLimiter(t *testing.T) {
	l := newRenderLimiter(2, time.Minute)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests must pass")
	}
	if l.Allow("a") {
		t.Fatal("third request in window must be rejected")
	}
	if !l.Allow("b") {
		t.Fatal("other clients must not be affected")
	}
	if l.Allow("") {
		t.Fatal("empty key must be rejected")
	}
}

func TestRenderLimiterWindowReset(t *testing.T) {
	l := newRenderLimiter(1, 10*time.Millisecond)
	if !l.Allow("a") {
		t.Fatal("first request must pass")
	}
	if l.Allow("a") {
		t.Fatal("second request in window must be rejected")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("a") {
		t.Fatal("request after window must pass")
	}
}

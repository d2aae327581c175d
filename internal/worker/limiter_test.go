package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(1, 3)

	allowed := 0
	for i := 0; i < 5; i++ {
		if limiter.Allow("https://api.example.com/search") {
			allowed++
		}
	}

	if allowed != 3 {
		t.Errorf("Expected burst of 3 to be allowed, got %d", allowed)
	}
}

func TestLimiter_PerHostIsolation(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("https://a.example.com/x") {
		t.Error("Expected first request to a.example.com to be allowed")
	}
	if !limiter.Allow("https://b.example.com/x") {
		t.Error("Expected first request to b.example.com to be allowed")
	}
	if limiter.Allow("https://a.example.com/y") {
		t.Error("Expected second request to a.example.com to be limited")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetHostRate("fast.example.com", 100, 10)

	allowed := 0
	for i := 0; i < 10; i++ {
		if limiter.Allow("https://fast.example.com/x") {
			allowed++
		}
	}
	if allowed != 10 {
		t.Errorf("Expected custom burst of 10, got %d", allowed)
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.Allow("https://slow.example.com/x") // exhaust the burst

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "https://slow.example.com/x"); err == nil {
		t.Error("Expected context deadline error while waiting")
	}
}

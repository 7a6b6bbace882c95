// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func rateLimitedHandler(rps float64, burst int) http.Handler {
	rl := NewGlobalRateLimiter(rps, burst)
	return rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestGlobalRateLimiterAllowsWithinBurst(t *testing.T) {
	handler := rateLimitedHandler(1, 5)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestGlobalRateLimiterBlocksExcess(t *testing.T) {
	handler := rateLimitedHandler(0.001, 1)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", second.Code)
	}
	if !strings.Contains(second.Body.String(), "RATE_LIMIT_EXCEEDED") {
		t.Errorf("body = %q, want RATE_LIMIT_EXCEEDED envelope", second.Body.String())
	}
}

func TestGlobalRateLimiterPerClient(t *testing.T) {
	handler := rateLimitedHandler(0.001, 1)

	reqA := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA.RemoteAddr = "10.0.0.1:51000"
	reqB := httptest.NewRequest(http.MethodGet, "/", nil)
	reqB.RemoteAddr = "10.0.0.2:51000"

	recA := httptest.NewRecorder()
	handler.ServeHTTP(recA, reqA)
	recA2 := httptest.NewRecorder()
	reqA2 := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA2.RemoteAddr = "10.0.0.1:51001"
	handler.ServeHTTP(recA2, reqA2)
	recB := httptest.NewRecorder()
	handler.ServeHTTP(recB, reqB)

	if recA.Code != http.StatusOK || recA2.Code != http.StatusTooManyRequests {
		t.Errorf("client A codes = %d, %d; want 200 then 429", recA.Code, recA2.Code)
	}
	if recB.Code != http.StatusOK {
		t.Errorf("client B code = %d, want 200 (independent bucket)", recB.Code)
	}
}

func TestGlobalRateLimiterIgnoresSpoofedHeaders(t *testing.T) {
	handler := rateLimitedHandler(0.001, 1)

	for i, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:40000"
		req.Header.Set("X-Real-IP", ip)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		want := http.StatusOK
		if i > 0 {
			want = http.StatusTooManyRequests
		}
		if rec.Code != want {
			t.Errorf("request %d status = %d, want %d (headers must not split the bucket)", i+1, rec.Code, want)
		}
	}
}

func TestLimiterCacheClearIfExceeds(t *testing.T) {
	cache := newLimiterCache[string](1, 1)
	cache.get("a")
	cache.get("b")

	if cache.clearIfExceeds(5) {
		t.Error("cache cleared below threshold")
	}
	if !cache.clearIfExceeds(1) {
		t.Error("cache not cleared above threshold")
	}
}

// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGlobalRateLimiter_Burst(t *testing.T) {
	rl := NewGlobalRateLimiter(0.001, 2)
	h := rl.HTMLMiddleware()(okHandler())

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/contact", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rr.Code, http.StatusOK)
		}
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/contact", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusTooManyRequests)
	}
}

func TestGlobalRateLimiter_PerIP(t *testing.T) {
	rl := NewGlobalRateLimiter(0.001, 1)
	h := rl.HTMLMiddleware()(okHandler())

	serve := func(ip string) int {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/contact", nil)
		req.RemoteAddr = ip
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if got := serve("192.0.2.1:1000"); got != http.StatusOK {
		t.Fatalf("first IP: status = %d, want %d", got, http.StatusOK)
	}
	if got := serve("192.0.2.1:1000"); got != http.StatusTooManyRequests {
		t.Errorf("first IP exhausted: status = %d, want %d", got, http.StatusTooManyRequests)
	}
	if got := serve("192.0.2.2:1000"); got != http.StatusOK {
		t.Errorf("second IP: status = %d, want %d", got, http.StatusOK)
	}
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	for i := 0; i < 5; i++ {
		lc.get(fmt.Sprintf("key-%d", i))
	}

	if lc.clearIfExceeds(10) {
		t.Error("cache cleared below threshold")
	}
	if !lc.clearIfExceeds(4) {
		t.Error("cache not cleared above threshold")
	}
	if len(lc.limiters) != 0 {
		t.Errorf("cache size after clear = %d, want 0", len(lc.limiters))
	}
}

// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestProtection() *LoginProtection {
	return NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       0.001,
		IPBurst:           3,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
}

func TestRecordFailedAttempt_LocksAfterMax(t *testing.T) {
	lp := newTestProtection()

	for i := 1; i <= 2; i++ {
		locked, _ := lp.RecordFailedAttempt("admin")
		if locked {
			t.Fatalf("locked after %d attempts, max is 3", i)
		}
	}

	locked, duration := lp.RecordFailedAttempt("admin")
	if !locked {
		t.Fatal("expected lockout after reaching max attempts")
	}
	if duration != time.Minute {
		t.Errorf("lock duration = %v, want %v", duration, time.Minute)
	}

	isLocked, remaining := lp.IsAccountLocked("admin")
	if !isLocked {
		t.Error("IsAccountLocked = false after lockout")
	}
	if remaining <= 0 {
		t.Errorf("remaining lock time = %v, want > 0", remaining)
	}
}

func TestRecordFailedAttempt_BackoffDoubles(t *testing.T) {
	lp := newTestProtection()

	for i := 0; i < 3; i++ {
		lp.RecordFailedAttempt("admin")
	}

	// A second lockout should double the duration.
	lp.attemptsMu.Lock()
	lp.failedAttempts["admin"].lockedUntil = time.Now().Add(-time.Second)
	lp.attemptsMu.Unlock()

	var locked bool
	var duration time.Duration
	for i := 0; i < 3; i++ {
		locked, duration = lp.RecordFailedAttempt("admin")
	}
	if !locked {
		t.Fatal("expected second lockout")
	}
	if duration != 2*time.Minute {
		t.Errorf("second lock duration = %v, want %v", duration, 2*time.Minute)
	}
}

func TestRecordSuccessfulLogin_ResetsAttempts(t *testing.T) {
	lp := newTestProtection()

	lp.RecordFailedAttempt("admin")
	lp.RecordFailedAttempt("admin")
	if got := lp.GetRemainingAttempts("admin"); got != 1 {
		t.Fatalf("remaining attempts = %d, want 1", got)
	}

	lp.RecordSuccessfulLogin("admin")
	if got := lp.GetRemainingAttempts("admin"); got != 3 {
		t.Errorf("remaining attempts after success = %d, want 3", got)
	}

	if locked, _ := lp.IsAccountLocked("admin"); locked {
		t.Error("account still locked after successful login")
	}
}

func TestGetRemainingAttempts_UnknownAccount(t *testing.T) {
	lp := newTestProtection()
	if got := lp.GetRemainingAttempts("nobody"); got != 3 {
		t.Errorf("remaining attempts = %d, want 3", got)
	}
}

func TestCheckIPRateLimit_Burst(t *testing.T) {
	lp := newTestProtection()

	for i := 0; i < 3; i++ {
		if !lp.CheckIPRateLimit("198.51.100.7") {
			t.Fatalf("request %d denied within burst", i+1)
		}
	}
	if lp.CheckIPRateLimit("198.51.100.7") {
		t.Error("request beyond burst allowed")
	}

	// Other IPs are tracked independently.
	if !lp.CheckIPRateLimit("198.51.100.8") {
		t.Error("fresh IP denied")
	}
}

func TestMiddleware_RateLimitsLoginPosts(t *testing.T) {
	lp := newTestProtection()
	h := lp.Middleware()(okHandler())

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/admin/login", nil)
		req.RemoteAddr = "203.0.113.9:4444"
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rr.Code, http.StatusOK)
		}
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/login", nil)
	req.RemoteAddr = "203.0.113.9:4444"
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusTooManyRequests)
	}

	// GET requests pass through regardless.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin/login", nil)
	req.RemoteAddr = "203.0.113.9:4444"
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("GET status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		realIP  string
		fwdFor  string
		remote  string
		want    string
	}{
		{"x-real-ip wins", "10.0.0.1", "10.0.0.2", "10.0.0.3:1234", "10.0.0.1"},
		{"x-forwarded-for next", "", "10.0.0.2", "10.0.0.3:1234", "10.0.0.2"},
		{"remote addr fallback", "", "", "10.0.0.3:1234", "10.0.0.3:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/admin/login", nil)
			req.RemoteAddr = tt.remote
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.fwdFor != "" {
				req.Header.Set("X-Forwarded-For", tt.fwdFor)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/blackstoneeg/website/internal/store"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_RedirectsAnonymous(t *testing.T) {
	sm := scs.New()
	h := sm.LoadAndSave(Auth(sm)(okHandler()))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/admin", nil))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if loc := rr.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("redirect location = %q, want /admin/login", loc)
	}
}

func TestAuth_AllowsSignedIn(t *testing.T) {
	sm := scs.New()

	// Establish a session carrying a user ID, then reuse its cookie.
	signIn := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionKeyUserID, int64(1))
	}))
	rr := httptest.NewRecorder()
	signIn.ServeHTTP(rr, httptest.NewRequest("POST", "/admin/login", nil))

	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued")
	}

	h := sm.LoadAndSave(Auth(sm)(okHandler()))
	req := httptest.NewRequest("GET", "/admin", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *store.User
		wantStatus int
	}{
		{"anonymous redirected", nil, http.StatusSeeOther},
		{"non-admin redirected", &store.User{ID: 2, Username: "staff", IsAdmin: false}, http.StatusSeeOther},
		{"admin allowed", &store.User{ID: 1, Username: "admin", IsAdmin: true}, http.StatusOK},
	}

	h := RequireAdmin()(okHandler())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.user != nil {
				ctx := context.WithValue(req.Context(), ContextKeyUser, *tt.user)
				req = req.WithContext(ctx)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusSeeOther {
				if loc := rr.Header().Get("Location"); loc != "/admin/login" {
					t.Errorf("redirect location = %q, want /admin/login", loc)
				}
			}
		})
	}
}

func TestGetUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := GetUser(req); got != nil {
		t.Errorf("GetUser without context user = %+v, want nil", got)
	}
	if got := GetUserID(req); got != 0 {
		t.Errorf("GetUserID without context user = %d, want 0", got)
	}

	ctx := context.WithValue(req.Context(), ContextKeyUser, store.User{ID: 7, Username: "admin"})
	req = req.WithContext(ctx)

	user := GetUser(req)
	if user == nil || user.ID != 7 {
		t.Fatalf("GetUser = %+v, want user with ID 7", user)
	}
	if got := GetUserID(req); got != 7 {
		t.Errorf("GetUserID = %d, want 7", got)
	}
}

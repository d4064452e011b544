package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireUser(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID int64
	}{
		{"valid user", "42", http.StatusOK, 42},
		{"missing header", "", http.StatusUnauthorized, 0},
		{"non-numeric header", "abc", http.StatusUnauthorized, 0},
		{"zero user", "0", http.StatusUnauthorized, 0},
		{"negative user", "-3", http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var called bool
			handler := RequireUser(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUserID, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/puzzles/today", nil)
			if tt.header != "" {
				req.Header.Set("X-User-ID", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK {
				if !called {
					t.Fatal("Expected handler to be called")
				}
				if gotUserID != tt.wantUserID {
					t.Errorf("Expected user ID %d, got %d", tt.wantUserID, gotUserID)
				}
			} else if called {
				t.Error("Expected handler not to be called")
			}
		})
	}
}

func TestUserFromContextOutsideRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := UserFromContext(req.Context()); ok {
		t.Error("Expected no user outside an authenticated request")
	}
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/config"
)

const testSecret = "test-secret"

func protected(t *testing.T, extra func(http.Handler) http.Handler) http.Handler {
	t.Helper()

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if extra != nil {
		handler = extra(handler)
	}
	return Middleware(config.AuthConfig{JWTSecret: testSecret})(handler)
}

func TestMiddlewareValidToken(t *testing.T) {
	token, err := NewToken(testSecret, "user-1", "clinician", time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	var captured *User
	handler := Middleware(config.AuthConfig{JWTSecret: testSecret})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured == nil {
		t.Fatal("expected user in request context")
	}
	if captured.ID != "user-1" || captured.Role != "clinician" {
		t.Errorf("unexpected user %+v", captured)
	}
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	expired, err := NewToken(testSecret, "user-1", "clinician", -time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	wrongKey, err := NewToken("other-secret", "user-1", "clinician", time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + wrongKey},
	}

	handler := protected(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := protected(t, RequireAdmin)

	adminToken, err := NewToken(testSecret, "admin-1", RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	userToken, err := NewToken(testSecret, "user-1", "clinician", time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"admin role", adminToken, http.StatusOK},
		{"non-admin role", userToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRequireAdminWithoutUser(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

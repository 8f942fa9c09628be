package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KRITHIKR007/SIH-ALPHA01/internal/screening"
	"github.com/KRITHIKR007/SIH-ALPHA01/internal/shared/types"
)

type fakeStore struct {
	sessions  []screening.Session
	lastLimit int
	cleared   bool
}

func (f *fakeStore) List(ctx context.Context, limit int) ([]screening.Session, error) {
	f.lastLimit = limit
	if limit > len(f.sessions) {
		limit = len(f.sessions)
	}
	return f.sessions[:limit], nil
}

func (f *fakeStore) DeleteAll(ctx context.Context) (int64, error) {
	f.cleared = true
	n := int64(len(f.sessions))
	f.sessions = nil
	return n, nil
}

func (f *fakeStore) Stats(ctx context.Context) (*screening.Stats, error) {
	return &screening.Stats{
		TotalSessions:          int64(len(f.sessions)),
		AverageConfidenceScore: 0.55,
		SessionsToday:          1,
	}, nil
}

func seededStore(n int) *fakeStore {
	store := &fakeStore{}
	for i := 0; i < n; i++ {
		store.sessions = append(store.sessions, screening.Session{
			ID:        types.NewID(),
			Kind:      screening.SessionKindScreening,
			CreatedAt: time.Now().UTC(),
		})
	}
	return store
}

func TestListSessionsDefaultLimit(t *testing.T) {
	store := seededStore(3)
	handler := NewHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.lastLimit != defaultListLimit {
		t.Errorf("expected default limit %d, got %d", defaultListLimit, store.lastLimit)
	}

	var resp struct {
		Sessions []screening.Session `json:"sessions"`
		Total    int                 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 3 || len(resp.Sessions) != 3 {
		t.Errorf("expected 3 sessions, got total=%d len=%d", resp.Total, len(resp.Sessions))
	}
}

func TestListSessionsCustomLimit(t *testing.T) {
	store := seededStore(5)
	handler := NewHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/sessions?limit=2", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if store.lastLimit != 2 {
		t.Errorf("expected limit 2, got %d", store.lastLimit)
	}
}

func TestListSessionsInvalidLimit(t *testing.T) {
	handler := NewHandler(seededStore(0))

	for _, limit := range []string{"abc", "-1", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/sessions?limit="+limit, nil)
		rec := httptest.NewRecorder()

		handler.Routes().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected 400, got %d", limit, rec.Code)
		}
	}
}

func TestClearSessionsRequiresConfirmation(t *testing.T) {
	store := seededStore(2)
	handler := NewHandler(store)

	req := httptest.NewRequest(http.MethodDelete, "/sessions", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without confirmation, got %d", rec.Code)
	}
	if store.cleared {
		t.Error("sessions must not be cleared without confirmation")
	}
}

func TestClearSessionsConfirmed(t *testing.T) {
	store := seededStore(4)
	handler := NewHandler(store)

	req := httptest.NewRequest(http.MethodDelete, "/sessions?confirm=true", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !store.cleared {
		t.Error("expected sessions to be cleared")
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["message"] != "Cleared 4 sessions" {
		t.Errorf("unexpected message %q", resp["message"])
	}
}

func TestGetStats(t *testing.T) {
	handler := NewHandler(seededStore(2))

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats screening.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.TotalSessions != 2 {
		t.Errorf("expected 2 total sessions, got %d", stats.TotalSessions)
	}
	if stats.AverageConfidenceScore != 0.55 {
		t.Errorf("expected average confidence 0.55, got %v", stats.AverageConfidenceScore)
	}
}

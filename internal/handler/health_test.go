package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeChecker implements HealthChecker for tests.
type fakeChecker struct {
	err error
}

func (f *fakeChecker) Ping(_ context.Context) error {
	return f.err
}

func TestHealthHandler_Healthz(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.Healthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Status != "ok" {
		t.Errorf("unexpected status: %s", response.Status)
	}
}

func TestHealthHandler_Readyz(t *testing.T) {
	tests := []struct {
		name       string
		db         HealthChecker
		cache      HealthChecker
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			"all healthy", &fakeChecker{}, &fakeChecker{},
			http.StatusOK, "ok",
			map[string]string{"postgres": "ok", "redis": "ok"},
		},
		{
			"no cache configured", &fakeChecker{}, nil,
			http.StatusOK, "ok",
			map[string]string{"postgres": "ok", "redis": "not configured"},
		},
		{
			"db down", &fakeChecker{err: errors.New("connection refused")}, nil,
			http.StatusServiceUnavailable, "unhealthy",
			map[string]string{"postgres": "error: connection refused", "redis": "not configured"},
		},
		{
			"cache down", &fakeChecker{}, &fakeChecker{err: errors.New("timeout")},
			http.StatusServiceUnavailable, "unhealthy",
			map[string]string{"postgres": "ok", "redis": "error: timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, tt.cache)

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			rec := httptest.NewRecorder()

			h.Readyz(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rec.Code)
			}

			var response HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if response.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, response.Status)
			}

			for name, want := range tt.wantChecks {
				if got := response.Checks[name]; got != want {
					t.Errorf("check %s: expected %q, got %q", name, want, got)
				}
			}
		})
	}
}

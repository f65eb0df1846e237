package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ============================================================================
// Chain Tests
// ============================================================================

func TestChain_AppliesInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"first", "second", "handler"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

// ============================================================================
// RequestID Tests
// ============================================================================

func TestRequestID_NoHeader_GeneratesUUID(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("expected UUID request ID, got %q", seen)
	}
	if rec.Header().Get("X-Request-ID") != seen {
		t.Errorf("response header %q does not match context %q", rec.Header().Get("X-Request-ID"), seen)
	}
}

func TestRequestID_WithHeader_PreservesExisting(t *testing.T) {
	t.Parallel()

	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected abc-123, got %q", got)
	}
}

func TestGetRequestID_Missing_ReturnsEmpty(t *testing.T) {
	t.Parallel()
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

// ============================================================================
// Recovery Tests
// ============================================================================

func TestRecovery_WithPanic_ReturnsProblemJSON(t *testing.T) {
	t.Parallel()

	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json, got %q", ct)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != float64(500) {
		t.Errorf("expected status 500 in body, got %v", body["status"])
	}
}

func TestRecovery_NoPanic_ProceedsNormally(t *testing.T) {
	t.Parallel()

	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", rec.Code)
	}
}

// ============================================================================
// CORS Tests
// ============================================================================

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"allowed origin", []string{"http://a.test"}, "http://a.test", http.MethodGet, "http://a.test", http.StatusOK},
		{"disallowed origin", []string{"http://a.test"}, "http://b.test", http.MethodGet, "", http.StatusOK},
		{"wildcard", []string{"*"}, "http://b.test", http.MethodGet, "http://b.test", http.StatusOK},
		{"preflight", []string{"*"}, "http://b.test", http.MethodOptions, "http://b.test", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := CORS(tt.allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected origin %q, got %q", tt.wantOrigin, got)
			}
		})
	}
}

// ============================================================================
// Logger Tests
// ============================================================================

func TestLogger_CapturesStatus(t *testing.T) {
	t.Parallel()

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/daos/1/guilds/1/join", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("expected 202, got %d", rec.Code)
	}
}

func TestClientKey_StripsPort(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	if got := clientKey(req); got != "10.0.0.7" {
		t.Errorf("expected 10.0.0.7, got %q", got)
	}

	req.RemoteAddr = "pipe"
	if got := clientKey(req); got != "pipe" {
		t.Errorf("expected raw address, got %q", got)
	}
}

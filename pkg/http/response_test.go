package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "lashstudio/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{"not found", apperrors.NotFoundWithID("Session", "x"), http.StatusNotFound, "Session not found"},
		{"validation", apperrors.Validation("Invalid event", nil), http.StatusUnprocessableEntity, "Invalid event"},
		{"conflict", apperrors.Conflict("busy"), http.StatusConflict, "busy"},
		{"internal hides cause", apperrors.Internal("redis exploded", errors.New("secret")), http.StatusInternalServerError, "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("unexpected write error: %v", err)
			}

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Error != tt.expectedError {
				t.Errorf("expected error %q, got %q", tt.expectedError, resp.Error)
			}
		})
	}
}

func TestWriteCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteCreated(rec, map[string]string{"id": "abc"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if strings.TrimSpace(rec.Body.String()) != `{"data":{"id":"abc"}}` {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestQueryHelpers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/calendar?cursor=2025-06-10&shift=-2&bad=x&when=tomorrow", nil)

	d, err := QueryDate(r, "cursor")
	if err != nil || d == nil || d.String() != "2025-06-10" {
		t.Errorf("unexpected cursor %v, err %v", d, err)
	}
	if d, err := QueryDate(r, "missing"); err != nil || d != nil {
		t.Errorf("expected nil date for missing key, got %v %v", d, err)
	}
	if _, err := QueryDate(r, "when"); err == nil {
		t.Errorf("expected error for invalid date")
	}

	n, err := QueryInt(r, "shift", 0)
	if err != nil || n != -2 {
		t.Errorf("expected -2, got %d %v", n, err)
	}
	if n, _ := QueryInt(r, "missing", 7); n != 7 {
		t.Errorf("expected fallback 7, got %d", n)
	}
	if _, err := QueryInt(r, "bad", 0); err == nil {
		t.Errorf("expected error for non-integer")
	}
}

func TestQueryFloat(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/gallery?offset=-180.5&velocity=NaN&bad=fast", nil)

	if v, err := QueryFloat(r, "offset", 0); err != nil || v != -180.5 {
		t.Errorf("expected -180.5, got %v %v", v, err)
	}
	if v, _ := QueryFloat(r, "missing", 2); v != 2 {
		t.Errorf("expected fallback 2, got %v", v)
	}
	for _, key := range []string{"velocity", "bad"} {
		if _, err := QueryFloat(r, key, 0); err == nil {
			t.Errorf("expected error for %s", key)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		ServiceID string `json:"service_id"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := DecodeJSON(r, &dst, true); err != nil {
		t.Errorf("empty body should be allowed: %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := DecodeJSON(r, &dst, false); err == nil {
		t.Errorf("expected error for required body")
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"service_id":"mega"}`))
	if err := DecodeJSON(r, &dst, false); err != nil || dst.ServiceID != "mega" {
		t.Errorf("unexpected decode result %+v %v", dst, err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"unknown":1}`))
	if err := DecodeJSON(r, &dst, false); err == nil {
		t.Errorf("expected error for unknown field")
	}
}

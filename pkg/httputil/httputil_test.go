package httputil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/keyplate/pkg/errors"
)

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return errors.New(errors.ErrCodeInvalidConfig, "bad")
	})
	if calls != 1 || !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("calls = %d, err = %v", calls, err)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: io.ErrUnexpectedEOF}
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestCheckResponse(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   bool
		retryable bool
		wantCode  errors.Code
	}{
		{"ok", 200, "", false, false, ""},
		{"coded 400", 400, `{"code":"INVALID_CONFIG","message":"bad stabs"}`, true, false, errors.ErrCodeInvalidConfig},
		{"plain 404", 404, "not found", true, false, ""},
		{"503", 503, "busy", true, true, ""},
		{"429", 429, "", true, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status, Body: io.NopCloser(strings.NewReader(tt.body))}
			err := CheckResponse(resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if IsRetryable(err) != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", IsRetryable(err), tt.retryable)
			}
			if tt.wantCode != "" && !errors.Is(err, tt.wantCode) {
				t.Errorf("err = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantBody   string
	}{
		{errors.New(errors.ErrCodeLoad, "layout has no rows"), 400, `"LOAD_ERROR"`},
		{errors.New(errors.ErrCodeUnsupported, "polyhedron"), 422, `"UNSUPPORTED"`},
		{io.ErrClosedPipe, 500, `"internal error"`},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WriteError(rec, tt.err)
		if rec.Code != tt.wantStatus || !strings.Contains(rec.Body.String(), tt.wantBody) {
			t.Errorf("WriteError(%v) = %d %s", tt.err, rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Layout string `json:"layout"`
	}
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"ok", `{"layout":"[[\"A\"]]"}`, false},
		{"unknown field", `{"layuot":"x"}`, true},
		{"empty", ``, true},
		{"too big", `{"layout":"` + strings.Repeat("x", 100) + `"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.input))
			var b body
			err := DecodeJSON(req, &b, 64)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

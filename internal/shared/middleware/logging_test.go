package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestResponseWriterStatus(t *testing.T) {
	tests := []struct {
		name  string
		write func(w http.ResponseWriter)
		want  int
	}{
		{
			name:  "Explicit Status",
			write: func(w http.ResponseWriter) { w.WriteHeader(http.StatusCreated) },
			want:  http.StatusCreated,
		},
		{
			name: "First WriteHeader Wins",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.WriteHeader(http.StatusOK)
			},
			want: http.StatusUnprocessableEntity,
		},
		{
			name:  "No Write",
			write: func(w http.ResponseWriter) {},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := wrapResponseWriter(httptest.NewRecorder())
			tt.write(wrapped)
			if wrapped.Status() != tt.want {
				t.Errorf("Status() = %d, want %d", wrapped.Status(), tt.want)
			}
		})
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestLogging(t *testing.T) {
	buf := captureLog(t)
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/cards/", nil))

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	if line := buf.String(); !strings.Contains(line, "POST /api/cards/ 201") {
		t.Errorf("log line = %q, want method, path and status", line)
	}
}

func TestLogging_ImplicitOK(t *testing.T) {
	buf := captureLog(t)
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cards":[]}`))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cards/summary", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if line := buf.String(); !strings.Contains(line, "GET /api/cards/summary 200") {
		t.Errorf("log line = %q, want implicit 200", line)
	}
}

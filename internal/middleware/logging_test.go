package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		err       error
		wantLevel zapcore.Level
	}{
		{"ok", http.StatusOK, nil, zapcore.InfoLevel},
		{"client error", http.StatusUnauthorized, errors.New("bad key"), zapcore.WarnLevel},
		{"server error", http.StatusBadGateway, errors.New("store down"), zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.err != nil {
					RecordError(r.Context(), tt.err)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("hello"))
			})
			h := chiMiddleware.RequestID(WithRequestLogging(zap.New(core))(next))

			req := httptest.NewRequest(http.MethodPut, "/syncs/progress", nil)
			h.ServeHTTP(httptest.NewRecorder(), req)

			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("got %d log entries; want 1", len(entries))
			}
			e := entries[0]
			if e.Level != tt.wantLevel {
				t.Errorf("level = %v; want %v", e.Level, tt.wantLevel)
			}
			fields := e.ContextMap()
			if fields["method"] != http.MethodPut || fields["path"] != "/syncs/progress" {
				t.Errorf("unexpected fields %v", fields)
			}
			if fields["status"] != int64(tt.status) {
				t.Errorf("status field = %v; want %d", fields["status"], tt.status)
			}
			if fields["bytes"] != int64(5) {
				t.Errorf("bytes field = %v; want 5", fields["bytes"])
			}
			if fields["request_id"] == nil {
				t.Error("expected request_id field")
			}
			if tt.err != nil && fields["error"] != tt.err.Error() {
				t.Errorf("error field = %v; want %q", fields["error"], tt.err.Error())
			}
		})
	}
}

func TestRecordError_OutsideLogging(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// Must not panic without a request state in the context.
	RecordError(req.Context(), errors.New("ignored"))
}

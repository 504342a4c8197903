package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession bool

func (s fakeSession) IsAuthenticated() bool { return bool(s) }

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		loggedIn bool
		want     int
	}{
		{name: "logged in passes through", loggedIn: true, want: http.StatusNoContent},
		{name: "anonymous is rejected", loggedIn: false, want: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := NewAuthMiddleware(fakeSession(tc.loggedIn)).Authenticate(http.HandlerFunc(okHandler))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	log, buf := logger.GetTestLogger(t)

	var traceID string
	h := NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusOK)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Len(t, traceID, 32)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	var found bool
	for _, e := range entries {
		if e["msg"] == "inside handler" {
			found = true
			assert.Equal(t, traceID, e["trace_id"])
		}
	}
	assert.True(t, found, "handler log line should carry the trace ID")
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/scry-notes/internal/app"
	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/notify"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
	"github.com/phrazzld/scry-notes/internal/service"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
	app     *app.App
	notes   *notify.Recorder
}

// newTestAPI serves a freshly seeded in-memory application.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := &config.Config{
		Server:  config.ServerConfig{Port: 8080, LogLevel: "debug", LogFormat: "json"},
		Storage: config.StorageConfig{Driver: "memory"},
		Auth:    config.AuthConfig{BcryptCost: bcrypt.MinCost, SeedDemoData: true},
	}
	log, _ := logger.GetTestLogger(t)
	rec := notify.NewRecorder()

	a, err := app.New(context.Background(), cfg, log, app.WithNotifier(rec))
	require.NoError(t, err)
	require.NoError(t, a.Load(context.Background()))
	t.Cleanup(func() { _ = a.Close() })

	return &testAPI{t: t, handler: NewRouter(a, log), app: a, notes: rec}
}

func (api *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	api.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(api.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	api.handler.ServeHTTP(w, req)
	return w
}

// login signs in as the seeded demo account.
func (api *testAPI) login() {
	api.t.Helper()
	w := api.do(http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    service.DemoEmail,
		Password: service.DemoPassword,
	})
	require.Equal(api.t, http.StatusOK, w.Code, w.Body.String())
	api.notes.Reset()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error
}

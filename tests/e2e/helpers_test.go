//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Anusha-2024/Mini-Journal/internal/adapter/postgres/kvstore"
	"github.com/Anusha-2024/Mini-Journal/internal/adapter/postgres/testhelper"
	"github.com/Anusha-2024/Mini-Journal/internal/app"
	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/service/browse"
	"github.com/Anusha-2024/Mini-Journal/internal/service/journal"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack on the postgres backend
// (shared container via testhelper). Each test gets its own storage key.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverPostgres},
		Journal: config.JournalConfig{
			StorageKey:         testhelper.UniqueKey(t),
			DefaultTitle:       "Untitled Entry",
			DefaultMood:        "😊",
			MaxConflictRetries: 3,
			MaxImportBytes:     1 << 20,
			MaxTitleLength:     200,
			MaxMoodLength:      32,
			MaxStickers:        100,
		},
		CORS: config.CORSConfig{AllowedOrigins: "*"},
	}

	// The pool is shared across tests; the store is not closed here.
	store := kvstore.New(pool)
	j := &app.Journal{
		Store:    store,
		Service:  journal.NewService(logger, store, cfg.Journal),
		Browser:  browse.New(language.English),
		Location: time.UTC,
	}

	srv := httptest.NewServer(app.NewHandler(j, cfg, logger))
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client()}
}

// restRequest sends body (marshalled unless it is a string) and returns the
// response; the caller closes the body.
func (ts *testServer) restRequest(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// decodeBody reads and decodes the JSON response body into v.
func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v), "response body should be valid JSON")
}

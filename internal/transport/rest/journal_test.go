package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"

	"github.com/Anusha-2024/Mini-Journal/internal/adapter/memstore"
	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/domain"
	"github.com/Anusha-2024/Mini-Journal/internal/service/browse"
	"github.com/Anusha-2024/Mini-Journal/internal/service/journal"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type blobStore interface {
	Read(ctx context.Context, key string) (domain.Blob, error)
	Write(ctx context.Context, key string, value []byte, etag string) (string, error)
	Ping(ctx context.Context) error
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// unavailableStore reads as empty and refuses every write.
type unavailableStore struct{}

func (unavailableStore) Read(context.Context, string) (domain.Blob, error) {
	return domain.Blob{}, domain.ErrNotFound
}

func (unavailableStore) Write(context.Context, string, []byte, string) (string, error) {
	return "", errors.New("disk full")
}

func (unavailableStore) Ping(context.Context) error { return errors.New("disk full") }

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func testJournalConfig() config.JournalConfig {
	return config.JournalConfig{
		StorageKey:         "journal",
		DefaultTitle:       domain.DefaultTitle,
		DefaultMood:        domain.DefaultMood,
		MaxConflictRetries: 3,
		MaxImportBytes:     1 << 20,
		MaxTitleLength:     200,
		MaxMoodLength:      32,
		MaxStickers:        100,
	}
}

func newTestAPI(t *testing.T, store blobStore) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testJournalConfig()

	svc := journal.NewService(logger, store, cfg, journal.WithClock(fixedClock{testNow}))
	jh := NewJournalHandler(svc, browse.New(language.English), JournalHandlerConfig{
		Location:     time.UTC,
		MaxBodyBytes: cfg.MaxImportBytes,
	}, logger)
	jh.now = func() time.Time { return testNow }

	return NewRouter(RouterDeps{
		Journal: jh,
		Health:  NewHealthHandler(store, "memory", "test-version"),
		CORS:    config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS"},
		Logger:  logger,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

// ---------------------------------------------------------------------------
// Entries
// ---------------------------------------------------------------------------

func TestJournalAPI_DayOne(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	rec := do(t, api, http.MethodGet, "/entries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[ListEntriesResponse](t, rec)
	assert.Empty(t, list.Entries)
	assert.Equal(t, 0, list.Total)

	rec = do(t, api, http.MethodPost, "/entries", `{"title":"Beach","text":"Sunny","mood":"😊","stickers":["🌸"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[domain.JournalEntry](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Beach", created.Title)
	assert.Equal(t, []string{"🌸"}, created.Stickers)
	assert.True(t, created.CreatedAt.Equal(testNow))

	rec = do(t, api, http.MethodPut, "/entries/"+created.ID, `{"title":"Beach day","text":"Sunny","mood":"😊"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[domain.JournalEntry](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Beach day", updated.Title)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	rec = do(t, api, http.MethodGet, "/entries/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Beach day", decode[domain.JournalEntry](t, rec).Title)

	rec = do(t, api, http.MethodDelete, "/entries/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"deleted": true}, decode[map[string]bool](t, rec))

	rec = do(t, api, http.MethodGet, "/entries/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, decode[ErrorResponse](t, rec).Code)

	rec = do(t, api, http.MethodDelete, "/entries/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"deleted": false}, decode[map[string]bool](t, rec))
}

func TestJournalAPI_CreateDefaults(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	rec := do(t, api, http.MethodPost, "/entries", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	e := decode[domain.JournalEntry](t, rec)
	assert.Equal(t, domain.DefaultTitle, e.Title)
	assert.Equal(t, domain.DefaultMood, e.Mood)
	assert.NotNil(t, e.Stickers)
}

func TestJournalAPI_CreateInvalidBody(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	rec := do(t, api, http.MethodPost, "/entries", `{"title":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeValidation, decode[ErrorResponse](t, rec).Code)
}

func TestJournalAPI_CreateValidationFields(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	body := `{"title":"` + strings.Repeat("a", 201) + `"}`
	rec := do(t, api, http.MethodPost, "/entries", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, CodeValidation, resp.Code)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "title", resp.Fields[0].Field)
}

func TestJournalAPI_ListFilterAndSort(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	payload := `[
		{"id":"a","title":"Beach","text":"sand","mood":"😊","stickers":[],"createdAt":"2024-03-01T10:00:00Z","updatedAt":"2024-03-01T10:00:00Z"},
		{"id":"b","title":"Rain","text":"grey day","mood":"😢","stickers":[],"createdAt":"2024-03-02T10:00:00Z","updatedAt":"2024-03-02T10:00:00Z"},
		{"id":"c","title":"Apple pie","text":"beach picnic","mood":"😊","stickers":[],"createdAt":"2024-03-03T10:00:00Z","updatedAt":"2024-03-03T10:00:00Z"}
	]`
	require.Equal(t, http.StatusOK, do(t, api, http.MethodPost, "/import", payload).Code)

	ids := func(list ListEntriesResponse) []string {
		out := make([]string, len(list.Entries))
		for i, e := range list.Entries {
			out[i] = e.ID
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"default newest", "", []string{"c", "b", "a"}},
		{"oldest", "?sort=oldest", []string{"a", "b", "c"}},
		{"title", "?sort=title", []string{"c", "a", "b"}},
		{"search case-insensitive", "?search=BEACH", []string{"c", "a"}},
		{"mood filter", "?mood=%F0%9F%98%A2", []string{"b"}},
		{"mood all", "?mood=all&sort=oldest", []string{"a", "b", "c"}},
		{"no matches", "?search=snow", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, api, http.MethodGet, "/entries"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)

			list := decode[ListEntriesResponse](t, rec)
			assert.Equal(t, tt.want, ids(list))
			assert.Equal(t, 3, list.Total)
		})
	}
}

func TestJournalAPI_ListInvalidSort(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	rec := do(t, api, http.MethodGet, "/entries?sort=random", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, CodeValidation, resp.Code)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "sort", resp.Fields[0].Field)
}

func TestJournalAPI_SaveStorageUnavailable(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, unavailableStore{})

	rec := do(t, api, http.MethodPost, "/entries", `{"title":"x"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, CodePersistence, decode[ErrorResponse](t, rec).Code)
}

// ---------------------------------------------------------------------------
// Import / export
// ---------------------------------------------------------------------------

func TestJournalAPI_ExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	src := newTestAPI(t, memstore.New())

	do(t, src, http.MethodPost, "/entries", `{"title":"one"}`)
	do(t, src, http.MethodPost, "/entries", `{"title":"two","stickers":["✨","🌙"]}`)

	rec := do(t, src, http.MethodGet, "/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="mini-memory-journal-backup-2024-03-15.json"`, rec.Header().Get("Content-Disposition"))
	exported := rec.Body.Bytes()
	assert.Contains(t, string(exported), "\n  {")

	dst := newTestAPI(t, memstore.New())
	rec = do(t, dst, http.MethodPost, "/import", string(exported))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"imported": 2}, decode[map[string]int](t, rec))

	rec = do(t, dst, http.MethodGet, "/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.Equal(exported, rec.Body.Bytes()), "re-export should be byte-identical")
}

func TestJournalAPI_ImportRejectsBadPayload(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())
	do(t, api, http.MethodPost, "/entries", `{"title":"keep me"}`)

	for _, body := range []string{"not json", `{"id":"x"}`, `[1,2]`} {
		rec := do(t, api, http.MethodPost, "/import", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, CodeFormat, decode[ErrorResponse](t, rec).Code, body)
	}

	list := decode[ListEntriesResponse](t, do(t, api, http.MethodGet, "/entries", ""))
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "keep me", list.Entries[0].Title)
}

func TestJournalAPI_ImportTooLarge(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	body := `[{"id":"x","text":"` + strings.Repeat("a", 1<<20) + `"}]`
	rec := do(t, api, http.MethodPost, "/import", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeFormat, decode[ErrorResponse](t, rec).Code)
}

func TestJournalAPI_ExportSpreadsheet(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	do(t, api, http.MethodPost, "/entries", `{"title":"Beach","text":"sand","stickers":["🌸","✨"]}`)

	rec := do(t, api, http.MethodGet, "/export.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, spreadsheetContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="mini-memory-journal-backup-2024-03-15.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(spreadsheetSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, spreadsheetHeaders, rows[0])
	assert.Equal(t, "2024-03-15 10:00", rows[1][0])
	assert.Equal(t, "Beach", rows[1][2])
	assert.Equal(t, "🌸 ✨", rows[1][4])
	assert.Equal(t, "sand", rows[1][5])
}

// ---------------------------------------------------------------------------
// Stats / palette / routing
// ---------------------------------------------------------------------------

func TestJournalAPI_Stats(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	do(t, api, http.MethodPost, "/entries", `{"text":"abcd","mood":"😢"}`)
	do(t, api, http.MethodPost, "/entries", `{"text":"ab","mood":"😢"}`)
	do(t, api, http.MethodPost, "/entries", `{"mood":"😊"}`)

	rec := do(t, api, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decode[domain.Stats](t, rec)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, "😢", stats.MostUsedMood)
	assert.Equal(t, 3, stats.EntriesThisMonth)
	assert.Equal(t, 2, stats.AverageTextLength)
}

func TestJournalAPI_Palette(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	rec := do(t, api, http.MethodGet, "/palette", "")
	require.Equal(t, http.StatusOK, rec.Code)

	p := decode[PaletteResponse](t, rec)
	assert.Equal(t, domain.Moods, p.Moods)
	assert.Equal(t, domain.Stickers, p.Stickers)
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	rec := do(t, api, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, decode[ErrorResponse](t, rec).Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_Preflight(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, memstore.New())

	req := httptest.NewRequest(http.MethodOptions, "/entries/abc", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_HealthReportsStorageDown(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, unavailableStore{})

	assert.Equal(t, http.StatusOK, do(t, api, http.MethodGet, "/live", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, api, http.MethodGet, "/ready", "").Code)
}

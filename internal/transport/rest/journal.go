package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
	"github.com/Anusha-2024/Mini-Journal/internal/service/browse"
	"github.com/Anusha-2024/Mini-Journal/internal/service/journal"
)

// journalService defines the minimal interface needed by JournalHandler.
type journalService interface {
	ListEntries(ctx context.Context) []domain.JournalEntry
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, bool)
	SaveEntry(ctx context.Context, in journal.SaveInput) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, id string) (bool, error)
	ExportCollection(ctx context.Context) ([]byte, error)
	ImportCollection(ctx context.Context, blob []byte) ([]domain.JournalEntry, error)
}

// entryBrowser applies display criteria to a collection.
type entryBrowser interface {
	FilterAndSort(entries []domain.JournalEntry, q domain.EntryQuery) []domain.JournalEntry
}

// JournalHandlerConfig carries the presentation settings of JournalHandler.
type JournalHandlerConfig struct {
	// Location is used for the export filename date and the "this month" stat.
	Location *time.Location
	// MaxBodyBytes caps request bodies of save and import.
	MaxBodyBytes int64
}

// JournalHandler serves the journal REST endpoints.
type JournalHandler struct {
	svc     journalService
	browser entryBrowser
	loc     *time.Location
	maxBody int64
	now     func() time.Time
	log     *slog.Logger
}

// NewJournalHandler creates a JournalHandler.
func NewJournalHandler(svc journalService, browser entryBrowser, cfg JournalHandlerConfig, logger *slog.Logger) *JournalHandler {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &JournalHandler{
		svc:     svc,
		browser: browser,
		loc:     loc,
		maxBody: cfg.MaxBodyBytes,
		now:     time.Now,
		log:     logger.With("handler", "journal"),
	}
}

type saveEntryRequest struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Text          string     `json:"text"`
	ImageURL      string     `json:"imageURL"`
	DoodleDataURL string     `json:"doodleDataURL"`
	Mood          string     `json:"mood"`
	Stickers      []string   `json:"stickers"`
	MusicURL      string     `json:"musicURL"`
	CreatedAt     *time.Time `json:"createdAt"`
}

func (r saveEntryRequest) input() journal.SaveInput {
	in := journal.SaveInput{
		ID:            r.ID,
		Title:         r.Title,
		Text:          r.Text,
		ImageURL:      r.ImageURL,
		DoodleDataURL: r.DoodleDataURL,
		Mood:          r.Mood,
		Stickers:      r.Stickers,
		MusicURL:      r.MusicURL,
	}
	if r.CreatedAt != nil {
		in.CreatedAt = *r.CreatedAt
	}
	return in
}

// ListEntriesResponse is the body of GET /entries. Total counts the whole
// collection; Entries holds only the matches.
type ListEntriesResponse struct {
	Entries []domain.JournalEntry `json:"entries"`
	Total   int                   `json:"total"`
}

// PaletteResponse is the body of GET /palette.
type PaletteResponse struct {
	Moods    []string `json:"moods"`
	Stickers []string `json:"stickers"`
}

// ListEntries handles GET /entries?search=&mood=&sort=.
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q, err := parseEntryQuery(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	all := h.svc.ListEntries(r.Context())
	writeJSON(w, http.StatusOK, ListEntriesResponse{
		Entries: h.browser.FilterAndSort(all, q),
		Total:   len(all),
	})
}

// GetEntry handles GET /entries/{id}.
func (h *JournalHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.svc.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		h.handleError(w, r, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// CreateEntry handles POST /entries. A body id upserts that entry.
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSave(w, r)
	if !ok {
		return
	}
	h.save(w, r, req.input())
}

// UpdateEntry handles PUT /entries/{id}. The path id wins over a body id.
func (h *JournalHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSave(w, r)
	if !ok {
		return
	}
	in := req.input()
	in.ID = chi.URLParam(r, "id")
	h.save(w, r, in)
}

// DeleteEntry handles DELETE /entries/{id}.
func (h *JournalHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.DeleteEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// Export handles GET /export: the collection as a JSON attachment.
func (h *JournalHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ExportCollection(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment(journal.ExportFilename(h.now().In(h.loc))))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ExportSpreadsheet handles GET /export.xlsx.
func (h *JournalHandler) ExportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	book, err := newWorkbook(h.svc.ListEntries(r.Context()), h.loc)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	defer book.Close() //nolint:errcheck

	name := spreadsheetFilename(h.now().In(h.loc))
	w.Header().Set("Content-Type", spreadsheetContentType)
	w.Header().Set("Content-Disposition", attachment(name))
	if err := book.Write(w); err != nil {
		h.log.ErrorContext(r.Context(), "write spreadsheet", slog.String("error", err.Error()))
	}
}

// Import handles POST /import. The body is the raw backup file.
func (h *JournalHandler) Import(w http.ResponseWriter, r *http.Request) {
	blob, err := io.ReadAll(io.LimitReader(r.Body, h.maxBody+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeFormat, "could not read request body")
		return
	}

	entries, err := h.svc.ImportCollection(r.Context(), blob)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(entries)})
}

// Stats handles GET /stats.
func (h *JournalHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := browse.ComputeStats(h.svc.ListEntries(r.Context()), h.now(), h.loc)
	writeJSON(w, http.StatusOK, stats)
}

// Palette handles GET /palette.
func (h *JournalHandler) Palette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PaletteResponse{Moods: domain.Moods, Stickers: domain.Stickers})
}

func (h *JournalHandler) decodeSave(w http.ResponseWriter, r *http.Request) (saveEntryRequest, bool) {
	var req saveEntryRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid request body")
		return req, false
	}
	return req, true
}

func (h *JournalHandler) save(w http.ResponseWriter, r *http.Request, in journal.SaveInput) {
	entry, err := h.svc.SaveEntry(r.Context(), in)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ve.Error(), Code: CodeValidation, Fields: ve.Errors})
	case errors.Is(err, domain.ErrFormat):
		writeError(w, http.StatusBadRequest, CodeFormat, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, "entry not found")
	case errors.Is(err, domain.ErrPersistence):
		h.log.WarnContext(r.Context(), "storage unavailable", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, CodePersistence, "storage unavailable, try again")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}

func parseEntryQuery(r *http.Request) (domain.EntryQuery, error) {
	values := r.URL.Query()

	sortBy, err := browse.ParseSortKey(values.Get("sort"))
	if err != nil {
		return domain.EntryQuery{}, err
	}

	q := domain.EntryQuery{
		Search: values.Get("search"),
		Mood:   values.Get("mood"),
		SortBy: sortBy,
	}
	if err := q.Validate(); err != nil {
		return domain.EntryQuery{}, err
	}
	return q, nil
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}

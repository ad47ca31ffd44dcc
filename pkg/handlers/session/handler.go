package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/faoa-tools/annual-report/pkg/export"
	"github.com/faoa-tools/annual-report/pkg/models/api"
	"github.com/faoa-tools/annual-report/pkg/models/domain"
	"github.com/faoa-tools/annual-report/pkg/services/ingest"
	"github.com/faoa-tools/annual-report/pkg/services/session"
)

const maxUploadBytes = 32 << 20

type Handler struct {
	store *session.Store
}

func NewHandler(store *session.Store) *Handler {
	return &Handler{store: store}
}

// CreateSession ingests 1-12 monthly CSVs from a multipart form (field
// "files") and answers with the new session, its year, month coverage
// and base summary.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, domain.NewValidationError("invalid multipart upload: %v", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, r, domain.NewValidationError("at least one monthly file is required"))
		return
	}
	if len(files) > ingest.MaxMonthlyFiles {
		writeError(w, r, domain.NewValidationError(
			"at most %d monthly files may be uploaded, got %d", ingest.MaxMonthlyFiles, len(files)))
		return
	}

	datasets := make([]ingest.RawDataset, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(w, r, fmt.Errorf("failed to open upload %q: %w", fh.Filename, err))
			return
		}
		ds, err := ingest.DecodeCSV(fh.Filename, f)
		_ = f.Close()
		if err != nil {
			writeError(w, r, domain.NewValidationError("%v", err))
			return
		}
		datasets = append(datasets, ds)
	}

	sess, err := h.store.Create(datasets)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, sessionResponse(sess))
}

// GetSummary returns the summary with the treasurer's edits applied.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, summaryRows(sess.EditedSummary()))
}

// UpdateSummary applies adjusted-total edits. Category code, label and
// raw total are read-only from the caller's perspective.
func (h *Handler) UpdateSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req api.SummaryEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidationError("invalid summary edit payload: %v", err))
		return
	}

	for _, edit := range req.Rows {
		if err := sess.SetAdjusted(edit.CategoryCode, edit.CategoryLabel, edit.AdjustedTotal); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, r, http.StatusOK, summaryRows(sess.EditedSummary()))
}

// SetReclassification stores the gala ticket transfer amount.
func (h *Handler) SetReclassification(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req api.ReclassificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.NewValidationError("invalid reclassification payload: %v", err))
		return
	}
	if err := sess.SetReclassification(req.Amount); err != nil {
		writeError(w, r, err)
		return
	}

	effective, err := sess.EffectiveSummary()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summaryRows(effective))
}

// GenerateReport renders the annual report for preview.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	text, err := sess.Render()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.ReportResponse{Report: text})
}

// DownloadReport serves the annual report as a text attachment.
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	text, err := sess.Render()
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.ReportFilename(sess.Year)))
	_, _ = w.Write([]byte(text))
}

// DownloadSummary serves the adjusted summary as a CSV attachment.
func (h *Handler) DownloadSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	effective, err := sess.EffectiveSummary()
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.SummaryFilename(sess.Year)))
	if err := export.WriteSummaryCSV(w, effective); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write summary csv")
	}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "session")
	sess, err := h.store.Get(id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func sessionResponse(sess *session.Session) api.Session {
	return api.Session{
		ID:   sess.ID,
		Year: sess.Year,
		Coverage: api.Coverage{
			Present:  sess.Coverage.Present,
			Missing:  sess.Coverage.Missing,
			Complete: sess.Coverage.Complete(),
		},
		Summary: summaryRows(sess.EditedSummary()),
	}
}

func summaryRows(s domain.Summary) []api.SummaryRow {
	rows := make([]api.SummaryRow, 0, len(s.Rows))
	for _, row := range s.Rows {
		rows = append(rows, api.SummaryRow{
			CategoryCode:  row.CategoryCode,
			CategoryLabel: row.CategoryLabel,
			RawTotal:      row.RawTotal,
			AdjustedTotal: row.AdjustedTotal,
		})
	}
	return rows
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var schemaErr *domain.SchemaError
	var validationErr *domain.ValidationError
	var consistencyErr *domain.ConsistencyError
	switch {
	case errors.Is(err, session.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &schemaErr),
		errors.As(err, &validationErr),
		errors.As(err, &consistencyErr):
		status = http.StatusUnprocessableEntity
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
}

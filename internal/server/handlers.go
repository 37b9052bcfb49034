package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sarefo/calendar/pkg/buildinfo"
	"github.com/sarefo/calendar/pkg/calendar"
	apperrors "github.com/sarefo/calendar/pkg/errors"
	"github.com/sarefo/calendar/pkg/manifest"
	"github.com/sarefo/calendar/pkg/pipeline"
)

// monthInfo is one row of the coverage listing.
type monthInfo struct {
	MonthKey string `json:"month_key"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Photos   int    `json:"photos"`
	Days     int    `json:"days"`
	Complete bool   `json:"complete"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleMonths lists manifest coverage: every month present in the
// manifest with its photo count and whether every day is covered.
func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	m, err := manifest.Load(s.cfg.Paths.Manifest)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	infos := make([]monthInfo, 0, len(m.Months()))
	for _, key := range m.Months() {
		year, month, err := calendar.ParseMonthKey(key)
		if err != nil {
			continue
		}
		days := calendar.DaysInMonth(year, month)
		count := m.Count(key)
		infos = append(infos, monthInfo{
			MonthKey: key,
			Year:     year,
			Month:    int(month),
			Photos:   count,
			Days:     days,
			Complete: count >= days,
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

// handleMonth composes a month page on demand and returns its JSON
// document. ?lang= overrides the configured language, ?refresh=1
// bypasses the cache.
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.monthOptions(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeBuildError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[pipeline.FormatJSON])
}

// handleMonthMap returns the month's world-map SVG.
func (s *Server) handleMonthMap(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.monthOptions(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{pipeline.FormatMap}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeBuildError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[pipeline.FormatMap])
}

// monthOptions parses the {key} path segment and query parameters into
// pipeline options, writing the error response itself on failure.
func (s *Server) monthOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	key := chi.URLParam(r, "key")
	if err := apperrors.ValidateMonthKey(key); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return pipeline.Options{}, false
	}
	year, month, err := calendar.ParseMonthKey(key)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return pipeline.Options{}, false
	}

	lang := r.URL.Query().Get("lang")
	if lang != "" {
		if err := pipeline.ValidateLanguage(lang); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return pipeline.Options{}, false
		}
	}
	refresh := r.URL.Query().Get("refresh") != ""

	return s.buildOptions(year, int(month), lang, refresh), true
}

// writeBuildError maps pipeline failures onto HTTP statuses: incomplete
// manifest months are a client-visible data problem, input validation
// failures are the caller's, everything else is a server error.
func writeBuildError(w http.ResponseWriter, err error) {
	var missing *manifest.MissingPhotosError
	if errors.As(err, &missing) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":        missing.Error(),
			"month_key":    missing.MonthKey,
			"missing_days": missing.Days,
		})
		return
	}

	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidMonth, apperrors.ErrCodeInvalidYear,
		apperrors.ErrCodeInvalidLanguage, apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case apperrors.ErrCodeMissingLocation, apperrors.ErrCodeInvalidCoordinate:
		status = http.StatusUnprocessableEntity
	}
	writeError(w, status, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	body := map[string]string{"error": err.Error()}
	if code := apperrors.GetCode(err); code != "" {
		body["code"] = string(code)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

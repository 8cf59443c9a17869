package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/submitd/internal/submission"
)

// defaultListLimit caps the listing when no limit query parameter is given.
const defaultListLimit = 20

// maxBodySize bounds accepted request bodies at 1 MiB.
const maxBodySize = 1 << 20

// SubmissionsHandler exposes the pipeline over HTTP.
type SubmissionsHandler struct {
	pipeline *submission.Pipeline
	logger   *slog.Logger
}

// NewSubmissionsHandler creates the submissions HTTP handler.
func NewSubmissionsHandler(p *submission.Pipeline, logger *slog.Logger) *SubmissionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionsHandler{pipeline: p, logger: logger}
}

// Routes mounts the submission endpoints.
func (h *SubmissionsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/new", h.submit)
	r.Get("/list", h.list)
	return r
}

// submit accepts an arbitrary non-empty JSON object and returns the assigned
// document id. The response reflects only persistence; delivery runs in the
// background.
func (h *SubmissionsHandler) submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, submission.ErrEmptyPayload.Error())
		return
	}

	result, err := h.pipeline.Accept(r.Context(), body)
	switch {
	case errors.Is(err, submission.ErrEmptyPayload), errors.Is(err, submission.ErrInvalidPayload):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("accept failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

type listResponse struct {
	Count   int              `json:"count"`
	Results []map[string]any `json:"results"`
}

// list returns the last N saved submissions, most recently received first.
func (h *SubmissionsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	docs, err := h.pipeline.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("list failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Count: len(docs), Results: docs})
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/batchenc/internal/adapter/http/templates"
	"github.com/bnema/batchenc/internal/domain"
	"github.com/bnema/batchenc/internal/infrastructure/logger"
	"github.com/bnema/batchenc/internal/service"
)

type BatchService interface {
	Start(req service.StartRequest) error
	Cancel() error
	Reset() error
	Snapshot() domain.BatchSnapshot
	History(limit int) ([]*domain.BatchRecord, error)
	Batch(id string) (*domain.BatchRecord, error)
}

type Handlers struct {
	batchSvc BatchService
	defaults service.StartRequest
}

// NewHandlers builds the handlers. defaults fills in hardware, format and
// concurrency when a request leaves them out.
func NewHandlers(batchSvc BatchService, defaults service.StartRequest) *Handlers {
	return &Handlers{
		batchSvc: batchSvc,
		defaults: defaults,
	}
}

func (h *Handlers) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = templates.Dashboard(h.batchSvc.Snapshot(), r.URL.Query().Get("error")).Render(r.Context(), w)
	}
}

func (h *Handlers) HistoryPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.batchSvc.History(100)
		if err != nil {
			logger.Error.Printf("history list error: %v", err)
			records = nil
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = templates.History(records).Render(r.Context(), w)
	}
}

// StartBatch accepts either a JSON body or the dashboard form.
func (h *Handlers) StartBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")

		req, err := h.parseStartRequest(w, r, isJSON)
		if err != nil {
			h.startFailed(w, r, isJSON, http.StatusBadRequest, err.Error())
			return
		}

		if err := h.batchSvc.Start(req); err != nil {
			status, msg := startErrorStatus(err)
			if status == http.StatusInternalServerError {
				logger.Error.Printf("start batch: %v", err)
			}
			h.startFailed(w, r, isJSON, status, msg)
			return
		}

		if !isJSON {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusAccepted, h.batchSvc.Snapshot())
	}
}

func (h *Handlers) parseStartRequest(w http.ResponseWriter, r *http.Request, isJSON bool) (service.StartRequest, error) {
	var req service.StartRequest

	if isJSON {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, errors.New("invalid JSON body")
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, errors.New("invalid form")
		}
		req.InputDir = strings.TrimSpace(r.FormValue("input_dir"))
		req.Filter = strings.TrimSpace(r.FormValue("filter"))
		req.Recursive = r.FormValue("recursive") == "true"
		req.OutputDir = strings.TrimSpace(r.FormValue("output_dir"))
		req.SameDir = r.FormValue("same_dir") == "true"
		req.Hardware = domain.Hardware(r.FormValue("hardware"))
		if c := r.FormValue("concurrency"); c != "" {
			n, err := strconv.Atoi(c)
			if err != nil {
				return req, errors.New("concurrency must be a number")
			}
			req.Concurrency = n
		}
	}

	if req.Hardware != "" {
		hw, err := domain.ParseHardware(string(req.Hardware))
		if err != nil {
			return req, err
		}
		req.Hardware = hw
	} else {
		req.Hardware = h.defaults.Hardware
	}

	if req.Format != "" {
		format, err := domain.ParseFormat(string(req.Format))
		if err != nil {
			return req, err
		}
		req.Format = format
	} else {
		req.Format = h.defaults.Format
	}

	if req.Concurrency < 0 || req.Concurrency > domain.MaxConcurrency {
		return req, fmt.Errorf("concurrency must be between 1 and %d", domain.MaxConcurrency)
	}
	if req.Concurrency == 0 {
		req.Concurrency = h.defaults.Concurrency
	}
	return req, nil
}

func startErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrBatchRunning):
		return http.StatusConflict, "a batch is already running"
	case errors.Is(err, domain.ErrInputDirNotFound):
		return http.StatusBadRequest, "input directory not found"
	case errors.Is(err, domain.ErrNoFiles):
		return http.StatusBadRequest, "no files matched the filter"
	default:
		return http.StatusInternalServerError, "failed to start batch"
	}
}

func (h *Handlers) startFailed(w http.ResponseWriter, r *http.Request, isJSON bool, status int, msg string) {
	if isJSON {
		writeError(w, status, msg)
		return
	}
	http.Redirect(w, r, "/?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (h *Handlers) CurrentBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.batchSvc.Snapshot())
	}
}

// CancelBatch serves both DELETE /batches/current and the dashboard's cancel
// form.
func (h *Handlers) CancelBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.batchSvc.Cancel()
		if r.Method == http.MethodPost {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if errors.Is(err, domain.ErrNoBatchRunning) {
			writeError(w, http.StatusConflict, "no batch is running")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handlers) ResetBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.batchSvc.Reset(); err != nil && !errors.Is(err, domain.ErrBatchRunning) {
			logger.Error.Printf("reset batch: %v", err)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *Handlers) ListBatches() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || limit <= 0 || limit > 500 {
			limit = 50
		}
		records, err := h.batchSvc.History(limit)
		if err != nil {
			logger.Error.Printf("history list error: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to list batches")
			return
		}
		if records == nil {
			records = []*domain.BatchRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func (h *Handlers) GetBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := h.batchSvc.Batch(r.PathValue("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "batch not found")
				return
			}
			logger.Error.Printf("get batch error: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to load batch")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/batchenc/internal/domain"
	"github.com/bnema/batchenc/internal/service"
)

type fakeBatchService struct {
	started   []service.StartRequest
	startErr  error
	cancelErr error
	resets    int
	snap      domain.BatchSnapshot
	records   []*domain.BatchRecord
	historyN  int
}

func (f *fakeBatchService) Start(req service.StartRequest) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, req)
	f.snap = domain.BatchSnapshot{ID: "b1", Running: true, Total: 1}
	return nil
}

func (f *fakeBatchService) Cancel() error { return f.cancelErr }

func (f *fakeBatchService) Reset() error {
	f.resets++
	return nil
}

func (f *fakeBatchService) Snapshot() domain.BatchSnapshot { return f.snap }

func (f *fakeBatchService) History(limit int) ([]*domain.BatchRecord, error) {
	f.historyN = limit
	return f.records, nil
}

func (f *fakeBatchService) Batch(id string) (*domain.BatchRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeAuth struct{}

func (fakeAuth) ValidatePassword(password string) bool { return password == "s3cret" }
func (fakeAuth) GenerateToken() string                  { return "good-token" }
func (fakeAuth) ValidateToken(token string) error {
	if token == "good-token" {
		return nil
	}
	return errors.New("invalid token")
}

var testDefaults = service.StartRequest{
	Format:      domain.FormatMP4,
	Hardware:    domain.HardwareCPU,
	Concurrency: 3,
}

func newTestServer(svc *fakeBatchService) *Server {
	return NewServer(fakeAuth{}, svc, service.NewEventBus(), testDefaults, false)
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer s3cret")
	return req
}

func TestStartBatch_JSON(t *testing.T) {
	svc := &fakeBatchService{}
	srv := newTestServer(svc)

	body := `{"input_dir":"/videos","filter":"*.mov","output_dir":"/out","hardware":"nvidia"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/batches", strings.NewReader(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"b1"`)
	require.Len(t, svc.started, 1)
	got := svc.started[0]
	assert.Equal(t, "/videos", got.InputDir)
	assert.Equal(t, "/out", got.OutputDir)
	assert.Equal(t, domain.HardwareNvidia, got.Hardware)
	assert.Equal(t, domain.FormatMP4, got.Format)
	assert.Equal(t, 3, got.Concurrency)
}

func TestStartBatch_JSONErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		startErr   error
		wantStatus int
	}{
		{name: "malformed body", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "unknown hardware", body: `{"input_dir":"/v","hardware":"quantum"}`, wantStatus: http.StatusBadRequest},
		{name: "unsupported format", body: `{"input_dir":"/v","format":"avi"}`, wantStatus: http.StatusBadRequest},
		{name: "concurrency out of range", body: `{"input_dir":"/v","concurrency":100}`, wantStatus: http.StatusBadRequest},
		{name: "already running", body: `{"input_dir":"/v"}`, startErr: domain.ErrBatchRunning, wantStatus: http.StatusConflict},
		{name: "no files", body: `{"input_dir":"/v"}`, startErr: domain.ErrNoFiles, wantStatus: http.StatusBadRequest},
		{name: "missing dir", body: `{"input_dir":"/v"}`, startErr: domain.ErrInputDirNotFound, wantStatus: http.StatusBadRequest},
		{name: "unexpected", body: `{"input_dir":"/v"}`, startErr: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeBatchService{startErr: tt.startErr})
			req := authed(httptest.NewRequest(http.MethodPost, "/batches", strings.NewReader(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestStartBatch_Form(t *testing.T) {
	svc := &fakeBatchService{}
	srv := newTestServer(svc)

	form := url.Values{
		"input_dir":   {" /videos "},
		"same_dir":    {"true"},
		"recursive":   {"true"},
		"concurrency": {"2"},
	}
	req := authed(httptest.NewRequest(http.MethodPost, "/batches", strings.NewReader(form.Encode())))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.Len(t, svc.started, 1)
	assert.Equal(t, "/videos", svc.started[0].InputDir)
	assert.True(t, svc.started[0].SameDir)
	assert.True(t, svc.started[0].Recursive)
	assert.Equal(t, 2, svc.started[0].Concurrency)
	assert.Equal(t, domain.HardwareCPU, svc.started[0].Hardware)
}

func TestStartBatch_FormConcurrencyBounds(t *testing.T) {
	tests := []struct {
		name        string
		concurrency int
		wantStarted bool
	}{
		{name: "largest allowed", concurrency: domain.MaxConcurrency, wantStarted: true},
		{name: "one past the limit", concurrency: domain.MaxConcurrency + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeBatchService{}
			srv := newTestServer(svc)

			form := url.Values{"input_dir": {"/v"}, "concurrency": {strconv.Itoa(tt.concurrency)}}
			req := authed(httptest.NewRequest(http.MethodPost, "/batches", strings.NewReader(form.Encode())))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			srv.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			if tt.wantStarted {
				require.Len(t, svc.started, 1)
				assert.Equal(t, tt.concurrency, svc.started[0].Concurrency)
			} else {
				assert.Empty(t, svc.started)
				assert.Contains(t, rec.Header().Get("Location"), "/?error=")
			}
		})
	}
}

func TestStartBatch_FormErrorRedirectsWithFlash(t *testing.T) {
	srv := newTestServer(&fakeBatchService{startErr: domain.ErrBatchRunning})

	req := authed(httptest.NewRequest(http.MethodPost, "/batches", strings.NewReader("input_dir=/v")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?error="+url.QueryEscape("a batch is already running"), rec.Header().Get("Location"))
}

func TestCancelBatch(t *testing.T) {
	t.Run("api while running", func(t *testing.T) {
		srv := newTestServer(&fakeBatchService{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodDelete, "/batches/current", nil)))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("api while idle", func(t *testing.T) {
		srv := newTestServer(&fakeBatchService{cancelErr: domain.ErrNoBatchRunning})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodDelete, "/batches/current", nil)))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("form always redirects", func(t *testing.T) {
		srv := newTestServer(&fakeBatchService{cancelErr: domain.ErrNoBatchRunning})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/batches/current/cancel", nil)))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})
}

func TestResetBatch(t *testing.T) {
	svc := &fakeBatchService{}
	srv := newTestServer(svc)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/batches/current/reset", nil)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, svc.resets)
}

func TestCurrentBatch(t *testing.T) {
	svc := &fakeBatchService{snap: domain.BatchSnapshot{ID: "b9", Total: 4, OverallProgress: 50}}
	srv := newTestServer(svc)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/batches/current", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"id":"b9"`)
	assert.Contains(t, rec.Body.String(), `"overall_progress":50`)
}

func TestListBatches(t *testing.T) {
	t.Run("empty history is an empty array", func(t *testing.T) {
		srv := newTestServer(&fakeBatchService{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/batches", nil)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("limit is clamped", func(t *testing.T) {
		svc := &fakeBatchService{}
		srv := newTestServer(svc)
		srv.ServeHTTP(httptest.NewRecorder(), authed(httptest.NewRequest(http.MethodGet, "/batches?limit=9999", nil)))
		assert.Equal(t, 50, svc.historyN)

		srv.ServeHTTP(httptest.NewRecorder(), authed(httptest.NewRequest(http.MethodGet, "/batches?limit=5", nil)))
		assert.Equal(t, 5, svc.historyN)
	})
}

func TestGetBatch(t *testing.T) {
	svc := &fakeBatchService{records: []*domain.BatchRecord{{
		ID:         "abc",
		StartedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC),
		Total:      2,
		Completed:  2,
		Summary:    "All files converted successfully",
	}}}
	srv := newTestServer(svc)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/batches/abc", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "All files converted successfully")

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/batches/missing", nil)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboard_RendersFlash(t *testing.T) {
	srv := newTestServer(&fakeBatchService{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/?error=no+files+matched+the+filter", nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no files matched the filter")
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

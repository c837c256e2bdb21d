package web

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/docforge/internal/client/blob"
	"github.com/dmitrijs2005/docforge/internal/client/client"
	"github.com/dmitrijs2005/docforge/internal/client/config"
	"github.com/dmitrijs2005/docforge/internal/client/models"
	"github.com/dmitrijs2005/docforge/internal/client/services"
	"github.com/dmitrijs2005/docforge/internal/client/workflow"
	"github.com/dmitrijs2005/docforge/internal/logging"
	"github.com/dmitrijs2005/docforge/internal/netx"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	submit func(ctx context.Context, f *models.SelectedFile) (*client.RawResponse, error)
}

func (f *fakeBackend) SubmitFile(ctx context.Context, file *models.SelectedFile) (*client.RawResponse, error) {
	return f.submit(ctx, file)
}

func archiveBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("api-documentation.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"endpoints":[]}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func okBackend(body []byte) *fakeBackend {
	return &fakeBackend{submit: func(context.Context, *models.SelectedFile) (*client.RawResponse, error) {
		return &client.RawResponse{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Header:     http.Header{"Content-Type": []string{"application/zip"}},
			Body:       io.NopCloser(bytes.NewReader(body)),
		}, nil
	}}
}

func newTestServer(t *testing.T, backend client.Client) (*gin.Engine, *workflow.Controller, *blob.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	blobs := blob.NewStore()
	wc := workflow.NewController(backend, blobs, logging.Discard(), workflow.Options{
		ProgressInterval: time.Millisecond,
		RevealDelay:      time.Millisecond,
	})
	t.Cleanup(wc.Close)

	h := NewHandler(wc, blobs,
		services.NewDownloadService(blobs, t.TempDir(), logging.Discard()),
		services.NewPublishService(cfg, blobs, logging.Discard()),
		"http://localhost:8000/api/generate", logging.Discard())
	return h.NewRouter(), wc, blobs
}

func do(t *testing.T, router *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func uploadFile(t *testing.T, router *gin.Engine, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, ct, err := netx.MultipartFile("file", name, strings.NewReader(content))
	require.NoError(t, err)
	return do(t, router, http.MethodPost, "/api/file", body, ct)
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) stateResponse {
	t.Helper()
	var s stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s), rec.Body.String())
	return s
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Detail
}

func TestPages(t *testing.T) {
	router, _, _ := newTestServer(t, okBackend(nil))

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"API Documentation Generator", `href="/generate"`}},
		{"/about", []string{"About Forge API", "http://localhost:8000/api/generate", "api-documentation.zip"}},
		{"/generate", []string{"Generate API Documentation", `accept=".py,.js,.java,.go,.rb,.php,.ts,.jsx,.tsx"`, "fas fa-upload"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, tt.path, nil, "")
			require.Equal(t, http.StatusOK, rec.Code)
			for _, w := range tt.want {
				assert.Contains(t, rec.Body.String(), w)
			}
		})
	}
}

func TestGenerateWithoutFile(t *testing.T) {
	calls := 0
	backend := &fakeBackend{submit: func(context.Context, *models.SelectedFile) (*client.RawResponse, error) {
		calls++
		return nil, nil
	}}
	router, wc, _ := newTestServer(t, backend)

	rec := do(t, router, http.MethodPost, "/api/generate", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please select a file first", detailOf(t, rec))
	assert.Zero(t, calls)

	s := wc.Snapshot()
	assert.Equal(t, models.StateFailed, s.State)
	assert.Equal(t, "Please select a file first", s.Error)
}

func TestSelectFile_Missing(t *testing.T) {
	router, _, _ := newTestServer(t, okBackend(nil))

	body, ct, err := netx.MultipartFile("other", "a.py", strings.NewReader("x"))
	require.NoError(t, err)
	rec := do(t, router, http.MethodPost, "/api/file", body, ct)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please select a file first", detailOf(t, rec))
}

func TestFullFlow(t *testing.T) {
	archive := archiveBytes(t)
	router, wc, blobs := newTestServer(t, okBackend(archive))

	rec := uploadFile(t, router, "service.go", "package service")
	require.Equal(t, http.StatusOK, rec.Code)
	s := decodeState(t, rec)
	require.NotNil(t, s.File)
	assert.Equal(t, "service.go", s.File.Name)
	assert.Equal(t, "fas fa-code", s.Icon)
	assert.Equal(t, models.StateIdle, s.State)

	rec = do(t, router, http.MethodPost, "/api/generate", nil, "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := wc.Wait(ctx)
	require.NoError(t, err)

	rec = do(t, router, http.MethodGet, "/api/state", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	s = decodeState(t, rec)
	assert.Equal(t, models.StateSucceeded, s.State)
	assert.Equal(t, 100.0, s.Progress)
	assert.True(t, s.DownloadReady)
	require.NotEmpty(t, s.DownloadURL)
	assert.True(t, strings.HasPrefix(s.DownloadURL, "/blob/"))

	rec = do(t, router, http.MethodGet, s.DownloadURL, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, archive, rec.Body.Bytes())
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="api-documentation.zip"`, rec.Header().Get("Content-Disposition"))

	rec = do(t, router, http.MethodGet, "/api/archive", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "api-documentation.json")

	rec = do(t, router, http.MethodPost, "/api/reset", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	s2 := decodeState(t, rec)
	assert.Equal(t, models.StateIdle, s2.State)
	assert.Nil(t, s2.File)
	assert.Empty(t, s2.DownloadURL)
	assert.Equal(t, s.PickerResets+1, s2.PickerResets)
	assert.Zero(t, blobs.Len())

	rec = do(t, router, http.MethodGet, s.DownloadURL, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerErrorSurfacesInState(t *testing.T) {
	backend := &fakeBackend{submit: func(context.Context, *models.SelectedFile) (*client.RawResponse, error) {
		return nil, &client.ServerError{StatusCode: 500, StatusText: "Internal Server Error", Detail: "Unsupported syntax"}
	}}
	router, wc, _ := newTestServer(t, backend)

	require.Equal(t, http.StatusOK, uploadFile(t, router, "app.js", "x").Code)
	require.Equal(t, http.StatusAccepted, do(t, router, http.MethodPost, "/api/generate", nil, "").Code)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := wc.Wait(ctx)
	require.NoError(t, err)

	s := decodeState(t, do(t, router, http.MethodGet, "/api/state", nil, ""))
	assert.Equal(t, models.StateFailed, s.State)
	assert.Equal(t, "Unsupported syntax", s.Error)
	assert.Empty(t, s.DownloadURL)

	rec := do(t, router, http.MethodGet, "/generate", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, `<div id="error" class="error ">`)
	assert.Contains(t, page, `<i class="fas fa-exclamation-circle"></i>`)
	assert.Contains(t, page, `<span id="error-message">Unsupported syntax</span>`)
}

func TestBusyWhileUploading(t *testing.T) {
	release := make(chan struct{})
	backend := &fakeBackend{submit: func(ctx context.Context, _ *models.SelectedFile) (*client.RawResponse, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil, io.ErrUnexpectedEOF
	}}
	router, _, _ := newTestServer(t, backend)
	defer close(release)

	require.Equal(t, http.StatusOK, uploadFile(t, router, "app.py", "x").Code)
	require.Equal(t, http.StatusAccepted, do(t, router, http.MethodPost, "/api/generate", nil, "").Code)

	rec := uploadFile(t, router, "other.py", "y")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "upload in progress", detailOf(t, rec))

	rec = do(t, router, http.MethodPost, "/api/generate", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodGet, "/generate", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<form id="upload-form" class="hidden">`)
}

func TestArchiveAndPublishWithoutResult(t *testing.T) {
	router, _, _ := newTestServer(t, okBackend(nil))

	rec := do(t, router, http.MethodGet, "/api/archive", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/publish", nil, "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, services.ErrPublishDisabled.Error(), detailOf(t, rec))
}

func TestUnknownBlob(t *testing.T) {
	router, _, _ := newTestServer(t, okBackend(nil))

	rec := do(t, router, http.MethodGet, "/blob/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", detailOf(t, rec))
}

func TestRequestIDHeader(t *testing.T) {
	router, _, _ := newTestServer(t, okBackend(nil))

	rec := do(t, router, http.MethodGet, "/api/state", nil, "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRequestIDReachesBackend(t *testing.T) {
	got := make(chan string, 1)
	backend := &fakeBackend{submit: func(ctx context.Context, _ *models.SelectedFile) (*client.RawResponse, error) {
		id, _ := logging.RequestIDFrom(ctx)
		got <- id
		return nil, io.ErrUnexpectedEOF
	}}
	router, _, _ := newTestServer(t, backend)

	require.Equal(t, http.StatusOK, uploadFile(t, router, "app.py", "x").Code)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
	req.Header.Set(requestIDHeader, "trace-7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case id := <-got:
		assert.Equal(t, "trace-7", id)
	case <-time.After(5 * time.Second):
		t.Fatal("backend was not called")
	}
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/docforge/internal/client/models"
	"github.com/dmitrijs2005/docforge/internal/common"
	"github.com/dmitrijs2005/docforge/internal/logging"
	"github.com/dmitrijs2005/docforge/internal/netx"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of a failed response is read for its detail.
const maxErrorBody = 1 << 20

type HTTPClient struct {
	endpointURL string
	httpClient  *http.Client
	log         logging.Logger
}

// NormalizeBaseURL strips a single trailing slash from u.
func NormalizeBaseURL(u string) string {
	return strings.TrimSuffix(strings.TrimSpace(u), "/")
}

// NewDocforgeClientService builds an HTTPClient for baseURL. A zero timeout
// leaves requests unbounded.
func NewDocforgeClientService(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	base := NormalizeBaseURL(baseURL)
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		endpointURL: base + common.GenerateEndpointPath,
		httpClient:  &http.Client{Timeout: timeout},
		log:         log,
	}, nil
}

// Endpoint returns the full generation URL.
func (c *HTTPClient) Endpoint() string {
	return c.endpointURL
}

func (c *HTTPClient) SubmitFile(ctx context.Context, file *models.SelectedFile) (*RawResponse, error) {
	if file == nil {
		return nil, common.ErrNoFile
	}

	id, ok := logging.RequestIDFrom(ctx)
	if !ok {
		id = uuid.NewString()
		ctx = logging.ContextWithRequestID(ctx, id)
	}
	log := c.log.With("file", file.Name)

	body, contentType, err := netx.MultipartFile(common.UploadFieldName, file.Name, file.Open())
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(common.RequestIDHeader, id)

	log.Debug(ctx, "submitting file", "url", c.endpointURL, "size", file.Size)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, c.mapError(err)
	}

	if !netx.IsSuccess(resp.StatusCode) {
		defer resp.Body.Close()
		serverErr := parseServerError(resp)
		log.Warn(ctx, "server rejected file", "status", resp.StatusCode, "error", serverErr)
		return nil, serverErr
	}

	log.Info(ctx, "documentation generated", "status", resp.StatusCode)

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

// parseServerError extracts {"detail": "..."} from a failed response. Any
// other shape falls back to the status line.
func parseServerError(resp *http.Response) *ServerError {
	se := &ServerError{StatusCode: resp.StatusCode, StatusText: netx.StatusText(resp)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return se
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		se.Detail = detail
	}
	return se
}

func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

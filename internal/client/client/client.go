package client

import (
	"context"
	"io"
	"net/http"

	"github.com/dmitrijs2005/docforge/internal/client/models"
)

// Client submits a source file to the documentation backend.
type Client interface {
	SubmitFile(ctx context.Context, file *models.SelectedFile) (*RawResponse, error)
}

// RawResponse is a successful backend response, returned unmodified. The
// caller owns Body and must close it.
type RawResponse struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       io.ReadCloser
}

// ContentType returns the response media type, or "" when absent.
func (r *RawResponse) ContentType() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

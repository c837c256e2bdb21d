// Package common contains shared constants and sentinel errors used across
// docforge components.
package common

const (
	// GenerateEndpointPath is appended to the configured API base URL.
	GenerateEndpointPath = "/api/generate"

	// UploadFieldName is the multipart form field that carries the source file.
	UploadFieldName = "file"

	// ArchiveFileName is the suggested name for the downloaded documentation archive.
	ArchiveFileName = "api-documentation.zip"

	// ArchiveContentType is used when the server omits a content type.
	ArchiveContentType = "application/zip"

	// DefaultAPIBaseURL points at a local development backend.
	DefaultAPIBaseURL = "http://localhost:8000"

	// APIBaseURLEnv names the environment variable that overrides the backend base URL.
	APIBaseURLEnv = "DOCFORGE_API_URL"

	// RequestIDHeader carries the request id between the web shell, the
	// transport and the backend.
	RequestIDHeader = "X-Request-Id"

	// GenericFailureMessage is shown when a failure carries no message of its own.
	GenericFailureMessage = "Failed to generate documentation"
)

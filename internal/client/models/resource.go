package models

import "time"

// DownloadableResource describes a generated archive held in memory. The
// bytes live in a blob store and are reachable through Locator until the
// workflow revokes it.
type DownloadableResource struct {
	Locator     string    `json:"locator"`
	FileName    string    `json:"file_name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	SHA256      string    `json:"sha256"`
	CreatedAt   time.Time `json:"created_at"`
}

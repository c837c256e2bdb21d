// Package services contains application services for the docforge client.
// This file defines the download service: saving a generated archive to disk
// and listing its entries.
package services

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docforge/internal/client/blob"
	"github.com/dmitrijs2005/docforge/internal/client/models"
	"github.com/dmitrijs2005/docforge/internal/cryptox"
	"github.com/dmitrijs2005/docforge/internal/filex"
	"github.com/dmitrijs2005/docforge/internal/logging"
)

var ErrNotArchive = errors.New("resource is not a zip archive")

// ArchiveEntry is one file inside a generated archive.
type ArchiveEntry struct {
	Name     string    `json:"name"`
	Size     uint64    `json:"size"`
	Modified time.Time `json:"modified"`
}

// DownloadService defines operations on a ready archive.
//
// Contract:
//   - Save: write the archive bytes to path, or to <OutputDir>/<FileName> when
//     path is empty. A path naming an existing directory receives FileName
//     inside it. Returns the written path.
//   - Inspect: list the archive entries without extracting them.
//
// Both fail with common.ErrorNotFound once the resource has been revoked.
type DownloadService interface {
	Save(ctx context.Context, res models.DownloadableResource, path string) (string, error)
	Inspect(ctx context.Context, res models.DownloadableResource) ([]ArchiveEntry, error)
}

type downloadService struct {
	blobs     *blob.Store
	outputDir string
	log       logging.Logger
}

// NewDownloadService constructs a DownloadService reading from blobs and
// saving under outputDir (relative to the working directory).
func NewDownloadService(blobs *blob.Store, outputDir string, log logging.Logger) DownloadService {
	return &downloadService{blobs: blobs, outputDir: outputDir, log: log}
}

func (s *downloadService) Save(ctx context.Context, res models.DownloadableResource, path string) (string, error) {
	data, err := s.blobs.Bytes(res.Locator)
	if err != nil {
		return "", fmt.Errorf("read archive: %w", err)
	}
	if err := cryptox.VerifyChecksum(data, res.SHA256); err != nil {
		return "", fmt.Errorf("archive %s: %w", res.Locator, err)
	}

	target, err := filex.ResolveTarget(path, s.outputDir, res.FileName)
	if err != nil {
		return "", err
	}

	if err := filex.WriteFileAtomic(target, data, 0o660); err != nil {
		return "", err
	}

	s.log.Info(ctx, "archive saved", "path", target, "size", len(data))
	return target, nil
}

func (s *downloadService) Inspect(ctx context.Context, res models.DownloadableResource) ([]ArchiveEntry, error) {
	r, _, err := s.blobs.Open(res.Locator)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	zr, err := zip.NewReader(r, r.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotArchive, err)
	}

	entries := make([]ArchiveEntry, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, ArchiveEntry{
			Name:     f.Name,
			Size:     f.UncompressedSize64,
			Modified: f.Modified,
		})
	}

	s.log.Debug(ctx, "archive inspected", "locator", res.Locator, "entries", len(entries))
	return entries, nil
}

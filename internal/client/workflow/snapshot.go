package workflow

import (
	"github.com/dmitrijs2005/docforge/internal/client/models"
)

// FileInfo is the picker summary of the staged file.
type FileInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	SizeKB   string `json:"size_kb"`
	Type     string `json:"type"`
	Icon     string `json:"icon"`
	Language string `json:"language"`
}

func fileInfo(f *models.SelectedFile) *FileInfo {
	if f == nil {
		return nil
	}
	kind := models.KindFor(f.Name)
	return &FileInfo{
		Name:     f.Name,
		Size:     f.Size,
		SizeKB:   f.SizeKB(),
		Type:     f.TypeLabel(),
		Icon:     kind.Icon,
		Language: kind.Language,
	}
}

// Snapshot is a consistent copy of everything a front end renders.
type Snapshot struct {
	State         models.UploadState           `json:"state"`
	File          *FileInfo                    `json:"file,omitempty"`
	Icon          string                       `json:"icon"`
	Progress      float64                      `json:"progress"`
	Error         string                       `json:"error,omitempty"`
	Resource      *models.DownloadableResource `json:"resource,omitempty"`
	DownloadReady bool                         `json:"download_ready"`
	Generation    uint64                       `json:"generation"`
	// PickerResets increases on every reset; front ends clear their native
	// file control when it changes.
	PickerResets uint64 `json:"picker_resets"`
}

// Settled reports whether the current run needs no more waiting.
func (s Snapshot) Settled() bool {
	switch s.State {
	case models.StateUploading:
		return false
	case models.StateSucceeded:
		return s.DownloadReady
	default:
		return true
	}
}

// ShowPicker mirrors the form visibility: hidden while uploading and once a
// download is on offer.
func (s Snapshot) ShowPicker() bool {
	return s.State != models.StateUploading && !s.DownloadReady
}

// CanGenerate reports whether the generate action is offered.
func (s Snapshot) CanGenerate() bool {
	return s.File != nil && s.State != models.StateUploading && s.Resource == nil
}

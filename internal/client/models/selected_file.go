package models

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// SelectedFile is the single source file staged for upload.
type SelectedFile struct {
	Name        string
	Size        int64
	ContentType string
	content     []byte
}

// NewSelectedFile wraps an in-memory payload, e.g. a file received by the
// web shell.
func NewSelectedFile(name, contentType string, content []byte) *SelectedFile {
	return &SelectedFile{
		Name:        filepath.Base(name),
		Size:        int64(len(content)),
		ContentType: contentType,
		content:     content,
	}
}

// SelectedFileFromPath reads a local file and stages its content. The content
// type is guessed from the extension and may be empty.
func SelectedFileFromPath(path string) (*SelectedFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return NewSelectedFile(path, mime.TypeByExtension(filepath.Ext(path)), data), nil
}

// Open returns a fresh reader over the file content.
func (f *SelectedFile) Open() io.Reader {
	return bytes.NewReader(f.content)
}

// SizeKB formats the size the way the picker summary shows it.
func (f *SelectedFile) SizeKB() string {
	return fmt.Sprintf("%.2f KB", float64(f.Size)/1024)
}

// TypeLabel returns the MIME type or a generic label when it is unknown.
func (f *SelectedFile) TypeLabel() string {
	if f.ContentType == "" {
		return "Code file"
	}
	return f.ContentType
}

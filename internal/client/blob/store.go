// Package blob keeps memory-backed byte payloads addressable by an opaque
// locator, in the spirit of browser object URLs. A locator stays valid until
// it is revoked; revoking wipes the payload.
package blob

import (
	"bytes"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docforge/internal/common"
	"github.com/google/uuid"
)

// LocatorPrefix starts every locator issued by a Store.
const LocatorPrefix = "blob:docforge/"

type entry struct {
	data        []byte
	contentType string
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Create stores data and returns its locator. The store takes ownership of
// the slice.
func (s *Store) Create(data []byte, contentType string) string {
	locator := LocatorPrefix + uuid.NewString()

	s.mu.Lock()
	s.entries[locator] = &entry{data: data, contentType: contentType}
	s.mu.Unlock()

	return locator
}

// Open returns a reader over a copy of the payload behind locator. A later
// Revoke does not affect the reader.
func (s *Store) Open(locator string) (*bytes.Reader, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[locator]
	if !ok {
		return nil, "", common.ErrorNotFound
	}
	return bytes.NewReader(bytes.Clone(e.data)), e.contentType, nil
}

// Bytes returns a copy of the payload behind locator.
func (s *Store) Bytes(locator string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[locator]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return bytes.Clone(e.data), nil
}

// Revoke invalidates locator and wipes its payload. Unknown locators are
// ignored.
func (s *Store) Revoke(locator string) {
	s.mu.Lock()
	e, ok := s.entries[locator]
	delete(s.entries, locator)
	s.mu.Unlock()

	if ok {
		common.WipeByteArray(e.data)
	}
}

// Len reports the number of live locators.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// ID returns the part of locator after LocatorPrefix, suitable for URLs.
func ID(locator string) string {
	return strings.TrimPrefix(locator, LocatorPrefix)
}

// Locator is the inverse of ID.
func Locator(id string) string {
	return LocatorPrefix + id
}

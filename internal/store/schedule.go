// Package store holds the in-memory document stores. Each store guards its
// document with one mutex held for the whole read-modify-write, so
// concurrent mutators serialize; readers get snapshot copies and never
// observe a torn document.
package store

import (
	"fmt"
	"sync"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// ScheduleStore holds the current immutable schedule document.
type ScheduleStore struct {
	mu  sync.RWMutex
	doc *domain.ScheduleDocument
}

// NewScheduleStore creates an empty schedule store.
func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{}
}

// Load returns a snapshot of the current document, or ErrNotFound before
// the first ingestion.
func (s *ScheduleStore) Load() (domain.ScheduleDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return domain.ScheduleDocument{}, fmt.Errorf("schedule document: %w", domain.ErrNotFound)
	}
	return s.doc.Clone(), nil
}

// Version returns the current document version, 0 before first ingestion.
func (s *ScheduleStore) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return 0
	}
	return s.doc.Version
}

// Replace swaps in a new document wholesale. The document is validated
// first; the store is untouched on rejection. baseVersion must match the
// current version (0 when the store is empty) or Replace fails with
// ErrStaleVersion, reporting both versions so the caller can re-fetch.
func (s *ScheduleStore) Replace(doc domain.ScheduleDocument, baseVersion int64) (domain.ScheduleDocument, error) {
	if err := doc.Validate(); err != nil {
		return domain.ScheduleDocument{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := int64(0)
	if s.doc != nil {
		current = s.doc.Version
	}
	if baseVersion != current {
		return domain.ScheduleDocument{}, fmt.Errorf(
			"%w: replace based on version %d but current is %d", domain.ErrStaleVersion, baseVersion, current)
	}

	next := doc.Clone()
	next.Version = current + 1
	s.doc = &next
	return next.Clone(), nil
}

// Seed installs a document as-is, keeping its recorded version. Used when
// rehydrating from disk and when rolling back; not a user mutation.
func (s *ScheduleStore) Seed(doc *domain.ScheduleDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc == nil {
		s.doc = nil
		return
	}
	next := doc.Clone()
	s.doc = &next
}

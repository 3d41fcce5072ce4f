package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// OverlayStore holds the mutable configuration overlay.
type OverlayStore struct {
	mu      sync.RWMutex
	overlay domain.ConfigurationOverlay
}

// NewOverlayStore creates a store holding the default empty overlay
// (version 0). Load never fails.
func NewOverlayStore() *OverlayStore {
	return &OverlayStore{overlay: domain.EmptyOverlay()}
}

// Load returns a snapshot of the current overlay.
func (s *OverlayStore) Load() domain.ConfigurationOverlay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlay.Clone()
}

// Version returns the current overlay version.
func (s *OverlayStore) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlay.Version
}

// ApplyPatch merges the patch field by field, increments the version by
// exactly one and stamps the audit metadata. Patches are keyed by
// date+field, so a patch computed against an older version still applies
// cleanly after a concurrent writer; the mutex serializes the two and each
// gets its own version.
func (s *OverlayStore) ApplyPatch(patch domain.OverlayPatch, author string, now time.Time) (domain.ConfigurationOverlay, error) {
	if err := patch.Validate(); err != nil {
		return domain.ConfigurationOverlay{}, fmt.Errorf("invalid overlay patch: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patch.Apply(&s.overlay)
	s.overlay.Version++
	s.overlay.LastModifiedBy = author
	s.overlay.LastModifiedAt = now.UTC()
	return s.overlay.Clone(), nil
}

// Seed installs an overlay as-is, keeping its recorded version. Used when
// rehydrating from disk and when rolling back; not a user mutation.
func (s *OverlayStore) Seed(o domain.ConfigurationOverlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.Days == nil {
		o.Days = map[string]domain.DayOverlay{}
	}
	s.overlay = o.Clone()
}

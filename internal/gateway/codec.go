package gateway

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// Document file names inside the data directory.
const (
	ScheduleFile = "schedule.json"
	OverlayFile  = "overlay.json"
)

// hashBytes fingerprints serialized document bytes. An absent document
// hashes as empty content, so a missing file and a nil snapshot agree.
func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return "sha256:" + hex.EncodeToString(sum[:])
}

func encodeSchedule(doc *domain.ScheduleDocument) ([]byte, error) {
	if doc == nil {
		return nil, nil
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding schedule document: %w", err)
	}
	return b, nil
}

func decodeSchedule(b []byte) (*domain.ScheduleDocument, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var doc domain.ScheduleDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decoding schedule document: %w", err)
	}
	return &doc, nil
}

func encodeOverlay(o domain.ConfigurationOverlay) ([]byte, error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding configuration overlay: %w", err)
	}
	return b, nil
}

func decodeOverlay(b []byte) (domain.ConfigurationOverlay, error) {
	if len(b) == 0 {
		return domain.EmptyOverlay(), nil
	}
	var o domain.ConfigurationOverlay
	if err := json.Unmarshal(b, &o); err != nil {
		return domain.ConfigurationOverlay{}, fmt.Errorf("decoding configuration overlay: %w", err)
	}
	if o.Days == nil {
		o.Days = map[string]domain.DayOverlay{}
	}
	return o, nil
}

// writeDocumentFile replaces path with data via a temp file and rename, so
// a reader never observes a torn document. Empty data removes the file: an
// absent document may round-trip through the log as zero-length bytes.
func writeDocumentFile(path string, data []byte) error {
	if len(data) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", path, err)
		}
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// readDocumentFile returns nil bytes without error when the file is absent.
func readDocumentFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return b, nil
}

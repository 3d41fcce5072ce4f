// Package gateway is the single durable-write path for schedule and
// overlay mutations. Every accepted change writes the document files to
// the data directory first, then appends a CommitRecord carrying full
// snapshots to the sqlite log. A crash between the two leaves the commit
// invisible; Recover detects the mismatch at startup by comparing file
// hashes against the head commit and restores the head snapshot.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/pitwall/internal/db"
	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/repository"
	"github.com/alexanderramin/pitwall/internal/store"
)

// Gateway serializes all mutations behind one mutex: at most one commit
// is in flight at a time, so the file pair and the log never interleave.
type Gateway struct {
	mu       sync.Mutex
	dataDir  string
	schedule *store.ScheduleStore
	overlay  *store.OverlayStore
	commits  repository.CommitRepo
	uow      db.UnitOfWork
	logger   *slog.Logger
}

// New creates a gateway over the given stores and commit log. The stores
// are not hydrated until Recover runs.
func New(dataDir string, schedule *store.ScheduleStore, overlay *store.OverlayStore,
	commits repository.CommitRepo, uow db.UnitOfWork, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		dataDir:  dataDir,
		schedule: schedule,
		overlay:  overlay,
		commits:  commits,
		uow:      uow,
		logger:   logger,
	}
}

func (g *Gateway) schedulePath() string { return filepath.Join(g.dataDir, ScheduleFile) }
func (g *Gateway) overlayPath() string  { return filepath.Join(g.dataDir, OverlayFile) }

// Recover hydrates the stores from the commit log and repairs the
// document files when they disagree with the head commit. The log is the
// source of truth: a file written by a crashed commit that never reached
// the log is rolled back to the head snapshot.
func (g *Gateway) Recover(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	head, err := g.commits.Head(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return g.recoverEmpty()
	}
	if err != nil {
		return fmt.Errorf("reading head commit: %w", err)
	}

	snap, err := g.commits.SnapshotAt(ctx, head.Version)
	if err != nil {
		return fmt.Errorf("reading head snapshot: %w", err)
	}

	if err := g.repairFile(g.schedulePath(), snap.Schedule, head.ScheduleHash, head.Version); err != nil {
		return err
	}
	if err := g.repairFile(g.overlayPath(), snap.Overlay, head.OverlayHash, head.Version); err != nil {
		return err
	}

	doc, err := decodeSchedule(snap.Schedule)
	if err != nil {
		return err
	}
	overlay, err := decodeOverlay(snap.Overlay)
	if err != nil {
		return err
	}
	g.schedule.Seed(doc)
	g.overlay.Seed(overlay)

	g.logger.Info("recovered from commit log",
		"version", head.Version,
		"schedule_version", head.ScheduleVersion,
		"overlay_version", head.OverlayVersion)
	return nil
}

// recoverEmpty handles the empty-log case: any document file on disk was
// written by a commit that never became visible, so it is removed.
func (g *Gateway) recoverEmpty() error {
	for _, path := range []string{g.schedulePath(), g.overlayPath()} {
		b, err := readDocumentFile(path)
		if err != nil {
			return err
		}
		if b != nil {
			g.logger.Warn("removing document file with no matching commit", "path", path)
			if err := writeDocumentFile(path, nil); err != nil {
				return err
			}
		}
	}
	g.schedule.Seed(nil)
	g.overlay.Seed(domain.EmptyOverlay())
	return nil
}

func (g *Gateway) repairFile(path string, snapshot []byte, wantHash string, version int64) error {
	b, err := readDocumentFile(path)
	if err != nil {
		return err
	}
	if hashBytes(b) == wantHash {
		return nil
	}
	g.logger.Warn("document file does not match head commit, restoring",
		"path", path, "version", version)
	return writeDocumentFile(path, snapshot)
}

// CommitOverlayPatch applies the patch to the overlay store and durably
// commits the result. On a durable-write failure the in-memory overlay is
// restored, so memory never runs ahead of storage.
func (g *Gateway) CommitOverlayPatch(ctx context.Context, patch domain.OverlayPatch,
	author, message string) (domain.ConfigurationOverlay, *domain.CommitRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	prev := g.overlay.Load()
	next, err := g.overlay.ApplyPatch(patch, author, time.Now())
	if err != nil {
		return domain.ConfigurationOverlay{}, nil, err
	}

	rec, err := g.persist(ctx, author, message, "overlay", nil)
	if err != nil {
		g.overlay.Seed(prev)
		return domain.ConfigurationOverlay{}, nil, err
	}
	return next, rec, nil
}

// ReplaceSchedule swaps in a new schedule document and durably commits
// it. baseVersion carries the optimistic concurrency check through to the
// store; a stale base fails with ErrStaleVersion before anything changes.
func (g *Gateway) ReplaceSchedule(ctx context.Context, doc domain.ScheduleDocument,
	baseVersion int64, author, message string) (domain.ScheduleDocument, *domain.CommitRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	prev, prevErr := g.schedule.Load()
	next, err := g.schedule.Replace(doc, baseVersion)
	if err != nil {
		return domain.ScheduleDocument{}, nil, err
	}

	rec, err := g.persist(ctx, author, message, "schedule", nil)
	if err != nil {
		if prevErr != nil {
			g.schedule.Seed(nil)
		} else {
			g.schedule.Seed(&prev)
		}
		return domain.ScheduleDocument{}, nil, err
	}
	return next, rec, nil
}

// History returns up to limit commits with version < before, most recent
// first. before <= 0 starts from the head.
func (g *Gateway) History(ctx context.Context, limit int, before int64) ([]*domain.CommitRecord, error) {
	return g.commits.List(ctx, limit, before)
}

// Head returns the most recent commit, or ErrNotFound on an empty log.
func (g *Gateway) Head(ctx context.Context) (*domain.CommitRecord, error) {
	return g.commits.Head(ctx)
}

// Rollback restores both documents to the state captured at the target
// commit and records the restoration as a new forward commit pointing
// back via RollbackOf. History is never rewritten.
func (g *Gateway) Rollback(ctx context.Context, version int64, author string) (*domain.CommitRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.commits.GetByVersion(ctx, version); err != nil {
		return nil, err
	}
	snap, err := g.commits.SnapshotAt(ctx, version)
	if err != nil {
		return nil, err
	}
	doc, err := decodeSchedule(snap.Schedule)
	if err != nil {
		return nil, err
	}
	overlay, err := decodeOverlay(snap.Overlay)
	if err != nil {
		return nil, err
	}

	prevDoc, prevDocErr := g.schedule.Load()
	prevOverlay := g.overlay.Load()

	g.schedule.Seed(doc)
	g.overlay.Seed(overlay)

	rec, err := g.persist(ctx, author,
		fmt.Sprintf("rollback to version %d", version), "schedule,overlay", &version)
	if err != nil {
		if prevDocErr != nil {
			g.schedule.Seed(nil)
		} else {
			g.schedule.Seed(&prevDoc)
		}
		g.overlay.Seed(prevOverlay)
		return nil, err
	}
	return rec, nil
}

// persist writes both document files, then appends the commit. Callers
// hold g.mu and have already mutated the stores; they revert the stores
// if persist fails.
func (g *Gateway) persist(ctx context.Context, author, message, diffSummary string,
	rollbackOf *int64) (*domain.CommitRecord, error) {
	var docPtr *domain.ScheduleDocument
	if doc, err := g.schedule.Load(); err == nil {
		docPtr = &doc
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	scheduleJSON, err := encodeSchedule(docPtr)
	if err != nil {
		return nil, err
	}
	overlayJSON, err := encodeOverlay(g.overlay.Load())
	if err != nil {
		return nil, err
	}

	if err := writeDocumentFile(g.schedulePath(), scheduleJSON); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := writeDocumentFile(g.overlayPath(), overlayJSON); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	version := int64(1)
	if head, err := g.commits.Head(ctx); err == nil {
		version = head.Version + 1
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	rec := &domain.CommitRecord{
		Version:         version,
		ID:              uuid.New().String(),
		CommittedAt:     time.Now().UTC().Truncate(time.Second),
		Author:          author,
		Message:         message,
		DiffSummary:     diffSummary,
		ScheduleVersion: g.schedule.Version(),
		OverlayVersion:  g.overlay.Version(),
		ScheduleHash:    hashBytes(scheduleJSON),
		OverlayHash:     hashBytes(overlayJSON),
		RollbackOf:      rollbackOf,
	}
	snap := repository.Snapshot{Schedule: scheduleJSON, Overlay: overlayJSON}
	if err := g.commits.Append(ctx, rec, snap); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	g.logger.Info("committed",
		"version", rec.Version,
		"author", author,
		"changed", diffSummary)
	return rec, nil
}

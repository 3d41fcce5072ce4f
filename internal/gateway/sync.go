package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/pitwall/internal/db"
	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/repository"
)

// Remote is the far side of a sync: just another commit log.
// SQLiteCommitRepo over an opened log file satisfies it.
type Remote interface {
	Head(ctx context.Context) (*domain.CommitRecord, error)
	GetByVersion(ctx context.Context, version int64) (*domain.CommitRecord, error)
	ListSince(ctx context.Context, after int64) ([]*domain.CommitRecord, error)
	SnapshotAt(ctx context.Context, version int64) (repository.Snapshot, error)
	Append(ctx context.Context, c *domain.CommitRecord, snap repository.Snapshot) error
}

var _ Remote = (*repository.SQLiteCommitRepo)(nil)

// OpenRemote opens the commit log at path for use as a sync remote. The
// returned close func must be called when the sync completes.
func OpenRemote(path string) (Remote, func() error, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening remote log: %v", domain.ErrStorageUnavailable, err)
	}
	return repository.NewSQLiteCommitRepo(database), database.Close, nil
}

// SyncResult reports what one sync moved.
type SyncResult struct {
	Pulled int
	Pushed int
}

// Sync fast-forwards whichever side is behind. Both logs must agree at
// the shorter side's head; any disagreement over the common prefix fails
// with ErrDivergedHistory and moves nothing. A pull applies the remote
// suffix in one transaction and installs the new head state; a push
// appends the local suffix to the remote oldest first, so an interrupted
// push leaves the remote on a consistent older prefix.
func (g *Gateway) Sync(ctx context.Context, remote Remote) (SyncResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	localHead, err := headVersion(ctx, g.commits.Head)
	if err != nil {
		return SyncResult{}, err
	}
	remoteHead, err := headVersion(ctx, remote.Head)
	if err != nil {
		return SyncResult{}, mapRemoteErr(err)
	}

	common := localHead
	if remoteHead < common {
		common = remoteHead
	}
	if common > 0 {
		if err := g.checkCommonPrefix(ctx, remote, common); err != nil {
			return SyncResult{}, err
		}
	}

	switch {
	case remoteHead > localHead:
		n, err := g.pull(ctx, remote, localHead)
		return SyncResult{Pulled: n}, err
	case localHead > remoteHead:
		n, err := g.push(ctx, remote, remoteHead)
		return SyncResult{Pushed: n}, err
	default:
		return SyncResult{}, nil
	}
}

func headVersion(ctx context.Context, head func(context.Context) (*domain.CommitRecord, error)) (int64, error) {
	rec, err := head(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rec.Version, nil
}

// checkCommonPrefix compares the two records at the common head. Both
// logs are append-only with contiguous versions, so agreeing there means
// agreeing on the whole prefix.
func (g *Gateway) checkCommonPrefix(ctx context.Context, remote Remote, common int64) error {
	local, err := g.commits.GetByVersion(ctx, common)
	if errors.Is(err, domain.ErrUnknownVersion) {
		return fmt.Errorf("%w: local log has a gap at version %d", domain.ErrDivergedHistory, common)
	}
	if err != nil {
		return err
	}
	rem, err := remote.GetByVersion(ctx, common)
	if errors.Is(err, domain.ErrUnknownVersion) {
		return fmt.Errorf("%w: remote log has a gap at version %d", domain.ErrDivergedHistory, common)
	}
	if err != nil {
		return mapRemoteErr(err)
	}

	if local.ID != rem.ID || local.ScheduleHash != rem.ScheduleHash || local.OverlayHash != rem.OverlayHash {
		return fmt.Errorf("%w: logs disagree at version %d", domain.ErrDivergedHistory, common)
	}
	return nil
}

func (g *Gateway) pull(ctx context.Context, remote Remote, after int64) (int, error) {
	recs, err := remote.ListSince(ctx, after)
	if err != nil {
		return 0, mapRemoteErr(err)
	}
	if len(recs) == 0 {
		return 0, nil
	}

	snaps := make([]repository.Snapshot, len(recs))
	for i, rec := range recs {
		snaps[i], err = remote.SnapshotAt(ctx, rec.Version)
		if err != nil {
			return 0, mapRemoteErr(err)
		}
	}

	// Decode the incoming head before anything durable happens: a corrupt
	// remote snapshot must not leave the local log ahead of the stores.
	last := snaps[len(snaps)-1]
	doc, err := decodeSchedule(last.Schedule)
	if err != nil {
		return 0, err
	}
	overlay, err := decodeOverlay(last.Overlay)
	if err != nil {
		return 0, err
	}

	err = g.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteCommitRepo(tx)
		for i, rec := range recs {
			if err := txRepo.Append(ctx, rec, snaps[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: applying pulled commits: %v", domain.ErrStorageUnavailable, err)
	}

	// Install the new head state in memory and on disk.
	g.schedule.Seed(doc)
	g.overlay.Seed(overlay)
	if err := writeDocumentFile(g.schedulePath(), last.Schedule); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := writeDocumentFile(g.overlayPath(), last.Overlay); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	g.logger.Info("pulled commits", "count", len(recs), "head", recs[len(recs)-1].Version)
	return len(recs), nil
}

func (g *Gateway) push(ctx context.Context, remote Remote, after int64) (int, error) {
	recs, err := g.commits.ListSince(ctx, after)
	if err != nil {
		return 0, err
	}
	for i, rec := range recs {
		snap, err := g.commits.SnapshotAt(ctx, rec.Version)
		if err != nil {
			return i, err
		}
		if err := remote.Append(ctx, rec, snap); err != nil {
			return i, mapRemoteErr(err)
		}
	}
	if len(recs) > 0 {
		g.logger.Info("pushed commits", "count", len(recs), "head", recs[len(recs)-1].Version)
	}
	return len(recs), nil
}

// mapRemoteErr turns a deadline expiry on the remote path into the
// ErrTimeout sentinel callers match on.
func mapRemoteErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}

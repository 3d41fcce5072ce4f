package repository

import (
	"context"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// Snapshot carries the serialized documents captured by one commit.
type Snapshot struct {
	Schedule []byte
	Overlay  []byte
}

// CommitRepo is the append-only commit log. Entries are never updated or
// deleted; rollback and sync only ever append.
type CommitRepo interface {
	// Append stores a new commit with its document snapshots. Fails if
	// the version is not strictly greater than every existing version.
	Append(ctx context.Context, c *domain.CommitRecord, snap Snapshot) error
	// Head returns the most recent commit, or ErrNotFound on an empty log.
	Head(ctx context.Context) (*domain.CommitRecord, error)
	// GetByVersion returns the commit at version, or ErrUnknownVersion.
	GetByVersion(ctx context.Context, version int64) (*domain.CommitRecord, error)
	// List returns up to limit commits with version < before, most recent
	// first. before <= 0 means "from the head". Restartable: pass the last
	// seen version as the next before.
	List(ctx context.Context, limit int, before int64) ([]*domain.CommitRecord, error)
	// ListSince returns all commits with version > after, oldest first.
	// The sync path uses this to stream one side's suffix to the other.
	ListSince(ctx context.Context, after int64) ([]*domain.CommitRecord, error)
	// SnapshotAt returns the document snapshots recorded at version, or
	// ErrUnknownVersion.
	SnapshotAt(ctx context.Context, version int64) (Snapshot, error)
}

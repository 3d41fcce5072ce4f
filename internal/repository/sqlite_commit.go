package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/pitwall/internal/db"
	"github.com/alexanderramin/pitwall/internal/domain"
)

// SQLiteCommitRepo implements CommitRepo on the sqlite commit log. It works
// over a DBTX so the sync path can append a pulled batch transactionally.
type SQLiteCommitRepo struct {
	db db.DBTX
}

// NewSQLiteCommitRepo creates a new SQLiteCommitRepo.
func NewSQLiteCommitRepo(dbtx db.DBTX) *SQLiteCommitRepo {
	return &SQLiteCommitRepo{db: dbtx}
}

const commitColumns = `version, id, committed_at, author, message, diff_summary,
	schedule_version, overlay_version, schedule_hash, overlay_hash, rollback_of`

func (r *SQLiteCommitRepo) Append(ctx context.Context, c *domain.CommitRecord, snap Snapshot) error {
	// The strictly-increasing invariant is enforced here rather than by
	// the PRIMARY KEY alone: inserting below the head must fail too.
	var head sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(version) FROM commits`).Scan(&head); err != nil {
		return fmt.Errorf("reading head version: %w", err)
	}
	if head.Valid && c.Version <= head.Int64 {
		return fmt.Errorf("appending commit %d: head is already %d", c.Version, head.Int64)
	}

	// An absent document snapshots as zero-length bytes. A nil slice would
	// bind as SQL NULL and trip the NOT NULL snapshot columns; the two hash
	// identically, so the round trip through SnapshotAt is unchanged.
	if snap.Schedule == nil {
		snap.Schedule = []byte{}
	}
	if snap.Overlay == nil {
		snap.Overlay = []byte{}
	}

	query := `INSERT INTO commits (` + commitColumns + `, schedule_snapshot, overlay_snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.Version,
		c.ID,
		c.CommittedAt.UTC().Format(time.RFC3339),
		c.Author,
		c.Message,
		c.DiffSummary,
		c.ScheduleVersion,
		c.OverlayVersion,
		c.ScheduleHash,
		c.OverlayHash,
		nullableInt64ToValue(c.RollbackOf),
		snap.Schedule,
		snap.Overlay,
	)
	if err != nil {
		return fmt.Errorf("inserting commit %d: %w", c.Version, err)
	}
	return nil
}

func (r *SQLiteCommitRepo) Head(ctx context.Context) (*domain.CommitRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+commitColumns+` FROM commits ORDER BY version DESC LIMIT 1`)
	c, err := scanCommit(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("commit log is empty: %w", domain.ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCommitRepo) GetByVersion(ctx context.Context, version int64) (*domain.CommitRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+commitColumns+` FROM commits WHERE version = ?`, version)
	c, err := scanCommit(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("commit %d: %w", version, domain.ErrUnknownVersion)
	}
	return c, err
}

func (r *SQLiteCommitRepo) List(ctx context.Context, limit int, before int64) ([]*domain.CommitRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `SELECT ` + commitColumns + ` FROM commits`
	args := []any{}
	if before > 0 {
		query += ` WHERE version < ?`
		args = append(args, before)
	}
	query += ` ORDER BY version DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}
	defer rows.Close()
	return scanCommits(rows)
}

func (r *SQLiteCommitRepo) ListSince(ctx context.Context, after int64) ([]*domain.CommitRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commitColumns+` FROM commits WHERE version > ? ORDER BY version`, after)
	if err != nil {
		return nil, fmt.Errorf("listing commits since %d: %w", after, err)
	}
	defer rows.Close()
	return scanCommits(rows)
}

func (r *SQLiteCommitRepo) SnapshotAt(ctx context.Context, version int64) (Snapshot, error) {
	var snap Snapshot
	err := r.db.QueryRowContext(ctx,
		`SELECT schedule_snapshot, overlay_snapshot FROM commits WHERE version = ?`, version).
		Scan(&snap.Schedule, &snap.Overlay)
	if err == sql.ErrNoRows {
		return Snapshot{}, fmt.Errorf("commit %d: %w", version, domain.ErrUnknownVersion)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot at %d: %w", version, err)
	}
	return snap, nil
}

func scanCommit(row *sql.Row) (*domain.CommitRecord, error) {
	var c domain.CommitRecord
	var committedAt string
	var rollbackOf sql.NullInt64

	err := row.Scan(
		&c.Version, &c.ID, &committedAt, &c.Author, &c.Message, &c.DiffSummary,
		&c.ScheduleVersion, &c.OverlayVersion, &c.ScheduleHash, &c.OverlayHash, &rollbackOf,
	)
	if err != nil {
		return nil, err
	}
	return populateCommit(&c, committedAt, rollbackOf)
}

func scanCommits(rows *sql.Rows) ([]*domain.CommitRecord, error) {
	var commits []*domain.CommitRecord
	for rows.Next() {
		var c domain.CommitRecord
		var committedAt string
		var rollbackOf sql.NullInt64

		err := rows.Scan(
			&c.Version, &c.ID, &committedAt, &c.Author, &c.Message, &c.DiffSummary,
			&c.ScheduleVersion, &c.OverlayVersion, &c.ScheduleHash, &c.OverlayHash, &rollbackOf,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning commit row: %w", err)
		}
		commit, err := populateCommit(&c, committedAt, rollbackOf)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}
	return commits, nil
}

func populateCommit(c *domain.CommitRecord, committedAt string, rollbackOf sql.NullInt64) (*domain.CommitRecord, error) {
	var err error
	c.CommittedAt, err = time.Parse(time.RFC3339, committedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing committed_at: %w", err)
	}
	if rollbackOf.Valid {
		v := rollbackOf.Int64
		c.RollbackOf = &v
	}
	return c, nil
}

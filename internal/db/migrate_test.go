package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesCommitLog(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var name string
	err = database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'commits'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "commits", name)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_RejectsInvalidDiffSummary(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO commits
		(version, id, committed_at, author, message, diff_summary,
		 schedule_hash, overlay_hash, schedule_snapshot, overlay_snapshot)
		VALUES (1, 'c1', '2024-03-01T00:00:00Z', 'a', 'm', 'bogus', 'h', 'h', x'', x'')`)
	assert.Error(t, err, "diff_summary CHECK constraint")
}

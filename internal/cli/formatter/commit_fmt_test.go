package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/testutil"
)

func TestFormatCommit(t *testing.T) {
	rec := &domain.CommitRecord{
		Version:     3,
		CommittedAt: testutil.MustParse("2024-03-02T15:04:00Z"),
		Author:      "alex",
		Message:     "update configuration",
	}
	out := FormatCommit(rec)
	assert.Contains(t, out, "v3")
	assert.Contains(t, out, "2024-03-02 15:04")
	assert.Contains(t, out, "alex")
	assert.Contains(t, out, "update configuration")
}

func TestFormatCommit_RollbackMarkerAndAnonymous(t *testing.T) {
	target := int64(1)
	rec := &domain.CommitRecord{
		Version:     4,
		CommittedAt: testutil.MustParse("2024-03-02T16:00:00Z"),
		Message:     "rollback to version 1",
		RollbackOf:  &target,
	}
	out := FormatCommit(rec)
	assert.Contains(t, out, "anonymous")
	assert.Contains(t, out, "(rollback of v1)")
}

func TestFormatHistory_Empty(t *testing.T) {
	assert.Contains(t, FormatHistory(nil), "No commits yet")
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// FormatCommit renders a single commit as one history line.
func FormatCommit(rec *domain.CommitRecord) string {
	author := rec.Author
	if author == "" {
		author = "anonymous"
	}
	line := fmt.Sprintf("%s  %s  %-10s %s",
		StyleYellow.Render(fmt.Sprintf("v%-3d", rec.Version)),
		Dim(rec.CommittedAt.Format("2006-01-02 15:04")),
		author,
		rec.Message,
	)
	if rec.RollbackOf != nil {
		line += Dim(fmt.Sprintf("  (rollback of v%d)", *rec.RollbackOf))
	}
	return line
}

// FormatHistory renders the commit list, newest first.
func FormatHistory(commits []*domain.CommitRecord) string {
	if len(commits) == 0 {
		return Dim("No commits yet.") + "\n"
	}
	var b strings.Builder
	for _, rec := range commits {
		b.WriteString(FormatCommit(rec))
		b.WriteString("\n")
	}
	return b.String()
}

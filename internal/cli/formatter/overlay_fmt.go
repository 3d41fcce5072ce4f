package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// FormatOverlay renders the configuration overlay, one block per date.
func FormatOverlay(overlay domain.ConfigurationOverlay, display *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold("Configuration"), Dim(fmt.Sprintf("(version %d)", overlay.Version)))
	if overlay.LastModifiedBy != "" {
		b.WriteString(Dim(fmt.Sprintf("Last modified by %s at %s",
			overlay.LastModifiedBy, overlay.LastModifiedAt.Format("2006-01-02 15:04"))) + "\n")
	}

	if len(overlay.Days) == 0 {
		b.WriteString(Dim("No day overrides set.") + "\n")
		return b.String()
	}

	dates := make([]string, 0, len(overlay.Days))
	for d := range overlay.Days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, date := range dates {
		b.WriteString("\n" + StyleBlue.Render(dayHeading(date)) + "\n")
		lines := mealLines(overlay.Days[date], display)
		if len(lines) == 0 {
			b.WriteString(Dim("  (all fields unset)") + "\n")
			continue
		}
		b.WriteString(strings.Join(lines, "\n") + "\n")
	}
	return b.String()
}

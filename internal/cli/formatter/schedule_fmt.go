package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// FormatSchedule renders the reconciled session list grouped by venue-local
// date, with that day's overlay times underneath each group.
func FormatSchedule(view domain.ReconciledView, display *time.Location) string {
	if len(view.Sessions) == 0 {
		return Dim("No sessions scheduled.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header(view.EventName))
	b.WriteString("\n")

	var date string
	for _, s := range view.Sessions {
		if s.VenueDate != date {
			date = s.VenueDate
			b.WriteString("\n" + StyleBlue.Render(dayHeading(date)) + "\n")
			for _, line := range mealLines(s.Overlay, display) {
				b.WriteString(Dim(line) + "\n")
			}
		}
		start := s.Session.Start.In(display)
		line := fmt.Sprintf("  %s  %s", start.Format("15:04"), s.Session.Label)
		if s.Session.End != nil {
			line = fmt.Sprintf("  %s–%s  %s",
				start.Format("15:04"), s.Session.End.In(display).Format("15:04"), s.Session.Label)
		}
		b.WriteString(line + "\n")
	}

	if len(view.UnusedDays) > 0 {
		b.WriteString("\n" + Dim("Overlay days with no sessions: "+strings.Join(view.UnusedDays, ", ")) + "\n")
	}
	return b.String()
}

func dayHeading(date string) string {
	d, err := time.Parse(domain.DateKeyLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Monday, Jan 2")
}

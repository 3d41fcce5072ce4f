package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/pitwall/internal/domain"
)

// locationTimezones maps known venues to their IANA zone. A file's
// explicit timezone field wins over the mapping.
var locationTimezones = map[string]string{
	"Marina Bay": "Asia/Singapore",
	"Monza":      "Europe/Rome",
	"Baku":       "Asia/Baku",
}

// ResolveTimezone picks the venue timezone: explicit field, then known
// location, then UTC.
func (f *WeekendFile) ResolveTimezone() string {
	if f.Timezone != "" {
		return f.Timezone
	}
	if tz, ok := locationTimezones[f.Location]; ok {
		return tz
	}
	return "UTC"
}

// Convert builds a validated schedule document from a weekend file.
// Rows without a parseable start time are skipped, official timetables
// carry plenty of untimed annotation rows. Rows that would violate the
// non-overlap invariant are normalized: duplicate starts keep the first
// row, and an end running past the next start is truncated to it.
func Convert(f *WeekendFile) (domain.ScheduleDocument, error) {
	tz := f.ResolveTimezone()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return domain.ScheduleDocument{}, fmt.Errorf("loading venue timezone %q: %w", tz, err)
	}

	dates := make([]string, 0, len(f.Days))
	for date := range f.Days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var sessions []domain.Session
	for _, date := range dates {
		day := f.Days[date]
		rows := make([]SessionImport, 0, len(day.Sessions)+len(day.OtherEvents))
		rows = append(rows, day.Sessions...)
		rows = append(rows, day.OtherEvents...)

		for i, raw := range rows {
			start, err := parseLocalTime(date, raw.StartTime, loc)
			if err != nil {
				continue
			}
			s := domain.Session{
				ID:    fmt.Sprintf("%s-%02d", date, i+1),
				Label: rowLabel(raw),
				Start: start,
			}
			if raw.EndTime != "" {
				if end, err := parseLocalTime(date, raw.EndTime, loc); err == nil {
					// An end at or before the start crossed midnight.
					if !end.After(start) {
						end = end.AddDate(0, 0, 1)
					}
					s.End = &end
				}
			}
			sessions = append(sessions, s)
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].Start.Equal(sessions[j].Start) {
			return sessions[i].Start.Before(sessions[j].Start)
		}
		return sessions[i].ID < sessions[j].ID
	})
	sessions = normalizeSessions(sessions)
	if len(sessions) == 0 {
		return domain.ScheduleDocument{}, fmt.Errorf("%w: no timed sessions in weekend file", domain.ErrInvalidSchedule)
	}

	doc := domain.ScheduleDocument{
		EventName:     eventName(f),
		VenueTimezone: tz,
		Sessions:      sessions,
	}
	if err := doc.Validate(); err != nil {
		return domain.ScheduleDocument{}, err
	}
	return doc, nil
}

// normalizeSessions enforces distinct starts and half-open non-overlap
// over an already sorted slice.
func normalizeSessions(sessions []domain.Session) []domain.Session {
	out := sessions[:0]
	for _, s := range sessions {
		if len(out) > 0 && s.Start.Equal(out[len(out)-1].Start) {
			continue
		}
		out = append(out, s)
	}
	for i := 0; i < len(out)-1; i++ {
		if out[i].End != nil && out[i].End.After(out[i+1].Start) {
			trunc := out[i+1].Start
			if trunc.After(out[i].Start) {
				out[i].End = &trunc
			} else {
				out[i].End = nil
			}
		}
	}
	return out
}

func parseLocalTime(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func rowLabel(raw SessionImport) string {
	switch {
	case raw.Description != "":
		return raw.Description
	case raw.Category != "":
		return raw.Category
	default:
		return "Session"
	}
}

func eventName(f *WeekendFile) string {
	switch {
	case f.EventName != "":
		return f.EventName
	case f.Location != "":
		return f.Location
	default:
		return "Race Weekend"
	}
}

// Package importer ingests race weekend timetables: the JSON weekend
// files the dashboard exchanges, or an official timetable PDF.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// WeekendFile is the on-disk JSON structure for one race weekend. Days
// is keyed by calendar date (2006-01-02); all clock times are venue-local.
type WeekendFile struct {
	EventName string               `json:"event_name"`
	Location  string               `json:"location,omitempty"`
	Timezone  string               `json:"timezone,omitempty"`
	Year      string               `json:"year,omitempty"`
	Days      map[string]DayImport `json:"days"`
}

// DayImport holds one day's timetable entries. Sessions are the track
// sessions; OtherEvents covers everything else on the official timetable
// (press conferences, pit walks), kept because operators want them on
// the countdown too.
type DayImport struct {
	DayName     string          `json:"day_name,omitempty"`
	Sessions    []SessionImport `json:"sessions"`
	OtherEvents []SessionImport `json:"other_events,omitempty"`
}

// SessionImport is one timetable row. StartTime and EndTime are
// venue-local HH:MM; EndTime may be empty.
type SessionImport struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// LoadWeekendFile reads and parses a weekend JSON file.
func LoadWeekendFile(path string) (*WeekendFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f WeekendFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing weekend file: %w", err)
	}
	return &f, nil
}

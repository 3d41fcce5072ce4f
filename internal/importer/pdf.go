package importer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"rsc.io/pdf"
)

// ExtractPDF pulls the timetable out of an official race weekend PDF.
func ExtractPDF(path string) (*WeekendFile, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		lines = append(lines, pageLines(p)...)
	}
	return parseTimetable(lines)
}

// pageLines reassembles page text into reading-order lines: runs grouped
// by baseline, left to right. PDF Y grows upward, so rows sort descending.
func pageLines(p pdf.Page) []string {
	rows := map[int][]pdf.Text{}
	var ys []int
	for _, t := range p.Content().Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		y := int(t.Y + 0.5)
		if _, ok := rows[y]; !ok {
			ys = append(ys, y)
		}
		rows[y] = append(rows[y], t)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	lines := make([]string, 0, len(ys))
	for _, y := range ys {
		run := rows[y]
		sort.Slice(run, func(i, j int) bool { return run[i].X < run[j].X })
		parts := make([]string, len(run))
		for i, t := range run {
			parts[i] = t.S
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

var (
	dayHeadingRE = regexp.MustCompile(
		`(MONDAY|TUESDAY|WEDNESDAY|THURSDAY|FRIDAY|SATURDAY|SUNDAY)\s+(\d{1,2})\s+` +
			`(JANUARY|FEBRUARY|MARCH|APRIL|MAY|JUNE|JULY|AUGUST|SEPTEMBER|OCTOBER|NOVEMBER|DECEMBER)\s+(20\d{2})`)
	eventNameRE = regexp.MustCompile(`FORMULA 1\b.*\bGRAND PRIX`)
	clockRE     = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
)

var monthNumbers = map[string]int{
	"JANUARY": 1, "FEBRUARY": 2, "MARCH": 3, "APRIL": 4,
	"MAY": 5, "JUNE": 6, "JULY": 7, "AUGUST": 8,
	"SEPTEMBER": 9, "OCTOBER": 10, "NOVEMBER": 11, "DECEMBER": 12,
}

// parseTimetable builds a weekend file from extracted text lines. Lines
// before the first day heading only contribute the event name; timed
// rows under a heading become that day's sessions.
func parseTimetable(lines []string) (*WeekendFile, error) {
	f := &WeekendFile{Days: map[string]DayImport{}}
	var current string

	for _, line := range lines {
		upper := strings.ToUpper(strings.TrimSpace(line))
		if upper == "" {
			continue
		}

		if m := dayHeadingRE.FindStringSubmatch(upper); m != nil {
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[4])
			current = fmt.Sprintf("%04d-%02d-%02d", year, monthNumbers[m[3]], day)
			if _, ok := f.Days[current]; !ok {
				f.Days[current] = DayImport{DayName: m[1]}
			}
			continue
		}
		if f.EventName == "" {
			if name := eventNameRE.FindString(upper); name != "" {
				f.EventName = name
				continue
			}
		}
		if current == "" {
			continue
		}

		clocks := clockRE.FindAllString(upper, 2)
		if len(clocks) == 0 {
			continue
		}
		row := SessionImport{
			StartTime:   padClock(clocks[0]),
			Description: strings.Trim(collapseSpaces(clockRE.ReplaceAllString(upper, "")), " -"),
		}
		if len(clocks) > 1 && clocks[1] != clocks[0] {
			row.EndTime = padClock(clocks[1])
		}
		day := f.Days[current]
		day.Sessions = append(day.Sessions, row)
		f.Days[current] = day
	}

	if len(f.Days) == 0 {
		return nil, fmt.Errorf("no timetable days found")
	}
	return f, nil
}

func padClock(c string) string {
	if len(c) == len("9:04") {
		return "0" + c
	}
	return c
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

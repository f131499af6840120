// Package shiftcal resolves timestamps to named operating shifts using a
// per-date shift assignment table. The table is loaded once at startup and
// treated as immutable configuration for the process lifetime.
package shiftcal

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ShiftUnknown is returned when the calendar has no assignment for a date.
// Downstream consumers treat it as a valid but unmatched category.
const ShiftUnknown = "Unknown"

// Day shift covers hours [7, 19); everything else belongs to night shift.
const (
	dayShiftStart = 7
	dayShiftEnd   = 19
)

const dateKeyFormat = "2006-01-02"

// DayAssignment names the crew working each shift slot on one calendar date.
type DayAssignment struct {
	Date  time.Time `json:"date" validate:"required"`
	Day   string    `json:"day" validate:"required"`
	Night string    `json:"night" validate:"required"`
}

// Calendar maps calendar dates to shift assignments. Safe for concurrent
// reads; never mutated after construction.
type Calendar struct {
	days map[string]DayAssignment
}

// New builds a calendar from explicit assignments. Later entries for the
// same date override earlier ones.
func New(assignments []DayAssignment) *Calendar {
	days := make(map[string]DayAssignment, len(assignments))
	for _, a := range assignments {
		days[a.Date.Format(dateKeyFormat)] = a
	}
	return &Calendar{days: days}
}

// Resolve returns the shift label covering the given timestamp, or
// ShiftUnknown when the date is not in the calendar.
func (c *Calendar) Resolve(t time.Time) string {
	a, ok := c.days[t.Format(dateKeyFormat)]
	if !ok {
		return ShiftUnknown
	}
	if h := t.Hour(); h >= dayShiftStart && h < dayShiftEnd {
		return a.Day
	}
	return a.Night
}

// Len reports the number of dates with assignments.
func (c *Calendar) Len() int {
	return len(c.days)
}

// Load reads a shift calendar CSV. The file carries one row per date with
// columns "Date" (m/d/yy) and the slot columns "1" and "2".
func Load(path string) (*Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shift calendar: %w", err)
	}
	defer f.Close()

	cal, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("shift calendar %s: %w", path, err)
	}

	slog.Info("shift calendar loaded",
		slog.String("path", path),
		slog.Int("dates", cal.Len()))
	return cal, nil
}

// Parse reads shift calendar CSV content from r.
func Parse(r io.Reader) (*Calendar, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty calendar file")
	}

	dateCol, dayCol, nightCol := -1, -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")) {
		case "Date":
			dateCol = i
		case "1":
			dayCol = i
		case "2":
			nightCol = i
		}
	}
	if dateCol < 0 || dayCol < 0 || nightCol < 0 {
		return nil, fmt.Errorf("calendar requires columns Date, 1, 2; got %v", rows[0])
	}

	assignments := make([]DayAssignment, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) <= dateCol || len(row) <= dayCol || len(row) <= nightCol {
			continue
		}
		raw := strings.TrimSpace(row[dateCol])
		if raw == "" {
			continue
		}
		date, err := parseCalendarDate(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q: %w", i+2, raw, err)
		}
		assignments = append(assignments, DayAssignment{
			Date:  date,
			Day:   strings.TrimSpace(row[dayCol]),
			Night: strings.TrimSpace(row[nightCol]),
		})
	}

	return New(assignments), nil
}

func parseCalendarDate(s string) (time.Time, error) {
	for _, layout := range []string{"1/2/06", "1/2/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

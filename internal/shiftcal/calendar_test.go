package shiftcal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalendar() *Calendar {
	return New([]DayAssignment{
		{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Day: "Red", Night: "Blue"},
		{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Day: "Green", Night: "Red"},
	})
}

func TestCalendar_Resolve(t *testing.T) {
	cal := testCalendar()

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{
			name: "day shift start boundary",
			ts:   time.Date(2024, 1, 10, 7, 0, 0, 0, time.UTC),
			want: "Red",
		},
		{
			name: "hour before day shift is night",
			ts:   time.Date(2024, 1, 10, 6, 59, 0, 0, time.UTC),
			want: "Blue",
		},
		{
			name: "last hour of day shift",
			ts:   time.Date(2024, 1, 10, 18, 59, 59, 0, time.UTC),
			want: "Red",
		},
		{
			name: "day shift end boundary is night",
			ts:   time.Date(2024, 1, 10, 19, 0, 0, 0, time.UTC),
			want: "Blue",
		},
		{
			name: "midnight is night",
			ts:   time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
			want: "Red",
		},
		{
			name: "date not in calendar",
			ts:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			want: ShiftUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.Resolve(tt.ts))
		})
	}
}

func TestParse(t *testing.T) {
	csvData := "Date,1,2\n1/10/24,Red,Blue\n1/11/24,Green,Red\n"

	cal, err := Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, cal.Len())
	assert.Equal(t, "Red", cal.Resolve(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Red", cal.Resolve(time.Date(2024, 1, 11, 22, 0, 0, 0, time.UTC)))
}

func TestParse_BOMHeader(t *testing.T) {
	csvData := "\uFEFFDate,1,2\n1/10/24,Red,Blue\n"

	cal, err := Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, "Blue", cal.Resolve(time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC)))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csvData string
		wantErr string
	}{
		{
			name:    "empty file",
			csvData: "",
			wantErr: "empty calendar",
		},
		{
			name:    "missing slot column",
			csvData: "Date,1\n1/10/24,Red\n",
			wantErr: "requires columns",
		},
		{
			name:    "bad date",
			csvData: "Date,1,2\nnot-a-date,Red,Blue\n",
			wantErr: "bad date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csvData))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCalendar_LaterEntryOverrides(t *testing.T) {
	cal := New([]DayAssignment{
		{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Day: "Red", Night: "Blue"},
		{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Day: "Green", Night: "Gold"},
	})

	assert.Equal(t, 1, cal.Len())
	assert.Equal(t, "Green", cal.Resolve(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)))
}

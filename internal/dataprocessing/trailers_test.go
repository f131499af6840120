package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardcli/internal/errors"
	"yardcli/internal/shiftcal"
)

func trailerHeader() []string {
	// The real export ships the activity type header with a trailing space.
	return []string{"SHIPMENT_ID", "ACTIVITY TYPE ", "CHECKIN DATE TIME", "CHECKOUT DATE TIME", "Date/Time"}
}

func TestCleanTrailers(t *testing.T) {
	table := NewTable(trailerHeader(), [][]string{
		{"SH001", "CLOSED", "1/10/2024 8:05", "1/10/2024 10:00", "1/10/2024 9:00"},
		{"SH002", "OPEN", "1/10/2024 9:00", "1/10/2024 11:00", "1/10/2024 10:00"},
		{"SH003", "CLOSED", "1/10/2024 20:00", "1/11/2024 1:00", "1/10/2024 23:30"},
	})

	records, err := CleanTrailers(table, testShiftCalendar())
	require.NoError(t, err)
	require.Len(t, records, 2, "only CLOSED events survive")

	assert.Equal(t, "SH001", records[0].ShipmentNum)
	assert.Equal(t, time.Date(2024, 1, 10, 8, 5, 0, 0, time.UTC), records[0].Checkin)
	assert.Equal(t, time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC), records[0].Checkout)
	assert.Equal(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), records[0].Loaded)
	assert.Equal(t, "Red", records[0].Shift)

	assert.Equal(t, "SH003", records[1].ShipmentNum)
	assert.Equal(t, "Blue", records[1].Shift, "20:00 checkin is the night slot")
}

func TestCleanTrailers_ClosedMatchIsExact(t *testing.T) {
	table := NewTable(trailerHeader(), [][]string{
		{"SH001", "closed", "1/10/2024 8:05", "1/10/2024 10:00", "1/10/2024 9:00"},
		{"SH002", "CLOSED ", "1/10/2024 8:05", "1/10/2024 10:00", "1/10/2024 9:00"},
	})

	records, err := CleanTrailers(table, testShiftCalendar())
	require.NoError(t, err)
	assert.Empty(t, records, "case or whitespace variants do not match")
}

func TestCleanTrailers_DedupKeepsLatestEvent(t *testing.T) {
	table := NewTable(trailerHeader(), [][]string{
		{"SH001", "CLOSED", "1/10/2024 8:05", "1/10/2024 10:00", "1/10/2024 9:00"},
		{"SH001", "CLOSED", "1/10/2024 14:00", "1/10/2024 16:00", "1/10/2024 15:00"},
		{"SH001", "CLOSED", "1/10/2024 11:00", "1/10/2024 13:00", "1/10/2024 12:00"},
	})

	records, err := CleanTrailers(table, testShiftCalendar())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC), records[0].Loaded)
	assert.Equal(t, time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC), records[0].Checkin)
}

func TestCleanTrailers_DropsIncompleteRows(t *testing.T) {
	table := NewTable(trailerHeader(), [][]string{
		{"SH001", "CLOSED", "", "1/10/2024 10:00", "1/10/2024 9:00"},
		{"SH002", "CLOSED", "1/10/2024 8:05", "", "1/10/2024 9:00"},
		{"SH003", "CLOSED", "1/10/2024 8:05", "1/10/2024 10:00", ""},
		{"", "CLOSED", "1/10/2024 8:05", "1/10/2024 10:00", "1/10/2024 9:00"},
		{"SH005", "CLOSED", "1/10/2024 8:05", "1/10/2024 10:00", "1/10/2024 9:00"},
	})

	records, err := CleanTrailers(table, testShiftCalendar())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "SH005", records[0].ShipmentNum)
}

func TestCleanTrailers_MalformedCheckinInDroppedDuplicateIgnored(t *testing.T) {
	// Checkin/checkout parse after dedup, so a malformed timestamp on a
	// superseded duplicate does not fail the batch.
	table := NewTable(trailerHeader(), [][]string{
		{"SH001", "CLOSED", "garbage", "1/10/2024 10:00", "1/10/2024 9:00"},
		{"SH001", "CLOSED", "1/10/2024 14:00", "1/10/2024 16:00", "1/10/2024 15:00"},
	})

	records, err := CleanTrailers(table, testShiftCalendar())
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestCleanTrailers_SchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		table  *Table
		column string
	}{
		{
			name:   "missing shipment column",
			table:  NewTable([]string{"ACTIVITY TYPE ", "CHECKIN DATE TIME", "CHECKOUT DATE TIME", "Date/Time"}, nil),
			column: "SHIPMENT_ID",
		},
		{
			name: "unparseable event time fails batch",
			table: NewTable(trailerHeader(), [][]string{
				{"SH001", "CLOSED", "1/10/2024 8:05", "1/10/2024 10:00", "garbage"},
			}),
			column: "Date/Time",
		},
		{
			name: "unparseable checkin on kept row fails batch",
			table: NewTable(trailerHeader(), [][]string{
				{"SH001", "CLOSED", "garbage", "1/10/2024 10:00", "1/10/2024 9:00"},
			}),
			column: "CHECKIN DATE TIME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := CleanTrailers(tt.table, testShiftCalendar())
			require.Error(t, err)
			assert.Nil(t, records)

			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errors.ErrTypeSchema, appErr.Type)
			assert.Equal(t, tt.column, appErr.Context["column"])
			assert.Equal(t, "trailer activity", appErr.Context["file"])
		})
	}
}

func TestCleanTrailers_UnknownShiftDate(t *testing.T) {
	table := NewTable(trailerHeader(), [][]string{
		{"SH001", "CLOSED", "6/1/2024 8:05", "6/1/2024 10:00", "6/1/2024 9:00"},
	})

	records, err := CleanTrailers(table, testShiftCalendar())
	require.NoError(t, err)
	assert.Equal(t, shiftcal.ShiftUnknown, records[0].Shift)
}

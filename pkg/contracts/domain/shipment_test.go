package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyOrder(t *testing.T) {
	tests := []struct {
		name     string
		orderNum string
		want     OrderType
	}{
		{"shuttle prefix", "0212345", OrderTypeShuttle},
		{"customer load prefix", "0499001", OrderTypeCustomerLoad},
		{"other prefix", "0700042", OrderTypeUnknown},
		{"prefix appears later", "1102345", OrderTypeUnknown},
		{"empty string", "", OrderTypeUnknown},
		{"single character", "0", OrderTypeUnknown},
		{"exactly the prefix", "02", OrderTypeShuttle},
		{"exactly the other prefix", "04", OrderTypeCustomerLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyOrder(tt.orderNum))
		})
	}
}

func TestComplianceRecord_CSVRow(t *testing.T) {
	checkin := time.Date(2024, 1, 10, 8, 5, 0, 0, time.UTC)
	checkout := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	loaded := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	dwell := 1.0

	rec := ComplianceRecord{
		ShipmentNum:   "SH001",
		OrderNum:      "0411111",
		Appointment:   time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
		Required:      time.Date(2024, 1, 10, 8, 15, 0, 0, time.UTC),
		Checkin:       &checkin,
		Compliance:    ComplianceOnTime,
		DwellHours:    &dwell,
		Checkout:      &checkout,
		Carrier:       "Knight",
		VisitType:     "LIVE",
		Loaded:        &loaded,
		Shift:         "Red",
		ScheduledDate: "01/10/2024",
		Week:          2,
		Month:         1,
	}

	row := rec.CSVRow()
	require.Len(t, row, len(ComplianceHeader))
	assert.Equal(t, "SH001", row[0])
	assert.Equal(t, "2024-01-10 08:05:00", row[4])
	assert.Equal(t, "On Time", row[5])
	assert.Equal(t, "1.00", row[6])
	assert.Equal(t, "2", row[13])
}

func TestComplianceRecord_CSVRow_NilFields(t *testing.T) {
	rec := ComplianceRecord{
		ShipmentNum: "SH001",
		Compliance:  ComplianceLate,
	}

	row := rec.CSVRow()
	require.Len(t, row, len(ComplianceHeader))
	assert.Equal(t, "", row[4], "nil checkin is an empty cell")
	assert.Equal(t, "", row[6], "nil dwell is an empty cell")
	assert.Equal(t, "Late", row[5])
}

func TestRecord_CSVRowLengths(t *testing.T) {
	assert.Len(t, LoadRecord{}.CSVRow(), len(LoadTimeHeader))
	assert.Len(t, OrderRecord{}.CSVRow(), len(OrderHeader))
	assert.Len(t, TrailerRecord{}.CSVRow(), len(TrailerHeader))
}

func TestLoadRecord_CSVRow(t *testing.T) {
	rec := LoadRecord{OrderNum: "0212345", LoadMinutes: 10, Shift: "Red", OrderType: OrderTypeShuttle}
	assert.Equal(t, []string{"0212345", "10.00", "Red", "Shuttle"}, rec.CSVRow())
}

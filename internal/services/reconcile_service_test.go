package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardcli/internal/dataprocessing"
	"yardcli/internal/shiftcal"
	"yardcli/pkg/contracts/domain"
)

func testShiftCalendar() *shiftcal.Calendar {
	return shiftcal.New([]shiftcal.DayAssignment{
		{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Day: "Alpha", Night: "Bravo"},
		{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Day: "Charlie", Night: "Delta"},
	})
}

func ordersTable() *dataprocessing.Table {
	return dataprocessing.NewTable(
		[]string{"Shipment #", "SAP Delivery # (Order#)", "Appointment Date", "Carrier", "Appointment Type"},
		[][]string{
			{"S100", "O100", "2024-01-10 08:00:00", "Knight Swift", "LIVE"},
			{"S200", "O200", "2024-01-10 14:00:00", "Schneider", "DROP"},
		},
	)
}

func trailersTable() *dataprocessing.Table {
	return dataprocessing.NewTable(
		[]string{"SHIPMENT_ID", "ACTIVITY TYPE", "CHECKIN DATE TIME", "CHECKOUT DATE TIME", "Date/Time"},
		[][]string{
			{"S100", "CLOSED", "2024-01-10 08:05:00", "2024-01-10 11:00:00", "2024-01-10 09:15:00"},
		},
	)
}

func activityTable() *dataprocessing.Table {
	return dataprocessing.NewTable(
		[]string{"Order #", "Create DateTime"},
		[][]string{
			{"O100", "2024-01-10 08:00:00"},
			{"O100", "2024-01-10 08:42:00"},
		},
	)
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		input   string
		want    Source
		wantErr bool
	}{
		{input: "activity", want: SourceActivity},
		{input: "orders", want: SourceOrders},
		{input: "trailers", want: SourceTrailers},
		{input: "tickets", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSource(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconcileService_ComplianceNotReady(t *testing.T) {
	svc := NewReconcileService(testShiftCalendar(), slog.Default())

	_, err := svc.Compliance()
	assert.ErrorIs(t, err, ErrTableNotReady)
}

func TestReconcileService_Ingest(t *testing.T) {
	svc := NewReconcileService(testShiftCalendar(), slog.Default())
	ctx := context.Background()

	require.NoError(t, svc.Ingest(ctx, SourceOrders, ordersTable()))
	require.NoError(t, svc.Ingest(ctx, SourceTrailers, trailersTable()))
	require.NoError(t, svc.Ingest(ctx, SourceActivity, activityTable()))

	compliance, err := svc.Compliance()
	require.NoError(t, err)
	require.Len(t, compliance, 1, "order without a trailer match should be pruned")

	rec := compliance[0]
	assert.Equal(t, "S100", rec.ShipmentNum)
	assert.Equal(t, domain.ComplianceOnTime, rec.Compliance)
	require.NotNil(t, rec.DwellHours)
	assert.InDelta(t, 1.25, *rec.DwellHours, 0.001)
	assert.Equal(t, "Alpha", rec.Shift)

	loads := svc.Loads()
	require.Len(t, loads, 1)
	assert.Equal(t, "O100", loads[0].OrderNum)
	assert.InDelta(t, 42.0, loads[0].LoadMinutes, 0.001)

	assert.Len(t, svc.Orders(), 2)
	assert.Len(t, svc.Trailers(), 1)
}

func TestReconcileService_Ingest_RejectedUploadKeepsTables(t *testing.T) {
	svc := NewReconcileService(testShiftCalendar(), slog.Default())
	ctx := context.Background()

	require.NoError(t, svc.Ingest(ctx, SourceOrders, ordersTable()))
	require.NoError(t, svc.Ingest(ctx, SourceTrailers, trailersTable()))

	before, err := svc.Compliance()
	require.NoError(t, err)
	require.Len(t, before, 1)

	// Missing the carrier column, so cleaning must fail.
	bad := dataprocessing.NewTable(
		[]string{"Shipment #", "SAP Delivery # (Order#)", "Appointment Date", "Appointment Type"},
		[][]string{{"S300", "O300", "2024-01-11 09:00:00", "LIVE"}},
	)
	err = svc.Ingest(ctx, SourceOrders, bad)
	require.Error(t, err)

	after, err := svc.Compliance()
	require.NoError(t, err)
	assert.Equal(t, before, after, "rejected upload must not change the compliance table")
	assert.Len(t, svc.Orders(), 2, "rejected upload must not change the order table")
}

func TestReconcileService_Ingest_UnknownSource(t *testing.T) {
	svc := NewReconcileService(testShiftCalendar(), slog.Default())

	err := svc.Ingest(context.Background(), Source("tickets"), ordersTable())
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestReconcileService_Status(t *testing.T) {
	svc := NewReconcileService(testShiftCalendar(), slog.Default())

	status := svc.Status()
	assert.Equal(t, int64(0), status.Runs)
	assert.Zero(t, status.Orders)

	require.NoError(t, svc.Ingest(context.Background(), SourceOrders, ordersTable()))

	status = svc.Status()
	assert.Equal(t, int64(1), status.Runs)
	assert.Equal(t, 2, status.Orders)
	assert.False(t, status.LastRun.IsZero())
}

func writeTestCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReconcileService_ProcessFiles(t *testing.T) {
	dir := t.TempDir()

	activity := writeTestCSV(t, dir, "activity.csv",
		"Order #,Create DateTime\n"+
			"O100,2024-01-10 08:00:00\n"+
			"O100,2024-01-10 08:42:00\n")
	orders := writeTestCSV(t, dir, "orders.csv",
		"Shipment #,SAP Delivery # (Order#),Appointment Date,Carrier,Appointment Type\n"+
			"S100,O100,2024-01-10 08:00:00,Knight Swift,LIVE\n")
	trailers := writeTestCSV(t, dir, "trailers.csv",
		"SHIPMENT_ID,ACTIVITY TYPE,CHECKIN DATE TIME,CHECKOUT DATE TIME,Date/Time\n"+
			"S100,CLOSED,2024-01-10 08:05:00,2024-01-10 11:00:00,2024-01-10 09:15:00\n")

	svc := NewReconcileService(testShiftCalendar(), slog.Default())
	require.NoError(t, svc.ProcessFiles(context.Background(), activity, orders, trailers))

	compliance, err := svc.Compliance()
	require.NoError(t, err)
	require.Len(t, compliance, 1)
	assert.Equal(t, "S100", compliance[0].ShipmentNum)
	assert.Len(t, svc.Loads(), 1)
}

func TestReconcileService_ProcessFiles_MissingFileKeepsState(t *testing.T) {
	dir := t.TempDir()

	activity := writeTestCSV(t, dir, "activity.csv",
		"Order #,Create DateTime\nO100,2024-01-10 08:00:00\n")
	orders := writeTestCSV(t, dir, "orders.csv",
		"Shipment #,SAP Delivery # (Order#),Appointment Date,Carrier,Appointment Type\n"+
			"S100,O100,2024-01-10 08:00:00,Knight Swift,LIVE\n")

	svc := NewReconcileService(testShiftCalendar(), slog.Default())
	require.NoError(t, svc.Ingest(context.Background(), SourceOrders, ordersTable()))

	err := svc.ProcessFiles(context.Background(), activity, orders, filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	assert.Len(t, svc.Orders(), 2, "failed batch must not replace existing tables")
	assert.Empty(t, svc.Loads())
}

package dataprocessing

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"yardcli/internal/errors"
	"yardcli/pkg/contracts/domain"
)

// Raw column names of the order/appointment export.
const (
	orderFileLabel = "order view"

	colShipmentNum = "Shipment #"
	colSAPDelivery = "SAP Delivery # (Order#)"
	colAppointment = "Appointment Date"
	colCarrier     = "Carrier"
	colVisitType   = "Appointment Type"
)

// VisitTypeLive marks a live-load appointment; the driver waits while the
// trailer is loaded, so the checkin grace window is 15 minutes instead of
// the 24 hours allowed for drop trailers.
const VisitTypeLive = "LIVE"

const (
	liveGrace = 15 * time.Minute
	dropGrace = 24 * time.Hour
)

// scheduledDateFormat matches the dashboard's m/d/Y date filter values.
const scheduledDateFormat = "01/02/2006"

// CleanOrders reduces the raw order/appointment export to one OrderRecord
// per shipment. Rescheduled shipments appear multiple times; the record
// with the latest appointment wins. Dedup runs before the completeness
// check: if the winning row is missing a kept field, the whole shipment is
// dropped rather than falling back to an older complete row. An
// unparseable appointment fails the whole batch.
func CleanOrders(t *Table) ([]domain.OrderRecord, error) {
	cols := make(map[string]int, 5)
	for _, name := range []string{colShipmentNum, colSAPDelivery, colAppointment, colCarrier, colVisitType} {
		idx, ok := t.Column(name)
		if !ok {
			return nil, errors.NewSchemaError(orderFileLabel, name, "required column is missing")
		}
		cols[name] = idx
	}

	byShipment := make(map[string]domain.OrderRecord)

	for i := 0; i < t.Len(); i++ {
		shipment := t.Cell(i, cols[colShipmentNum])
		orderNum := t.Cell(i, cols[colSAPDelivery])
		rawAppt := t.Cell(i, cols[colAppointment])
		carrier := t.Cell(i, cols[colCarrier])
		visitType := t.Cell(i, cols[colVisitType])

		// A row without a shipment id or appointment can never win the
		// dedup, so it is safe to skip here. Other empty fields must wait
		// until after dedup so an incomplete row still shadows its older
		// duplicates.
		if shipment == "" || rawAppt == "" {
			continue
		}

		appointment, err := parseTimestamp(rawAppt)
		if err != nil {
			return nil, errors.NewSchemaError(orderFileLabel, colAppointment,
				fmt.Sprintf("row %d: %v", i+2, err))
		}

		// Keep the latest appointment per shipment. Ties keep the earlier
		// row, matching a stable descending sort with keep-first.
		if existing, seen := byShipment[shipment]; seen && !appointment.After(existing.Appointment) {
			continue
		}

		_, week := appointment.ISOWeek()

		byShipment[shipment] = domain.OrderRecord{
			ShipmentNum:   shipment,
			OrderNum:      orderNum,
			Appointment:   appointment,
			Required:      requiredTime(appointment, visitType),
			Carrier:       carrier,
			VisitType:     visitType,
			ScheduledDate: appointment.Format(scheduledDateFormat),
			Week:          week,
			Month:         int(appointment.Month()),
		}
	}

	records := make([]domain.OrderRecord, 0, len(byShipment))
	for _, rec := range byShipment {
		// Drop the shipment if its winning row is incomplete.
		if rec.OrderNum == "" || rec.Carrier == "" || rec.VisitType == "" {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ShipmentNum < records[j].ShipmentNum
	})

	slog.Debug("order view cleaned",
		slog.Int("raw_rows", t.Len()),
		slog.Int("shipments", len(records)))

	return records, nil
}

// requiredTime derives the checkin deadline from the appointment.
func requiredTime(appointment time.Time, visitType string) time.Time {
	if visitType == VisitTypeLive {
		return appointment.Add(liveGrace)
	}
	return appointment.Add(dropGrace)
}

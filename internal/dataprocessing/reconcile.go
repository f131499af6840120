package dataprocessing

import (
	"log/slog"
	"time"

	"yardcli/pkg/contracts/domain"
)

// Reconcile left-joins cleaned order records onto cleaned trailer records
// by shipment number and derives the compliance and dwell columns. Orders
// drive the join, so every order appears at most once; compliance is
// computed over the full join and rows with no resolved checkin are then
// pruned, so an order with no trailer match never reaches the final
// table. The result preserves the input order of orders.
func Reconcile(orders []domain.OrderRecord, trailers []domain.TrailerRecord) []domain.ComplianceRecord {
	byShipment := make(map[string]domain.TrailerRecord, len(trailers))
	for _, tr := range trailers {
		byShipment[tr.ShipmentNum] = tr
	}

	records := make([]domain.ComplianceRecord, 0, len(orders))
	matched := 0

	for _, ord := range orders {
		rec := domain.ComplianceRecord{
			ShipmentNum:   ord.ShipmentNum,
			OrderNum:      ord.OrderNum,
			Appointment:   ord.Appointment,
			Required:      ord.Required,
			Carrier:       ord.Carrier,
			VisitType:     ord.VisitType,
			ScheduledDate: ord.ScheduledDate,
			Week:          ord.Week,
			Month:         ord.Month,
		}

		if tr, ok := byShipment[ord.ShipmentNum]; ok {
			checkin, checkout, loaded := tr.Checkin, tr.Checkout, tr.Loaded
			rec.Checkin = &checkin
			rec.Checkout = &checkout
			rec.Loaded = &loaded
			rec.Shift = tr.Shift
			matched++
		}

		rec.Compliance = complianceOf(rec.Required, rec.Checkin)
		rec.DwellHours = dwellHours(rec)

		// Two-stage filter: compliance was derived over the full left
		// join, but unmatched shipments carry no yard timeline and are
		// dropped from the final table.
		if rec.Checkin == nil {
			continue
		}
		records = append(records, rec)
	}

	slog.Debug("reconciliation complete",
		slog.Int("orders", len(orders)),
		slog.Int("trailers", len(trailers)),
		slog.Int("matched", matched),
		slog.Int("rows", len(records)))

	return records
}

// complianceOf classifies a shipment as on time when its trailer checked
// in by the required deadline. A missing checkin is Late, not unknown.
func complianceOf(required time.Time, checkin *time.Time) domain.Compliance {
	if checkin != nil && !required.Before(*checkin) {
		return domain.ComplianceOnTime
	}
	return domain.ComplianceLate
}

// dwellHours measures how long the shipment sat before loading finished:
// from the appointment when it arrived on time, from checkin when it was
// late. Negative spans mean the loaded timestamp predates the reference
// time, a data entry inconsistency that must not poison downstream
// averages, so they resolve to nil like a missing loaded time.
func dwellHours(rec domain.ComplianceRecord) *float64 {
	if rec.Loaded == nil {
		return nil
	}

	var ref time.Time
	switch rec.Compliance {
	case domain.ComplianceOnTime:
		ref = rec.Appointment
	case domain.ComplianceLate:
		if rec.Checkin == nil {
			return nil
		}
		ref = *rec.Checkin
	default:
		return nil
	}

	dwell := round2(rec.Loaded.Sub(ref).Hours())
	if dwell < 0 {
		return nil
	}
	return &dwell
}

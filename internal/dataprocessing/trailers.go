package dataprocessing

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"yardcli/internal/errors"
	"yardcli/internal/shiftcal"
	"yardcli/pkg/contracts/domain"
)

// Raw column names of the trailer activity export. The header of the
// activity type column ships with a trailing space; lookup normalizes it.
const (
	trailerFileLabel = "trailer activity"

	colShipmentID   = "SHIPMENT_ID"
	colActivityType = "ACTIVITY TYPE"
	colCheckin      = "CHECKIN DATE TIME"
	colCheckout     = "CHECKOUT DATE TIME"
	colEventTime    = "Date/Time"
)

// activityClosed is the only event status that represents a completed
// trailer visit. Matched exactly as exported, no trimming.
const activityClosed = "CLOSED"

// trailerEvent is a CLOSED event surviving the null filter, prior to
// dedup and timestamp parsing of the checkin/checkout fields.
type trailerEvent struct {
	shipment string
	checkin  string
	checkout string
	loaded   time.Time
	row      int
}

// CleanTrailers reduces the raw trailer event log to one TrailerRecord
// per shipment: the latest CLOSED event, with its checkin, checkout and
// loaded timestamps and the shift on duty at checkin. Rows missing any
// kept field are dropped; unparseable timestamps on surviving rows fail
// the whole batch.
func CleanTrailers(t *Table, cal *shiftcal.Calendar) ([]domain.TrailerRecord, error) {
	cols := make(map[string]int, 5)
	for _, name := range []string{colShipmentID, colActivityType, colCheckin, colCheckout, colEventTime} {
		idx, ok := t.Column(name)
		if !ok {
			return nil, errors.NewSchemaError(trailerFileLabel, name, "required column is missing")
		}
		cols[name] = idx
	}

	latest := make(map[string]trailerEvent)

	for i := 0; i < t.Len(); i++ {
		if t.Cell(i, cols[colActivityType]) != activityClosed {
			continue
		}

		shipment := t.Cell(i, cols[colShipmentID])
		checkin := t.Cell(i, cols[colCheckin])
		checkout := t.Cell(i, cols[colCheckout])
		rawEvent := t.Cell(i, cols[colEventTime])

		if shipment == "" || checkin == "" || checkout == "" || rawEvent == "" {
			continue
		}

		loaded, err := parseTimestamp(rawEvent)
		if err != nil {
			return nil, errors.NewSchemaError(trailerFileLabel, colEventTime,
				fmt.Sprintf("row %d: %v", i+2, err))
		}

		// Latest event wins; ties keep the earlier row.
		if existing, seen := latest[shipment]; seen && !loaded.After(existing.loaded) {
			continue
		}
		latest[shipment] = trailerEvent{
			shipment: shipment,
			checkin:  checkin,
			checkout: checkout,
			loaded:   loaded,
			row:      i,
		}
	}

	events := make([]trailerEvent, 0, len(latest))
	for _, ev := range latest {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].shipment < events[j].shipment
	})

	records := make([]domain.TrailerRecord, 0, len(events))
	for _, ev := range events {
		checkin, err := parseTimestamp(ev.checkin)
		if err != nil {
			return nil, errors.NewSchemaError(trailerFileLabel, colCheckin,
				fmt.Sprintf("row %d: %v", ev.row+2, err))
		}
		checkout, err := parseTimestamp(ev.checkout)
		if err != nil {
			return nil, errors.NewSchemaError(trailerFileLabel, colCheckout,
				fmt.Sprintf("row %d: %v", ev.row+2, err))
		}

		records = append(records, domain.TrailerRecord{
			ShipmentNum: ev.shipment,
			Checkin:     checkin,
			Checkout:    checkout,
			Loaded:      ev.loaded,
			Shift:       cal.Resolve(checkin),
		})
	}

	slog.Debug("trailer activity cleaned",
		slog.Int("raw_rows", t.Len()),
		slog.Int("shipments", len(records)))

	return records, nil
}

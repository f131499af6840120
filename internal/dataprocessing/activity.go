package dataprocessing

import (
	"fmt"
	"log/slog"
	"time"

	"yardcli/internal/errors"
	"yardcli/internal/shiftcal"
	"yardcli/pkg/contracts/domain"
)

// Raw column names of the order activity export.
const (
	activityFileLabel = "activity tracker"

	colOrderNum       = "Order #"
	colCreateDateTime = "Create DateTime"
)

// orderActivity accumulates the event span for one order while scanning
// the raw log.
type orderActivity struct {
	first time.Time
	last  time.Time
	shift string
}

// CleanActivity reduces the raw order activity event log to one
// LoadRecord per order. Load time is the span between the order's first
// and last event in minutes; shift and order type come from the first
// event seen in input order, which is deterministic though an order whose
// events straddle a shift change is inherently ambiguous. Any
// unparseable timestamp fails the whole batch.
func CleanActivity(t *Table, cal *shiftcal.Calendar) ([]domain.LoadRecord, error) {
	orderCol, ok := t.Column(colOrderNum)
	if !ok {
		return nil, errors.NewSchemaError(activityFileLabel, colOrderNum, "required column is missing")
	}
	createdCol, ok := t.Column(colCreateDateTime)
	if !ok {
		return nil, errors.NewSchemaError(activityFileLabel, colCreateDateTime, "required column is missing")
	}

	spans := make(map[string]*orderActivity)
	var order []string

	for i := 0; i < t.Len(); i++ {
		orderNum := t.Cell(i, orderCol)
		if orderNum == "" {
			// Padding rows at the bottom of exports carry timestamps but
			// no order; nothing to assign them to.
			continue
		}

		created, err := parseTimestamp(t.Cell(i, createdCol))
		if err != nil {
			return nil, errors.NewSchemaError(activityFileLabel, colCreateDateTime,
				fmt.Sprintf("row %d: %v", i+2, err))
		}

		span, seen := spans[orderNum]
		if !seen {
			spans[orderNum] = &orderActivity{
				first: created,
				last:  created,
				shift: cal.Resolve(created),
			}
			order = append(order, orderNum)
			continue
		}
		if created.Before(span.first) {
			span.first = created
		}
		if created.After(span.last) {
			span.last = created
		}
	}

	records := make([]domain.LoadRecord, 0, len(order))
	for _, orderNum := range order {
		span := spans[orderNum]
		records = append(records, domain.LoadRecord{
			OrderNum:    orderNum,
			LoadMinutes: round2(span.last.Sub(span.first).Minutes()),
			Shift:       span.shift,
			OrderType:   domain.ClassifyOrder(orderNum),
		})
	}

	slog.Debug("activity log cleaned",
		slog.Int("events", t.Len()),
		slog.Int("orders", len(records)))

	return records, nil
}

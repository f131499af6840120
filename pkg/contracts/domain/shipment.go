package domain

import (
	"fmt"
	"time"
)

// Canonical column names for the cleaned tables. Export code serializes
// records under these exact names; nothing downstream renames columns.
var (
	LoadTimeHeader = []string{"Order Num", "Load Time (minutes)", "Shift", "Order Type"}

	OrderHeader = []string{
		"Shipment Num", "Order Num", "Appointment DateTime", "Required DateTime",
		"Carrier", "Visit Type", "Scheduled Date", "Week", "Month",
	}

	TrailerHeader = []string{
		"Shipment Num", "Checkin DateTime", "Checkout DateTime", "Loaded DateTime", "Shift",
	}

	ComplianceHeader = []string{
		"Shipment Num", "Order Num", "Appointment DateTime", "Required DateTime",
		"Checkin DateTime", "Compliance", "Dwell Time (Hours)", "Checkout DateTime",
		"Carrier", "Visit Type", "Loaded DateTime", "Shift", "Scheduled Date",
		"Week", "Month",
	}
)

// TimestampFormat is the wire format for datetime cells in exported tables.
const TimestampFormat = "2006-01-02 15:04:05"

// OrderType classifies an order by the prefix of its order number.
type OrderType string

const (
	OrderTypeShuttle      OrderType = "Shuttle"
	OrderTypeCustomerLoad OrderType = "Customer Load"
	OrderTypeUnknown      OrderType = "Unknown"
)

// ClassifyOrder derives the order type from the order number prefix.
// "02" is a shuttle move between facilities, "04" a customer load.
func ClassifyOrder(orderNum string) OrderType {
	if len(orderNum) >= 2 {
		switch orderNum[:2] {
		case "02":
			return OrderTypeShuttle
		case "04":
			return OrderTypeCustomerLoad
		}
	}
	return OrderTypeUnknown
}

// Compliance is the on-time classification of a shipment.
type Compliance string

const (
	ComplianceOnTime Compliance = "On Time"
	ComplianceLate   Compliance = "Late"
)

// LoadRecord is the cleaned activity log reduced to one row per order.
// LoadMinutes is the span between the first and last activity event for
// the order, a proxy for warehouse pick/pack duration.
type LoadRecord struct {
	OrderNum    string    `json:"order_num" validate:"required"`
	LoadMinutes float64   `json:"load_minutes" validate:"min=0"`
	Shift       string    `json:"shift"`
	OrderType   OrderType `json:"order_type"`
}

// OrderRecord is the cleaned order/appointment export reduced to one row
// per shipment, keeping the latest appointment when a shipment was
// rescheduled.
type OrderRecord struct {
	ShipmentNum   string    `json:"shipment_num" validate:"required"`
	OrderNum      string    `json:"order_num" validate:"required"`
	Appointment   time.Time `json:"appointment" validate:"required"`
	Required      time.Time `json:"required" validate:"required"`
	Carrier       string    `json:"carrier" validate:"required"`
	VisitType     string    `json:"visit_type" validate:"required"`
	ScheduledDate string    `json:"scheduled_date"`
	Week          int       `json:"week" validate:"min=1,max=53"`
	Month         int       `json:"month" validate:"min=1,max=12"`
}

// TrailerRecord is the cleaned trailer activity export reduced to one row
// per shipment, from the latest CLOSED event for that shipment.
type TrailerRecord struct {
	ShipmentNum string    `json:"shipment_num" validate:"required"`
	Checkin     time.Time `json:"checkin" validate:"required"`
	Checkout    time.Time `json:"checkout" validate:"required"`
	Loaded      time.Time `json:"loaded" validate:"required"`
	Shift       string    `json:"shift"`
}

// ComplianceRecord is one row of the reconciled shipment table. Trailer
// fields are pointers because compliance is derived over the full left
// join before unmatched rows are pruned; in the final table Checkin is
// always set.
type ComplianceRecord struct {
	ShipmentNum   string     `json:"shipment_num"`
	OrderNum      string     `json:"order_num"`
	Appointment   time.Time  `json:"appointment"`
	Required      time.Time  `json:"required"`
	Checkin       *time.Time `json:"checkin"`
	Compliance    Compliance `json:"compliance"`
	DwellHours    *float64   `json:"dwell_hours"`
	Checkout      *time.Time `json:"checkout"`
	Carrier       string     `json:"carrier"`
	VisitType     string     `json:"visit_type"`
	Loaded        *time.Time `json:"loaded"`
	Shift         string     `json:"shift"`
	ScheduledDate string     `json:"scheduled_date"`
	Week          int        `json:"week"`
	Month         int        `json:"month"`
}

// CSVRow serializes the record under LoadTimeHeader column order.
func (r LoadRecord) CSVRow() []string {
	return []string{
		r.OrderNum,
		fmt.Sprintf("%.2f", r.LoadMinutes),
		r.Shift,
		string(r.OrderType),
	}
}

// CSVRow serializes the record under OrderHeader column order.
func (r OrderRecord) CSVRow() []string {
	return []string{
		r.ShipmentNum,
		r.OrderNum,
		r.Appointment.Format(TimestampFormat),
		r.Required.Format(TimestampFormat),
		r.Carrier,
		r.VisitType,
		r.ScheduledDate,
		fmt.Sprintf("%d", r.Week),
		fmt.Sprintf("%d", r.Month),
	}
}

// CSVRow serializes the record under TrailerHeader column order.
func (r TrailerRecord) CSVRow() []string {
	return []string{
		r.ShipmentNum,
		r.Checkin.Format(TimestampFormat),
		r.Checkout.Format(TimestampFormat),
		r.Loaded.Format(TimestampFormat),
		r.Shift,
	}
}

// CSVRow serializes the record under ComplianceHeader column order.
// Nil timestamps and dwell serialize as empty cells.
func (r ComplianceRecord) CSVRow() []string {
	dwell := ""
	if r.DwellHours != nil {
		dwell = fmt.Sprintf("%.2f", *r.DwellHours)
	}
	return []string{
		r.ShipmentNum,
		r.OrderNum,
		r.Appointment.Format(TimestampFormat),
		r.Required.Format(TimestampFormat),
		formatOptional(r.Checkin),
		string(r.Compliance),
		dwell,
		formatOptional(r.Checkout),
		r.Carrier,
		r.VisitType,
		formatOptional(r.Loaded),
		r.Shift,
		r.ScheduledDate,
		fmt.Sprintf("%d", r.Week),
		fmt.Sprintf("%d", r.Month),
	}
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(TimestampFormat)
}

// Package dataprocessing cleans the three warehouse export files and
// reconciles them into the shipment compliance table. It owns the
// complete data lifecycle from raw tabular input to the canonical
// records served to the dashboard.
//
// # Architecture
//
// The package is organized around four pure transformations:
//
// 1. CleanActivity: order activity log → one LoadRecord per order
// 2. CleanOrders: order/appointment export → one OrderRecord per shipment
// 3. CleanTrailers: trailer event log → one TrailerRecord per shipment
// 4. Reconcile: orders left-joined onto trailers with compliance and dwell
//
// Raw input arrives as a Table, a thin ordered-columns-over-string-cells
// structure produced by ReadFile/ReadUpload from .csv or .xlsx exports.
// Joins and dedup are explicit keyed-map operations so the tie-break
// rules (latest appointment, latest event) hold exactly.
//
// # Data Flow
//
//	Raw export → Table → Cleaner → canonical records → Reconcile → ComplianceRecords
//
// # Error Handling
//
// Schema problems are all-or-nothing per file: a missing required column
// or an unparseable timestamp fails the whole cleaning call with an
// AppError naming the file, column and row; no partial table is ever
// returned. Non-fatal conditions (a date missing from the shift calendar,
// an order with no trailer match, a negative dwell span) are absorbed
// into the data as sentinel or nil values.
//
// Each reconciliation run is a fresh computation over immutable inputs;
// nothing in this package holds state between calls.
package dataprocessing

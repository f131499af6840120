// Package exporter provides CSV export functionality for the yard
// compliance reports.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// ReportExporter: Writes the cleaned and reconciled tables to the
// well-known report files (load_times.csv, orders.csv, trailers.csv,
// merged_data.csv).
//
// Example usage:
//
//	reportExporter := exporter.NewReportExporter(paths)
//
//	// Export all four report files after a reconciliation run; large
//	// compliance tables are streamed instead of buffered as rows
//	err := reportExporter.ExportAll(loads, orders, trailers, compliance)
package exporter

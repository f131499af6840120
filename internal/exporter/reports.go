package exporter

import (
	"fmt"

	"yardcli/internal/config"
	"yardcli/pkg/contracts/domain"
)

// ReportExporter writes the cleaned and reconciled tables to the
// well-known CSV report files.
type ReportExporter struct {
	csvWriter *CSVWriter
	paths     *config.Paths
}

// NewReportExporter creates a new report exporter
func NewReportExporter(paths *config.Paths) *ReportExporter {
	return &ReportExporter{
		csvWriter: NewCSVWriter(paths),
		paths:     paths,
	}
}

// ExportLoadTimes writes the cleaned load time records to load_times.csv
func (e *ReportExporter) ExportLoadTimes(records []domain.LoadRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.CSVRow())
	}
	if err := e.csvWriter.WriteSimpleCSV(e.paths.LoadTimesCSV, domain.LoadTimeHeader, rows); err != nil {
		return fmt.Errorf("failed to write load times report: %w", err)
	}
	return nil
}

// ExportOrders writes the cleaned order records to orders.csv
func (e *ReportExporter) ExportOrders(records []domain.OrderRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.CSVRow())
	}
	if err := e.csvWriter.WriteSimpleCSV(e.paths.OrdersCSV, domain.OrderHeader, rows); err != nil {
		return fmt.Errorf("failed to write orders report: %w", err)
	}
	return nil
}

// ExportTrailers writes the cleaned trailer records to trailers.csv
func (e *ReportExporter) ExportTrailers(records []domain.TrailerRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.CSVRow())
	}
	if err := e.csvWriter.WriteSimpleCSV(e.paths.TrailersCSV, domain.TrailerHeader, rows); err != nil {
		return fmt.Errorf("failed to write trailers report: %w", err)
	}
	return nil
}

// ExportCompliance writes the reconciled compliance records to
// merged_data.csv. Written without BOM for better compatibility with
// analysis tools.
func (e *ReportExporter) ExportCompliance(records []domain.ComplianceRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.CSVRow())
	}
	err := e.csvWriter.WriteCSV(e.paths.MergedDataCSV, WriteOptions{
		Headers:   domain.ComplianceHeader,
		Records:   rows,
		Append:    false,
		BOMPrefix: false,
	})
	if err != nil {
		return fmt.Errorf("failed to write compliance report: %w", err)
	}
	return nil
}

// ExportComplianceStreaming writes the compliance report one record at a
// time so large reconciliation runs never buffer the whole table as rows.
// Output is identical to ExportCompliance, BOM-less included.
func (e *ReportExporter) ExportComplianceStreaming(records []domain.ComplianceRecord) error {
	stream, err := e.csvWriter.CreateStreamWriter(e.paths.MergedDataCSV, domain.ComplianceHeader, false)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	for _, record := range records {
		if err := stream.WriteRecord(record.CSVRow()); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}
	return nil
}

// complianceStreamThreshold is the record count above which ExportAll
// streams the compliance table instead of buffering its rows.
const complianceStreamThreshold = 10000

// ExportAll writes all four report files
func (e *ReportExporter) ExportAll(loads []domain.LoadRecord, orders []domain.OrderRecord, trailers []domain.TrailerRecord, compliance []domain.ComplianceRecord) error {
	if err := e.ExportLoadTimes(loads); err != nil {
		return err
	}
	if err := e.ExportOrders(orders); err != nil {
		return err
	}
	if err := e.ExportTrailers(trailers); err != nil {
		return err
	}
	if len(compliance) > complianceStreamThreshold {
		return e.ExportComplianceStreaming(compliance)
	}
	return e.ExportCompliance(compliance)
}

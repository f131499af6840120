package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"yardcli/internal/errors"
)

// ReadFile loads a raw export file into a Table, dispatching on the file
// extension. The warehouse systems hand out both .csv and .xlsx exports.
func ReadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("open %s", path), err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("open %s", path), err)
		}
		defer f.Close()
		return ReadXLSX(f)
	default:
		return nil, errors.NewAppValidationError(fmt.Sprintf("unsupported file type %q, want .csv or .xlsx", filepath.Ext(path)))
	}
}

// ReadUpload parses an uploaded export by its declared filename.
func ReadUpload(filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, errors.NewAppValidationError(fmt.Sprintf("unsupported file type %q, want .csv or .xlsx", filepath.Ext(filename)))
	}
}

// ReadCSV parses CSV content into a Table. The first row is the header;
// fully empty rows are dropped.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("read csv", err)
	}
	if len(records) == 0 {
		return nil, errors.NewAppValidationError("file has no header row")
	}

	rows := make([][]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if rowHasData(row) {
			rows = append(rows, row)
		}
	}

	slog.Debug("csv parsed",
		slog.Int("columns", len(records[0])),
		slog.Int("rows", len(rows)))

	return NewTable(records[0], rows), nil
}

// ReadXLSX parses Excel content into a Table, reading the first sheet.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParsingError("open xlsx", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.NewAppValidationError("workbook has no sheets")
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("read sheet %q", sheet), err)
	}
	if len(records) == 0 {
		return nil, errors.NewAppValidationError("file has no header row")
	}

	rows := make([][]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if rowHasData(row) {
			rows = append(rows, row)
		}
	}

	slog.Debug("xlsx parsed",
		slog.String("sheet", sheet),
		slog.Int("columns", len(records[0])),
		slog.Int("rows", len(rows)))

	return NewTable(records[0], rows), nil
}

func rowHasData(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}

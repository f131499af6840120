package dataprocessing

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	data := "Order #,Create DateTime\n0212345,1/10/2024 8:00\n,\n0212346,1/10/2024 9:00\n"

	table, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Order #", "Create DateTime"}, table.Columns())
	assert.Equal(t, 2, table.Len(), "fully empty rows are dropped")

	col, ok := table.Column("Order #")
	require.True(t, ok)
	assert.Equal(t, "0212345", table.Cell(0, col))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"SHIPMENT_ID", "ACTIVITY TYPE "}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"SH001", "CLOSED"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	col, ok := table.Column("ACTIVITY TYPE")
	require.True(t, ok, "trailing space in header normalizes away")
	assert.Equal(t, "CLOSED", table.Cell(0, col))
}

func TestReadUpload_DispatchesOnExtension(t *testing.T) {
	table, err := ReadUpload("orders.csv", strings.NewReader("Shipment #\nSH001\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = ReadUpload("orders.pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "activity.csv")
	require.NoError(t, os.WriteFile(path, []byte("Order #\n0212345\n"), 0644))

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
}

func TestTable_RaggedRows(t *testing.T) {
	table := NewTable([]string{"A", "B", "C"}, [][]string{{"1", "2"}})

	col, ok := table.Column("C")
	require.True(t, ok)
	assert.Equal(t, "", table.Cell(0, col), "short rows read as empty cells")
}

func TestTable_BOMColumnLookup(t *testing.T) {
	table := NewTable([]string{"ï»¿Create DateTime", "Order #"}, nil)

	_, ok := table.Column("Create DateTime")
	assert.True(t, ok, "mojibake BOM prefix normalizes away")
}

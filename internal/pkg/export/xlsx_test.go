package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTables(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTables(&buf, Table{
		Sheet:   "Matrix",
		Title:   "OPS-A 2025-01",
		Headers: []string{"Date", "Shift"},
		Rows: [][]any{
			{"2025-01-01", "S1"},
			{"2025-01-02", "OFF"},
		},
		Footer: []any{"Planned hours", "8.00"},
	}, Table{
		Sheet:   "Notes",
		Headers: []string{"Key"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Matrix", "Notes"}, f.GetSheetList())

	title, err := f.GetCellValue("Matrix", "A1")
	require.NoError(t, err)
	assert.Equal(t, "OPS-A 2025-01", title)

	header, err := f.GetCellValue("Matrix", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Shift", header)

	second, err := f.GetCellValue("Matrix", "B5")
	require.NoError(t, err)
	assert.Equal(t, "OFF", second)

	footer, err := f.GetCellValue("Matrix", "B7")
	require.NoError(t, err)
	assert.Equal(t, "8.00", footer)
}

func TestWriteTablesRequiresTable(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteTables(&buf))
}

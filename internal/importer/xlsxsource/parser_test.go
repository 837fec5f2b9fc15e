package xlsxsource_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/morsel/internal/importer/xlsxsource"
)

func workbook(t *testing.T, sheets map[string][][]any, order ...string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}

		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return buf
}

func TestParser_Parse(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"Sales": {
			{"product", "price", "quantity", "date", "region"},
			{"pink morsel", "$3.00", "546", "2018-02-06", "north"},
			{"gold morsel", "$9.99", "1", "2018-02-06", "south"},
		},
	}, "Sales")

	table, err := xlsxsource.New().Parse("sales.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, "sales.xlsx", table.Source)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "pink morsel", table.Rows[0].Product)
	assert.Equal(t, "$3.00", table.Rows[0].Price)
	assert.Equal(t, "546", table.Rows[0].Quantity)
	assert.Equal(t, "2018-02-06", table.Rows[0].Date)
	assert.Equal(t, "north", table.Rows[0].Region)
	assert.Equal(t, 2, table.Rows[0].Row)
	assert.Equal(t, 3, table.Rows[1].Row)
}

func TestParser_PicksSheetWithHeader(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"Notes": {
			{"Generated by the till export"},
		},
		"Data": {
			{"Region", "Date", "Quantity", "Price", "Product"},
			{"east", "2021-01-15", "2", "$3.00", "Pink Morsel"},
		},
	}, "Notes", "Data")

	table, err := xlsxsource.New().Parse("sales.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "east", table.Rows[0].Region)
	assert.Equal(t, "Pink Morsel", table.Rows[0].Product)
}

func TestParser_MissingColumns(t *testing.T) {
	buf := workbook(t, map[string][][]any{
		"Sales": {
			{"product", "price"},
			{"pink morsel", "$3.00"},
		},
	}, "Sales")

	_, err := xlsxsource.New().Parse("sales.xlsx", buf)
	assert.EqualError(t, err, "row 1: missing columns: quantity, date, region")
}

func TestParser_NotAWorkbook(t *testing.T) {
	_, err := xlsxsource.New().Parse("sales.xlsx", bytes.NewBufferString("product,price\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open workbook")
}

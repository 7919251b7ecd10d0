package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestWorkbook(t *testing.T) *Workbook {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	_, err := f.NewSheet("Data")
	require.NoError(t, err)

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"prompt", "range", "include"}))
	require.NoError(t, f.SetSheetRow("Data", "A1", &[]interface{}{"item", "price"}))
	require.NoError(t, f.SetSheetRow("Data", "A2", &[]interface{}{"apple", 3}))
	require.NoError(t, f.SetSheetRow("Data", "A3", &[]interface{}{"pear", 4}))

	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "Prices",
		RefersTo: "Data!$A$1:$B$3",
	}))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "Local",
		RefersTo: "Data!$A$2:$A$3",
		Scope:    "Sheet1",
	}))
	require.NoError(t, f.AddTable("Data", &excelize.Table{
		Range: "A1:B3",
		Name:  "Fruit",
	}))

	return NewWorkbook(f)
}

func TestWorkbookScopes(t *testing.T) {
	wb := newTestWorkbook(t)
	assert.Equal(t, []string{"Sheet1", "Data"}, wb.Scopes())
	assert.Equal(t, "Sheet1", wb.ActiveSheet())
}

func TestWorkbookValues(t *testing.T) {
	wb := newTestWorkbook(t)

	values, err := wb.Values("Data", "A2:B3")
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{"apple", int64(3)}, {"pear", int64(4)}}, [][]interface{}(values))

	_, err = wb.Values("Missing", "A1")
	assert.True(t, errors.Is(err, ErrSheetNotFound))

	_, err = wb.Values("Data", "not-an-address")
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestWorkbookValuesByName(t *testing.T) {
	wb := newTestWorkbook(t)

	values, ok, err := wb.ValuesByName("prices", "Sheet1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, values, 3)

	values, ok, err = wb.ValuesByName("Local", "Sheet1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, [][]interface{}{{"apple"}, {"pear"}}, [][]interface{}(values))

	values, ok, err = wb.ValuesByName("Fruit", "Sheet1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "item", values[0][0])

	_, ok, err = wb.ValuesByName("Nothing", "Sheet1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWorkbookChainRows(t *testing.T) {
	wb := newTestWorkbook(t)

	rows, firstRow, err := wb.ChainRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, 1, firstRow)
	assert.Equal(t, [][]string{{"prompt", "range", "include"}}, rows)
}

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/models"
)

func textCell(s string) models.Cell {
	return models.Cell{Value: models.Text(s)}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.xlsx"), "Sheet1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := Read(path, "Other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadHeadersAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.xlsx")
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "id")
	f.SetCellValue("Sheet1", "B1", "") // blank header, column dropped
	f.SetCellValue("Sheet1", "C1", "name")
	f.SetCellValue("Sheet1", "A2", "1")
	f.SetCellValue("Sheet1", "B2", "ignored")
	f.SetCellValue("Sheet1", "C2", "Alice")
	// Row 3 is entirely blank and must be suppressed on read.
	f.SetCellValue("Sheet1", "A4", "2")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := Read(path, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.Headers)
	require.Len(t, ds.Rows, 2)

	v, ok := ds.Rows[0].Get("name")
	require.True(t, ok)
	assert.Equal(t, models.Text("Alice"), v)
	_, ok = ds.Rows[0].Get("")
	assert.False(t, ok)

	// Blank cell under a real header reads back as Null.
	v, ok = ds.Rows[1].Get("name")
	require.True(t, ok)
	assert.True(t, v.IsNull())
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.xlsx")
	columns := []string{"id", "name"}
	grid := [][]models.Cell{
		{textCell("1"), textCell("Alice")},
		{textCell("2"), textCell("Bob")},
	}
	require.NoError(t, Write(path, "Sheet1", columns, grid))

	ds, err := Read(path, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, columns, ds.Headers)
	require.Len(t, ds.Rows, 2)
	v, _ := ds.Rows[1].Get("name")
	assert.Equal(t, models.Text("Bob"), v)
}

func TestWriteTypedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.xlsx")
	columns := []string{"n", "b", "nul"}
	grid := [][]models.Cell{{
		{Value: models.Number(2.5)},
		{Value: models.Bool(true)},
		{Value: models.Null()},
	}}
	require.NoError(t, Write(path, "Data", columns, grid))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.GetCellValue("Data", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2.5", n)
	b, err := f.GetCellValue("Data", "B2")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", b)
	nul, err := f.GetCellValue("Data", "C2")
	require.NoError(t, err)
	assert.Equal(t, "", nul)
}

func TestWriteRenamesDefaultSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, Write(path, "Data", []string{"id"}, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// The fresh workbook's Sheet1 was renamed, not left empty alongside.
	assert.Equal(t, []string{"Data"}, f.GetSheetList())
}

func TestWriteHyperlinkFormula(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.xlsx")
	grid := [][]models.Cell{{
		{Link: &models.Link{Display: `AB"C`, Target: `https://t/AB"C`}},
	}}
	require.NoError(t, Write(path, "Sheet1", []string{"ticket"}, grid))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	formula, err := f.GetCellFormula("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, `HYPERLINK("https://t/AB""C","AB""C")`, formula)
}

func TestWriteUpdatesExistingWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, Write(path, "Sheet1", []string{"id"}, [][]models.Cell{{textCell("1")}}))
	require.NoError(t, Write(path, "Sheet1", []string{"id"}, [][]models.Cell{{textCell("2")}}))

	ds, err := Read(path, "Sheet1")
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	v, _ := ds.Rows[0].Get("id")
	assert.Equal(t, models.Text("2"), v)
}

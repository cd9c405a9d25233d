// Package store reads and writes xlsx workbooks for the merge engine.
//
// Writes go into the existing workbook when one is present, so cell
// styling set up by hand survives successive runs.
package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/models"
)

// ErrNotFound indicates the workbook file or the target sheet does not
// exist yet.
var ErrNotFound = errors.New("workbook or sheet not found")

// Error represents a workbook read or write failure.
type Error struct {
	Path string
	Op   string // "read" or "write"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("workbook %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// defaultSheet is the sheet name excelize creates new workbooks with.
const defaultSheet = "Sheet1"

// Read loads a sheet's header row and data rows. Header cells that are
// blank are dropped, together with the cells below them. Data cells come
// back as Text, or Null when blank; rows that are entirely blank are
// suppressed. Returns ErrNotFound when the file or the sheet is absent.
func Read(path, sheet string) (*models.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, &Error{Path: path, Op: "read", Err: err}
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &Error{Path: path, Op: "read", Err: err}
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, ErrNotFound
	}
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, &Error{Path: path, Op: "read", Err: err}
	}
	if len(cells) == 0 {
		return &models.Dataset{}, nil
	}

	rawHeaders := cells[0]
	var headers []string
	for _, h := range rawHeaders {
		if strings.TrimSpace(h) != "" {
			headers = append(headers, h)
		}
	}

	ds := &models.Dataset{Headers: headers}
	for _, cols := range cells[1:] {
		row := models.NewRow()
		hasData := false
		for i, header := range rawHeaders {
			if strings.TrimSpace(header) == "" {
				continue
			}
			var cell string
			if i < len(cols) {
				cell = cols[i]
			}
			if cell != "" {
				row.Set(header, models.Text(cell))
				hasData = true
			} else {
				row.Set(header, models.Null())
			}
		}
		if hasData {
			ds.Rows = append(ds.Rows, row)
		}
	}
	return ds, nil
}

// Write renders the final grid into the workbook, creating it when absent.
// Values are written into the existing cells, which keeps their styling
// intact. Hyperlink cells become HYPERLINK formulas so the cell shows only
// the display text but is clickable.
func Write(path, sheet string, columns []string, grid [][]models.Cell) error {
	var f *excelize.File
	if _, err := os.Stat(path); err == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return &Error{Path: path, Op: "write", Err: err}
		}
	} else {
		f = excelize.NewFile()
	}
	defer f.Close()

	if err := ensureSheet(f, sheet); err != nil {
		return &Error{Path: path, Op: "write", Err: err}
	}

	for c, name := range columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return &Error{Path: path, Op: "write", Err: err}
		}
		if err := f.SetCellStr(sheet, cell, name); err != nil {
			return &Error{Path: path, Op: "write", Err: err}
		}
	}
	for r, cells := range grid {
		for c, cell := range cells {
			name, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return &Error{Path: path, Op: "write", Err: err}
			}
			if err := writeCell(f, sheet, name, cell); err != nil {
				return &Error{Path: path, Op: "write", Err: err}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return &Error{Path: path, Op: "write", Err: err}
	}
	return nil
}

// ensureSheet makes sheet exist, renaming the default sheet of a fresh
// workbook rather than leaving an empty one behind.
func ensureSheet(f *excelize.File, sheet string) error {
	if idx, err := f.GetSheetIndex(sheet); err == nil && idx >= 0 {
		return nil
	}
	if idx, err := f.GetSheetIndex(defaultSheet); err == nil && idx >= 0 {
		return f.SetSheetName(defaultSheet, sheet)
	}
	_, err := f.NewSheet(sheet)
	return err
}

func writeCell(f *excelize.File, sheet, name string, cell models.Cell) error {
	if cell.Link != nil {
		formula := fmt.Sprintf(`HYPERLINK("%s","%s")`,
			formulaEscape(cell.Link.Target), formulaEscape(cell.Link.Display))
		return f.SetCellFormula(sheet, name, formula)
	}
	switch cell.Value.Kind() {
	case models.KindBool:
		return f.SetCellBool(sheet, name, cell.Value.Bool())
	case models.KindNumber:
		return f.SetCellFloat(sheet, name, cell.Value.Number(), -1, 64)
	case models.KindText:
		return f.SetCellStr(sheet, name, cell.Value.Text())
	default:
		return f.SetCellStr(sheet, name, "")
	}
}

// formulaEscape doubles quotes for embedding in an Excel formula string.
func formulaEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

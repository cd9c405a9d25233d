package engine

import (
	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/models"
)

// LinkSpec maps column names to hyperlink base URLs.
type LinkSpec map[string]string

// Render produces the output grid: one Cell per (row, column) pair, in
// the given column order. A column configured in links renders a non-empty
// value as a hyperlink whose display text is the value and whose target is
// the base URL with the value appended. Everything else passes through as
// its typed value; a column missing from a row renders as Null.
func Render(rows []*models.Row, columns []string, links LinkSpec) [][]models.Cell {
	grid := make([][]models.Cell, len(rows))
	for i, row := range rows {
		cells := make([]models.Cell, len(columns))
		for j, col := range columns {
			v, ok := row.Get(col)
			if !ok {
				continue // zero Cell carries a Null value
			}
			if base, linked := links[col]; linked {
				if text := v.Display(); text != "" {
					cells[j] = models.Cell{Link: &models.Link{
						Display: text,
						Target:  base + text,
					}}
				}
				continue
			}
			cells[j] = models.Cell{Value: v}
		}
		grid[i] = cells
	}
	return grid
}

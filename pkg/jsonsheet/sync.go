package jsonsheet

import (
	"errors"

	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/engine"
	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/models"
	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/record"
	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/store"
)

// Sync parses the raw input records and merges them into the target sheet:
// parse, read the existing dataset, merge rows by primary key, resolve the
// column set and order, render the grid, write the workbook. A workbook or
// sheet that does not exist yet merges against an empty dataset.
func Sync(input []byte, opts Options) error {
	filter, err := engine.NewFilterSpec(opts.Include, opts.IncludeRegex, opts.IncludeSubstr)
	if err != nil {
		return err
	}
	order, err := engine.NewOrderSpec(opts.PKFirst, opts.Order, opts.OrderRegex, opts.OrderSubstr, opts.OrderRest)
	if err != nil {
		return err
	}

	mode := record.ModeArray
	if opts.NDJSON {
		mode = record.ModeNDJSON
	}
	rows, err := record.Parse(input, mode)
	if err != nil {
		return err
	}

	existing, err := store.Read(opts.OutPath, opts.Sheet)
	if errors.Is(err, store.ErrNotFound) {
		existing = &models.Dataset{}
	} else if err != nil {
		return err
	}

	merged := engine.Merge(existing.Rows, rows, opts.PK)
	universe := engine.Universe(existing.Headers, merged, opts.PK)
	columns := order.Columns(filter.Apply(universe, opts.PK), opts.PK)
	grid := engine.Render(merged, columns, engine.LinkSpec(opts.Links))

	return store.Write(opts.OutPath, opts.Sheet, columns, grid)
}

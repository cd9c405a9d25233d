// Package jsonsheet merges flattened JSON records into xlsx sheets.
package jsonsheet

// Options is the resolved, immutable configuration for one run. The CLI
// builds it by overlaying command-line flags onto the config file; the
// engine never consults any other state.
type Options struct {
	// OutPath is the target workbook path. Must end in .xlsx.
	OutPath string
	// Sheet is the target sheet name.
	Sheet string
	// NDJSON selects newline-delimited input parsing.
	NDJSON bool

	// PK lists the primary-key columns; order defines the composite key.
	PK []string
	// PKFirst places primary-key columns ahead of all ordering groups.
	PKFirst bool

	// Include, IncludeRegex, and IncludeSubstr restrict the column set.
	// Filtering is active when any of the three is non-empty.
	Include       []string
	IncludeRegex  []string
	IncludeSubstr []string

	// Order, OrderRegex, and OrderSubstr place columns ahead of the rest.
	Order       []string
	OrderRegex  []string
	OrderSubstr []string
	// OrderRest is the remainder policy: existing, alpha, or none.
	OrderRest string

	// Links maps column names to hyperlink base URLs.
	Links map[string]string
}

// DefaultOptions returns the defaults applied before any config file or
// flag is consulted.
func DefaultOptions() Options {
	return Options{
		Sheet:     "Sheet1",
		PKFirst:   true,
		OrderRest: "existing",
	}
}

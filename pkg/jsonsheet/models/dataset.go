package models

// Dataset is the in-memory contents of one sheet: the header sequence in
// left-to-right order plus the data rows in top-to-bottom order.
type Dataset struct {
	// Headers contains the non-empty header cells of the first row.
	Headers []string
	// Rows contains the data rows below the header row.
	Rows []*Row
}

package models

// Cell is one rendered output cell.
type Cell struct {
	// Value is the typed cell value. Ignored when Link is set.
	Value Value
	// Link, when non-nil, renders the cell as a clickable formula
	// instead of a plain value.
	Link *Link
}

// Link describes a hyperlink cell.
type Link struct {
	// Display is the text shown in the cell.
	Display string
	// Target is the full URL the cell links to.
	Target string
}

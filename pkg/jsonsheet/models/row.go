package models

// Row is an ordered-insertion mapping from column name to Value.
// Keys are unique within a row; re-setting an existing key overwrites
// its value but keeps its original position.
type Row struct {
	keys []string
	vals map[string]Value
}

// NewRow returns an empty Row.
func NewRow() *Row {
	return &Row{vals: make(map[string]Value)}
}

// Set stores v under key, preserving first-insertion order.
func (r *Row) Set(key string, v Value) {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

// Get returns the value stored under key and whether the key is present.
func (r *Row) Get(key string) (Value, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Keys returns the column names of the row in insertion order.
// The returned slice is owned by the row and must not be modified.
func (r *Row) Keys() []string {
	return r.keys
}

// Len returns the number of columns in the row.
func (r *Row) Len() int {
	return len(r.keys)
}

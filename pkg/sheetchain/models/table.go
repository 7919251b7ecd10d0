// Package models defines data structures for prompt chains.
package models

// Table is an ordered sequence of rows, each an ordered sequence of scalar cell values.
// A cell holds a string, int64, float64, bool or nil (empty).
type Table [][]interface{}

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool {
	return len(t) == 0
}

// Clone returns a deep copy of the row structure so that callers can hold
// the table without sharing backing arrays.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = append([]interface{}(nil), row...)
	}
	return out
}

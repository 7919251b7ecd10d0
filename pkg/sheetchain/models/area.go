package models

// Area represents cell coordinate bounds for a rectangular range.
type Area struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Rows returns the number of rows covered by the area.
func (a Area) Rows() int {
	return a.R2 - a.R1 + 1
}

// Cols returns the number of columns covered by the area.
func (a Area) Cols() int {
	return a.C2 - a.C1 + 1
}

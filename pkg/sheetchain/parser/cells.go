package parser

import (
	"math"
	"strconv"

	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

// ExtractArea extracts the cell values inside area from the rows of a sheet.
// The area is clipped to the sheet's used range; inside it the result is a
// full rectangle where cells past the end of a row are nil.
func ExtractArea(rows [][]string, area models.Area) models.Table {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if area.R2 == 0 || area.R2 > len(rows) {
		// Column ranges and oversized areas stop at the last data row
		area.R2 = len(rows)
	}
	if area.C2 > width {
		area.C2 = width
	}
	if area.Rows() <= 0 || area.Cols() <= 0 {
		return models.Table{}
	}

	result := make(models.Table, 0, area.Rows())
	for rowNum := area.R1; rowNum <= area.R2; rowNum++ {
		row := rows[rowNum-1]
		values := make([]interface{}, area.Cols())
		for colNum := area.C1; colNum <= area.C2; colNum++ {
			if colNum-1 < len(row) && row[colNum-1] != "" {
				values[colNum-area.C1] = parseValue(row[colNum-1])
			}
		}
		result = append(result, values)
	}

	return result
}

// parseValue converts the displayed text of a cell to int64, float64 or bool
// when the value prints back to exactly the same text, and keeps the text
// otherwise, so "00501", "1.50" or a 20-digit id stay as written.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) &&
		strconv.FormatFloat(f, 'g', -1, 64) == s {
		return f
	}
	switch s {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return s
}

package parser

// DetectRegion returns the rectangular block of rows that holds data in a sheet,
// starting at the first non-empty row and column. firstRow is the 1-based sheet row
// of the returned block's first row, or 0 when the sheet holds no data.
func DetectRegion(rows [][]string) (region [][]string, firstRow int) {
	if len(rows) == 0 {
		return nil, 0
	}

	// Find the bounding box of non-empty cells
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil, 0
	}

	width := maxCol - minCol + 1
	region = make([][]string, 0, maxRow-minRow+1)
	for rowIdx := minRow; rowIdx <= maxRow; rowIdx++ {
		out := make([]string, width)
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			out[colIdx-minCol] = row[colIdx]
		}
		region = append(region, out)
	}

	return region, minRow + 1
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

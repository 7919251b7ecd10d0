package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidRange indicates an address that is not a cell, a cell range or a column range.
var ErrInvalidRange = errors.New("invalid range")

// SplitQualified splits a sheet-qualified reference such as 'My Sheet'!$A$1:$D$10
// into its sheet name and address. ok is false when the reference has no sheet part.
func SplitQualified(ref string) (sheet, address string, ok bool) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")

	// Split by the last ! so that sheet names containing ! keep working
	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return "", ref, false
	}
	return UnquoteSheet(ref[:idx]), strings.TrimSpace(ref[idx+1:]), true
}

// UnquoteSheet removes the surrounding quotes of a sheet name and unescapes doubled quotes.
func UnquoteSheet(sheet string) string {
	sheet = strings.TrimSpace(sheet)
	if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	return sheet
}

// ParseArea parses an address like A1, $A$1:$D$10 or B:C into an Area.
// Column ranges leave R2 at 0; callers bound them by the sheet's data.
func ParseArea(address string) (models.Area, error) {
	// Remove $ signs
	rangeStr := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(address), "$", ""))
	if rangeStr == "" {
		return models.Area{}, fmt.Errorf("%w: empty address", ErrInvalidRange)
	}

	parts := strings.Split(rangeStr, ":")
	switch len(parts) {
	case 1:
		col, row, err := excelize.CellNameToCoordinates(parts[0])
		if err != nil {
			return models.Area{}, fmt.Errorf("%w %q: %v", ErrInvalidRange, address, err)
		}
		return models.Area{R1: row, C1: col, R2: row, C2: col}, nil
	case 2:
	default:
		return models.Area{}, fmt.Errorf("%w %q", ErrInvalidRange, address)
	}

	if isColumnName(parts[0]) && isColumnName(parts[1]) {
		startCol, err := excelize.ColumnNameToNumber(parts[0])
		if err != nil {
			return models.Area{}, fmt.Errorf("%w %q: %v", ErrInvalidRange, address, err)
		}
		endCol, err := excelize.ColumnNameToNumber(parts[1])
		if err != nil {
			return models.Area{}, fmt.Errorf("%w %q: %v", ErrInvalidRange, address, err)
		}
		startCol, endCol = order(startCol, endCol)
		return models.Area{R1: 1, C1: startCol, R2: 0, C2: endCol}, nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Area{}, fmt.Errorf("%w %q: %v", ErrInvalidRange, address, err)
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.Area{}, fmt.Errorf("%w %q: %v", ErrInvalidRange, address, err)
	}

	startRow, endRow = order(startRow, endRow)
	startCol, endCol = order(startCol, endCol)
	return models.Area{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}, nil
}

func isColumnName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// Package parser provides Excel file access for prompt chains.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates that a sheet does not exist in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// workbookScope is the scope excelize reports for workbook-level defined names.
const workbookScope = "Workbook"

// Workbook is a tabular data source backed by an xlsx file.
// Sheet rows are read once and cached, so repeated reads of an unchanged
// workbook return identical values. A Workbook is not safe for concurrent use.
type Workbook struct {
	f    *excelize.File
	rows map[string][][]string
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return NewWorkbook(f), nil
}

// NewWorkbook wraps an already opened excelize file.
func NewWorkbook(f *excelize.File) *Workbook {
	return &Workbook{
		f:    f,
		rows: make(map[string][][]string),
	}
}

// File returns the underlying excelize file.
func (w *Workbook) File() *excelize.File {
	return w.f
}

// Close closes the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Scopes returns the sheet names of the workbook in tab order.
func (w *Workbook) Scopes() []string {
	return w.f.GetSheetList()
}

// ActiveSheet returns the name of the sheet that was active when the workbook was saved.
func (w *Workbook) ActiveSheet() string {
	name := w.f.GetSheetName(w.f.GetActiveSheetIndex())
	if name == "" {
		if sheets := w.f.GetSheetList(); len(sheets) > 0 {
			return sheets[0]
		}
	}
	return name
}

// Values returns the cell values of address within sheet.
func (w *Workbook) Values(sheet, address string) (models.Table, error) {
	area, err := ParseArea(address)
	if err != nil {
		return nil, err
	}
	rows, err := w.sheetRows(sheet)
	if err != nil {
		return nil, err
	}
	return ExtractArea(rows, area), nil
}

// ValuesByName returns the values of a defined name or an Excel table called name.
// Names scoped to sheet take precedence over workbook-level names. ok is false
// when nothing in the workbook carries that name.
func (w *Workbook) ValuesByName(name, sheet string) (models.Table, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, nil
	}

	if dn, found := w.definedName(name, sheet); found {
		refSheet, address, ok := SplitQualified(dn.RefersTo)
		if !ok {
			return nil, true, fmt.Errorf("defined name %q refers to %q: %w", dn.Name, dn.RefersTo, ErrInvalidRange)
		}
		if strings.Contains(address, ",") {
			return nil, true, fmt.Errorf("defined name %q spans several areas: %w", dn.Name, ErrInvalidRange)
		}
		values, err := w.Values(refSheet, address)
		if err != nil {
			return nil, true, fmt.Errorf("defined name %q: %w", dn.Name, err)
		}
		return values, true, nil
	}

	for _, sheetName := range w.f.GetSheetList() {
		tables, err := w.f.GetTables(sheetName)
		if err != nil {
			continue
		}
		for _, t := range tables {
			if strings.EqualFold(t.Name, name) {
				values, err := w.Values(sheetName, t.Range)
				if err != nil {
					return nil, true, fmt.Errorf("table %q: %w", t.Name, err)
				}
				return values, true, nil
			}
		}
	}

	return nil, false, nil
}

// ChainRows returns the data region of sheet: the header row followed by the
// chain rows. firstRow is the 1-based sheet row of the header.
func (w *Workbook) ChainRows(sheet string) (rows [][]string, firstRow int, err error) {
	all, err := w.sheetRows(sheet)
	if err != nil {
		return nil, 0, err
	}
	rows, firstRow = DetectRegion(all)
	return rows, firstRow, nil
}

func (w *Workbook) definedName(name, sheet string) (excelize.DefinedName, bool) {
	var workbookLevel *excelize.DefinedName
	for _, dn := range w.f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, name) {
			continue
		}
		if sheet != "" && strings.EqualFold(dn.Scope, sheet) {
			return dn, true
		}
		if dn.Scope == "" || dn.Scope == workbookScope {
			dn := dn
			workbookLevel = &dn
		}
	}
	if workbookLevel != nil {
		return *workbookLevel, true
	}
	return excelize.DefinedName{}, false
}

func (w *Workbook) sheetRows(sheet string) ([][]string, error) {
	if rows, ok := w.rows[sheet]; ok {
		return rows, nil
	}
	if !w.hasSheet(sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	w.rows[sheet] = rows
	return rows, nil
}

func (w *Workbook) hasSheet(sheet string) bool {
	for _, name := range w.f.GetSheetList() {
		if name == sheet {
			return true
		}
	}
	return false
}

// Invalidate drops cached rows, for use after the workbook has been modified.
func (w *Workbook) Invalidate() {
	w.rows = make(map[string][][]string)
}

package output

import (
	"fmt"

	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
	"github.com/xuri/excelize/v2"
)

var sheetHeader = []interface{}{"Step", "Prompt", "Response"}

// WriteSheet writes the presentation into sheet, replacing any existing sheet
// of that name. The caller saves the file.
func WriteSheet(f *excelize.File, sheet string, p *models.Presentation) error {
	if idx, err := f.GetSheetIndex(sheet); err == nil && idx >= 0 {
		if err := f.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("failed to replace sheet %q: %w", sheet, err)
		}
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	if err := f.SetSheetRow(sheet, "A1", &sheetHeader); err != nil {
		return err
	}
	for i, s := range p.Steps {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{s.Label, s.PromptEcho, s.ResponseText}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if p.State != models.StateCompleted && p.State != "" {
		cell, err := excelize.CoordinatesToCellName(1, len(p.Steps)+3)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, StatusLine(p)); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 10); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "C", 60)
}

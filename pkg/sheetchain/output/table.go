package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

// RenderTable writes the presentation as a bordered terminal table followed
// by a status line.
func RenderTable(w io.Writer, p *models.Presentation) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(true)
	table.SetColWidth(60)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetRowLine(true)
	table.SetHeader([]string{"Step", "Prompt", "Response"})

	for _, s := range p.Steps {
		table.Append([]string{s.Label, s.PromptEcho, s.ResponseText})
	}
	table.Render()

	_, err := fmt.Fprintln(w, StatusLine(p))
	return err
}

// StatusLine summarizes the terminal state of a run.
func StatusLine(p *models.Presentation) string {
	switch p.State {
	case models.StateFailed:
		return fmt.Sprintf("Failed at step %d after %d completed step(s): %s", p.FailedStep, len(p.Steps), p.Error)
	case models.StateCancelled:
		return fmt.Sprintf("Cancelled before step %d after %d completed step(s)", p.FailedStep, len(p.Steps))
	default:
		return fmt.Sprintf("Completed %d step(s)", len(p.Steps))
	}
}

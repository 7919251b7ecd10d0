package chain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

// DefaultDelimiter separates cells when a table is rendered into a prompt.
const DefaultDelimiter = "\t"

const (
	previousHeader = "--- Previous step result ---"
	previousFooter = "--- End of previous step result ---"
	dataHeader     = "--- Data ---"
	dataFooter     = "--- End of data ---"
)

// ComposePrompt builds the text sent for step. previous is the response of the
// prior step, or nil for the first step.
func ComposePrompt(step models.ChainStep, previous *string, delimiter string) string {
	var b strings.Builder
	b.WriteString(step.Prompt)

	if previous != nil && step.IncludePreviousResult {
		b.WriteString("\n\n")
		b.WriteString(previousHeader)
		b.WriteString("\n")
		b.WriteString(*previous)
		b.WriteString("\n")
		b.WriteString(previousFooter)
	}

	if table := RenderTable(step.Data, delimiter); table != "" {
		b.WriteString("\n\n")
		b.WriteString(dataHeader)
		b.WriteString("\n")
		b.WriteString(table)
		b.WriteString("\n")
		b.WriteString(dataFooter)
	}

	return b.String()
}

// RenderTable joins the cells of each row with delimiter and the rows with
// newlines. An empty table renders as the empty string.
func RenderTable(t models.Table, delimiter string) string {
	if t.IsEmpty() {
		return ""
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	lines := make([]string, len(t))
	for i, row := range t {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatCell(v)
		}
		lines[i] = strings.Join(cells, delimiter)
	}
	return strings.Join(lines, "\n")
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		// Spreadsheet spelling
		if x {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(x)
	}
}

package chain

import (
	"fmt"

	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

// Format pairs each result with the prompt of its step. An empty result list
// yields an empty, non-nil slice.
func Format(steps []models.ChainStep, results []models.ChainResult) []models.PresentedStep {
	out := make([]models.PresentedStep, 0, len(results))
	for _, r := range results {
		p := models.PresentedStep{
			Label:        fmt.Sprintf("Step %d", r.StepIndex+1),
			ResponseText: r.ResponseText,
		}
		if r.StepIndex >= 0 && r.StepIndex < len(steps) {
			p.PromptEcho = steps[r.StepIndex].Prompt
		}
		out = append(out, p)
	}
	return out
}

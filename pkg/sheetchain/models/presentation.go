package models

// PresentedStep is the presentation-ready form of one step result.
type PresentedStep struct {
	// Label is "Step k" with k the 1-based position.
	Label string `json:"label"`
	// PromptEcho is the prompt of the step as written by the user.
	PromptEcho string `json:"prompt"`
	// ResponseText is the generated text.
	ResponseText string `json:"response"`
}

// Presentation is the formatted output of a chain run.
type Presentation struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name,omitempty"`
	// State is the terminal run state.
	State RunState `json:"state"`
	// FailedStep is the 1-based failing or cancelled step, 0 when completed.
	FailedStep int `json:"failed_step,omitempty"`
	// Error is the failure message, if any.
	Error string `json:"error,omitempty"`
	// Steps contains one entry per completed step.
	Steps []PresentedStep `json:"steps"`
}

package models

// StepOptions holds optional per-step generation parameters.
// Zero values mean "use the engine default".
type StepOptions struct {
	// Model overrides the default model id.
	Model string `json:"model,omitempty"`
	// MaxTokens overrides the default max tokens.
	MaxTokens int `json:"max_tokens,omitempty"`
	// Temperature overrides the default temperature (0..1).
	Temperature *float64 `json:"temperature,omitempty"`
}

// ChainStep is one prompt of a chain, built from one table row.
type ChainStep struct {
	// Prompt is the non-empty prompt text.
	Prompt string `json:"prompt"`
	// Data is the tabular data attached to the prompt (possibly empty).
	Data Table `json:"data,omitempty"`
	// IncludePreviousResult appends the prior step response to the prompt.
	IncludePreviousResult bool `json:"include_previous_result"`
	// Options are per-step generation overrides.
	Options StepOptions `json:"options"`
	// Row is the 1-based source row of the step in the chain sheet.
	Row int `json:"row,omitempty"`
}

// ChainResult is the response of one executed step.
type ChainResult struct {
	// StepIndex is the 0-based index of the step.
	StepIndex int `json:"step_index"`
	// ResponseText is the generated text.
	ResponseText string `json:"response_text"`
}

// GenerationRequest is a single completion call derived from a step and the defaults.
type GenerationRequest struct {
	PromptText  string
	ModelID     string
	MaxTokens   int
	Temperature float64
}

package chain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/sheetchain-go/internal/logger"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

// Default generation parameters.
const (
	DefaultModel       = "claude-sonnet-4-5"
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.7
)

// Completer sends one prompt to a text-completion API.
type Completer interface {
	Complete(ctx context.Context, req models.GenerationRequest) (string, error)
}

// Defaults are the generation parameters steps fall back to. Zero fields
// fall back to the engine defaults.
type Defaults struct {
	Model     string
	MaxTokens int
	// Temperature is nil when unset, so that 0 stays a valid choice.
	Temperature *float64
}

// DefaultDefaults returns the engine defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: Temperature(DefaultTemperature),
	}
}

// Temperature returns a pointer to t for Defaults and StepOptions.
func Temperature(t float64) *float64 {
	return &t
}

// Outcome is the result of a chain run. Results always holds the steps that
// completed before the run stopped.
type Outcome struct {
	RunID   string
	Results []models.ChainResult
	State   models.RunState
	// Step is the 0-based index of the failed or cancelled step, -1 otherwise.
	Step int
}

// Executor runs chains step by step.
type Executor struct {
	Client    Completer
	Defaults  Defaults
	Delimiter string
	Log       *logger.Logger
}

// Execute runs steps strictly in order. A failing step stops the run; the
// returned error is a *StepError and the outcome carries the partial results.
//
// Cancellation of ctx is checked before each step. A call already in flight
// is not interrupted by it.
func (e *Executor) Execute(ctx context.Context, steps []models.ChainStep) (Outcome, error) {
	out := Outcome{
		RunID:   uuid.NewString(),
		Results: make([]models.ChainResult, 0, len(steps)),
		State:   models.StatePending,
		Step:    -1,
	}
	log := logger.OrNop(e.Log).With("run_id", out.RunID)
	if e.Client == nil {
		return out, errors.New("chain executor has no completion client")
	}

	var previous *string
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			out.State = models.StateCancelled
			out.Step = i
			log.Warn("Chain cancelled", "step", i+1, "completed", len(out.Results))
			return out, &StepError{Step: i, Err: errors.Join(ErrCancelled, context.Cause(ctx))}
		}

		out.State = models.StateRunning
		req := e.request(step, previous)
		log.Info("Chain step started", "step", i+1, "of", len(steps), "model", req.ModelID, "prompt_len", len(req.PromptText))

		start := time.Now()
		text, err := e.Client.Complete(context.WithoutCancel(ctx), req)
		if err != nil {
			out.State = models.StateFailed
			out.Step = i
			log.Error("Chain step failed", "step", i+1, "duration", time.Since(start), "error", err.Error())
			return out, &StepError{Step: i, Err: err}
		}
		log.Info("Chain step completed", "step", i+1, "duration", time.Since(start), "response_len", len(text))

		out.Results = append(out.Results, models.ChainResult{StepIndex: i, ResponseText: text})
		previous = &text
	}

	out.State = models.StateCompleted
	return out, nil
}

func (e *Executor) request(step models.ChainStep, previous *string) models.GenerationRequest {
	d := e.Defaults
	if d.Model == "" {
		d.Model = DefaultModel
	}
	if d.MaxTokens <= 0 {
		d.MaxTokens = DefaultMaxTokens
	}
	temperature := DefaultTemperature
	if d.Temperature != nil {
		temperature = *d.Temperature
	}

	req := models.GenerationRequest{
		PromptText:  ComposePrompt(step, previous, e.Delimiter),
		ModelID:     d.Model,
		MaxTokens:   d.MaxTokens,
		Temperature: temperature,
	}
	if step.Options.Model != "" {
		req.ModelID = step.Options.Model
	}
	if step.Options.MaxTokens > 0 {
		req.MaxTokens = step.Options.MaxTokens
	}
	if step.Options.Temperature != nil {
		req.Temperature = *step.Options.Temperature
	}
	return req
}

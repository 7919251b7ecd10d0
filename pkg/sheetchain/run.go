package sheetchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetchain-go/internal/logger"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/chain"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/parser"
)

// Plan is a chain read from a workbook.
type Plan struct {
	// BookName is the workbook file name (no path).
	BookName string
	// Sheet is the sheet holding the chain.
	Sheet string
	// Header is the header row of the chain table.
	Header  []string
	Columns chain.Columns
	Steps   []models.ChainStep
}

// Report is a plan together with the outcome of running it.
type Report struct {
	Plan
	Outcome chain.Outcome
}

// Open opens the workbook at path, mapping missing and unreadable files to
// ErrFileNotFound and ErrInvalidFormat.
func Open(path string) (*parser.Workbook, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	wb, err := parser.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return wb, nil
}

// BuildPlan reads the chain of an open workbook.
func BuildPlan(wb *parser.Workbook, bookName string, opts Options) (*Plan, error) {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = wb.ActiveSheet()
	}
	plan := &Plan{BookName: bookName, Sheet: sheet}

	rows, firstRow, err := wb.ChainRows(sheet)
	if err != nil {
		return plan, NewPhaseError(sheet, "read", err)
	}
	if len(rows) > 0 {
		plan.Header = rows[0]
	}

	b := &chain.Builder{
		Resolver:         chain.NewResolver(wb, sheet),
		OnReferenceError: opts.OnReferenceError,
		FirstRow:         firstRow,
		Log:              opts.Log,
	}
	steps, cols, err := b.BuildTable(rows, opts.keywords())
	plan.Columns = cols
	if err != nil {
		return plan, NewPhaseError(sheet, "build", err)
	}
	plan.Steps = steps
	return plan, nil
}

// Inspect reads the chain of the workbook at path without running it.
func Inspect(path string, opts Options) (*Plan, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return BuildPlan(wb, filepath.Base(path), opts)
}

// Run reads the chain of an open workbook and executes it with client. On an
// execution failure the report still carries the completed steps.
func Run(ctx context.Context, wb *parser.Workbook, bookName string, client chain.Completer, opts Options) (*Report, error) {
	log := logger.OrNop(opts.Log).With("book", bookName)
	opts.Log = log

	plan, err := BuildPlan(wb, bookName, opts)
	if err != nil {
		return &Report{Plan: *plan, Outcome: chain.Outcome{State: models.StatePending, Step: -1}}, err
	}
	log.Info("Chain loaded", "sheet", plan.Sheet, "steps", len(plan.Steps))

	e := &chain.Executor{
		Client:    client,
		Defaults:  opts.Defaults,
		Delimiter: opts.Delimiter,
		Log:       log,
	}
	outcome, err := e.Execute(ctx, plan.Steps)
	report := &Report{Plan: *plan, Outcome: outcome}
	if err != nil {
		return report, NewPhaseError(plan.Sheet, "execute", err)
	}
	return report, nil
}

// Present formats a report and the error of its run for output sinks.
func Present(r *Report, runErr error) *models.Presentation {
	p := &models.Presentation{
		State: models.StateCompleted,
		Steps: []models.PresentedStep{},
	}
	if r != nil {
		p.BookName = r.BookName
		p.Steps = chain.Format(r.Steps, r.Outcome.Results)
		if r.Outcome.State != "" {
			p.State = r.Outcome.State
		}
		if r.Outcome.Step >= 0 && (p.State == models.StateFailed || p.State == models.StateCancelled) {
			p.FailedStep = r.Outcome.Step + 1
		}
	}
	if runErr != nil {
		p.Error = runErr.Error()
		if p.State == models.StateCompleted || p.State == models.StatePending {
			p.State = models.StateFailed
		}
	}
	return p
}

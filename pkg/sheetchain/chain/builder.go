package chain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetchain-go/internal/logger"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

// ReferenceResolver resolves a data reference cell into a table.
type ReferenceResolver interface {
	Resolve(reference string) (models.Table, error)
}

// ReferenceDecision is asked what to do when a row's data reference cannot be
// resolved. Returning true continues with empty data for that row; false aborts
// the whole build.
type ReferenceDecision func(row int, reference string, err error) bool

// ContinueWithEmptyData is a ReferenceDecision that always keeps the row.
func ContinueWithEmptyData(int, string, error) bool { return true }

// Builder converts chain rows into steps.
type Builder struct {
	Resolver ReferenceResolver
	// OnReferenceError decides about unresolvable references. A nil decision aborts.
	OnReferenceError ReferenceDecision
	// FirstRow is the 1-based sheet row of the first row passed to Build.
	FirstRow int
	Log      *logger.Logger
}

// BuildTable discovers the columns of rows[0] and builds the steps of the
// remaining rows.
func (b *Builder) BuildTable(rows [][]string, kw Keywords) ([]models.ChainStep, Columns, error) {
	if len(rows) == 0 {
		return nil, Columns{Prompt: NotFound, Range: NotFound, Include: NotFound, Model: NotFound, MaxTokens: NotFound, Temperature: NotFound}, ErrNoPromptColumn
	}
	cols := Discover(rows[0], kw)

	bb := *b
	if bb.FirstRow <= 0 {
		bb.FirstRow = 1
	}
	bb.FirstRow++
	steps, err := bb.Build(rows[1:], cols, rows[0])
	return steps, cols, err
}

// Build converts rows into steps in row order. Rows with an empty prompt are
// skipped. header is only used to label errors and may be nil.
func (b *Builder) Build(rows [][]string, cols Columns, header []string) ([]models.ChainStep, error) {
	if cols.Prompt == NotFound {
		return nil, ErrNoPromptColumn
	}
	log := logger.OrNop(b.Log)
	firstRow := b.FirstRow
	if firstRow <= 0 {
		firstRow = 1
	}

	var steps []models.ChainStep
	for i, row := range rows {
		rowNum := firstRow + i
		prompt := strings.TrimSpace(cell(row, cols.Prompt))
		if prompt == "" {
			continue
		}

		step := models.ChainStep{
			Prompt:                prompt,
			Data:                  models.Table{},
			IncludePreviousResult: isTruthy(cell(row, cols.Include)),
			Row:                   rowNum,
		}

		if ref := strings.TrimSpace(cell(row, cols.Range)); ref != "" {
			data, err := b.resolve(ref)
			if err != nil {
				if b.OnReferenceError == nil || !b.OnReferenceError(rowNum, ref, err) {
					return nil, &RowError{Row: rowNum, Column: label(header, cols.Range, "range"), Err: err}
				}
				log.Warn("Continuing with empty data", "row", rowNum, "reference", ref, "error", err.Error())
				data = models.Table{}
			}
			step.Data = data
		}

		opts, err := parseOptions(row, cols, header)
		if err != nil {
			return nil, &RowError{Row: rowNum, Column: err.column, Err: err.err}
		}
		step.Options = opts

		steps = append(steps, step)
	}

	if len(steps) == 0 {
		return nil, ErrEmptyChain
	}
	log.Debug("Chain built", "steps", len(steps), "rows", len(rows))
	return steps, nil
}

func (b *Builder) resolve(ref string) (models.Table, error) {
	if b.Resolver == nil {
		return nil, &ReferenceError{Kind: ErrInvalidAddress, Reference: ref, Err: fmt.Errorf("no data source")}
	}
	return b.Resolver.Resolve(ref)
}

type optionError struct {
	column string
	err    error
}

func parseOptions(row []string, cols Columns, header []string) (models.StepOptions, *optionError) {
	var opts models.StepOptions

	opts.Model = strings.TrimSpace(cell(row, cols.Model))

	if v := strings.TrimSpace(cell(row, cols.MaxTokens)); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 1 || n != float64(int(n)) {
			return opts, &optionError{label(header, cols.MaxTokens, "max tokens"), fmt.Errorf("max tokens %q is not a positive integer", v)}
		}
		opts.MaxTokens = int(n)
	}

	if v := strings.TrimSpace(cell(row, cols.Temperature)); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil || t < 0 || t > 1 {
			return opts, &optionError{label(header, cols.Temperature, "temperature"), fmt.Errorf("temperature %q is not a number between 0 and 1", v)}
		}
		opts.Temperature = &t
	}

	return opts, nil
}

func isTruthy(s string) bool {
	switch normalize(s) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func label(header []string, idx int, fallback string) string {
	if h := strings.TrimSpace(cell(header, idx)); h != "" {
		return h
	}
	return fallback
}

package sheetchain

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/chain"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
	"github.com/xuri/excelize/v2"
)

type recordingClient struct {
	prompts []string
	fail    map[int]error
}

func (c *recordingClient) Complete(_ context.Context, req models.GenerationRequest) (string, error) {
	i := len(c.prompts)
	c.prompts = append(c.prompts, req.PromptText)
	if err := c.fail[i]; err != nil {
		return "", err
	}
	return "answer " + string(rune('A'+i)), nil
}

func writeBook(t *testing.T, chainRows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Data", "A1", &[]interface{}{"x", 1}))
	require.NoError(t, f.SetSheetRow("Data", "A2", &[]interface{}{"y", 2}))

	for i, row := range chainRows {
		cell, err := excelize.CoordinatesToCellName(2, i+2)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "chain.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestInspect(t *testing.T) {
	path := writeBook(t, [][]interface{}{
		{"prompt", "range", "include"},
		{"Summarize", "Data!A1:B2", "NO"},
		{"", "", ""},
		{"Elaborate", "", "YES"},
	})

	plan, err := Inspect(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "chain.xlsx", plan.BookName)
	assert.Equal(t, "Sheet1", plan.Sheet)
	assert.Equal(t, 0, plan.Columns.Prompt)
	require.Len(t, plan.Steps, 2)

	assert.Equal(t, models.Table{{"x", int64(1)}, {"y", int64(2)}}, plan.Steps[0].Data)
	assert.False(t, plan.Steps[0].IncludePreviousResult)
	assert.Equal(t, 3, plan.Steps[0].Row)
	assert.True(t, plan.Steps[1].Data.IsEmpty())
	assert.True(t, plan.Steps[1].IncludePreviousResult)
	assert.Equal(t, 5, plan.Steps[1].Row)
}

func TestInspectMissingFile(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "absent.xlsx"), DefaultOptions())
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestInspectScopeNotFound(t *testing.T) {
	path := writeBook(t, [][]interface{}{
		{"prompt", "range"},
		{"Summarize", "Sheet2!A1:A3"},
	})

	_, err := Inspect(path, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, chain.ErrScopeNotFound))

	var phaseErr *PhaseError
	require.True(t, errors.As(err, &phaseErr))
	assert.Equal(t, "build", phaseErr.Phase)
}

func TestRun(t *testing.T) {
	path := writeBook(t, [][]interface{}{
		{"Prompt", "Data", "Use previous"},
		{"List items", "Data!A1:B2", ""},
		{"Pick one", "", "yes"},
	})
	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	client := &recordingClient{}
	report, err := Run(context.Background(), wb, "chain.xlsx", client, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, models.StateCompleted, report.Outcome.State)
	require.Len(t, report.Outcome.Results, 2)
	assert.Contains(t, client.prompts[0], "x\t1\ny\t2")
	assert.Contains(t, client.prompts[1], "answer A")

	p := Present(report, nil)
	assert.Equal(t, models.StateCompleted, p.State)
	assert.Equal(t, []models.PresentedStep{
		{Label: "Step 1", PromptEcho: "List items", ResponseText: "answer A"},
		{Label: "Step 2", PromptEcho: "Pick one", ResponseText: "answer B"},
	}, p.Steps)
}

func TestRunPartialFailure(t *testing.T) {
	path := writeBook(t, [][]interface{}{
		{"Prompt"},
		{"one"},
		{"two"},
		{"three"},
	})
	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	boom := errors.New("upstream down")
	client := &recordingClient{fail: map[int]error{1: boom}}
	report, err := Run(context.Background(), wb, "chain.xlsx", client, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Len(t, client.prompts, 2)

	p := Present(report, err)
	assert.Equal(t, models.StateFailed, p.State)
	assert.Equal(t, 2, p.FailedStep)
	assert.Len(t, p.Steps, 1)
	assert.True(t, strings.Contains(p.Error, "step 2"))
}

func TestPresentBuildFailure(t *testing.T) {
	p := Present(&Report{Outcome: chain.Outcome{State: models.StatePending, Step: -1}}, chain.ErrEmptyChain)
	assert.Equal(t, models.StateFailed, p.State)
	assert.Equal(t, 0, p.FailedStep)
	assert.Equal(t, "empty chain", p.Error)
	assert.NotNil(t, p.Steps)
	assert.Empty(t, p.Steps)
}

func TestRunKeepsDisplayedCellText(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Codes")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Codes", "A1", &[]interface{}{"00501", "1.50", "12345678901234567890", "inf", "1e3"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Prompt", "Data"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Check codes", "Codes!A1:E1"}))
	path := filepath.Join(t.TempDir(), "codes.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	client := &recordingClient{}
	opts := DefaultOptions()
	opts.Delimiter = ","
	_, err = Run(context.Background(), wb, "codes.xlsx", client, opts)
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "\n00501,1.50,12345678901234567890,inf,1e3\n")
}

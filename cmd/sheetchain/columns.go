package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/chain"
)

func newColumnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns [input.xlsx]",
		Short: "Show the column roles and steps discovered in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  showColumns,
	}
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet holding the chain (default: active sheet)")
	return cmd
}

func showColumns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := sheetchain.DefaultOptions()
	opts.Sheet = sheetName
	opts.Keywords = cfg.Keywords
	opts.OnReferenceError = chain.ContinueWithEmptyData

	plan, err := sheetchain.Inspect(args[0], opts)
	if plan == nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sheet: %s\n", plan.Sheet)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Role", "Column"})
	roles := []struct {
		name string
		idx  int
	}{
		{"prompt", plan.Columns.Prompt},
		{"data range", plan.Columns.Range},
		{"include previous", plan.Columns.Include},
		{"model", plan.Columns.Model},
		{"max tokens", plan.Columns.MaxTokens},
		{"temperature", plan.Columns.Temperature},
	}
	for _, r := range roles {
		col := "-"
		if r.idx != chain.NotFound && r.idx < len(plan.Header) {
			col = plan.Header[r.idx]
		}
		table.Append([]string{r.name, col})
	}
	table.Render()

	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d step(s)\n", len(plan.Steps))
	for i, s := range plan.Steps {
		fmt.Fprintf(out, "  %d. row %d: %q (data rows: %d, include previous: %v)\n", i+1, s.Row, s.Prompt, len(s.Data), s.IncludePreviousResult)
	}
	return nil
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/chain"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/completion"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/output"
)

var (
	sheetName  string
	outputPath string
	pretty     bool
	format     string
	writeSheet bool
	onBadRange string
	apiKeyFlag string
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input.xlsx]",
		Short: "Run the prompt chain of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runChain,
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet holding the chain (default: active sheet)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write JSON results to this file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&format, "format", "table", "Stdout format: table, json or none")
	cmd.Flags().BoolVar(&writeSheet, "write-sheet", false, "Write results into a sheet of the workbook")
	cmd.Flags().StringVar(&onBadRange, "on-bad-range", "prompt", "Unresolvable data range: prompt, continue or abort")
	cmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "API key (default: ANTHROPIC_API_KEY or the stored key)")
	return cmd
}

func runChain(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	switch format {
	case "table", "json", "none":
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, or none)", format)
	}
	decision, err := referenceDecision(onBadRange, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	apiKey, err := resolveAPIKey()
	if err != nil {
		return err
	}

	client, err := completion.NewAnthropicClient(apiKey, completion.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Log:     log,
	})
	if err != nil {
		return err
	}
	completer := completion.WithRetry(client, completion.RetryOptions{MaxRetries: cfg.Retries, Log: log})

	opts := sheetchain.Options{
		Sheet:            sheetName,
		Keywords:         cfg.Keywords,
		Defaults:         cfg.Defaults(),
		Delimiter:        cfg.CellDelimiter,
		OnReferenceError: decision,
		Log:              log,
	}

	wb, err := sheetchain.Open(inputPath)
	if err != nil {
		return err
	}
	defer wb.Close()

	if opts.Sheet == "" {
		opts.Sheet = wb.ActiveSheet()
	}
	if writeSheet {
		if err := checkResultsSheet(cfg.ResultsSheet, opts.Sheet); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bookName := filepath.Base(inputPath)
	report, runErr := sheetchain.Run(ctx, wb, bookName, completer, opts)
	presentation := sheetchain.Present(report, runErr)

	if outputPath != "" {
		jsonData, err := output.ToJSON(presentation, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	switch format {
	case "table":
		if err := output.RenderTable(cmd.OutOrStdout(), presentation); err != nil {
			return err
		}
	case "json":
		jsonData, err := output.ToJSON(presentation, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	// Partial results are worth keeping too
	if writeSheet && len(presentation.Steps) > 0 {
		if err := output.WriteSheet(wb.File(), cfg.ResultsSheet, presentation); err != nil {
			return fmt.Errorf("failed to write results sheet: %w", err)
		}
		if err := wb.File().Save(); err != nil {
			return fmt.Errorf("failed to save workbook: %w", err)
		}
		log.Info("Results written", "sheet", cfg.ResultsSheet, "book", bookName)
	}

	return runErr
}

// checkResultsSheet refuses a results sheet that would replace the chain sheet.
// Sheet names compare case-insensitively, as in Excel.
func checkResultsSheet(results, chainSheet string) error {
	if strings.TrimSpace(results) == "" {
		return errors.New("results sheet name is empty")
	}
	if strings.EqualFold(strings.TrimSpace(results), strings.TrimSpace(chainSheet)) {
		return fmt.Errorf("results sheet %q is the chain sheet; choose another results_sheet", results)
	}
	return nil
}

func resolveAPIKey() (string, error) {
	if key := strings.TrimSpace(apiKeyFlag); key != "" {
		return key, nil
	}
	store, err := credentialStore()
	if err != nil {
		return "", err
	}
	key, ok, err := store.Get()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("no API key: set ANTHROPIC_API_KEY, pass --api-key or run 'sheetchain key set'")
	}
	return key, nil
}

// referenceDecision maps --on-bad-range to a chain.ReferenceDecision.
func referenceDecision(mode string, in io.Reader, out io.Writer) (chain.ReferenceDecision, error) {
	switch mode {
	case "continue":
		return chain.ContinueWithEmptyData, nil
	case "abort":
		return nil, nil
	case "prompt":
		reader := bufio.NewReader(in)
		return func(row int, reference string, err error) bool {
			fmt.Fprintf(out, "Row %d: data range %q could not be read: %v\nContinue with empty data for this row? [y/N] ", row, reference, err)
			answer, _ := reader.ReadString('\n')
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
				return true
			default:
				return false
			}
		}, nil
	default:
		return nil, fmt.Errorf("invalid on-bad-range: %s (must be prompt, continue, or abort)", mode)
	}
}

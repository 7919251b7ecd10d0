// Package sheetchain runs prompt chains described in Excel workbooks.
package sheetchain

import (
	"github.com/ukaji3/sheetchain-go/internal/logger"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/chain"
)

// Options configures a chain run.
type Options struct {
	// Sheet is the sheet holding the chain. Empty selects the active sheet.
	Sheet string
	// Keywords are the header keywords of each column role.
	Keywords chain.Keywords
	// Defaults are the generation parameters of steps without overrides.
	Defaults chain.Defaults
	// Delimiter separates cells of attached data in prompts.
	Delimiter string
	// OnReferenceError decides whether a row with an unresolvable data
	// reference continues with empty data. If nil, the build is aborted.
	OnReferenceError chain.ReferenceDecision
	Log              *logger.Logger
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		Keywords:  chain.DefaultKeywords(),
		Defaults:  chain.DefaultDefaults(),
		Delimiter: chain.DefaultDelimiter,
	}
}

// keywords returns the configured keywords, or the defaults when none are set.
func (o Options) keywords() chain.Keywords {
	if len(o.Keywords.Prompt) == 0 {
		return chain.DefaultKeywords()
	}
	return o.Keywords
}

package chain

import "strings"

// NotFound is the column index reported for a role without a matching header.
const NotFound = -1

// Keywords holds the header keywords of each column role, in priority order.
type Keywords struct {
	Prompt      []string `yaml:"prompt"`
	Range       []string `yaml:"range"`
	Include     []string `yaml:"include"`
	Model       []string `yaml:"model"`
	MaxTokens   []string `yaml:"max_tokens"`
	Temperature []string `yaml:"temperature"`
}

// DefaultKeywords returns the keywords used when none are configured.
func DefaultKeywords() Keywords {
	return Keywords{
		Prompt:      []string{"prompt", "question", "instruction", "query"},
		Range:       []string{"range", "data", "reference", "source", "table"},
		Include:     []string{"include", "previous", "prior"},
		Model:       []string{"model"},
		MaxTokens:   []string{"max tokens", "max_tokens", "maxtokens", "token limit"},
		Temperature: []string{"temperature", "temp"},
	}
}

// Columns maps column roles to header indexes. Roles without a header are NotFound.
type Columns struct {
	Prompt      int `json:"prompt"`
	Range       int `json:"range"`
	Include     int `json:"include"`
	Model       int `json:"model"`
	MaxTokens   int `json:"max_tokens"`
	Temperature int `json:"temperature"`
}

// Discover maps a header row to column roles.
func Discover(header []string, kw Keywords) Columns {
	return Columns{
		Prompt:      FindColumn(header, kw.Prompt),
		Range:       FindColumn(header, kw.Range),
		Include:     FindColumn(header, kw.Include),
		Model:       FindColumn(header, kw.Model),
		MaxTokens:   FindColumn(header, kw.MaxTokens),
		Temperature: FindColumn(header, kw.Temperature),
	}
}

// FindColumn returns the index of the first header whose lower-cased, trimmed
// text contains any of keywords, or NotFound.
func FindColumn(header []string, keywords []string) int {
	for i, h := range header {
		text := normalize(h)
		if text == "" {
			continue
		}
		for _, kw := range keywords {
			kw = normalize(kw)
			if kw != "" && strings.Contains(text, kw) {
				return i
			}
		}
	}
	return NotFound
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

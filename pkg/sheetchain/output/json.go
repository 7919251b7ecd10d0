// Package output renders chain results for their sinks.
package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

// ToJSON serializes a presentation.
func ToJSON(p *models.Presentation, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(p, "", "  ")
	}
	return json.Marshal(p)
}

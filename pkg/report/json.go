// Package report serializes an AnalysisResult as JSON or as a compact,
// styled text summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/repolens/core/pkg/domain"
)

// WriteJSON writes the result as JSON. When indent is true the output is
// pretty-printed for humans; otherwise it is a single line for pipelines.
func WriteJSON(w io.Writer, result *domain.AnalysisResult, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

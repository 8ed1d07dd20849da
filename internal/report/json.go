package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/scan-io-git/apiprops/internal/consistency"
)

// WriteJSON renders the result as indented JSON.
func WriteJSON(w io.Writer, result *consistency.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/scan-io-git/apiprops/internal/consistency"
)

// WriteMarkdown renders the summary followed by one section per category.
// Every finding is a single list item, empty sections keep their header.
func WriteMarkdown(w io.Writer, result *consistency.Result) error {
	var buf bytes.Buffer

	writeHeader(&buf, "Summary")
	fmt.Fprintf(&buf, "- Packages: %d\n", result.Summary.Packages)
	fmt.Fprintf(&buf, "- Types: %d\n", result.Summary.Types)
	fmt.Fprintf(&buf, "- Methods: %d\n", result.Summary.Methods)
	fmt.Fprintf(&buf, "- Properties: %d\n", result.Summary.Properties)

	for _, section := range result.Sections {
		writeHeader(&buf, section.Title)
		for _, f := range section.Findings {
			fmt.Fprintf(&buf, "- %s\n", f.Text())
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}

func writeHeader(buf *bytes.Buffer, header string) {
	fmt.Fprintf(buf, "\n## %s\n\n", header)
}

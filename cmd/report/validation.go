package report

import (
	"fmt"
	"strings"

	apireport "github.com/scan-io-git/apiprops/internal/report"
	"github.com/scan-io-git/apiprops/pkg/shared/config"
	"github.com/scan-io-git/apiprops/pkg/shared/files"
)

// validateReportArgs validates the arguments provided to the report command.
func validateReportArgs(options *RunOptionsReport, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one classpath entry must be specified")
	}

	if options.Format != "" {
		if _, err := apireport.RendererFor(apireport.Format(options.Format)); err != nil {
			return fmt.Errorf("the 'format' flag must be one of %s: %w", formatNames(), err)
		}
	}

	for _, name := range options.IgnoredPackages {
		if err := config.ValidateQualifiedName(name); err != nil {
			return fmt.Errorf("invalid 'ignore-package' value: %w", err)
		}
	}
	for _, name := range options.IgnoredTypes {
		if err := config.ValidateQualifiedName(name); err != nil {
			return fmt.Errorf("invalid 'ignore-type' value: %w", err)
		}
	}

	entries := make([]string, 0, len(options.Baseline)+len(args))
	entries = append(entries, options.Baseline...)
	entries = append(entries, args...)
	for _, entry := range entries {
		path, err := files.ExpandPath(entry)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", entry, err)
		}
		if err := files.ValidateClasspathEntry(path); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() string {
	names := make([]string, 0, len(apireport.Formats))
	for _, f := range apireport.Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

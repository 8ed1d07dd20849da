package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/scan-io-git/apiprops/pkg/shared/files"
)

var validate = validator.New()

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	// normalized first so the struct tags see lower-case values
	if err := ValidateReportConfig(&cfg.Report); err != nil {
		return fmt.Errorf("YAML global config: report directive is invalid: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("YAML global config: %w", err)
	}
	if err := ValidateAPIConfig(&cfg.API); err != nil {
		return fmt.Errorf("YAML global config: api directive is invalid: %w", err)
	}
	return nil
}

// ValidateAPIConfig checks the qualified names and expands the baseline paths.
func ValidateAPIConfig(api *API) error {
	if api == nil {
		return fmt.Errorf("api configuration is nil")
	}
	lists := []struct {
		name  string
		names []string
	}{
		{"ignored_packages", api.IgnoredPackages},
		{"ignored_types", api.IgnoredTypes},
		{"callback_types", api.CallbackTypes},
		{"lazy_types", api.LazyTypes},
	}
	for _, l := range lists {
		for _, n := range l.names {
			if err := ValidateQualifiedName(n); err != nil {
				return fmt.Errorf("%s: %w", l.name, err)
			}
		}
	}

	baseline, err := files.ExpandPaths(api.Baseline)
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	api.Baseline = baseline
	return nil
}

// ValidateReportConfig normalizes the report format and expands the output path.
func ValidateReportConfig(report *Report) error {
	if report == nil {
		return fmt.Errorf("report configuration is nil")
	}
	report.Format = strings.ToLower(report.Format)
	if report.Output == "" {
		return nil
	}
	output, err := files.ExpandPath(report.Output)
	if err != nil {
		return fmt.Errorf("failed to expand output path %q: %w", report.Output, err)
	}
	report.Output = output
	return nil
}

// ValidateQualifiedName checks a dot-separated Java name such as
// org.gradle.api.Project.
func ValidateQualifiedName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	if strings.ContainsAny(name, "/ \t;[") {
		return fmt.Errorf("%q is not a dot-separated qualified name", name)
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return fmt.Errorf("%q has an empty name segment", name)
		}
	}
	return nil
}

package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/apiprops/internal/apisurface"
	"github.com/scan-io-git/apiprops/internal/consistency"
	"github.com/scan-io-git/apiprops/internal/hierarchy"
	apireport "github.com/scan-io-git/apiprops/internal/report"
	"github.com/scan-io-git/apiprops/pkg/shared/config"
	apierrors "github.com/scan-io-git/apiprops/pkg/shared/errors"
	"github.com/scan-io-git/apiprops/pkg/shared/files"
)

// reportFileName is the file name used when the output path is a directory.
const reportFileName = "apiprops-report"

// reportSettings are the command options merged with the YAML configuration.
type reportSettings struct {
	IgnoredPackages []string
	IgnoredTypes    []string
	CallbackTypes   []string
	LazyTypes       []string
	Baseline        []string
	Format          apireport.Format
	OutputPath      string
}

// hasFlags reports whether any flag was set on the command line.
func hasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(*pflag.Flag) {
		changed = true
	})
	return changed
}

// mergeSettings lets command line values extend the configured lists and
// override the configured scalars.
func mergeSettings(cfg *config.Config, options *RunOptionsReport) reportSettings {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return reportSettings{
		IgnoredPackages: concat(cfg.API.IgnoredPackages, options.IgnoredPackages),
		IgnoredTypes:    concat(cfg.API.IgnoredTypes, options.IgnoredTypes),
		CallbackTypes:   cfg.API.CallbackTypes,
		LazyTypes:       cfg.API.LazyTypes,
		Baseline:        concat(cfg.API.Baseline, options.Baseline),
		Format: apireport.Format(strings.ToLower(
			config.SetThen(options.Format, config.SetThen(cfg.Report.Format, string(apireport.FormatMarkdown))))),
		OutputPath: config.SetThen(options.OutputPath, cfg.Report.Output),
	}
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// generateReport validates the arguments, runs the analysis and writes the
// report to the output path, or to stdout when no path is set.
func generateReport(cfg *config.Config, options *RunOptionsReport, args []string, stdout io.Writer, lg hclog.Logger) error {
	if err := validateReportArgs(options, args); err != nil {
		lg.Error("invalid report arguments", "error", err)
		return apierrors.NewCommandError(fmt.Errorf("invalid arguments: %w", err), apierrors.ExitCodeInvalidArgs)
	}

	settings := mergeSettings(cfg, options)
	classpath, err := files.ExpandPaths(args)
	if err != nil {
		return apierrors.NewCommandError(err, apierrors.ExitCodeInvalidArgs)
	}
	baseline, err := files.ExpandPaths(settings.Baseline)
	if err != nil {
		return apierrors.NewCommandError(err, apierrors.ExitCodeInvalidArgs)
	}

	generator, err := apireport.NewGenerator(
		apisurface.New(settings.IgnoredPackages, settings.IgnoredTypes),
		hierarchy.NewOsResolver(lg.Named("resolver"), baseline),
		consistency.Options{
			CallbackTypes: settings.CallbackTypes,
			LazyTypes:     settings.LazyTypes,
		},
		settings.Format,
		lg,
	)
	if err != nil {
		return apierrors.NewCommandError(err, apierrors.ExitCodeInvalidArgs)
	}

	var buf bytes.Buffer
	if _, err := generator.Generate(classpath, &buf); err != nil {
		lg.Error("failed to generate report", "error", err)
		var resErr *apierrors.ResolutionError
		if errors.As(err, &resErr) {
			return apierrors.NewCommandError(err, apierrors.ExitCodeResolutionError)
		}
		return apierrors.NewCommandError(err, apierrors.ExitCodeFailure)
	}

	if settings.OutputPath == "" {
		if _, err := io.Copy(stdout, &buf); err != nil {
			return apierrors.NewCommandError(fmt.Errorf("failed to write report: %w", err), apierrors.ExitCodeFailure)
		}
		return nil
	}

	outputFile, _, err := files.DetermineFileFullPath(settings.OutputPath, reportFileName+settings.Format.Extension())
	if err != nil {
		return apierrors.NewCommandError(err, apierrors.ExitCodeFailure)
	}
	if err := files.WriteFile(outputFile, buf.Bytes()); err != nil {
		lg.Error("failed to write report", "path", outputFile, "error", err)
		return apierrors.NewCommandError(fmt.Errorf("failed to write report %q: %w", outputFile, err), apierrors.ExitCodeFailure)
	}
	lg.Info("report written", "path", outputFile)
	return nil
}

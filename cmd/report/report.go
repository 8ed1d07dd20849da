package report

import (
	"github.com/spf13/cobra"

	"github.com/scan-io-git/apiprops/pkg/shared/config"
	"github.com/scan-io-git/apiprops/pkg/shared/logger"
)

// RunOptionsReport holds the arguments for the report command.
type RunOptionsReport struct {
	IgnoredPackages []string
	IgnoredTypes    []string
	Baseline        []string
	Format          string
	OutputPath      string
}

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	reportOptions      RunOptionsReport
	exampleReportUsage = `  # Reporting on a Gradle distribution's API jars
  apiprops report ~/gradle/lib/gradle-core-api.jar ~/gradle/lib/plugins/gradle-plugins.jar

  # Reporting on a class directory with the JDK classes as baseline
  apiprops report --baseline /path/to/jdk-classes build/classes/java/main

  # Excluding a package with all its subpackages and a single type
  apiprops report --ignore-package org.gradle.api.tasks.testing --ignore-type org.gradle.api.Project /path/to/gradle-api.jar

  # Writing a SARIF report into a directory
  apiprops report --format sarif --output build/reports /path/to/gradle-api.jar

  # Writing a JSON report to a specific file
  apiprops report -f json -o build/reports/properties.json /path/to/gradle-api.jar`
)

// ReportCmd represents the report command.
var ReportCmd = &cobra.Command{
	Use:                   "report [--ignore-package PACKAGE]... [--ignore-type TYPE]... [--baseline PATH]... [--format/-f OUTPUT_FORMAT] [--output/-o PATH] CLASSPATH...",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleReportUsage,
	Short:                 "Generates the property consistency report for the public API found on a classpath",
	Long: `Generates the property consistency report for the public API found on a classpath.

Every argument is a jar archive or a directory of class files. The report lists:
  setters without getters, properties with inconsistent getter/setter types,
  properties with additional setter types, propertyName() setters, fluent setters
  and lazy properties with non-abstract getters.`,
	RunE: runReportCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runReportCommand executes the report command.
func runReportCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !hasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	lg := logger.NewLogger(AppConfig, "core-report")
	if err := generateReport(AppConfig, &reportOptions, args, cmd.OutOrStdout(), lg); err != nil {
		return err
	}

	lg.Info("report command completed successfully")
	return nil
}

// Initialize flags for the report command.
func init() {
	ReportCmd.Flags().StringArrayVar(&reportOptions.IgnoredPackages, "ignore-package", nil, "Fully qualified package to exclude together with its subpackages. Can be repeated.")
	ReportCmd.Flags().StringArrayVar(&reportOptions.IgnoredTypes, "ignore-type", nil, "Fully qualified type to exclude. Can be repeated.")
	ReportCmd.Flags().StringArrayVar(&reportOptions.Baseline, "baseline", nil, "Jar or class directory loaded ahead of the classpath, for example the JDK classes. Can be repeated.")
	ReportCmd.Flags().StringVarP(&reportOptions.Format, "format", "f", "", "Format of the report: markdown (default), sarif or json.")
	ReportCmd.Flags().BoolP("help", "h", false, "Show help for the report command.")
	ReportCmd.Flags().StringVarP(&reportOptions.OutputPath, "output", "o", "", "Path to the output file or directory. The report is written to stdout by default.")
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/apiprops/cmd/report"
	"github.com/scan-io-git/apiprops/cmd/version"
	"github.com/scan-io-git/apiprops/pkg/shared/config"
	apierrors "github.com/scan-io-git/apiprops/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "apiprops [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "apiprops reports property consistency issues of the Gradle public API.",
		Long: `apiprops loads compiled Gradle API classes from jars and class directories,
	detects getter/setter properties on public API types and reports setters without getters,
	mismatching property types, propertyName() setters, fluent setters and eager lazy properties.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultConfigFile+" when present)")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apierrors.NewCommandError(err, apierrors.ExitCodeInvalidArgs)
	})
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(report.ReportCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		var cmdErr *apierrors.CommandError
		if errors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return apierrors.ExitCodeFailure
	}
	return apierrors.ExitCodeOK
}

func initConfig() {
	var err error

	AppConfig, err = config.NewConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(apierrors.ExitCodeInvalidArgs)
	}

	report.Init(AppConfig)
}

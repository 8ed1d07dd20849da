package report

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/apiprops/internal/classfile/classfiletest"
	"github.com/scan-io-git/apiprops/internal/jvm"
	apireport "github.com/scan-io-git/apiprops/internal/report"
	"github.com/scan-io-git/apiprops/pkg/shared/config"
	apierrors "github.com/scan-io-git/apiprops/pkg/shared/errors"
)

func writeAPIJar(t *testing.T, path string) {
	t.Helper()
	classes := []classfiletest.Class{
		{
			Name:   "org/gradle/api/tasks/Copy",
			Access: jvm.AccPublic,
			Super:  "java/lang/Object",
			Methods: []classfiletest.Member{
				classfiletest.Public("getDestination", "()Ljava/io/File;"),
				classfiletest.Public("setDestination", "(Ljava/lang/Object;)V"),
			},
		},
		{
			Name:   "org/gradle/api/tasks/internal/DefaultCopy",
			Access: jvm.AccPublic,
			Super:  "org/gradle/api/tasks/Copy",
			Methods: []classfiletest.Member{
				classfiletest.Public("setOther", "(Ljava/lang/String;)V"),
			},
		},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, c := range classes {
		w, err := zw.Create(c.Name + ".class")
		require.NoError(t, err)
		_, err = w.Write(c.Bytes())
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestGenerateReportToStdout(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "gradle-api.jar")
	writeAPIJar(t, jar)

	var out bytes.Buffer
	err := generateReport(nil, &RunOptionsReport{}, []string{jar}, &out, hclog.NewNullLogger())
	require.NoError(t, err)

	report := out.String()
	assert.Contains(t, report, "- Packages: 1\n- Types: 1\n")
	assert.Contains(t, report, "- `File Copy.getDestination()` (setter: `Object`)\n")
	assert.NotContains(t, report, "setOther")
}

func TestGenerateReportToDirectory(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "gradle-api.jar")
	writeAPIJar(t, jar)
	outDir := filepath.Join(dir, "reports")

	cfg := &config.Config{Report: config.Report{Format: "json"}}
	var out bytes.Buffer
	err := generateReport(cfg, &RunOptionsReport{OutputPath: outDir}, []string{jar}, &out, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Zero(t, out.Len())

	data, err := os.ReadFile(filepath.Join(outDir, "apiprops-report.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"inconsistent-property-types"`)
}

func TestGenerateReportIgnoredType(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "gradle-api.jar")
	writeAPIJar(t, jar)

	var out bytes.Buffer
	options := &RunOptionsReport{IgnoredTypes: []string{"org.gradle.api.tasks.Copy"}}
	require.NoError(t, generateReport(nil, options, []string{jar}, &out, hclog.NewNullLogger()))
	assert.Contains(t, out.String(), "- Packages: 0\n- Types: 0\n")
}

func TestGenerateReportExitCodes(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.jar")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a zip"), 0644))

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "no classpath", wantCode: apierrors.ExitCodeInvalidArgs},
		{name: "missing entry", args: []string{filepath.Join(dir, "missing.jar")}, wantCode: apierrors.ExitCodeInvalidArgs},
		{name: "unreadable jar", args: []string{corrupt}, wantCode: apierrors.ExitCodeResolutionError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := generateReport(nil, &RunOptionsReport{}, tt.args, &out, hclog.NewNullLogger())

			var cmdErr *apierrors.CommandError
			require.True(t, errors.As(err, &cmdErr))
			assert.Equal(t, tt.wantCode, cmdErr.ExitCode)
			assert.Zero(t, out.Len())
		})
	}
}

func TestMergeSettings(t *testing.T) {
	cfg := &config.Config{
		API: config.API{
			IgnoredPackages: []string{"org.gradle.api.tasks"},
			CallbackTypes:   []string{"groovy.lang.Closure"},
			Baseline:        []string{"/opt/jdk"},
		},
		Report: config.Report{Format: "sarif", Output: "build/reports"},
	}
	options := &RunOptionsReport{
		IgnoredPackages: []string{"org.gradle.work"},
		Format:          "JSON",
	}

	s := mergeSettings(cfg, options)
	assert.Equal(t, []string{"org.gradle.api.tasks", "org.gradle.work"}, s.IgnoredPackages)
	assert.Empty(t, s.IgnoredTypes)
	assert.Equal(t, []string{"groovy.lang.Closure"}, s.CallbackTypes)
	assert.Equal(t, []string{"/opt/jdk"}, s.Baseline)
	assert.Equal(t, apireport.FormatJSON, s.Format)
	assert.Equal(t, "build/reports", s.OutputPath)

	s = mergeSettings(nil, &RunOptionsReport{})
	assert.Equal(t, apireport.FormatMarkdown, s.Format)
	assert.Empty(t, s.OutputPath)
}

func TestHasFlags(t *testing.T) {
	flags := pflag.NewFlagSet("report", pflag.ContinueOnError)
	flags.StringP("format", "f", "", "")
	assert.False(t, hasFlags(flags))

	require.NoError(t, flags.Parse([]string{"-f", "sarif"}))
	assert.True(t, hasFlags(flags))
}

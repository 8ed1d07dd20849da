// Package report assembles the property consistency report: it resolves the
// classpath, runs the checks and renders the result to a sink.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/apiprops/internal/consistency"
	"github.com/scan-io-git/apiprops/internal/hierarchy"
	"github.com/scan-io-git/apiprops/internal/sarif"
)

// Format names an output rendering.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatSARIF    Format = "sarif"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatMarkdown, FormatSARIF, FormatJSON}

// Renderer writes a result to w.
type Renderer func(w io.Writer, result *consistency.Result) error

// RendererFor returns the renderer of format. An empty format means Markdown.
func RendererFor(format Format) (Renderer, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatMarkdown, "":
		return WriteMarkdown, nil
	case FormatSARIF:
		return sarif.Write, nil
	case FormatJSON:
		return WriteJSON, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// Extension is the file extension used when the output is a directory.
func (f Format) Extension() string {
	switch f {
	case FormatSARIF:
		return ".sarif"
	case FormatJSON:
		return ".json"
	default:
		return ".md"
	}
}

// Resolver builds the type hierarchy of a classpath.
type Resolver interface {
	Resolve(entries []string) (*hierarchy.Hierarchy, error)
}

// Generator produces reports. Each Generator should get its own classifier
// because the classifier cache is not safe for concurrent use.
type Generator struct {
	classifier consistency.Classifier
	resolver   Resolver
	options    consistency.Options
	render     Renderer
	logger     hclog.Logger
}

// NewGenerator creates a Generator rendering in the given format.
func NewGenerator(classifier consistency.Classifier, resolver Resolver, options consistency.Options, format Format, logger hclog.Logger) (*Generator, error) {
	render, err := RendererFor(format)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Generator{
		classifier: classifier,
		resolver:   resolver,
		options:    options,
		render:     render,
		logger:     logger,
	}, nil
}

// Analyze resolves classpath and runs the checks without rendering.
func (g *Generator) Analyze(classpath []string) (*consistency.Result, error) {
	h, err := g.resolver.Resolve(classpath)
	if err != nil {
		return nil, err
	}
	infos := consistency.Collect(h.AllTypes(), g.classifier)
	g.logger.Debug("API types collected", "types", len(infos), "hierarchy", h.Size())

	analyzer := consistency.New(h, g.options, g.logger.Named("analyzer"))
	return analyzer.Analyze(infos), nil
}

// Generate writes the report for classpath to sink. Nothing is written when
// resolution fails.
func (g *Generator) Generate(classpath []string, sink io.Writer) (*consistency.Result, error) {
	result, err := g.Analyze(classpath)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := g.render(&buf, result); err != nil {
		return nil, err
	}
	if _, err := io.Copy(sink, &buf); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	g.logger.Info("report generated",
		"packages", result.Summary.Packages,
		"types", result.Summary.Types,
		"methods", result.Summary.Methods,
		"properties", result.Summary.Properties,
		"findings", result.Total())
	return result, nil
}

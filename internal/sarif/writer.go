package sarif

import (
	"fmt"
	"io"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/apiprops/internal/consistency"
	"github.com/scan-io-git/apiprops/internal/findings"
)

const (
	ToolName       = "apiprops"
	InformationURI = "https://github.com/scan-io-git/apiprops"
)

// NewReport converts an analysis result into a SARIF 2.1.0 report with one
// rule per category and one result per finding.
func NewReport(result *consistency.Result) (*gosarif.Report, error) {
	report, err := gosarif.New(gosarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := gosarif.NewRunWithInformationURI(ToolName, InformationURI)
	for _, section := range result.Sections {
		category := section.Category
		rule := run.AddRule(category.RuleID()).
			WithDescription(category.Description()).
			WithDefaultConfiguration(&gosarif.ReportingConfiguration{
				Level: category.Level(),
			})

		for _, f := range section.Findings {
			res := gosarif.NewRuleResult(rule.ID).
				WithMessage(gosarif.NewTextMessage(fmt.Sprintf("%s: %s", category.Title(), f.Text()))).
				WithLevel(category.Level()).
				WithLocations([]*gosarif.Location{toLocation(f)})
			res.Properties = gosarif.Properties{
				"findingId": f.ID,
				"property":  f.Property,
				"signature": f.Signature,
			}
			run.AddResult(res)
		}
	}
	report.AddRun(run)
	return report, nil
}

// toLocation points at the class file of the declaring type and names the
// method as a logical location.
func toLocation(f findings.Finding) *gosarif.Location {
	location := gosarif.NewLocation()
	if f.Source != "" {
		location = location.WithPhysicalLocation(
			gosarif.NewPhysicalLocation().
				WithArtifactLocation(gosarif.NewArtifactLocation().WithUri(f.Source)),
		)
	}
	qualified := f.Type + "." + f.Method
	name := f.Method
	kind := "function"
	location.LogicalLocations = []*gosarif.LogicalLocation{
		{
			Name:               &name,
			FullyQualifiedName: &qualified,
			Kind:               &kind,
		},
	}
	return location
}

// Write renders result as pretty-printed SARIF.
func Write(w io.Writer, result *consistency.Result) error {
	report, err := NewReport(result)
	if err != nil {
		return err
	}
	if err := report.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}

package sarif

import (
	"bytes"
	"encoding/json"
	"testing"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/apiprops/internal/consistency"
	"github.com/scan-io-git/apiprops/internal/findings"
	"github.com/scan-io-git/apiprops/internal/jvm"
)

func testResult() *consistency.Result {
	owner := &jvm.TypeDescriptor{
		Name:   jvm.ClassRef("org.gradle.api.Thing"),
		Access: jvm.AccPublic,
		Source: "api.jar!/org/gradle/api/Thing.class",
	}
	setter := &jvm.MethodDescriptor{Name: "setName", Access: jvm.AccPublic, Params: []jvm.TypeRef{jvm.ClassRef("java.lang.String")}, ReturnType: owner.Name}
	owner.AddMethod(setter)

	result := &consistency.Result{Summary: consistency.Summary{Packages: 1, Types: 1, Methods: 1, Properties: 1}}
	for _, c := range findings.Categories {
		section := consistency.Section{Category: c, Title: c.Title(), Findings: []findings.Finding{}}
		if c == findings.SettersWithoutGetters || c == findings.FluentSetters {
			section.Findings = append(section.Findings, findings.New(c, "name", setter))
		}
		result.Sections = append(result.Sections, section)
	}
	return result
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testResult()))

	var report gosarif.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	require.Len(t, report.Runs, 1)
	run := report.Runs[0]

	assert.Equal(t, ToolName, run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, len(findings.Categories))
	require.Len(t, run.Results, 2)

	first := run.Results[0]
	require.NotNil(t, first.RuleID)
	assert.Equal(t, findings.SettersWithoutGetters.RuleID(), *first.RuleID)
	require.NotNil(t, first.Message.Text)
	assert.Equal(t, "Setters without getters: `Thing Thing.setName(String)`", *first.Message.Text)
	assert.Equal(t, "name", first.Properties["property"])

	require.Len(t, first.Locations, 1)
	loc := first.Locations[0]
	require.NotNil(t, loc.PhysicalLocation)
	assert.Equal(t, "api.jar!/org/gradle/api/Thing.class", *loc.PhysicalLocation.ArtifactLocation.URI)
	require.Len(t, loc.LogicalLocations, 1)
	assert.Equal(t, "org.gradle.api.Thing.setName", *loc.LogicalLocations[0].FullyQualifiedName)

	assert.Equal(t, findings.FluentSetters.RuleID(), *run.Results[1].RuleID)
}

func TestToLocationWithoutSource(t *testing.T) {
	loc := toLocation(findings.Finding{Type: "org.gradle.api.Thing", Method: "getName"})
	assert.Nil(t, loc.PhysicalLocation)
	require.Len(t, loc.LogicalLocations, 1)
	assert.Equal(t, "getName", *loc.LogicalLocations[0].Name)
}

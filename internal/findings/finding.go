package findings

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/scan-io-git/apiprops/internal/jvm"
)

// Category identifies one of the property consistency checks.
type Category int

const (
	SettersWithoutGetters Category = iota
	InconsistentTypes
	AdditionalSetterTypes
	PropertyNameSetters
	FluentSetters
	LazyPropertiesNonAbstractGetters
)

// Categories lists every category in report order.
var Categories = []Category{
	SettersWithoutGetters,
	InconsistentTypes,
	AdditionalSetterTypes,
	PropertyNameSetters,
	FluentSetters,
	LazyPropertiesNonAbstractGetters,
}

type categoryInfo struct {
	ruleID      string
	title       string
	description string
	level       string
}

var categoryInfos = map[Category]categoryInfo{
	SettersWithoutGetters: {
		ruleID:      "setter-without-getter",
		title:       "Setters without getters",
		description: "A setter is declared for a property that has no getter.",
		level:       "warning",
	},
	InconsistentTypes: {
		ruleID:      "inconsistent-property-types",
		title:       "Properties with inconsistent getter/setter types",
		description: "None of the setters of a property accepts the type returned by its getter.",
		level:       "error",
	},
	AdditionalSetterTypes: {
		ruleID:      "additional-setter-types",
		title:       "Properties with consistent getter/setter types, but with additional setter types",
		description: "A property has a setter matching its getter type and further setters accepting other types.",
		level:       "note",
	},
	PropertyNameSetters: {
		ruleID:      "property-name-setter",
		title:       "Properties with `propertyName()` setters",
		description: "A property is also assigned through a method named like the property itself.",
		level:       "warning",
	},
	FluentSetters: {
		ruleID:      "fluent-setter",
		title:       "Fluent setters",
		description: "A setter returns a value instead of void.",
		level:       "note",
	},
	LazyPropertiesNonAbstractGetters: {
		ruleID:      "lazy-property-non-abstract-getter",
		title:       "Lazy properties with non-abstract getters",
		description: "A getter of a lazy property type is implemented on a class instead of being abstract.",
		level:       "warning",
	},
}

// RuleID is the stable identifier used in SARIF and JSON output.
func (c Category) RuleID() string { return categoryInfos[c].ruleID }

// Title is the report section header.
func (c Category) Title() string { return categoryInfos[c].title }

func (c Category) Description() string { return categoryInfos[c].description }

// Level is the SARIF level of results in this category.
func (c Category) Level() string { return categoryInfos[c].level }

func (c Category) String() string { return c.RuleID() }

// MarshalText encodes the category by rule ID.
func (c Category) MarshalText() ([]byte, error) {
	if _, ok := categoryInfos[c]; !ok {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(c.RuleID()), nil
}

// findingNamespace seeds the name-based finding IDs.
var findingNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/scan-io-git/apiprops/findings"))

// Finding is one reportable fact about a property.
type Finding struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Type        string   `json:"type"`
	Property    string   `json:"property"`
	Method      string   `json:"method"`
	Signature   string   `json:"signature"`
	SetterTypes []string `json:"setter_types,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// New creates a finding for method. setterTypes lists the mismatching
// setter value types of the type consistency categories.
func New(category Category, property string, method *jvm.MethodDescriptor, setterTypes ...jvm.TypeRef) Finding {
	f := Finding{
		Category:  category,
		Property:  property,
		Method:    method.Name,
		Signature: method.Signature(),
	}
	if method.Declaring != nil {
		f.Type = method.Declaring.Name.QualifiedName()
		f.Source = method.Declaring.Source
	}
	for _, t := range setterTypes {
		f.SetterTypes = append(f.SetterTypes, t.SimpleName())
	}
	f.ID = findingID(category, method).String()
	return f
}

// findingID is stable across runs: it hashes the category together with the
// fully qualified method signature.
func findingID(category Category, method *jvm.MethodDescriptor) uuid.UUID {
	var b strings.Builder
	b.WriteString(category.RuleID())
	b.WriteByte('|')
	if method.Declaring != nil {
		b.WriteString(string(method.Declaring.Name))
	}
	b.WriteByte('.')
	b.WriteString(method.Name)
	b.WriteByte('(')
	for _, p := range method.Params {
		b.WriteString(string(p))
		b.WriteByte(';')
	}
	b.WriteByte(')')
	b.WriteString(string(method.ReturnType))
	return uuid.NewSHA1(findingNamespace, []byte(b.String()))
}

// Text renders the finding as it appears in a report line.
func (f Finding) Text() string {
	if len(f.SetterTypes) == 0 {
		return fmt.Sprintf("`%s`", f.Signature)
	}
	quoted := make([]string, 0, len(f.SetterTypes))
	for _, t := range f.SetterTypes {
		quoted = append(quoted, fmt.Sprintf("`%s`", t))
	}
	return fmt.Sprintf("`%s` (setter: %s)", f.Signature, strings.Join(quoted, ", "))
}

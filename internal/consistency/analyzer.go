// Package consistency runs the property consistency checks over the
// extracted properties of API types.
package consistency

import (
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/apiprops/internal/findings"
	"github.com/scan-io-git/apiprops/internal/jvm"
	"github.com/scan-io-git/apiprops/internal/properties"
)

// Default callback and lazy value types. Callback types are accepted as the
// value of a `propertyName(value)` method without a finding.
var (
	DefaultCallbackTypes = []string{"groovy.lang.Closure", "org.gradle.api.Action"}
	DefaultLazyTypes     = []string{"org.gradle.api.provider.Provider", "org.gradle.api.file.ConfigurableFileCollection"}
)

// Hierarchy answers the type queries needed by the lazy property check.
type Hierarchy interface {
	Lookup(name jvm.TypeRef) (*jvm.TypeDescriptor, bool)
	IsSubtype(ancestor, descendant *jvm.TypeDescriptor) bool
}

// Options configures the name-based type lists. Empty lists fall back to the defaults.
type Options struct {
	CallbackTypes []string
	LazyTypes     []string
}

// Summary holds the report totals.
type Summary struct {
	Packages   int `json:"packages"`
	Types      int `json:"types"`
	Methods    int `json:"methods"`
	Properties int `json:"properties"`
}

// Section is the findings of one category.
type Section struct {
	Category findings.Category  `json:"category"`
	Title    string             `json:"title"`
	Findings []findings.Finding `json:"findings"`
}

// Result is the outcome of one analysis run. Sections follow findings.Categories.
type Result struct {
	Summary  Summary   `json:"summary"`
	Sections []Section `json:"sections"`
}

// Findings returns the findings of category c.
func (r *Result) Findings(c findings.Category) []findings.Finding {
	for _, s := range r.Sections {
		if s.Category == c {
			return s.Findings
		}
	}
	return nil
}

// Total counts all findings.
func (r *Result) Total() int {
	total := 0
	for _, s := range r.Sections {
		total += len(s.Findings)
	}
	return total
}

// Analyzer runs the checks. It only reads the hierarchy.
type Analyzer struct {
	hierarchy     Hierarchy
	callbackTypes map[jvm.TypeRef]struct{}
	lazyTypes     []string
	logger        hclog.Logger
}

// New creates an Analyzer.
func New(h Hierarchy, opts Options, logger hclog.Logger) *Analyzer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	callbacks := opts.CallbackTypes
	if len(callbacks) == 0 {
		callbacks = DefaultCallbackTypes
	}
	lazy := opts.LazyTypes
	if len(lazy) == 0 {
		lazy = DefaultLazyTypes
	}
	a := &Analyzer{
		hierarchy:     h,
		callbackTypes: make(map[jvm.TypeRef]struct{}, len(callbacks)),
		lazyTypes:     lazy,
		logger:        logger,
	}
	for _, name := range callbacks {
		a.callbackTypes[jvm.ClassRef(name)] = struct{}{}
	}
	return a
}

// Analyze runs every check over infos, which must be ordered as returned by Collect.
func (a *Analyzer) Analyze(infos []*TypeInfo) *Result {
	byCategory := map[findings.Category][]findings.Finding{}
	emit := func(f findings.Finding) {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	a.forEachProperty(infos, func(_ *TypeInfo, p *properties.Property) { a.settersWithoutGetters(p, emit) })
	a.forEachProperty(infos, func(_ *TypeInfo, p *properties.Property) { a.typeConsistency(p, emit) })
	a.forEachProperty(infos, func(info *TypeInfo, p *properties.Property) { a.propertyNameSetter(info, p, emit) })
	a.forEachProperty(infos, func(_ *TypeInfo, p *properties.Property) { a.fluentSetters(p, emit) })
	a.lazyProperties(infos, emit)

	result := &Result{Summary: Summarize(infos)}
	for _, c := range findings.Categories {
		found := byCategory[c]
		if found == nil {
			found = []findings.Finding{}
		}
		result.Sections = append(result.Sections, Section{
			Category: c,
			Title:    c.Title(),
			Findings: found,
		})
	}
	a.logger.Debug("consistency checks finished", "types", result.Summary.Types, "findings", result.Total())
	return result
}

func (a *Analyzer) forEachProperty(infos []*TypeInfo, fn func(info *TypeInfo, p *properties.Property)) {
	for _, info := range infos {
		for _, p := range info.Properties.Sorted() {
			fn(info, p)
		}
	}
}

func (a *Analyzer) settersWithoutGetters(p *properties.Property, emit func(findings.Finding)) {
	if p.Getter != nil {
		return
	}
	for _, setter := range p.Setters {
		emit(findings.New(findings.SettersWithoutGetters, p.Name, setter))
	}
}

func (a *Analyzer) typeConsistency(p *properties.Property, emit func(findings.Finding)) {
	if p.Getter == nil {
		return
	}
	types := p.Types()
	if len(types) == 1 {
		return
	}
	var others []jvm.TypeRef
	for _, t := range types {
		if t != p.Getter.ReturnType {
			others = append(others, t)
		}
	}
	category := findings.InconsistentTypes
	if _, ok := p.MatchingSetterType(); ok {
		category = findings.AdditionalSetterTypes
	}
	emit(findings.New(category, p.Name, p.Getter, others...))
}

// propertyNameSetter reports the first public instance method named exactly
// like a property with a getter that takes a single non-callback value.
func (a *Analyzer) propertyNameSetter(info *TypeInfo, p *properties.Property, emit func(findings.Finding)) {
	if p.Getter == nil {
		return
	}
	for _, m := range info.Methods {
		if m.IsStatic() || m.NumberOfParameters() != 2 || m.Name != p.Name {
			continue
		}
		if _, callback := a.callbackTypes[m.ParameterType(1)]; callback {
			continue
		}
		emit(findings.New(findings.PropertyNameSetters, p.Name, m))
		return
	}
}

func (a *Analyzer) fluentSetters(p *properties.Property, emit func(findings.Finding)) {
	for _, setter := range p.Setters {
		if setter.ReturnType != jvm.Void {
			emit(findings.New(findings.FluentSetters, p.Name, setter))
		}
	}
}

func (a *Analyzer) lazyProperties(infos []*TypeInfo, emit func(findings.Finding)) {
	markers := make([]*jvm.TypeDescriptor, 0, len(a.lazyTypes))
	for _, name := range a.lazyTypes {
		marker, ok := a.hierarchy.Lookup(jvm.ClassRef(name))
		if !ok {
			a.logger.Debug("lazy type not found in hierarchy, skipping lazy property check", "type", name)
			return
		}
		markers = append(markers, marker)
	}

	a.forEachProperty(infos, func(info *TypeInfo, p *properties.Property) {
		if p.Getter == nil || info.Type.IsInterface() || p.Getter.IsAbstract() {
			return
		}
		getterType, ok := a.hierarchy.Lookup(p.Getter.ReturnType)
		if !ok {
			return
		}
		for _, marker := range markers {
			if a.hierarchy.IsSubtype(marker, getterType) {
				emit(findings.New(findings.LazyPropertiesNonAbstractGetters, p.Name, p.Getter))
				return
			}
		}
	})
}

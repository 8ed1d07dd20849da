package consistency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/apiprops/internal/apisurface"
	"github.com/scan-io-git/apiprops/internal/findings"
	"github.com/scan-io-git/apiprops/internal/hierarchy"
	"github.com/scan-io-git/apiprops/internal/jvm"
)

var (
	stringType  = jvm.ClassRef("java.lang.String")
	objectType  = jvm.ClassRef("java.lang.Object")
	closureType = jvm.ClassRef("groovy.lang.Closure")
	actionType  = jvm.ClassRef("org.gradle.api.Action")
	cfcType     = jvm.ClassRef("org.gradle.api.file.ConfigurableFileCollection")
	providerRef = jvm.ClassRef("org.gradle.api.provider.Provider")
	propertyRef = jvm.ClassRef("org.gradle.api.provider.Property")
)

func method(name string, ret jvm.TypeRef, params ...jvm.TypeRef) *jvm.MethodDescriptor {
	return &jvm.MethodDescriptor{Name: name, Access: jvm.AccPublic, Params: params, ReturnType: ret}
}

func abstractMethod(name string, ret jvm.TypeRef, params ...jvm.TypeRef) *jvm.MethodDescriptor {
	m := method(name, ret, params...)
	m.Access |= jvm.AccAbstract
	return m
}

func apiClass(name string, methods ...*jvm.MethodDescriptor) *jvm.TypeDescriptor {
	td := &jvm.TypeDescriptor{Name: jvm.ClassRef(name), Access: jvm.AccPublic, Super: objectType}
	for _, m := range methods {
		td.AddMethod(m)
	}
	return td
}

func apiInterface(name string, methods ...*jvm.MethodDescriptor) *jvm.TypeDescriptor {
	td := apiClass(name, methods...)
	td.Access |= jvm.AccInterface | jvm.AccAbstract
	return td
}

// markerTypes are the lazy value containers and their supertypes.
func markerTypes() []*jvm.TypeDescriptor {
	provider := apiInterface("org.gradle.api.provider.Provider")
	property := apiInterface("org.gradle.api.provider.Property")
	property.Interfaces = []jvm.TypeRef{providerRef}
	fileCollection := apiInterface("org.gradle.api.file.FileCollection")
	cfc := apiInterface("org.gradle.api.file.ConfigurableFileCollection")
	cfc.Interfaces = []jvm.TypeRef{jvm.ClassRef("org.gradle.api.file.FileCollection")}
	return []*jvm.TypeDescriptor{apiClass("java.lang.Object"), provider, property, fileCollection, cfc}
}

func analyze(t *testing.T, types ...*jvm.TypeDescriptor) *Result {
	t.Helper()
	h := hierarchy.New(append(markerTypes(), types...)...)
	infos := Collect(h.AllTypes(), apisurface.New(nil, nil))
	return New(h, Options{}, nil).Analyze(infos)
}

func texts(fs []findings.Finding) []string {
	out := []string{}
	for _, f := range fs {
		out = append(out, f.Text())
	}
	return out
}

func TestMatchingGetterAndSetter(t *testing.T) {
	r := analyze(t, apiClass("org.gradle.api.Thing",
		method("getName", stringType),
		method("setName", jvm.Void, stringType),
	))
	assert.Empty(t, r.Findings(findings.InconsistentTypes))
	assert.Empty(t, r.Findings(findings.AdditionalSetterTypes))
	assert.Empty(t, r.Findings(findings.SettersWithoutGetters))
	assert.Equal(t, 0, r.Total())
}

func TestAdditionalSetterTypes(t *testing.T) {
	r := analyze(t, apiClass("org.gradle.api.Thing",
		method("getName", stringType),
		method("setName", jvm.Void, stringType),
		method("setName", jvm.Void, objectType),
	))
	assert.Empty(t, r.Findings(findings.InconsistentTypes))
	assert.Equal(t, []string{"`String Thing.getName()` (setter: `Object`)"}, texts(r.Findings(findings.AdditionalSetterTypes)))
}

func TestInconsistentTypes(t *testing.T) {
	r := analyze(t, apiClass("org.gradle.api.Thing",
		method("getCount", jvm.Long),
		method("setCount", jvm.Void, jvm.Int),
		method("setCount", jvm.Void, objectType),
		method("setCount", jvm.Void, jvm.Int),
	))
	assert.Equal(t, []string{"`long Thing.getCount()` (setter: `int`, `Object`)"}, texts(r.Findings(findings.InconsistentTypes)))
	assert.Empty(t, r.Findings(findings.AdditionalSetterTypes))
}

func TestSetterWithoutGetter(t *testing.T) {
	r := analyze(t, apiClass("org.gradle.api.Thing",
		method("setFoo", jvm.Void, stringType),
	))
	assert.Equal(t, []string{"`void Thing.setFoo(String)`"}, texts(r.Findings(findings.SettersWithoutGetters)))
	assert.Empty(t, r.Findings(findings.InconsistentTypes))
}

func TestFluentSetters(t *testing.T) {
	builder := jvm.ClassRef("org.gradle.api.Builder")
	r := analyze(t,
		apiClass("org.gradle.api.Builder",
			method("setName", builder, stringType),
		),
		apiClass("org.gradle.api.Other",
			method("getName", stringType),
			method("setName", builder, stringType),
		),
	)
	assert.Equal(t, []string{
		"`Builder Builder.setName(String)`",
		"`Builder Other.setName(String)`",
	}, texts(r.Findings(findings.FluentSetters)))
}

func TestPropertyNameSetters(t *testing.T) {
	static := method("name", jvm.Void, stringType)
	static.Access |= jvm.AccStatic

	r := analyze(t,
		apiClass("org.gradle.api.Thing",
			method("getName", stringType),
			static,
			method("name", jvm.Void, closureType),
			method("name", jvm.Void, actionType),
			method("name", jvm.Void, stringType),
			method("name", jvm.Void, objectType),
		),
		apiClass("org.gradle.api.Callbacks",
			method("getDestination", stringType),
			method("destination", jvm.Void, actionType),
		),
		apiClass("org.gradle.api.NoParam",
			method("getValue", stringType),
			method("value", stringType),
		),
	)
	assert.Equal(t, []string{"`void Thing.name(String)`"}, texts(r.Findings(findings.PropertyNameSetters)))
}

func TestPropertyNameSetterRequiresGetter(t *testing.T) {
	r := analyze(t, apiClass("org.gradle.api.Thing",
		method("setName", jvm.Void, stringType),
		method("name", jvm.Void, stringType),
	))
	assert.Empty(t, r.Findings(findings.PropertyNameSetters))
}

func TestCustomCallbackTypes(t *testing.T) {
	fn := jvm.ClassRef("kotlin.jvm.functions.Function1")
	thing := apiClass("org.gradle.api.Thing",
		method("getName", stringType),
		method("name", jvm.Void, fn),
	)
	h := hierarchy.New(append(markerTypes(), thing)...)
	infos := Collect(h.AllTypes(), apisurface.New(nil, nil))

	r := New(h, Options{CallbackTypes: []string{"kotlin.jvm.functions.Function1"}}, nil).Analyze(infos)
	assert.Empty(t, r.Findings(findings.PropertyNameSetters))

	r = New(h, Options{}, nil).Analyze(infos)
	assert.Len(t, r.Findings(findings.PropertyNameSetters), 1)
}

func TestLazyPropertiesNonAbstractGetters(t *testing.T) {
	r := analyze(t,
		apiClass("org.gradle.api.Task",
			method("getFoo", cfcType),
			abstractMethod("getBar", cfcType),
			method("getBaz", propertyRef),
			method("getPlain", stringType),
			method("getMissing", jvm.ClassRef("com.example.Unknown")),
		),
		apiInterface("org.gradle.api.Spec",
			method("getFoo", cfcType),
		),
	)
	assert.Equal(t, []string{
		"`Property Task.getBaz()`",
		"`ConfigurableFileCollection Task.getFoo()`",
	}, texts(r.Findings(findings.LazyPropertiesNonAbstractGetters)))
}

func TestLazyCheckSkippedWithoutMarkers(t *testing.T) {
	task := apiClass("org.gradle.api.Task", method("getFoo", cfcType))
	provider := apiInterface("org.gradle.api.provider.Provider")
	cfc := apiInterface("org.gradle.api.file.ConfigurableFileCollection")
	h := hierarchy.New(provider, cfc, task)
	infos := Collect(h.AllTypes(), apisurface.New(nil, nil))

	r := New(h, Options{LazyTypes: []string{"org.gradle.api.provider.Provider", "org.gradle.api.Missing"}}, nil).Analyze(infos)
	assert.Empty(t, r.Findings(findings.LazyPropertiesNonAbstractGetters))

	r = New(h, Options{}, nil).Analyze(infos)
	assert.Len(t, r.Findings(findings.LazyPropertiesNonAbstractGetters), 1)
}

func TestSummaryAndOrdering(t *testing.T) {
	ctor := method(jvm.ConstructorName, jvm.Void)
	r := analyze(t,
		apiClass("org.gradle.api.tasks.Zeta",
			ctor,
			method("setB", jvm.Void, stringType),
			method("setA", jvm.Void, stringType),
		),
		apiClass("org.gradle.api.Alpha",
			method("setZ", jvm.Void, stringType),
			method("getY", stringType),
			method("toString", stringType),
		),
	)
	assert.Equal(t, Summary{Packages: 4, Types: 6, Methods: 6, Properties: 4}, r.Summary)
	assert.Equal(t, []string{
		"`void Alpha.setZ(String)`",
		"`void Zeta.setA(String)`",
		"`void Zeta.setB(String)`",
	}, texts(r.Findings(findings.SettersWithoutGetters)))

	require.Len(t, r.Sections, len(findings.Categories))
	for i, c := range findings.Categories {
		assert.Equal(t, c, r.Sections[i].Category)
		assert.NotNil(t, r.Sections[i].Findings)
	}
}

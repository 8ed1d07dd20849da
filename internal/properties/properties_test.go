package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/apiprops/internal/jvm"
)

var (
	stringType = jvm.ClassRef("java.lang.String")
	objectType = jvm.ClassRef("java.lang.Object")
)

func method(name string, ret jvm.TypeRef, params ...jvm.TypeRef) *jvm.MethodDescriptor {
	return &jvm.MethodDescriptor{Name: name, Access: jvm.AccPublic, Params: params, ReturnType: ret}
}

func typeWith(methods ...*jvm.MethodDescriptor) *jvm.TypeDescriptor {
	td := &jvm.TypeDescriptor{Name: jvm.ClassRef("org.gradle.api.Thing"), Access: jvm.AccPublic}
	for _, m := range methods {
		td.AddMethod(m)
	}
	return td
}

func TestClassify(t *testing.T) {
	static := method("getInstance", objectType)
	static.Access |= jvm.AccStatic

	tests := []struct {
		name     string
		method   *jvm.MethodDescriptor
		wantKind Kind
		wantName string
	}{
		{"getter", method("getName", stringType), Getter, "name"},
		{"is getter", method("isEnabled", jvm.Boolean), Getter, "enabled"},
		{"is getter with any type", method("isValue", stringType), Getter, "value"},
		{"acronym", method("getURL", stringType), Getter, "uRL"},
		{"setter", method("setName", jvm.Void, stringType), Setter, "name"},
		{"fluent setter", method("setName", objectType, stringType), Setter, "name"},
		{"bare get", method("get", stringType), 0, ""},
		{"bare is", method("is", jvm.Boolean), 0, ""},
		{"bare set", method("set", jvm.Void, stringType), 0, ""},
		{"void getter", method("getName", jvm.Void), 0, ""},
		{"getter with argument", method("getName", stringType, jvm.Int), 0, ""},
		{"setter without argument", method("setName", jvm.Void), 0, ""},
		{"setter with two arguments", method("setName", jvm.Void, stringType, jvm.Int), 0, ""},
		{"static getter", static, 0, ""},
		{"plain method", method("name", jvm.Void, stringType), 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typeWith(tt.method)
			pm, ok := Classify(tt.method)
			if tt.wantKind == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, pm.Kind)
			assert.Equal(t, tt.wantName, pm.Name)
			assert.Same(t, tt.method, pm.Method)
		})
	}
}

func TestExtractMatchingGetterAndSetter(t *testing.T) {
	getter := method("getName", stringType)
	setter := method("setName", jvm.Void, stringType)
	set := Extract(typeWith(getter, setter, method("toString", stringType)))

	require.Equal(t, 1, set.Len())
	p, ok := set.Get("name")
	require.True(t, ok)
	assert.Same(t, getter, p.Getter)
	assert.Equal(t, []*jvm.MethodDescriptor{setter}, p.Setters)
	assert.Equal(t, []jvm.TypeRef{stringType}, p.Types())
	matching, ok := p.MatchingSetterType()
	assert.True(t, ok)
	assert.Equal(t, stringType, matching)
}

func TestExtractAdditionalSetter(t *testing.T) {
	first := method("setName", jvm.Void, stringType)
	second := method("setName", jvm.Void, objectType)
	duplicate := method("setName", jvm.Void, stringType)
	set := Extract(typeWith(method("getName", stringType), first, second, duplicate))

	p, ok := set.Get("name")
	require.True(t, ok)
	assert.Equal(t, []*jvm.MethodDescriptor{first, second, duplicate}, p.Setters)
	assert.Equal(t, []jvm.TypeRef{stringType, objectType}, p.Types())
	_, ok = p.MatchingSetterType()
	assert.True(t, ok)
}

func TestExtractSkipsNonPublicAndConstructors(t *testing.T) {
	private := method("getSecret", stringType)
	private.Access = jvm.AccPrivate
	ctor := method(jvm.ConstructorName, jvm.Void, stringType)
	clinit := method(jvm.StaticInitializerName, jvm.Void)
	clinit.Access = jvm.AccStatic

	set := Extract(typeWith(private, ctor, clinit, method("setValue", jvm.Void, jvm.Int)))
	assert.Equal(t, 1, set.Len())
	p, ok := set.Get("value")
	require.True(t, ok)
	assert.Nil(t, p.Getter)
	_, ok = p.MatchingSetterType()
	assert.False(t, ok)
}

func TestExtractLastGetterWins(t *testing.T) {
	isGetter := method("isEnabled", jvm.Boolean)
	getGetter := method("getEnabled", objectType)
	set := Extract(typeWith(isGetter, getGetter))

	p, ok := set.Get("enabled")
	require.True(t, ok)
	assert.Same(t, getGetter, p.Getter)
}

func TestSortedByName(t *testing.T) {
	set := Extract(typeWith(
		method("getZeta", stringType),
		method("setAlpha", jvm.Void, stringType),
		method("isMiddle", jvm.Boolean),
	))
	var names []string
	for _, p := range set.Sorted() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"alpha", "middle", "zeta"}, names)
}

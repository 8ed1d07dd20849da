// Package jvm holds the read-only view of compiled JVM types that the
// analysis works on: type references, declared types and their methods.
package jvm

import (
	"fmt"
	"strings"
)

// AccessFlags mirrors the access_flags bit set of the class file format.
type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSynchronized AccessFlags = 0x0020
	AccBridge       AccessFlags = 0x0040
	AccVarargs      AccessFlags = 0x0080
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
)

// Has reports whether all bits of flag are set.
func (a AccessFlags) Has(flag AccessFlags) bool {
	return a&flag == flag
}

const (
	ConstructorName       = "<init>"
	StaticInitializerName = "<clinit>"
)

// TypeDescriptor is a declared class or interface.
type TypeDescriptor struct {
	Name       TypeRef
	Access     AccessFlags
	Super      TypeRef // empty for java/lang/Object and module-info
	Interfaces []TypeRef
	Methods    []*MethodDescriptor // declaration order
	Source     string              // classpath entry and path of the defining class file
}

// Package returns the slash-separated package, empty for the default package.
func (t *TypeDescriptor) Package() string {
	return t.Name.Package()
}

// SimpleName returns the class name without its package.
func (t *TypeDescriptor) SimpleName() string {
	return t.Name.ClassName()
}

func (t *TypeDescriptor) IsPublic() bool    { return t.Access.Has(AccPublic) }
func (t *TypeDescriptor) IsInterface() bool { return t.Access.Has(AccInterface) }
func (t *TypeDescriptor) IsAbstract() bool  { return t.Access.Has(AccAbstract) }

// AddMethod appends a method and binds it to t.
func (t *TypeDescriptor) AddMethod(m *MethodDescriptor) {
	m.Declaring = t
	t.Methods = append(t.Methods, m)
}

func (t *TypeDescriptor) String() string {
	return t.Name.QualifiedName()
}

// MethodDescriptor is a method declared on a TypeDescriptor.
type MethodDescriptor struct {
	Declaring  *TypeDescriptor
	Name       string
	Access     AccessFlags
	Params     []TypeRef // declared parameters, excluding the receiver
	ReturnType TypeRef
}

func (m *MethodDescriptor) IsPublic() bool   { return m.Access.Has(AccPublic) }
func (m *MethodDescriptor) IsStatic() bool   { return m.Access.Has(AccStatic) }
func (m *MethodDescriptor) IsAbstract() bool { return m.Access.Has(AccAbstract) }

// IsInit reports whether m is a constructor.
func (m *MethodDescriptor) IsInit() bool { return m.Name == ConstructorName }

// IsClinit reports whether m is a static initializer.
func (m *MethodDescriptor) IsClinit() bool { return m.Name == StaticInitializerName }

// NumberOfParameters counts the receiver of instance methods as a parameter.
func (m *MethodDescriptor) NumberOfParameters() int {
	if m.IsStatic() {
		return len(m.Params)
	}
	return len(m.Params) + 1
}

// ParameterType returns the i-th parameter, where index 0 of an instance
// method is the receiver.
func (m *MethodDescriptor) ParameterType(i int) TypeRef {
	if m.IsStatic() {
		return m.Params[i]
	}
	if i == 0 {
		if m.Declaring == nil {
			return ""
		}
		return m.Declaring.Name
	}
	return m.Params[i-1]
}

// Signature renders the method as `<ret> <Simple>.<name>(<params>)` in
// source-like short form, without the receiver.
func (m *MethodDescriptor) Signature() string {
	className := ""
	if m.Declaring != nil {
		className = m.Declaring.Name.SimpleName()
	}
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, p.SimpleName())
	}
	return fmt.Sprintf("%s %s.%s(%s)", m.ReturnType.SimpleName(), className, m.Name, strings.Join(params, ", "))
}

func (m *MethodDescriptor) String() string {
	return m.Signature()
}

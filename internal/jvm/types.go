package jvm

import (
	"strings"
)

// TypeRef is a type name in the hierarchy's internal encoding.
// Class types are "L" followed by the slash-separated binary name without the
// trailing semicolon (Lorg/gradle/api/Project), arrays keep the descriptor
// prefix ([I, [Ljava/lang/String) and primitives use their descriptor letter.
type TypeRef string

const (
	Void    TypeRef = "V"
	Boolean TypeRef = "Z"
	Byte    TypeRef = "B"
	Char    TypeRef = "C"
	Short   TypeRef = "S"
	Int     TypeRef = "I"
	Long    TypeRef = "J"
	Float   TypeRef = "F"
	Double  TypeRef = "D"
)

var primitiveNames = map[TypeRef]string{
	Void:    "void",
	Boolean: "boolean",
	Byte:    "byte",
	Char:    "char",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
}

// ClassRef converts a dotted or slashed class name into its TypeRef.
func ClassRef(name string) TypeRef {
	return TypeRef("L" + strings.ReplaceAll(name, ".", "/"))
}

// IsPrimitive reports whether t is a primitive type or void.
func (t TypeRef) IsPrimitive() bool {
	_, ok := primitiveNames[t]
	return ok
}

// IsArray reports whether t is an array type.
func (t TypeRef) IsArray() bool {
	return strings.HasPrefix(string(t), "[")
}

// IsClass reports whether t names a class or interface.
func (t TypeRef) IsClass() bool {
	return strings.HasPrefix(string(t), "L")
}

// ElementType strips one array dimension. It returns t unchanged for non-array types.
func (t TypeRef) ElementType() TypeRef {
	if !t.IsArray() {
		return t
	}
	return TypeRef(strings.TrimSuffix(string(t[1:]), ";"))
}

// Package returns the slash-separated package of a class type, or an empty
// string for the default package and non-class types.
func (t TypeRef) Package() string {
	if !t.IsClass() {
		return ""
	}
	name := string(t[1:])
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// ClassName returns the class name without its package, nested types keep
// their '$' separators (Outer$Inner).
func (t TypeRef) ClassName() string {
	if !t.IsClass() {
		return string(t)
	}
	name := string(t[1:])
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// QualifiedName returns the dotted source name (org.gradle.api.Project).
func (t TypeRef) QualifiedName() string {
	if !t.IsClass() {
		return t.SimpleName()
	}
	return strings.ReplaceAll(string(t[1:]), "/", ".")
}

// SimpleName renders the type in source-like short form: primitives by keyword,
// arrays with [] suffixes and classes without their package.
func (t TypeRef) SimpleName() string {
	if t.IsArray() {
		return t.ElementType().SimpleName() + "[]"
	}
	if name, ok := primitiveNames[t]; ok {
		return name
	}
	name := string(t)
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	} else {
		name = strings.TrimPrefix(name, "L")
	}
	return strings.TrimSpace(strings.ReplaceAll(name, ";", " "))
}

func (t TypeRef) String() string {
	return string(t)
}

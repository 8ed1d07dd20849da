// Package properties groups accessor methods of a type into named properties
// following the getFoo/isFoo/setFoo naming convention.
package properties

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/scan-io-git/apiprops/internal/jvm"
)

// Kind tells getters and setters apart.
type Kind int

const (
	Getter Kind = iota + 1
	Setter
)

func (k Kind) String() string {
	switch k {
	case Getter:
		return "getter"
	case Setter:
		return "setter"
	default:
		return "unknown"
	}
}

// PropertyMethod is a method recognised as a getter or setter of the named property.
type PropertyMethod struct {
	Kind   Kind
	Name   string
	Method *jvm.MethodDescriptor
}

// Classify matches m against the accessor grammar. Parameter counts include
// the receiver: a getter takes only the receiver, a setter one extra value.
func Classify(m *jvm.MethodDescriptor) (PropertyMethod, bool) {
	if m.IsStatic() {
		return PropertyMethod{}, false
	}
	name := m.Name
	if m.NumberOfParameters() == 1 && m.ReturnType != jvm.Void {
		if strings.HasPrefix(name, "get") && len(name) > 3 {
			return PropertyMethod{Kind: Getter, Name: propertyName(name, 3), Method: m}, true
		}
		if strings.HasPrefix(name, "is") && len(name) > 2 {
			return PropertyMethod{Kind: Getter, Name: propertyName(name, 2), Method: m}, true
		}
	}
	if m.NumberOfParameters() == 2 && strings.HasPrefix(name, "set") && len(name) > 3 {
		return PropertyMethod{Kind: Setter, Name: propertyName(name, 3), Method: m}, true
	}
	return PropertyMethod{}, false
}

// propertyName lower-cases the first letter after the accessor prefix.
func propertyName(methodName string, prefixLength int) string {
	rest := methodName[prefixLength:]
	r, size := utf8.DecodeRuneInString(rest)
	return string(unicode.ToLower(r)) + rest[size:]
}

// Property holds at most one getter and the setters in discovery order.
type Property struct {
	Name    string
	Getter  *jvm.MethodDescriptor
	Setters []*jvm.MethodDescriptor
}

// Add records an accessor. A later getter replaces an earlier one, setters
// accumulate without deduplication.
func (p *Property) Add(pm PropertyMethod) {
	switch pm.Kind {
	case Getter:
		p.Getter = pm.Method
	case Setter:
		p.Setters = append(p.Setters, pm.Method)
	}
}

// Types returns the distinct getter return and setter value types in
// first-seen order, getter first.
func (p *Property) Types() []jvm.TypeRef {
	var types []jvm.TypeRef
	seen := map[jvm.TypeRef]struct{}{}
	add := func(t jvm.TypeRef) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	if p.Getter != nil {
		add(p.Getter.ReturnType)
	}
	for _, s := range p.Setters {
		add(s.ParameterType(1))
	}
	return types
}

// MatchingSetterType returns the getter type when some setter accepts exactly it.
func (p *Property) MatchingSetterType() (jvm.TypeRef, bool) {
	if p.Getter == nil {
		return "", false
	}
	for _, s := range p.Setters {
		if s.ParameterType(1) == p.Getter.ReturnType {
			return p.Getter.ReturnType, true
		}
	}
	return "", false
}

// Set is the properties of one type.
type Set struct {
	Type   *jvm.TypeDescriptor
	byName map[string]*Property
}

// Extract groups the public accessors declared by t. Constructors and
// static initializers never take part.
func Extract(t *jvm.TypeDescriptor) *Set {
	s := &Set{Type: t, byName: map[string]*Property{}}
	for _, m := range t.Methods {
		if !m.IsPublic() || m.IsInit() || m.IsClinit() {
			continue
		}
		s.add(m)
	}
	return s
}

func (s *Set) add(m *jvm.MethodDescriptor) {
	pm, ok := Classify(m)
	if !ok {
		return
	}
	p, exists := s.byName[pm.Name]
	if !exists {
		p = &Property{Name: pm.Name}
		s.byName[pm.Name] = p
	}
	p.Add(pm)
}

// Get returns the named property.
func (s *Set) Get(name string) (*Property, bool) {
	p, ok := s.byName[name]
	return p, ok
}

func (s *Set) Len() int {
	return len(s.byName)
}

// Sorted returns the properties ordered by name.
func (s *Set) Sorted() []*Property {
	props := make([]*Property, 0, len(s.byName))
	for _, p := range s.byName {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool {
		return props[i].Name < props[j].Name
	})
	return props
}

// Package hierarchy builds a navigable type hierarchy from compiled classes
// and answers lookup and subtype queries over it. A Hierarchy is immutable
// once built.
package hierarchy

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/scan-io-git/apiprops/internal/jvm"
)

const subtypeCacheSize = 4096

type subtypeKey struct {
	ancestor   jvm.TypeRef
	descendant jvm.TypeRef
}

// Hierarchy is the set of resolved types indexed by name.
type Hierarchy struct {
	types    []*jvm.TypeDescriptor
	byName   map[jvm.TypeRef]*jvm.TypeDescriptor
	subtypes *lru.Cache[subtypeKey, bool]
}

// New indexes already decoded types. When a name is defined more than once
// the first definition wins, matching class loading order.
func New(types ...*jvm.TypeDescriptor) *Hierarchy {
	// size is a positive constant, lru.New cannot fail
	cache, _ := lru.New[subtypeKey, bool](subtypeCacheSize)
	h := &Hierarchy{
		byName:   make(map[jvm.TypeRef]*jvm.TypeDescriptor, len(types)),
		subtypes: cache,
	}
	for _, t := range types {
		h.add(t)
	}
	return h
}

func (h *Hierarchy) add(t *jvm.TypeDescriptor) bool {
	if _, exists := h.byName[t.Name]; exists {
		return false
	}
	h.byName[t.Name] = t
	h.types = append(h.types, t)
	return true
}

// AllTypes returns every type in load order.
func (h *Hierarchy) AllTypes() []*jvm.TypeDescriptor {
	return h.types
}

// Lookup finds a type by its internal name.
func (h *Hierarchy) Lookup(name jvm.TypeRef) (*jvm.TypeDescriptor, bool) {
	t, ok := h.byName[name]
	return t, ok
}

// Size returns the number of types.
func (h *Hierarchy) Size() int {
	return len(h.types)
}

// IsSubtype reports whether descendant equals ancestor or extends or
// implements it, directly or transitively. Supertypes missing from the
// hierarchy end the search along that path.
func (h *Hierarchy) IsSubtype(ancestor, descendant *jvm.TypeDescriptor) bool {
	if ancestor == nil || descendant == nil {
		return false
	}
	key := subtypeKey{ancestor: ancestor.Name, descendant: descendant.Name}
	if result, ok := h.subtypes.Get(key); ok {
		return result
	}
	result := h.isSubtype(ancestor.Name, descendant, map[jvm.TypeRef]struct{}{})
	h.subtypes.Add(key, result)
	return result
}

func (h *Hierarchy) isSubtype(ancestor jvm.TypeRef, t *jvm.TypeDescriptor, seen map[jvm.TypeRef]struct{}) bool {
	if t.Name == ancestor {
		return true
	}
	if _, ok := seen[t.Name]; ok {
		return false
	}
	seen[t.Name] = struct{}{}

	supers := make([]jvm.TypeRef, 0, len(t.Interfaces)+1)
	if t.Super != "" {
		supers = append(supers, t.Super)
	}
	supers = append(supers, t.Interfaces...)
	for _, name := range supers {
		if name == ancestor {
			return true
		}
		parent, ok := h.byName[name]
		if !ok {
			continue
		}
		if h.isSubtype(ancestor, parent, seen) {
			return true
		}
	}
	return false
}

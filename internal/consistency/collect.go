package consistency

import (
	"sort"
	"strings"

	"github.com/scan-io-git/apiprops/internal/jvm"
	"github.com/scan-io-git/apiprops/internal/properties"
)

// Classifier decides API membership of a type.
type Classifier interface {
	IncludeType(t *jvm.TypeDescriptor) bool
}

// TypeInfo is an API type with its public methods and extracted properties.
type TypeInfo struct {
	Type       *jvm.TypeDescriptor
	Methods    []*jvm.MethodDescriptor
	Properties *properties.Set
}

// Collect keeps public, non-nested types accepted by the classifier and
// returns them ordered by simple class name, then by full name.
func Collect(types []*jvm.TypeDescriptor, classifier Classifier) []*TypeInfo {
	var infos []*TypeInfo
	for _, t := range types {
		if !t.IsPublic() {
			continue
		}
		// anonymous and nested types
		if strings.Contains(t.SimpleName(), "$") {
			continue
		}
		if !classifier.IncludeType(t) {
			continue
		}
		info := &TypeInfo{Type: t, Properties: properties.Extract(t)}
		for _, m := range t.Methods {
			if m.IsPublic() {
				info.Methods = append(info.Methods, m)
			}
		}
		infos = append(infos, info)
	}
	sort.SliceStable(infos, func(i, j int) bool {
		a, b := infos[i].Type, infos[j].Type
		if a.SimpleName() != b.SimpleName() {
			return a.SimpleName() < b.SimpleName()
		}
		return a.Name < b.Name
	})
	return infos
}

// Summarize counts distinct packages, types, public methods and properties.
func Summarize(infos []*TypeInfo) Summary {
	packages := map[string]struct{}{}
	var s Summary
	for _, info := range infos {
		packages[info.Type.Package()] = struct{}{}
		s.Types++
		s.Methods += len(info.Methods)
		s.Properties += info.Properties.Len()
	}
	s.Packages = len(packages)
	return s
}

// Package apisurface decides which declared types belong to the public API.
package apisurface

import (
	"regexp"
	"strings"

	"github.com/scan-io-git/apiprops/internal/jvm"
)

// publicAPIPackages are the namespaces of the public API, matched against
// the slash-separated package with a trailing slash.
var publicAPIPackages = compileAll(
	"org/gradle/",
	"org/gradle/api/.*",
	"org/gradle/authentication/.*",
	"org/gradle/build/.*",
	"org/gradle/buildconfiguration/.*",
	"org/gradle/buildinit/.*",
	"org/gradle/caching/.*",
	"org/gradle/concurrent/.*",
	"org/gradle/deployment/.*",
	"org/gradle/external/javadoc/.*",
	"org/gradle/ide/.*",
	"org/gradle/ivy/.*",
	"org/gradle/jvm/.*",
	"org/gradle/language/.*",
	"org/gradle/maven/.*",
	"org/gradle/nativeplatform/.*",
	"org/gradle/normalization/.*",
	"org/gradle/platform/.*",
	"org/gradle/plugin/devel/.*",
	"org/gradle/plugin/use/",
	"org/gradle/plugin/management/",
	"org/gradle/plugins/.*",
	"org/gradle/process/.*",
	"org/gradle/testfixtures/.*",
	"org/gradle/testing/jacoco/.*",
	"org/gradle/tooling/.*",
	"org/gradle/swiftpm/.*",
	"org/gradle/model/.*",
	"org/gradle/testkit/.*",
	"org/gradle/testing/.*",
	"org/gradle/vcs/.*",
	"org/gradle/work/.*",
	"org/gradle/workers/.*",
	"org/gradle/util/.*",
)

var defaultIgnoredPackages = compileAll(
	".*/internal/.*",
)

// compileAll anchors every pattern so it must match the whole package.
func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile("^(?:"+p+")$"))
	}
	return compiled
}

// Classifier gates types by package and name. Verdicts are cached for the
// lifetime of the instance; it is not safe for concurrent use.
type Classifier struct {
	ignoredPackages []*regexp.Regexp
	ignoredTypes    map[jvm.TypeRef]struct{}
	verdicts        map[jvm.TypeRef]bool
	evaluations     int
}

// New creates a Classifier. ignoredPackages are dotted package prefixes
// (org.gradle.api.plugins) excluding the package and all its subpackages,
// ignoredTypes are fully qualified type names.
func New(ignoredPackages, ignoredTypes []string) *Classifier {
	c := &Classifier{
		ignoredPackages: append([]*regexp.Regexp{}, defaultIgnoredPackages...),
		ignoredTypes:    make(map[jvm.TypeRef]struct{}, len(ignoredTypes)),
		verdicts:        make(map[jvm.TypeRef]bool),
	}
	for _, pkg := range ignoredPackages {
		prefix := regexp.QuoteMeta(strings.ReplaceAll(pkg, ".", "/"))
		c.ignoredPackages = append(c.ignoredPackages, regexp.MustCompile("^"+prefix+"/.*$"))
	}
	for _, name := range ignoredTypes {
		c.ignoredTypes[jvm.ClassRef(name)] = struct{}{}
	}
	return c
}

// IncludeType reports whether t belongs to the public API surface.
func (c *Classifier) IncludeType(t *jvm.TypeDescriptor) bool {
	if verdict, ok := c.verdicts[t.Name]; ok {
		return verdict
	}
	verdict := c.evaluate(t)
	c.verdicts[t.Name] = verdict
	return verdict
}

func (c *Classifier) evaluate(t *jvm.TypeDescriptor) bool {
	c.evaluations++
	pkg := t.Package()
	if pkg == "" {
		return false
	}
	if _, ignored := c.ignoredTypes[t.Name]; ignored {
		return false
	}
	withSlash := pkg + "/"
	return matchesAny(publicAPIPackages, withSlash) && !matchesAny(c.ignoredPackages, withSlash)
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

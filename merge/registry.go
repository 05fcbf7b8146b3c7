// Package merge implements the engine that combines independently
// authored component schemas into one self-contained document:
// reference rewriting, $implements union resolution, $type expansion,
// standard-property injection and final assembly.
package merge

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/typeforge/typeforge/debug"
	"github.com/typeforge/typeforge/ir"
)

const (
	// defsPrefix is the reserved prefix of internal definition refs.
	defsPrefix = "#/definitions/"

	// RoleUnion marks a schema as a union type.
	RoleUnion = "unionType"

	// RoleLG marks a property holding a natural-language template;
	// such properties must be strings.
	RoleLG = "lg"
)

// Registry is the name-keyed collection of schema documents being
// merged. Every pipeline stage reads or mutates its entries in place.
type Registry struct {
	names []string
	docs  map[string]*ir.Node
}

func NewRegistry() *Registry {
	return &Registry{docs: map[string]*ir.Node{}}
}

// Put registers doc under name. Re-registering a name replaces the
// earlier document: the last write wins.
func (r *Registry) Put(name string, doc *ir.Node) {
	if _, exists := r.docs[name]; exists {
		if debug.Registry() {
			debug.Logf("registry: %q overwritten by a later input\n", name)
		}
	} else {
		r.names = append(r.names, name)
	}
	r.docs[name] = doc
}

func (r *Registry) Get(name string) (*ir.Node, bool) {
	doc, ok := r.docs[name]
	return doc, ok
}

// Names returns the registered names in insertion order.
func (r *Registry) Names() []string {
	res := make([]string, len(r.names))
	copy(res, r.names)
	return res
}

// SortedNames returns the registered names sorted, the order used for
// assembling the final document.
func (r *Registry) SortedNames() []string {
	res := r.Names()
	slices.Sort(res)
	return res
}

func (r *Registry) Len() int {
	return len(r.names)
}

// TypeName derives the registry key for a schema file path: the base
// name with the extension stripped, plus any ".schema" inner
// extension.
func TypeName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, ".schema")
	return base
}

// IsUnion reports whether doc carries the union role marker.
func IsUnion(doc *ir.Node) bool {
	return doc.Get("$role").StringVal() == RoleUnion
}

package merge

import (
	"strings"

	"github.com/typeforge/typeforge/ir"
)

// RewriteLocalRefs namespaces each document's internal definition refs
// under its own registry entry. Source files are authored as if alone
// in the world; once many files share one definitions map, a local
// "#/definitions/x" must become "#/definitions/<name>/definitions/x"
// to keep pointing at the file's own definition.
func RewriteLocalRefs(reg *Registry) {
	for _, name := range reg.Names() {
		doc, _ := reg.Get(name)
		rewriteLocalRefs(name, doc)
	}
}

func rewriteLocalRefs(name string, doc *ir.Node) {
	ir.Walk(doc, func(n, _ *ir.Node, _ string) bool {
		if n.Type != ir.ObjectType {
			return false
		}
		ref := n.Get("$ref")
		if ref == nil || ref.Type != ir.StringType {
			return false
		}
		if !strings.HasPrefix(ref.String, defsPrefix) {
			return false
		}
		rest := ref.String[len(defsPrefix):]
		ref.String = defsPrefix + name + "/definitions/" + rest
		return false
	})
}

// VerifyRefs checks that every internal definition ref in the combined
// document resolves, reporting a missing-type diagnostic for each
// dangling target.
func VerifyRefs(doc *ir.Node, diags *Diags) {
	ir.Walk(doc, func(n, _ *ir.Node, _ string) bool {
		if n.Type != ir.ObjectType {
			return false
		}
		ref := n.Get("$ref")
		if ref == nil || ref.Type != ir.StringType {
			return false
		}
		if !strings.HasPrefix(ref.String, defsPrefix) {
			return false
		}
		if _, err := ir.Pointer(doc, ref.String); err != nil {
			diags.Add(MissingType, strings.TrimPrefix(ref.String, defsPrefix), "unresolved reference")
		}
		return false
	})
}

package merge

import "github.com/typeforge/typeforge/ir"

// ExpandTypeRefs replaces every $type shorthand with a $ref into the
// combined definitions map. Cross-type refs are not namespaced; only a
// type's own internal refs are. Unknown names are reported once each
// and expansion continues.
func ExpandTypeRefs(reg *Registry, diags *Diags) {
	for _, name := range reg.Names() {
		doc, _ := reg.Get(name)
		ir.Walk(doc, func(n, _ *ir.Node, _ string) bool {
			if n.Type != ir.ObjectType {
				return false
			}
			t := n.Get("$type")
			if t == nil || t.Type != ir.StringType {
				return false
			}
			if _, ok := reg.Get(t.String); !ok {
				diags.Add(MissingType, t.String, "")
				return false
			}
			n.Set("$ref", ir.FromString(defsPrefix+t.String))
			return false
		})
	}
}

package merge

import (
	"fmt"

	"github.com/typeforge/typeforge/ir"
)

// CheckLGRoles enforces that lg-role properties are string typed: a
// missing type defaults to string, anything else is a diagnostic.
func CheckLGRoles(reg *Registry, diags *Diags) {
	for _, name := range reg.Names() {
		doc, _ := reg.Get(name)
		ir.Walk(doc, func(n, _ *ir.Node, key string) bool {
			if n.Type != ir.ObjectType {
				return false
			}
			if n.Get("$role").StringVal() != RoleLG {
				return false
			}
			t := n.Get("type")
			if t == nil {
				n.Set("type", ir.FromString("string"))
				return false
			}
			if t.StringVal() != "string" {
				diags.Add(BadRoleType, key,
					fmt.Sprintf("lg property in %q must be a string", name))
			}
			return false
		})
	}
}

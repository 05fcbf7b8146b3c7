package merge

import (
	"fmt"

	"github.com/typeforge/typeforge/ir"
)

// ResolveImplements registers each concrete type as a member of every
// union its $implements declarations name. The declarations stay in
// place as metadata.
func ResolveImplements(reg *Registry, diags *Diags) {
	for _, name := range reg.Names() {
		doc, _ := reg.Get(name)
		ir.Walk(doc, func(n, _ *ir.Node, _ string) bool {
			if n.Type != ir.ObjectType {
				return false
			}
			impls := n.Get("$implements")
			if impls == nil || impls.Type != ir.ArrayType {
				return false
			}
			for _, target := range impls.Values {
				if target.Type != ir.StringType {
					continue
				}
				addUnionMember(reg, diags, name, doc, target.String)
			}
			return false
		})
	}
}

func addUnionMember(reg *Registry, diags *Diags, implementer string, implDoc *ir.Node, target string) {
	union, ok := reg.Get(target)
	if !ok {
		diags.Add(MissingType, target, "")
		return
	}
	if !IsUnion(union) {
		diags.Add(BadUnion, target,
			fmt.Sprintf("%q implements %q, which is not a union type", implementer, target))
		return
	}
	oneOf := union.Get("oneOf")
	if oneOf == nil {
		oneOf = &ir.Node{Type: ir.ArrayType}
		union.Set("oneOf", oneOf)
	}

	desc := implementer
	if d := implDoc.Get("description"); d.StringVal() != "" {
		desc = d.StringVal()
	}
	// The title is always the implementer's type name, never a nested
	// title of its own, so union members stay disambiguated.
	member := ir.NewObject()
	member.Set("title", ir.FromString(implementer))
	member.Set("description", ir.FromString(desc))
	member.Set("$ref", ir.FromString(defsPrefix+implementer))
	oneOf.Append(member)
}

// AnnotateUnionTitles titles hand-authored union members from their
// type shorthand when no title is present, before $type expansion
// rewrites the shorthand into a ref.
func AnnotateUnionTitles(reg *Registry) {
	for _, name := range reg.Names() {
		doc, _ := reg.Get(name)
		if !IsUnion(doc) {
			continue
		}
		oneOf := doc.Get("oneOf")
		if oneOf == nil || oneOf.Type != ir.ArrayType {
			continue
		}
		for _, member := range oneOf.Values {
			if member.Type != ir.ObjectType || member.Has("title") {
				continue
			}
			title := member.Get("$type").StringVal()
			if title == "" {
				title = member.Get("type").StringVal()
			}
			if title != "" {
				member.Set("title", ir.FromString(title))
			}
		}
	}
}

package merge

import (
	"github.com/typeforge/typeforge/ir"
	"github.com/typeforge/typeforge/metaschema"
)

// standardProps maps each injected property to the meta-schema
// definition it is cloned from, in injection order.
var standardProps = []struct {
	key string
	def string
}{
	{"$type", "type"},
	{"$copy", "copy"},
	{"$id", "id"},
	{"$role", "role"},
}

// StandardizeProperties injects the standard metadata properties into
// every concrete type, closes the type against unknown properties and
// rewrites its required list. Unions are left untouched. The operation
// is idempotent: re-running it on standardized output changes nothing.
func StandardizeProperties(reg *Registry, meta *ir.Node) {
	for _, name := range reg.Names() {
		doc, _ := reg.Get(name)
		if doc.Type != ir.ObjectType || IsUnion(doc) {
			continue
		}
		standardize(name, doc, meta)
	}
}

func standardize(name string, doc, meta *ir.Node) {
	props := ir.NewObject()
	for _, sp := range standardProps {
		def := metaschema.Definition(meta, sp.def)
		if sp.key == "$type" {
			// Each concrete instance discriminates itself with a
			// literal $type equal to its type name.
			def.Set("const", ir.FromString(name))
		}
		props.Set(sp.key, def)
	}
	if old := doc.Get("properties"); old != nil && old.Type == ir.ObjectType {
		for i, key := range old.Keys {
			if props.Has(key) { // standard keys win
				continue
			}
			props.Set(key, old.Values[i])
		}
	}
	doc.Set("properties", props)

	doc.Set("additionalProperties", ir.FromBool(false))
	escape := ir.NewObject()
	escape.Set("type", ir.FromString("string"))
	pattern := ir.NewObject()
	pattern.Set("^\\$", escape)
	doc.Set("patternProperties", pattern)

	// A non-trivial required list becomes "either a bare reference or
	// a fully specified instance"; a required list of exactly [$type]
	// marks already-standardized input and is left as is.
	required := doc.Get("required")
	if required != nil && required.Type == ir.ArrayType &&
		len(required.Values) > 0 && !isTypeOnly(required) {
		refBranch := ir.NewObject()
		refBranch.Set("title", ir.FromString("Reference"))
		refBranch.Set("required", ir.FromStrings([]string{"$ref"}))
		typeBranch := ir.NewObject()
		typeBranch.Set("title", ir.FromString("Type"))
		typeBranch.Set("required", required.Clone())
		doc.Set("anyOf", ir.FromSlice([]*ir.Node{refBranch, typeBranch}))
	}
	doc.Set("required", ir.FromStrings([]string{"$type"}))
}

func isTypeOnly(required *ir.Node) bool {
	return len(required.Values) == 1 && required.Values[0].StringVal() == "$type"
}

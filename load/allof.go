package load

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/typeforge/typeforge/ir"
)

// FlattenAllOf rewrites, bottom up, every object carrying an allOf list
// into the RFC 7396 merge of its members applied in order, with the
// carrier's own remaining fields merged last so they win.
func FlattenAllOf(doc *ir.Node) error {
	return flatten(doc)
}

func flatten(n *ir.Node) error {
	for _, v := range n.Values {
		if err := flatten(v); err != nil {
			return err
		}
	}
	if n.Type != ir.ObjectType {
		return nil
	}
	allOf := n.Get("allOf")
	if allOf == nil {
		return nil
	}
	if allOf.Type != ir.ArrayType {
		return fmt.Errorf("allOf is %s, want array", allOf.Type)
	}

	rest := n.Clone()
	rest.Delete("allOf")

	sources := make([]*ir.Node, 0, len(allOf.Values)+1)
	merged := []byte("{}")
	for i, member := range allOf.Values {
		if member.Type != ir.ObjectType {
			return fmt.Errorf("allOf member %d is %s, want object", i, member.Type)
		}
		d, err := member.MarshalJSON()
		if err != nil {
			return err
		}
		merged, err = jsonpatch.MergePatch(merged, d)
		if err != nil {
			return fmt.Errorf("merging allOf member %d: %w", i, err)
		}
		sources = append(sources, member)
	}
	d, err := rest.MarshalJSON()
	if err != nil {
		return err
	}
	merged, err = jsonpatch.MergePatch(merged, d)
	if err != nil {
		return fmt.Errorf("merging allOf carrier: %w", err)
	}
	sources = append(sources, rest)

	flat, err := ir.Parse(merged)
	if err != nil {
		return fmt.Errorf("reparsing merged allOf: %w", err)
	}
	// The merge patch round trips through Go maps, which scrambles
	// member order; restore the order the sources declare keys in.
	reorder(flat, sources)
	*n = *flat
	return nil
}

// reorder rearranges merged's members to first-occurrence order across
// the source objects, recursing into members that stayed objects.
func reorder(merged *ir.Node, sources []*ir.Node) {
	if merged.Type != ir.ObjectType {
		return
	}
	var order []string
	perKey := map[string][]*ir.Node{}
	for _, src := range sources {
		if src.Type != ir.ObjectType {
			continue
		}
		for i, k := range src.Keys {
			if _, seen := perKey[k]; !seen {
				order = append(order, k)
			}
			perKey[k] = append(perKey[k], src.Values[i])
		}
	}
	keys := make([]string, 0, len(merged.Keys))
	values := make([]*ir.Node, 0, len(merged.Values))
	for _, k := range order {
		v := merged.Get(k)
		if v == nil { // deleted by a null in a later source
			continue
		}
		reorder(v, perKey[k])
		keys = append(keys, k)
		values = append(values, v)
	}
	merged.Keys = keys
	merged.Values = values
}

package ir

import "strconv"

// Visitor is called for every node in a tree. parent is the containing
// array or object (nil for the root) and key is the member name, or the
// element index for array parents. Returning true stops the walk.
//
// Visitors may mutate the fields of the node they are visiting; several
// pipeline stages rewrite nodes as they walk.
type Visitor func(n, parent *Node, key string) bool

// Walk traverses root depth-first, visiting the root first and then
// array elements in order and object members in insertion order. A
// node's children are only visited when the visitor returned false for
// it. Walk returns true as soon as any visit returns true.
func Walk(root *Node, visit Visitor) bool {
	return walk(root, nil, "", visit)
}

func walk(n, parent *Node, key string, visit Visitor) bool {
	if n == nil {
		return false
	}
	if visit(n, parent, key) {
		return true
	}
	switch n.Type {
	case ArrayType:
		for i, v := range n.Values {
			if walk(v, n, strconv.Itoa(i), visit) {
				return true
			}
		}
	case ObjectType:
		for i, v := range n.Values {
			if walk(v, n, n.Keys[i], visit) {
				return true
			}
		}
	}
	return false
}

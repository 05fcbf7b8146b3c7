// Package ir contains the ordered JSON tree representation that the
// merge pipeline operates on.
//
// Object members are kept in parallel Keys/Values slices so that member
// iteration order is insertion order, and numbers keep their original
// JSON literal, so re-encoding a tree is byte-stable.
package ir

import (
	"encoding/json"
	"strconv"
)

type Node struct {
	Type Type

	Bool   bool
	Number json.Number
	String string

	// Keys holds object member names, parallel to Values.
	// For arrays, Values holds the elements and Keys is nil.
	Keys   []string
	Values []*Node
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Number: json.Number(strconv.FormatInt(v, 10))}
}

func FromNumber(v json.Number) *Node {
	return &Node{Type: NumberType, Number: v}
}

func FromSlice(elts []*Node) *Node {
	return &Node{Type: ArrayType, Values: elts}
}

func FromStrings(ss []string) *Node {
	elts := make([]*Node, len(ss))
	for i, s := range ss {
		elts[i] = FromString(s)
	}
	return FromSlice(elts)
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// Get returns the member value for field, or nil when y is not an
// object or has no such member.
func (y *Node) Get(field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	for i, k := range y.Keys {
		if k == field {
			return y.Values[i]
		}
	}
	return nil
}

// Set replaces the member value for field in place, or appends a new
// member when the key is absent.
func (y *Node) Set(field string, v *Node) {
	for i, k := range y.Keys {
		if k == field {
			y.Values[i] = v
			return
		}
	}
	y.Keys = append(y.Keys, field)
	y.Values = append(y.Values, v)
}

func (y *Node) Has(field string) bool {
	return y.Get(field) != nil
}

// Delete removes the member for field, preserving the order of the
// remaining members. It reports whether the member was present.
func (y *Node) Delete(field string) bool {
	if y == nil || y.Type != ObjectType {
		return false
	}
	for i, k := range y.Keys {
		if k == field {
			y.Keys = append(y.Keys[:i], y.Keys[i+1:]...)
			y.Values = append(y.Values[:i], y.Values[i+1:]...)
			return true
		}
	}
	return false
}

// Append adds an element to an array node.
func (y *Node) Append(v *Node) {
	y.Values = append(y.Values, v)
}

func (y *Node) Len() int {
	return len(y.Values)
}

// StringVal returns the string value of y, or "" when y is not a string
// node. Convenient for optional string members.
func (y *Node) StringVal() string {
	if y == nil || y.Type != StringType {
		return ""
	}
	return y.String
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{
		Type:   y.Type,
		Bool:   y.Bool,
		Number: y.Number,
		String: y.String,
	}
	if y.Keys != nil {
		res.Keys = make([]string, len(y.Keys))
		copy(res.Keys, y.Keys)
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

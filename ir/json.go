package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse decodes a JSON document into a Node, preserving object member
// order and number literals.
func Parse(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	tok, err := dec.Token()
	if err == nil {
		return nil, fmt.Errorf("trailing %v after document", tok)
	}
	if err != io.EOF {
		return nil, err
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v.String())
	case string:
		return FromString(v), nil
	case json.Number:
		return FromNumber(v), nil
	case bool:
		return FromBool(v), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (*Node, error) {
	res := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		res.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return res, nil
}

func parseArray(dec *json.Decoder) (*Node, error) {
	res := &Node{Type: ArrayType}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		res.Append(val)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err
	}
	return res, nil
}

// MarshalJSON encodes the node compactly with object members in
// insertion order.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := y.encode(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (y *Node) UnmarshalJSON(d []byte) error {
	n, err := Parse(d)
	if err != nil {
		return err
	}
	*y = *n
	return nil
}

func (y *Node) encode(buf *bytes.Buffer) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case NumberType:
		if y.Number == "" {
			buf.WriteString("0")
			return nil
		}
		buf.WriteString(string(y.Number))
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := v.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(y.Keys[i])
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := v.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode node of type %s", y.Type)
	}
	return nil
}

// Encode writes the node to w as indented JSON with a trailing newline,
// the form used for documents written to disk.
func Encode(w io.Writer, y *Node) error {
	d, err := y.MarshalJSON()
	if err != nil {
		return err
	}
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, d, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// Pointer resolves a JSON-Pointer-like fragment ("#/definitions/x" or
// "/definitions/x") against root.
func Pointer(root *Node, ptr string) (*Node, error) {
	frag := strings.TrimPrefix(ptr, "#")
	frag = strings.TrimPrefix(frag, "/")
	cur := root
	if frag == "" {
		return cur, nil
	}
	for _, part := range strings.Split(frag, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		switch cur.Type {
		case ObjectType:
			next := cur.Get(part)
			if next == nil {
				return nil, fmt.Errorf("pointer %q: no member %q", ptr, part)
			}
			cur = next
		case ArrayType:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(cur.Values) {
				return nil, fmt.Errorf("pointer %q: bad array index %q", ptr, part)
			}
			cur = cur.Values[i]
		default:
			return nil, fmt.Errorf("pointer %q: cannot descend into %s", ptr, cur.Type)
		}
	}
	return cur, nil
}

// FromAny converts plain Go values, as produced by encoding/json or a
// collaborator library, into a Node. Map member order follows Go map
// iteration and is therefore unspecified.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case json.Number:
		return FromNumber(x), nil
	case float64:
		d, err := json.Marshal(x)
		if err != nil {
			return nil, err
		}
		return FromNumber(json.Number(d)), nil
	case []any:
		res := &Node{Type: ArrayType}
		for _, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			res.Append(n)
		}
		return res, nil
	case map[string]any:
		res := NewObject()
		for k, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			res.Set(k, n)
		}
		return res, nil
	}
	return nil, fmt.Errorf("cannot convert %T to a node", v)
}

// ToAny converts the node to plain Go values for libraries that take
// untyped JSON. Object member order is not preserved.
func ToAny(y *Node) any {
	switch y.Type {
	case ObjectType:
		res := make(map[string]any, len(y.Keys))
		for i, k := range y.Keys {
			res[k] = ToAny(y.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case StringType:
		return y.String
	case NumberType:
		if f, err := y.Number.Float64(); err == nil {
			return f
		}
		return string(y.Number)
	case BoolType:
		return y.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}

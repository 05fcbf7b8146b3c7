package metaschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/typeforge/typeforge/ir"
)

// Validator checks input schemas against the meta-schema's extension
// vocabulary.
type Validator struct {
	resolved *jsonschema.Resolved
}

// NewValidator compiles the vocabulary portion of meta into a
// validator. The draft keywords of the cached meta-schema predate the
// validator library's supported drafts, so structural validation
// enforces the extension vocabulary subset.
func NewValidator(meta *ir.Node) (*Validator, error) {
	vocab := Builtin()
	if meta != nil {
		if defs := meta.Get("definitions"); defs != nil {
			for _, name := range []string{"type", "copy", "id", "role"} {
				if d := defs.Get(name); d != nil {
					vocab.Get("definitions").Set(name, d.Clone())
				}
			}
		}
	}
	// The validator library speaks the 2020-12 dialect; move the
	// draft-04 style definitions under $defs before compiling.
	if defs := vocab.Get("definitions"); defs != nil {
		vocab.Delete("definitions")
		vocab.Set("$defs", defs)
	}
	ir.Walk(vocab, func(n, _ *ir.Node, _ string) bool {
		if n.Type != ir.ObjectType {
			return false
		}
		if ref := n.Get("$ref"); ref != nil && ref.Type == ir.StringType {
			ref.String = strings.Replace(ref.String, "#/definitions/", "#/$defs/", 1)
		}
		return false
	})
	data, err := vocab.MarshalJSON()
	if err != nil {
		return nil, err
	}
	s := &jsonschema.Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("compiling meta-schema: %w", err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolving meta-schema: %w", err)
	}
	return &Validator{resolved: resolved}, nil
}

// Validate returns the validation errors for doc, or nil when it
// conforms to the vocabulary.
func (v *Validator) Validate(doc *ir.Node) []error {
	if err := v.resolved.Validate(ir.ToAny(doc)); err != nil {
		return []error{err}
	}
	return nil
}

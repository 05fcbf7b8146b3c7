package merge

import (
	"github.com/typeforge/typeforge/debug"
	"github.com/typeforge/typeforge/ir"
	"github.com/typeforge/typeforge/load"
	"github.com/typeforge/typeforge/metaschema"
)

// Options configure a merge run.
type Options struct {
	// Meta is the meta-schema constraining the extension vocabulary.
	Meta *ir.Node

	// Report, when set, receives each diagnostic as it occurs.
	Report func(Diag)
}

// Result of a merge run. Doc is nil when the run failed.
type Result struct {
	Doc      *ir.Node
	Registry *Registry
	Diags    *Diags
}

// Run executes the full merge pipeline over the given schema files, in
// order. Per-type problems are reported and the run continues; a run
// with any diagnostic produces no combined document.
func Run(paths []string, opts Options) *Result {
	reg := NewRegistry()
	diags := NewDiags()
	diags.Report = opts.Report

	for _, path := range paths {
		doc, err := load.File(path)
		if err != nil {
			diags.Add(ParseFailure, path, err.Error())
			continue
		}
		reg.Put(TypeName(path), doc)
	}

	validate(reg, opts.Meta, diags)
	DefaultObjectType(reg)
	RewriteLocalRefs(reg)
	ResolveImplements(reg, diags)
	AnnotateUnionTitles(reg)
	ExpandTypeRefs(reg, diags)
	StandardizeProperties(reg, opts.Meta)
	CheckLGRoles(reg, diags)

	doc := Assemble(reg)
	VerifyRefs(doc, diags)

	res := &Result{Registry: reg, Diags: diags}
	if diags.Failed() {
		if debug.Pipeline() {
			debug.Logf("pipeline: %d diagnostics, no output\n", diags.Len())
		}
		return res
	}
	res.Doc = doc
	return res
}

func validate(reg *Registry, meta *ir.Node, diags *Diags) {
	v, err := metaschema.NewValidator(meta)
	if err != nil {
		diags.Add(SchemaValidation, "meta-schema", err.Error())
		return
	}
	for _, name := range reg.Names() {
		doc, _ := reg.Get(name)
		for _, verr := range v.Validate(doc) {
			diags.Add(SchemaValidation, name, verr.Error())
		}
	}
}

// DefaultObjectType defaults a schema's type to object unless the
// schema is a union.
func DefaultObjectType(reg *Registry) {
	for _, name := range reg.Names() {
		doc, _ := reg.Get(name)
		if doc.Type != ir.ObjectType || IsUnion(doc) {
			continue
		}
		if !doc.Has("type") {
			doc.Set("type", ir.FromString("object"))
		}
	}
}

// Assemble builds the combined document: a oneOf discriminated union
// over all concrete types plus a definitions map holding every type.
// Entries are sorted by name so output is deterministic.
func Assemble(reg *Registry) *ir.Node {
	oneOf := &ir.Node{Type: ir.ArrayType}
	defs := ir.NewObject()
	for _, name := range reg.SortedNames() {
		doc, _ := reg.Get(name)
		if !IsUnion(doc) {
			entry := ir.NewObject()
			entry.Set("title", ir.FromString(name))
			entry.Set("$ref", ir.FromString(defsPrefix+name))
			oneOf.Append(entry)
		}
		defs.Set(name, doc)
	}
	out := ir.NewObject()
	out.Set("oneOf", oneOf)
	out.Set("definitions", defs)
	return out
}

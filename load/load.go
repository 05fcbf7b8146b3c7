// Package load reads schema documents from disk, dereferencing
// external $ref targets and flattening allOf composition so the merge
// pipeline only ever sees self-contained documents.
package load

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/typeforge/typeforge/debug"
	"github.com/typeforge/typeforge/ir"
)

// File loads the schema at path: external $refs are inlined, allOf
// composition is flattened and the $schema marker is stripped.
func File(path string) (*ir.Node, error) {
	doc, err := file(path, map[string]bool{})
	if err != nil {
		return nil, err
	}
	if err := FlattenAllOf(doc); err != nil {
		return nil, fmt.Errorf("flattening %q: %w", path, err)
	}
	doc.Delete("$schema")
	return doc, nil
}

// active guards against reference cycles between files; it holds the
// canonical paths currently being loaded.
func file(path string, active map[string]bool) (*ir.Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if active[abs] {
		return nil, fmt.Errorf("reference cycle through %q", path)
	}
	active[abs] = true
	defer delete(active, abs)

	if debug.Load() {
		debug.Logf("load %s\n", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("converting %q: %w", path, err)
		}
	}
	doc, err := ir.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	if err := deref(doc, filepath.Dir(path), active); err != nil {
		return nil, err
	}
	return doc, nil
}

// deref inlines every $ref that names another file. Internal "#/..."
// refs are left for the merge pipeline to rewrite.
func deref(doc *ir.Node, dir string, active map[string]bool) error {
	var derefErr error
	ir.Walk(doc, func(n, _ *ir.Node, _ string) bool {
		if n.Type != ir.ObjectType {
			return false
		}
		ref := n.Get("$ref")
		if ref == nil || ref.Type != ir.StringType || strings.HasPrefix(ref.String, "#") {
			return false
		}
		target, err := resolveExternal(ref.String, dir, active)
		if err != nil {
			derefErr = err
			return true
		}
		*n = *target
		return false
	})
	return derefErr
}

func resolveExternal(ref, dir string, active map[string]bool) (*ir.Node, error) {
	refPath, frag, _ := strings.Cut(ref, "#")
	target, err := file(filepath.Join(dir, refPath), active)
	if err != nil {
		return nil, fmt.Errorf("dereferencing %q: %w", ref, err)
	}
	if frag == "" {
		return target, nil
	}
	sub, err := ir.Pointer(target, frag)
	if err != nil {
		return nil, fmt.Errorf("dereferencing %q: %w", ref, err)
	}
	return sub.Clone(), nil
}

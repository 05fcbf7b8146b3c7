package load

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/typeforge/typeforge/ir"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileStripsSchema(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "widget.schema.json",
		`{"$schema": "http://json-schema.org/draft-04/schema", "title": "Widget"}`)

	doc, err := File(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Has("$schema") {
		t.Error("$schema not stripped")
	}
	if got := doc.Get("title").StringVal(); got != "Widget" {
		t.Errorf("title: got %q", got)
	}
}

func TestFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gadget.schema.yaml", "title: Gadget\ntype: object\n")

	doc, err := File(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Get("title").StringVal(); got != "Gadget" {
		t.Errorf("title: got %q", got)
	}
}

func TestExternalRef(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.json",
		`{"definitions": {"name": {"type": "string", "minLength": 1}}}`)
	path := writeFile(t, dir, "widget.schema.json",
		`{"properties": {"name": {"$ref": "shared.json#/definitions/name"}}}`)

	doc, err := File(path)
	if err != nil {
		t.Fatal(err)
	}
	name := doc.Get("properties").Get("name")
	if name.Has("$ref") {
		t.Error("external $ref not inlined")
	}
	if got := name.Get("type").StringVal(); got != "string" {
		t.Errorf("inlined type: got %q", got)
	}
}

func TestInternalRefLeftAlone(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "widget.schema.json",
		`{"properties": {"p": {"$ref": "#/definitions/local"}}, "definitions": {"local": {}}}`)

	doc, err := File(path)
	if err != nil {
		t.Fatal(err)
	}
	got := doc.Get("properties").Get("p").Get("$ref").StringVal()
	if got != "#/definitions/local" {
		t.Errorf("internal ref changed: %q", got)
	}
}

func TestReferenceCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"$ref": "b.json"}`)
	path := writeFile(t, dir, "b.json", `{"$ref": "a.json"}`)

	_, err := File(path)
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Errorf("expected cycle error, got %v", err)
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func mustParse(t *testing.T, data string) *ir.Node {
	t.Helper()
	n, err := ir.Parse([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

package metaschema

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/typeforge/typeforge/ir"
)

func mustParse(t *testing.T, data string) *ir.Node {
	t.Helper()
	n, err := ir.Parse([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestEnsureCacheHit(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(dir, "meta.json")
	if err := os.WriteFile(cache, []byte(`{"title": "cached"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, err := Ensure(cache, "http://127.0.0.1:1/unreachable")
	if err != nil {
		t.Fatal(err)
	}
	if got := meta.Get("title").StringVal(); got != "cached" {
		t.Errorf("got %q, want cached", got)
	}
}

func TestEnsureBootstrap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"description": "draft",
			"definitions": {"positiveInteger": {"type": "integer", "minimum": 0}},
			"properties": {"title": {"type": "string"}}
		}`))
	}))
	defer srv.Close()

	cache := filepath.Join(t.TempDir(), "meta.json")
	meta, err := Ensure(cache, srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	// Draft content survives, vocabulary is overlaid.
	defs := meta.Get("definitions")
	if defs.Get("positiveInteger") == nil {
		t.Error("draft definition lost in overlay")
	}
	for _, name := range []string{"type", "copy", "id", "role"} {
		if defs.Get(name) == nil {
			t.Errorf("vocabulary definition %q missing", name)
		}
	}
	if meta.Get("properties").Get("$implements") == nil {
		t.Error("vocabulary property $implements missing")
	}

	if _, err := os.Stat(cache); err != nil {
		t.Fatalf("cache not written: %v", err)
	}

	// Second call must not touch the network.
	srv.Close()
	again, err := Ensure(cache, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if again.Get("definitions").Get("type") == nil {
		t.Error("cached meta-schema incomplete")
	}
}

func TestEnsureFetchFailure(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "meta.json")
	if _, err := Ensure(cache, "http://127.0.0.1:1/unreachable"); err == nil {
		t.Error("expected fetch error")
	}
	if _, err := os.Stat(cache); err == nil {
		t.Error("cache written despite failed bootstrap")
	}
}

func TestDefinition(t *testing.T) {
	meta := Builtin()
	d := Definition(meta, "role")
	if got := d.Get("type").StringVal(); got != "string" {
		t.Errorf("role definition type %q", got)
	}
	// Clones must be independent.
	d.Set("type", ir.FromString("number"))
	if got := Definition(meta, "role").Get("type").StringVal(); got != "string" {
		t.Errorf("Definition returned shared node, got %q", got)
	}

	fb := Definition(meta, "no-such-def")
	if got := fb.Get("type").StringVal(); got != "string" {
		t.Errorf("fallback type %q", got)
	}
}

func TestValidator(t *testing.T) {
	v, err := NewValidator(Builtin())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"conforming", `{"$role": "unionType", "$implements": ["Shape"]}`, false},
		{"bad implements", `{"$implements": "Shape"}`, true},
		{"bad role", `{"$role": 42}`, true},
		{"bad type", `{"$type": ["x"]}`, true},
		{"plain schema", `{"type": "object", "properties": {}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(mustParse(t, tt.doc))
			if tt.wantErr && len(errs) == 0 {
				t.Error("expected validation errors")
			}
			if !tt.wantErr && len(errs) != 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
	}
}

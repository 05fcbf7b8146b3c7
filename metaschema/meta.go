// Package metaschema bootstraps and caches the schema-of-schemas that
// constrains the typeforge extension vocabulary ($type, $copy, $id,
// $role, $implements), and validates input schemas against it.
package metaschema

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/typeforge/typeforge/debug"
	"github.com/typeforge/typeforge/ir"
)

// DefaultDraftURL is where the underlying JSON Schema draft document is
// fetched from on first bootstrap.
const DefaultDraftURL = "http://json-schema.org/draft-04/schema"

// vocabulary is the built-in extension document. It is overlaid onto
// the fetched draft meta-schema; its definitions for type, copy, id and
// role double as the property schemas injected into every concrete
// type.
const vocabulary = `{
  "title": "typeforge extension vocabulary",
  "type": ["object", "boolean"],
  "properties": {
    "$type": {"$ref": "#/definitions/type"},
    "$copy": {"$ref": "#/definitions/copy"},
    "$id": {"$ref": "#/definitions/id"},
    "$role": {"$ref": "#/definitions/role"},
    "$implements": {
      "type": "array",
      "items": {"type": "string"}
    },
    "definitions": {"type": "object"},
    "properties": {"type": "object"},
    "required": {
      "type": "array",
      "items": {"type": "string"}
    }
  },
  "definitions": {
    "type": {
      "type": "string",
      "description": "Discriminating type name of this instance."
    },
    "copy": {
      "type": "string",
      "description": "Reference to an instance whose values are copied into this one."
    },
    "id": {
      "type": "string",
      "description": "Identifier under which this instance can be referenced."
    },
    "role": {
      "type": "string",
      "description": "Semantic role attached to this property."
    }
  }
}`

// Builtin returns the extension vocabulary document.
func Builtin() *ir.Node {
	n, err := ir.Parse([]byte(vocabulary))
	if err != nil {
		panic(fmt.Sprintf("builtin vocabulary: %v", err))
	}
	return n
}

// Ensure returns the meta-schema, building and caching it at cachePath
// on first use: the draft meta-schema is fetched from draftURL, the
// extension vocabulary is overlaid, and the result is written to disk.
// Later runs read the cache and never touch the network.
func Ensure(cachePath, draftURL string) (*ir.Node, error) {
	data, err := os.ReadFile(cachePath)
	if err == nil {
		meta, perr := ir.Parse(data)
		if perr != nil {
			return nil, fmt.Errorf("cached meta-schema %q: %w", cachePath, perr)
		}
		if debug.Meta() {
			debug.Logf("meta-schema cache hit %s\n", cachePath)
		}
		return meta, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	draft, err := fetch(draftURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping meta-schema: %w", err)
	}
	meta := overlay(draft, Builtin())

	f, err := os.Create(cachePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := ir.Encode(f, meta); err != nil {
		return nil, fmt.Errorf("caching meta-schema: %w", err)
	}
	if debug.Meta() {
		debug.Logf("meta-schema cached at %s\n", cachePath)
	}
	return meta, nil
}

func fetch(url string) (*ir.Node, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	doc, err := ir.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", url, err)
	}
	return doc, nil
}

// overlay merges ext into base: object members merge one level deep so
// the vocabulary's properties and definitions extend the draft's rather
// than replacing them; anything else is overwritten.
func overlay(base, ext *ir.Node) *ir.Node {
	res := base.Clone()
	for i, k := range ext.Keys {
		v := ext.Values[i]
		cur := res.Get(k)
		if cur != nil && cur.Type == ir.ObjectType && v.Type == ir.ObjectType {
			for j, kk := range v.Keys {
				cur.Set(kk, v.Values[j].Clone())
			}
			continue
		}
		res.Set(k, v.Clone())
	}
	return res
}

// Definition returns a clone of a named meta-schema definition, or a
// minimal string schema when the meta-schema does not carry one.
func Definition(meta *ir.Node, name string) *ir.Node {
	if meta != nil {
		if defs := meta.Get("definitions"); defs != nil {
			if d := defs.Get(name); d != nil {
				return d.Clone()
			}
		}
	}
	fallback := ir.NewObject()
	fallback.Set("type", ir.FromString("string"))
	return fallback
}

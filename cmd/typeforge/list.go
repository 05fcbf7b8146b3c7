package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/typeforge/typeforge/merge"
)

// list prints the registered types, one per line. The -where expression
// filters on name, role, union, and properties.
func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		return err
	}
	paths, err := resolveGlobs(args)
	if err != nil {
		return err
	}
	meta, err := cfg.meta()
	if err != nil {
		return err
	}
	var prog *vm.Program
	if cfg.Where != "" {
		prog, err = expr.Compile(cfg.Where,
			expr.Env(listEnv("", "", false, 0)),
			expr.AsBool())
		if err != nil {
			return fmt.Errorf("%w: bad -where expression: %v", cli.ErrUsage, err)
		}
	}

	// Listing works from the registry even when the run has problems.
	res := merge.Run(paths, merge.Options{Meta: meta, Report: cfg.reporter(cc)})
	for _, name := range res.Registry.SortedNames() {
		doc, _ := res.Registry.Get(name)
		role := doc.Get("$role").StringVal()
		nProps := 0
		if props := doc.Get("properties"); props != nil {
			nProps = props.Len()
		}
		if prog != nil {
			out, err := expr.Run(prog, listEnv(name, role, merge.IsUnion(doc), nProps))
			if err != nil {
				return fmt.Errorf("evaluating -where for %q: %w", name, err)
			}
			if !out.(bool) {
				continue
			}
		}
		kind := "type"
		if merge.IsUnion(doc) {
			kind = "union"
		}
		fmt.Fprintf(cc.Out, "%s\t%s\tproperties=%d\n", name, kind, nProps)
	}
	return nil
}

func listEnv(name, role string, union bool, properties int) map[string]any {
	return map[string]any{
		"name":       name,
		"role":       role,
		"union":      union,
		"properties": properties,
	}
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/typeforge/typeforge/ir"
	"github.com/typeforge/typeforge/merge"
	"github.com/typeforge/typeforge/metaschema"
)

// forgeMain dispatches to a subcommand when one is named, otherwise the
// bare invocation behaves like merge.
func forgeMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		if sub := cfg.Main.FindSub(cc, args[0]); sub != nil {
			err := sub.Run(cc, args[1:])
			if errors.Is(err, cli.ErrUsage) {
				sub.Usage(cc, err)
				os.Exit(sub.Exit(cc, err))
			}
			return err
		}
	}
	return runMerge(cfg, cc, args)
}

// resolveGlobs expands the argument patterns to a sorted, de-duplicated
// list of schema file paths. With no arguments, *.schema.json in the
// current directory.
func resolveGlobs(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"*.schema.json"}
	}
	seen := map[string]bool{}
	var paths []string
	for _, pat := range args {
		matches, err := filepath.Glob(pat)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no schema files match %q", pat)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (cfg *MainConfig) meta() (*ir.Node, error) {
	meta, err := metaschema.Ensure(cfg.MetaCache, cfg.MetaURL)
	if err != nil {
		return nil, fmt.Errorf("meta-schema bootstrap: %w", err)
	}
	return meta, nil
}

func (cfg *MainConfig) colored(cc *cli.Context) bool {
	if cfg.Color {
		return true
	}
	f, ok := cc.Out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// reporter prints diagnostics as they occur, colored when the output is
// a terminal. Validation problems are warnings-colored; everything else
// is an error.
func (cfg *MainConfig) reporter(cc *cli.Context) func(merge.Diag) {
	colored := cfg.colored(cc)
	return func(d merge.Diag) {
		c := color.New(color.FgRed)
		if d.Kind == merge.SchemaValidation {
			c = color.New(color.FgYellow)
		}
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		c.Fprintln(cc.Out, d.String())
	}
}

// runMerge is the shared merge driver behind the root invocation and
// the merge subcommand.
func runMerge(cfg *MainConfig, cc *cli.Context, args []string) error {
	paths, err := resolveGlobs(args)
	if err != nil {
		return err
	}
	meta, err := cfg.meta()
	if err != nil {
		return err
	}
	res := merge.Run(paths, merge.Options{Meta: meta, Report: cfg.reporter(cc)})
	if res.Doc == nil {
		return fmt.Errorf("%d problems, not writing %s", res.Diags.Len(), cfg.Out)
	}
	if cfg.Out == "-" {
		return ir.Encode(cc.Out, res.Doc)
	}
	f, err := os.Create(cfg.Out)
	if err != nil {
		return err
	}
	if err := ir.Encode(f, res.Doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "wrote %s (%d types)\n", cfg.Out, res.Registry.Len())
	return nil
}

func mergeCmd(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	return runMerge(cfg.MainConfig, cc, args)
}

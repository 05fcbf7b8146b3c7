package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/typeforge/typeforge/ir"
	"github.com/typeforge/typeforge/merge"
)

// diff merges the inputs and prints a line diff against the existing
// output file. Nothing is written.
func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
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
	res := merge.Run(paths, merge.Options{Meta: meta, Report: cfg.reporter(cc)})
	if res.Doc == nil {
		return fmt.Errorf("%d problems, nothing to diff", res.Diags.Len())
	}

	prev, err := os.ReadFile(cfg.Out)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	next := bytes.NewBuffer(nil)
	if err := ir.Encode(next, res.Doc); err != nil {
		return err
	}
	if bytes.Equal(prev, next.Bytes()) {
		fmt.Fprintf(cc.Out, "%s is up to date\n", cfg.Out)
		return nil
	}

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(prev), next.String())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	colored := cfg.colored(cc)
	for _, d := range diffs {
		prefix, c := " ", color.New(color.Reset)
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, c = "+", color.New(color.FgGreen)
		case diffpatch.DiffDelete:
			prefix, c = "-", color.New(color.FgRed)
		}
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			c.Fprintf(cc.Out, "%s%s\n", prefix, line)
		}
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/typeforge/typeforge/merge"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
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
	if res.Diags.Failed() {
		fmt.Fprintf(cc.Out, "%d problems in %d files\n", res.Diags.Len(), len(paths))
		return cli.ExitCodeErr(1)
	}
	fmt.Fprintf(cc.Out, "%d types ok\n", res.Registry.Len())
	return nil
}

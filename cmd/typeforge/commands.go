package main

import (
	"github.com/scott-cotton/cli"

	"github.com/typeforge/typeforge/metaschema"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{
		Out:       "combined.schema.json",
		MetaCache: "typeforge.meta.json",
		MetaURL:   metaschema.DefaultDraftURL,
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "typeforge").
		WithSynopsis("typeforge [opts] [command] [globs...]").
		WithDescription("typeforge merges component schema files into one combined schema.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return forgeMain(cfg, cc, args)
		}).
		WithSubs(
			MergeCommand(cfg),
			CheckCommand(cfg),
			DiffCommand(cfg),
			ListCommand(cfg),
			WatchCommand(cfg))
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithSynopsis("merge [globs...]").
		WithDescription("merge schema files and write the combined schema").
		WithRun(func(cc *cli.Context, args []string) error {
			return mergeCmd(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [globs...]").
		WithDescription("run the merge and report problems without writing output").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [globs...]").
		WithDescription("show how a merge would change the existing combined schema").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l").
		WithSynopsis("list [-where expr] [globs...]").
		WithDescription("list the registered types").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithSynopsis("watch [globs...]").
		WithDescription("re-run the merge whenever an input schema changes").
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
}

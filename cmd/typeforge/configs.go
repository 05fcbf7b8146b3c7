package main

import (
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Out       string `cli:"name=o desc='combined schema output path'"`
	MetaCache string `cli:"name=meta desc='meta-schema cache file'"`
	MetaURL   string `cli:"name=url desc='draft meta-schema URL'"`
	Color     bool   `cli:"name=color desc='force colored diagnostics'"`

	Main *cli.Command
}

type MergeConfig struct {
	*MainConfig

	Merge *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type ListConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='filter expression over name, role, union, properties'"`

	List *cli.Command
}

type WatchConfig struct {
	*MainConfig

	Watch *cli.Command
}

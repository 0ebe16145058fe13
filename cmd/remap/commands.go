package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "remap").
		WithSynopsis("remap [opts] command [opts]").
		WithDescription("remap is a tool for reshaping JSON documents with mapping tables.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return remapMain(cfg, cc, args)
		}).
		WithSubs(
			ApplyCommand(cfg),
			ReverseCommand(cfg),
			GetCommand(cfg),
			SetCommand(cfg),
			DiffCommand(cfg),
			DumpCommand(cfg),
			TablesCommand(cfg))
}

func remapMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("apply").
		WithAliases("a").
		WithSynopsis("apply -f mapfile [-s schema] [files]").
		WithDescription("apply a mapping table to JSON documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
	cfg.Apply = cmd
	return cmd
}

func ReverseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg, Reverse: true}
	cmd := cli.NewCommand("reverse").
		WithAliases("r", "rev").
		WithSynopsis("reverse -f mapfile [-s schema] [files]").
		WithDescription("apply a mapping table in reverse, restoring source shape").
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
	cfg.Apply = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <keypath> [files]").
		WithDescription("get the value at a key path in JSON documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("set").
		WithSynopsis("set <keypath> <json-value> [files]").
		WithDescription("set the value at a key path in JSON documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
	cfg.Set = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff a b").
		WithDescription("diff two JSON documents structurally").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("dump").
		WithSynopsis("dump [files]").
		WithDescription("dump the parsed document tree").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
	cfg.Dump = cmd
	return cmd
}

func TablesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TablesConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("tables").
		WithAliases("t").
		WithSynopsis("tables -f mapfile").
		WithDescription("list the schemas and transformers of a mapping file").
		WithRun(func(cc *cli.Context, args []string) error {
			return tables(cfg, cc, args)
		})
	cfg.Tables = cmd
	return cmd
}

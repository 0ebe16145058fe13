package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/scott-cotton/cli"
)

func tables(cfg *TablesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tables.Parse(cc, args)
	if err != nil {
		cfg.Tables.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: tables takes no arguments", cli.ErrUsage)
	}
	loaded, err := cfg.MainConfig.tables()
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(loaded)) {
		if _, err := fmt.Fprintf(cc.Out, "%s:\n", name); err != nil {
			return err
		}
		table := loaded[name]
		for _, key := range slices.Sorted(maps.Keys(table)) {
			if _, err := fmt.Fprintf(cc.Out, "  %s: %s\n", key, table[key]); err != nil {
				return err
			}
		}
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/remapfmt/remap/transform"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	table, err := cfg.table()
	if err != nil {
		return err
	}
	for _, arg := range orStdin(args) {
		node, err := getObjFile(cc, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if cfg.Reverse {
			transform.ReverseApply(node, table)
		} else {
			transform.Apply(node, table)
		}
		if err := writeObj(cc.Out, node); err != nil {
			return err
		}
	}
	return nil
}

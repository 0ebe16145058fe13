package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/keypath"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a key path and a JSON value", cli.ErrUsage)
	}
	path, err := keypath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: invalid key path %q: %v", cli.ErrUsage, args[0], err)
	}
	value, err := ir.FromJSON([]byte(args[1]))
	if err != nil {
		return fmt.Errorf("%w: invalid value %q: %v", cli.ErrUsage, args[1], err)
	}
	for _, arg := range orStdin(args[2:]) {
		node, err := getObjFile(cc, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		path.Set(node, value.Clone())
		if err := writeObj(cc.Out, node); err != nil {
			return err
		}
	}
	return nil
}

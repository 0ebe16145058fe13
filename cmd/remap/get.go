package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/remapfmt/remap/keypath"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a key path", cli.ErrUsage)
	}
	path, err := keypath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: invalid key path %q: %v", cli.ErrUsage, args[0], err)
	}
	missed := false
	for _, arg := range orStdin(args[1:]) {
		node, err := getObjFile(cc, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		v := path.Get(node)
		if v == nil {
			missed = true
			continue
		}
		if err := writeObj(cc.Out, v); err != nil {
			return err
		}
	}
	if missed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

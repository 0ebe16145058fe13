package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		cfg.Dump.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range orStdin(args) {
		node, err := getObjFile(cc, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if _, err := fmt.Fprint(cc.Out, spew.Sdump(node)); err != nil {
			return err
		}
	}
	return nil
}

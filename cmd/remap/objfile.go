package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/remapfmt/remap/ir"
)

func getObjFile(cc *cli.Context, path string) (*ir.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return ir.FromJSON(d)
}

func writeObj(w io.Writer, node *ir.Node) error {
	d, err := ir.ToJSON(node)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(d, '\n')); err != nil {
		return err
	}
	return nil
}

// orStdin substitutes stdin when no files are given.
func orStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

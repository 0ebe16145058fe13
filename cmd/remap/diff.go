package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/remapfmt/remap/ir"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getObjFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if ir.Equal(a, b) {
		return nil
	}
	ta, err := prettyText(a)
	if err != nil {
		return err
	}
	tb, err := prettyText(b)
	if err != nil {
		return err
	}
	if err := writeDiff(cc.Out, ta, tb, cfg.useColor(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func prettyText(node *ir.Node) (string, error) {
	d, err := ir.ToJSON(node)
	if err != nil {
		return "", err
	}
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, d, "", "  "); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

func writeDiff(w io.Writer, a, b string, colorize bool) error {
	dmp := diffmatchpatch.New()
	chA, chB, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chA, chB, false), lines)

	ins := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	for _, d := range diffs {
		var err error
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			err = writeLines(w, "+", d.Text, ins, colorize)
		case diffmatchpatch.DiffDelete:
			err = writeLines(w, "-", d.Text, del, colorize)
		default:
			err = writeLines(w, " ", d.Text, nil, false)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeLines(w io.Writer, prefix, text string, c *color.Color, colorize bool) error {
	for _, line := range splitLines(text) {
		var err error
		if colorize && c != nil {
			_, err = c.Fprintf(w, "%s%s\n", prefix, line)
		} else {
			_, err = fmt.Fprintf(w, "%s%s\n", prefix, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

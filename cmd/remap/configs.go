package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/remapfmt/remap/mapfile"
	"github.com/remapfmt/remap/transform"
)

type MainConfig struct {
	Mapfile string `cli:"name=f aliases=mapfile desc='mapping file (YAML)'"`
	Schema  string `cli:"name=s aliases=schema desc='schema name within the mapping file'"`
	Color   bool   `cli:"name=color desc='force color output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// tables loads the mapping file named by -f.
func (cfg *MainConfig) tables() (map[string]transform.Table, error) {
	if cfg.Mapfile == "" {
		return nil, fmt.Errorf("%w: no mapping file, use -f", cli.ErrUsage)
	}
	d, err := os.ReadFile(cfg.Mapfile)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", cfg.Mapfile, err)
	}
	return mapfile.Load(d)
}

// table selects the schema named by -s, or the only schema in the file when
// -s is not given.
func (cfg *MainConfig) table() (transform.Table, error) {
	tables, err := cfg.tables()
	if err != nil {
		return nil, err
	}
	if cfg.Schema != "" {
		table, ok := tables[cfg.Schema]
		if !ok {
			return nil, fmt.Errorf("no schema %q in %s", cfg.Schema, cfg.Mapfile)
		}
		return table, nil
	}
	if len(tables) != 1 {
		return nil, fmt.Errorf("%w: %s has %d schemas, pick one with -s", cli.ErrUsage, cfg.Mapfile, len(tables))
	}
	for _, table := range tables {
		return table, nil
	}
	return nil, nil
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ApplyConfig struct {
	*MainConfig
	Reverse bool

	Apply *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}

type TablesConfig struct {
	*MainConfig

	Tables *cli.Command
}

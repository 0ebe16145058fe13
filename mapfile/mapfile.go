package mapfile

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/remapfmt/remap/keypath"
	"github.com/remapfmt/remap/transform"
)

// fieldSpec is the YAML shape of one table entry.
type fieldSpec struct {
	Path     string         `yaml:"path"`
	Default  any            `yaml:"default"`
	Override bool           `yaml:"override"`
	Date     string         `yaml:"date"`
	Expr     string         `yaml:"expr"`
	Patch    map[string]any `yaml:"patch"`
	Schema   string         `yaml:"schema"`
	List     bool           `yaml:"list"`
}

// Load parses a YAML mapping file into its named tables.
func Load(data []byte) (map[string]transform.Table, error) {
	var file map[string]map[string]*fieldSpec
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("mapfile: %w", err)
	}

	// Tables are created empty first so schema references resolve
	// regardless of declaration order.
	tables := make(map[string]transform.Table, len(file))
	for name := range file {
		tables[name] = transform.Table{}
	}
	for name, fields := range file {
		for key, spec := range fields {
			if spec == nil {
				return nil, fmt.Errorf("mapfile: %s.%s: empty field spec", name, key)
			}
			tr, err := spec.build(tables)
			if err != nil {
				return nil, fmt.Errorf("mapfile: %s.%s: %w", name, key, err)
			}
			tables[name][key] = tr
		}
	}
	return tables, nil
}

func (s *fieldSpec) build(tables map[string]transform.Table) (transform.Transformer, error) {
	var pathParts []any
	if s.Path != "" {
		path, err := keypath.Parse(s.Path)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", s.Path, err)
		}
		pathParts = append(pathParts, path)
	}

	primary, err := s.buildPrimary(pathParts, tables)
	if err != nil {
		return nil, err
	}

	var links []transform.Transformer
	if primary != nil {
		links = append(links, primary)
	} else if s.Path != "" {
		links = append(links, transform.FromPath(pathParts...))
	}
	if s.Default != nil {
		links = append(links, transform.Default(s.Default, s.Override))
	}

	switch len(links) {
	case 0:
		return nil, fmt.Errorf("empty field spec")
	case 1:
		return links[0], nil
	default:
		return transform.Chain(links...), nil
	}
}

func (s *fieldSpec) buildPrimary(pathParts []any, tables map[string]transform.Table) (transform.Transformer, error) {
	n := 0
	if s.Schema != "" {
		n++
	}
	if s.Date != "" {
		n++
	}
	if s.Expr != "" {
		n++
	}
	if s.Patch != nil {
		n++
	}
	if n > 1 {
		return nil, fmt.Errorf("schema, date, expr and patch are mutually exclusive")
	}
	if s.List && s.Schema == "" {
		return nil, fmt.Errorf("list requires a schema reference")
	}

	switch {
	case s.Schema != "":
		table, ok := tables[s.Schema]
		if !ok {
			return nil, fmt.Errorf("unknown schema %q", s.Schema)
		}
		if s.List {
			return transform.NestedList(table, pathParts...), nil
		}
		return transform.Nested(table, pathParts...), nil

	case s.Date != "":
		switch s.Date {
		case "seconds":
			return transform.DateSeconds(pathParts...), nil
		case "millis":
			return transform.DateMillis(pathParts...), nil
		case "iso8601":
			return transform.DateISO8601(pathParts...), nil
		default:
			return transform.DateLayout(s.Date, pathParts...), nil
		}

	case s.Expr != "":
		return transform.Expr(s.Expr, pathParts...)

	case s.Patch != nil:
		patch, err := json.Marshal(s.Patch)
		if err != nil {
			return nil, fmt.Errorf("patch: %w", err)
		}
		return transform.MergePatch(patch, pathParts...)
	}
	return nil, nil
}

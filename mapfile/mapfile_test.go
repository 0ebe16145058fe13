package mapfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/transform"
)

const treeMapfile = `
tree:
  name:
    path: tree_name
  age:
    default: 0
  planted:
    date: seconds
forest:
  region:
    path: meta.region
  trees:
    schema: tree
    list: true
  oldest:
    schema: tree
`

func TestLoad(t *testing.T) {
	tables, err := Load([]byte(treeMapfile))
	require.NoError(t, err)
	require.Contains(t, tables, "tree")
	require.Contains(t, tables, "forest")

	doc, err := ir.FromJSON([]byte(`{
		"meta": {"region": "north"},
		"trees": [{"tree_name": "pine", "planted": 7}],
		"oldest": {"tree_name": "yew", "age": 900, "planted": 1}
	}`))
	require.NoError(t, err)
	transform.Apply(doc, tables["forest"])

	assert.Equal(t, "north", ir.Get(doc, "region").String)
	trees := ir.Get(doc, "trees")
	require.Len(t, trees.Values, 1)
	assert.Equal(t, "pine", ir.Get(trees.Values[0], "name").String)
	assert.Equal(t, int64(7000), *ir.Get(trees.Values[0], "planted").Int64)
	assert.Equal(t, int64(0), *ir.Get(trees.Values[0], "age").Int64)
	assert.Equal(t, "yew", ir.Get(ir.Get(doc, "oldest"), "name").String)
}

func TestLoadForwardSchemaReference(t *testing.T) {
	// forest is declared before tree and still resolves
	tables, err := Load([]byte(`
forest:
  oldest:
    schema: tree
tree:
  name:
    path: tree_name
`))
	require.NoError(t, err)

	doc, err := ir.FromJSON([]byte(`{"oldest": {"tree_name": "yew"}}`))
	require.NoError(t, err)
	transform.Apply(doc, tables["forest"])
	assert.Equal(t, "yew", ir.Get(ir.Get(doc, "oldest"), "name").String)
}

func TestLoadPathWithDefault(t *testing.T) {
	tables, err := Load([]byte(`
tree:
  name:
    path: tree_name
    default: unknown
`))
	require.NoError(t, err)

	doc, err := ir.FromJSON([]byte(`{}`))
	require.NoError(t, err)
	transform.Apply(doc, tables["tree"])
	assert.Equal(t, "unknown", ir.Get(doc, "name").String)
}

func TestLoadDateLayout(t *testing.T) {
	tables, err := Load([]byte(`
tree:
  planted:
    date: "01-02-2006"
`))
	require.NoError(t, err)

	doc, err := ir.FromJSON([]byte(`{"planted": "10-25-1992"}`))
	require.NoError(t, err)
	transform.Apply(doc, tables["tree"])
	got := ir.Get(doc, "planted")
	require.NotNil(t, got.Int64)
}

func TestLoadExpr(t *testing.T) {
	tables, err := Load([]byte(`
stats:
  count:
    path: values
    expr: len(value)
`))
	require.NoError(t, err)

	doc, err := ir.FromJSON([]byte(`{"values": [1, 2, 3]}`))
	require.NoError(t, err)
	transform.Apply(doc, tables["stats"])
	assert.Equal(t, int64(3), *ir.Get(doc, "count").Int64)
}

func TestLoadPatch(t *testing.T) {
	tables, err := Load([]byte(`
server:
  opts:
    patch:
      enabled: true
`))
	require.NoError(t, err)

	doc, err := ir.FromJSON([]byte(`{"opts": {"color": "red"}}`))
	require.NoError(t, err)
	transform.Apply(doc, tables["server"])
	opts := ir.Get(doc, "opts")
	assert.True(t, ir.Get(opts, "enabled").Bool)
	assert.Equal(t, "red", ir.Get(opts, "color").String)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown schema", "forest:\n  oldest:\n    schema: nope\n"},
		{"conflicting primaries", "t:\n  k:\n    date: seconds\n    expr: value\n"},
		{"list without schema", "t:\n  k:\n    path: a\n    list: true\n"},
		{"empty field spec", "t:\n  k:\n    override: true\n"},
		{"bad expr", "t:\n  k:\n    expr: \"len(\"\n"},
		{"bad yaml", "t: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}

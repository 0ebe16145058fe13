package bind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remapfmt/remap/ir"
)

type address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    *string
}

type person struct {
	Name    string   `json:"name"`
	Age     int      `json:"age"`
	Email   *string  `json:"email"`
	Tags    []string `json:"tags"`
	Address *address `json:"address"`
}

func mustFromJSON(t *testing.T, data string) *ir.Node {
	t.Helper()
	node, err := ir.FromJSON([]byte(data))
	require.NoError(t, err)
	return node
}

func TestFromIRStruct(t *testing.T) {
	node := mustFromJSON(t, `{
		"name": "ada",
		"age": 36,
		"tags": ["x", "y"],
		"address": {"street": "1 Main", "city": "London"}
	}`)
	var p person
	require.NoError(t, FromIR(node, &p))
	assert.Equal(t, "ada", p.Name)
	assert.Equal(t, 36, p.Age)
	assert.Nil(t, p.Email)
	assert.Equal(t, []string{"x", "y"}, p.Tags)
	require.NotNil(t, p.Address)
	assert.Equal(t, "1 Main", p.Address.Street)
}

func TestFromIRMissingRequired(t *testing.T) {
	node := mustFromJSON(t, `{"name": "ada"}`)
	var p person
	err := FromIR(node, &p)
	require.Error(t, err)
	var ue *UnmarshalError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "age", ue.FieldPath)
}

func TestFromIRMissingRequiredNested(t *testing.T) {
	node := mustFromJSON(t, `{
		"name": "ada",
		"age": 36,
		"address": {"street": "1 Main"}
	}`)
	var p person
	err := FromIR(node, &p)
	var ue *UnmarshalError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "address.city", ue.FieldPath)
}

func TestFromIROptionalAbsent(t *testing.T) {
	node := mustFromJSON(t, `{"name": "ada", "age": 36}`)
	var p person
	require.NoError(t, FromIR(node, &p))
	assert.Nil(t, p.Email)
	assert.Nil(t, p.Tags)
	assert.Nil(t, p.Address)
}

func TestFromIRTypeMismatch(t *testing.T) {
	node := mustFromJSON(t, `{"name": 7, "age": 36}`)
	var p person
	err := FromIR(node, &p)
	var ue *UnmarshalError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "name", ue.FieldPath)
}

func TestFromIRExtraFieldsIgnored(t *testing.T) {
	node := mustFromJSON(t, `{"name": "ada", "age": 36, "unknown": true}`)
	var p person
	require.NoError(t, FromIR(node, &p))
	assert.Equal(t, "ada", p.Name)
}

func TestFromIRNullToZero(t *testing.T) {
	node := mustFromJSON(t, `{"name": "ada", "age": 36, "email": null}`)
	var p person
	require.NoError(t, FromIR(node, &p))
	assert.Nil(t, p.Email)
}

func TestFromIRTime(t *testing.T) {
	type event struct {
		When time.Time `json:"when"`
	}
	want := time.Date(1992, 10, 25, 7, 0, 0, 0, time.UTC)
	node := ir.FromMap(map[string]*ir.Node{"when": ir.FromInt(want.UnixMilli())})
	var e event
	require.NoError(t, FromIR(node, &e))
	assert.True(t, e.When.Equal(want))

	bad := ir.FromMap(map[string]*ir.Node{"when": ir.FromString("1992-10-25")})
	err := FromIR(bad, &e)
	var ue *UnmarshalError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "when", ue.FieldPath)
}

func TestFromIRScalarsAndMaps(t *testing.T) {
	var m map[string]int
	node := mustFromJSON(t, `{"a": 1, "b": 2}`)
	require.NoError(t, FromIR(node, &m))
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, m)

	var xs []float64
	require.NoError(t, FromIR(mustFromJSON(t, `[1, 2.5]`), &xs))
	assert.Equal(t, []float64{1, 2.5}, xs)

	var v any
	require.NoError(t, FromIR(mustFromJSON(t, `{"k": [true, "s"]}`), &v))
	assert.Equal(t, map[string]any{"k": []any{true, "s"}}, v)
}

func TestFromIRNotAPointer(t *testing.T) {
	var p person
	require.Error(t, FromIR(ir.Null(), p))
	require.Error(t, FromIR(ir.Null(), nil))
}

func TestToIRStruct(t *testing.T) {
	email := "ada@example.com"
	p := person{
		Name:    "ada",
		Age:     36,
		Email:   &email,
		Tags:    []string{"x"},
		Address: &address{Street: "1 Main", City: "London"},
	}
	node, err := ToIR(p)
	require.NoError(t, err)
	assert.Equal(t, "ada", ir.Get(node, "name").String)
	assert.Equal(t, int64(36), *ir.Get(node, "age").Int64)
	assert.Equal(t, email, ir.Get(node, "email").String)
	addr := ir.Get(node, "address")
	require.NotNil(t, addr)
	assert.Equal(t, "London", ir.Get(addr, "city").String)
	// absent optional sub-field is omitted
	assert.Nil(t, ir.Get(addr, "Zip"))
}

func TestToIRNilPointerOmitted(t *testing.T) {
	node, err := ToIR(person{Name: "ada", Age: 36})
	require.NoError(t, err)
	assert.Nil(t, ir.Get(node, "email"))
	assert.Nil(t, ir.Get(node, "address"))
}

func TestToIRFieldOrder(t *testing.T) {
	node, err := ToIR(person{Name: "ada", Age: 36})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(node.Fields), 2)
	assert.Equal(t, "name", node.Fields[0].String)
	assert.Equal(t, "age", node.Fields[1].String)
}

func TestToIROmitEmpty(t *testing.T) {
	type opts struct {
		Name  string   `json:"name,omitempty"`
		Count int      `json:"count,omitempty"`
		Tags  []string `json:"tags,omitempty"`
	}
	node, err := ToIR(opts{})
	require.NoError(t, err)
	assert.Empty(t, node.Fields)

	node, err = ToIR(opts{Name: "x", Count: 2, Tags: []string{"t"}})
	require.NoError(t, err)
	assert.Len(t, node.Fields, 3)
}

func TestToIRTime(t *testing.T) {
	type event struct {
		When time.Time `json:"when"`
	}
	when := time.Date(2001, 9, 9, 1, 46, 40, 0, time.UTC)
	node, err := ToIR(event{When: when})
	require.NoError(t, err)
	got := ir.Get(node, "when")
	require.NotNil(t, got.Int64)
	assert.Equal(t, when.UnixMilli(), *got.Int64)
}

func TestToIRCycle(t *testing.T) {
	type ring struct {
		Next *ring `json:"next"`
	}
	a := &ring{}
	a.Next = a
	_, err := ToIR(a)
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	email := "ada@example.com"
	in := person{
		Name:    "ada",
		Age:     36,
		Email:   &email,
		Tags:    []string{"x", "y"},
		Address: &address{Street: "1 Main", City: "London"},
	}
	node, err := ToIR(in)
	require.NoError(t, err)
	var out person
	require.NoError(t, FromIR(node, &out))
	assert.Equal(t, in, out)
}

func TestEmbeddedFlattening(t *testing.T) {
	type base struct {
		ID string `json:"id"`
	}
	type widget struct {
		base
		Name string `json:"name"`
	}
	node := mustFromJSON(t, `{"id": "w1", "name": "knob"}`)
	var w widget
	require.NoError(t, FromIR(node, &w))
	assert.Equal(t, "w1", w.ID)
	assert.Equal(t, "knob", w.Name)

	out, err := ToIR(w)
	require.NoError(t, err)
	assert.Equal(t, "w1", ir.Get(out, "id").String)
}

package keypath

import (
	"testing"

	"github.com/remapfmt/remap/ir"
)

func doc() *ir.Node {
	return ir.FromMap(map[string]*ir.Node{
		"a": ir.FromMap(map[string]*ir.Node{
			"b": ir.FromSlice([]*ir.Node{
				ir.FromString("zero"),
				ir.FromMap(map[string]*ir.Node{"c": ir.FromInt(7)}),
			}),
		}),
		"b.1":  ir.FromString("dotted"),
		"null": ir.Null(),
	})
}

func TestNewDotSplitting(t *testing.T) {
	if got, want := New("a.b", 1).Len(), 3; got != want {
		t.Errorf("New(\"a.b\", 1).Len() = %d, want %d", got, want)
	}
	if New("a", "b", 1).Equal(New("a", "b.1")) {
		t.Error("New(\"a\",\"b\",1) must differ from New(\"a\",\"b.1\")")
	}
	if !New("a.b").Equal(New("a", "b")) {
		t.Error("New(\"a.b\") must equal New(\"a\",\"b\")")
	}
	if !New(New("a"), 2).Equal(New("a", 2)) {
		t.Error("KeyPath components must splice")
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		path KeyPath
		want *ir.Node
	}{
		{"empty path", New(), nil},
		{"top field", New("b.1"), nil}, // splits to b -> 1, not the literal key
		{"nested field", New("a", "b", 1, "c"), ir.FromInt(7)},
		{"dotted sugar", New("a.b", 0), ir.FromString("zero")},
		{"missing field", New("a", "missing"), nil},
		{"index on object", New("a", 0), nil},
		{"field on array", New("a", "b", "c"), nil},
		{"index out of bounds", New("a", "b", 2), nil},
		{"negative index", New("a", "b", -1), nil},
		{"present null", New("null"), ir.Null()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.path.Get(doc())
			if tt.want == nil {
				if got != nil {
					t.Errorf("Get = %+v, want absent", got)
				}
				return
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("Get = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGetClones(t *testing.T) {
	d := doc()
	got := New("a").Get(d)
	ir.Set(got, "b", ir.FromString("changed"))
	if ir.Get(ir.Get(d, "a"), "b").Type != ir.ArrayType {
		t.Error("Get must return a clone, not an aliased node")
	}
}

func TestSet(t *testing.T) {
	t.Run("overwrite field", func(t *testing.T) {
		d := doc()
		New("a", "b", 1, "c").Set(d, ir.FromInt(8))
		if got := New("a", "b", 1, "c").Get(d); *got.Int64 != 8 {
			t.Errorf("got %d, want 8", *got.Int64)
		}
	})
	t.Run("insert field", func(t *testing.T) {
		d := doc()
		New("a", "x").Set(d, ir.FromString("new"))
		if got := New("a", "x").Get(d); got == nil || got.String != "new" {
			t.Errorf("got %v", got)
		}
	})
	t.Run("array index", func(t *testing.T) {
		d := doc()
		New("a", "b", 0).Set(d, ir.FromString("replaced"))
		if got := New("a", "b", 0).Get(d); got.String != "replaced" {
			t.Errorf("got %q", got.String)
		}
	})
	t.Run("out of bounds dropped", func(t *testing.T) {
		d := doc()
		New("a", "b", 5).Set(d, ir.FromString("x"))
		if got := len(New("a", "b").Get(d).Values); got != 2 {
			t.Errorf("array length = %d, want 2 (no append)", got)
		}
	})
	t.Run("missing intermediate is no-op", func(t *testing.T) {
		d := doc()
		before := d.Clone()
		New("missing", "x").Set(d, ir.FromString("v"))
		if !ir.Equal(d, before) {
			t.Error("set through missing intermediate must not modify the tree")
		}
	})
	t.Run("wrong container kind is no-op", func(t *testing.T) {
		d := doc()
		before := d.Clone()
		New("a", "b", "c", "d").Set(d, ir.FromString("v"))
		if !ir.Equal(d, before) {
			t.Error("set through wrong container kind must not modify the tree")
		}
	})
	t.Run("nil deletes key", func(t *testing.T) {
		d := doc()
		New("a", "b").Set(d, nil)
		if got := New("a", "b").Get(d); got != nil {
			t.Errorf("after delete, got %v", got)
		}
	})
	t.Run("empty path is no-op", func(t *testing.T) {
		d := doc()
		before := d.Clone()
		New().Set(d, ir.FromString("v"))
		if !ir.Equal(d, before) {
			t.Error("empty path set must be a no-op")
		}
	})
}

func TestStringParse(t *testing.T) {
	tests := []struct {
		path KeyPath
		str  string
	}{
		{New("a", "b", 1), "a.b[1]"},
		{New("a.b", "c"), "a.b.c"},
		{New(2, "x"), "[2].x"},
		{New(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.path.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			back, err := Parse(tt.str)
			if err != nil {
				t.Fatal(err)
			}
			if !back.Equal(tt.path) {
				t.Errorf("Parse(%q) != original path", tt.str)
			}
		})
	}
}

func TestParseQuoted(t *testing.T) {
	p, err := Parse("'b.1'")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Get(doc()); got == nil || got.String != "dotted" {
		t.Errorf("quoted parse Get = %v, want \"dotted\"", got)
	}
	if p.Equal(New("b.1")) {
		t.Error("quoted literal key must differ from dot-split path")
	}

	if _, err := Parse("'oops"); err == nil {
		t.Error("expected error for unterminated quote")
	}
	if _, err := Parse("a[x]"); err == nil {
		t.Error("expected error for non-integer index")
	}
	if _, err := Parse(".a"); err == nil {
		t.Error("expected error for leading dot")
	}
}

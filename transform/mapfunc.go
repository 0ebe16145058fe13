package transform

import (
	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/keypath"
)

// Map applies a pure function to the raw value at the source path. The
// function receives nil when the source is absent; returning nil leaves the
// target untouched.
func Map(fn func(raw *ir.Node) *ir.Node, parts ...any) Transformer {
	return &mapFunc{fn: fn, path: keypath.New(parts...)}
}

type mapFunc struct {
	fn   func(raw *ir.Node) *ir.Node
	path keypath.KeyPath
}

func (t *mapFunc) Path() keypath.KeyPath {
	return t.path
}

func (t *mapFunc) String() string {
	return "map(" + t.path.String() + ")"
}

func (t *mapFunc) Transform(obj *ir.Node, key string) {
	out := t.fn(resolve(t.path, key).Get(obj))
	if out == nil {
		return
	}
	ir.Set(obj, key, out)
}

func (t *mapFunc) Reverse(obj *ir.Node, key string) {}

// MapAny is Map over plain Go values: the raw value is converted with
// ir.ToAny before the call and the result back with ir.FromAny. Returning
// ok == false, or a value without a JSON representation, leaves the target
// untouched.
func MapAny(fn func(raw any) (any, bool), parts ...any) Transformer {
	return Map(func(raw *ir.Node) *ir.Node {
		out, ok := fn(ir.ToAny(raw))
		if !ok {
			return nil
		}
		node, err := ir.FromAny(out)
		if err != nil {
			return nil
		}
		return node
	}, parts...)
}

package transform

import (
	"github.com/remapfmt/remap/debug"
	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/keypath"
)

// Nested rewrites the object found at the given path with a nested schema's
// table and stores the result at the target key. An absent or non-object
// source is left alone.
func Nested(table Table, parts ...any) Transformer {
	return &nested{table: table, path: keypath.New(parts...)}
}

type nested struct {
	table Table
	path  keypath.KeyPath
}

func (t *nested) Path() keypath.KeyPath {
	return t.path
}

func (t *nested) String() string {
	return "nested(" + t.path.String() + ")"
}

func (t *nested) Transform(obj *ir.Node, key string) {
	v := resolve(t.path, key).Get(obj)
	if v == nil || v.Type != ir.ObjectType {
		if debug.Transform() {
			debug.Logf("nested: no object at %s for %q", resolve(t.path, key), key)
		}
		return
	}
	Apply(v, t.table)
	ir.Set(obj, key, v)
}

func (t *nested) Reverse(obj *ir.Node, key string) {
	v := ir.Get(obj, key)
	if v == nil || v.Type != ir.ObjectType {
		return
	}
	v = v.Clone()
	ReverseApply(v, t.table)
	restore(obj, key, resolve(t.path, key), v)
}

// NestedList rewrites an array of objects element-wise with a nested
// schema's table, preserving order and count. A non-array source, or an
// array containing any non-object element, leaves the target untouched. An
// empty array stays an empty array.
func NestedList(table Table, parts ...any) Transformer {
	return &nestedList{table: table, path: keypath.New(parts...)}
}

type nestedList struct {
	table Table
	path  keypath.KeyPath
}

func (t *nestedList) Path() keypath.KeyPath {
	return t.path
}

func (t *nestedList) String() string {
	return "nestedList(" + t.path.String() + ")"
}

func (t *nestedList) Transform(obj *ir.Node, key string) {
	v := resolve(t.path, key).Get(obj)
	if !objectArray(v) {
		if debug.Transform() {
			debug.Logf("nestedList: no object array at %s for %q", resolve(t.path, key), key)
		}
		return
	}
	for _, elt := range v.Values {
		Apply(elt, t.table)
	}
	ir.Set(obj, key, v)
}

func (t *nestedList) Reverse(obj *ir.Node, key string) {
	v := ir.Get(obj, key)
	if !objectArray(v) {
		return
	}
	v = v.Clone()
	for _, elt := range v.Values {
		ReverseApply(elt, t.table)
	}
	restore(obj, key, resolve(t.path, key), v)
}

func objectArray(v *ir.Node) bool {
	if v == nil || v.Type != ir.ArrayType {
		return false
	}
	for _, elt := range v.Values {
		if elt.Type != ir.ObjectType {
			return false
		}
	}
	return true
}

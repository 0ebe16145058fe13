package transform

import (
	"github.com/remapfmt/remap/debug"
	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/keypath"
)

// Transformer rewrites one field of a JSON object in the mapping-to-schema
// direction, and optionally reverses the rewrite in the schema-to-mapping
// direction. Implementations must be immutable and safe for concurrent use.
type Transformer interface {
	// Transform rewrites obj so that obj[key] holds the schema-ready value.
	// Failures leave the field as found.
	Transform(obj *ir.Node, key string)

	// Reverse undoes the rewrite after structural encoding. The default for
	// variants with nothing to invert is a no-op.
	Reverse(obj *ir.Node, key string)

	// Path returns the transformer's explicit source path. It is empty for
	// transformers that default to the target key.
	Path() keypath.KeyPath

	String() string
}

// Table maps a schema's property keys to their transformers. It is built
// once per schema type and never mutated afterwards.
type Table map[string]Transformer

// Apply runs every table entry's Transform against obj. Entry order is
// unspecified; entries must not depend on one another. Non-object obj is
// left untouched.
func Apply(obj *ir.Node, table Table) {
	if obj == nil || obj.Type != ir.ObjectType {
		return
	}
	for key, t := range table {
		if debug.Apply() {
			debug.Logf("apply %s -> %q on %v", t, key, obj)
		}
		t.Transform(obj, key)
	}
}

// ReverseApply runs every table entry's Reverse against obj.
func ReverseApply(obj *ir.Node, table Table) {
	if obj == nil || obj.Type != ir.ObjectType {
		return
	}
	for key, t := range table {
		if debug.Reverse() {
			debug.Logf("reverse %s -> %q on %v", t, key, obj)
		}
		t.Reverse(obj, key)
	}
}

// resolve returns the explicit path when one was configured, else a path
// built from the target key (with the usual dot-splitting).
func resolve(p keypath.KeyPath, key string) keypath.KeyPath {
	if !p.IsEmpty() {
		return p
	}
	return keypath.New(key)
}

// restore writes v at path p and, when p addresses a different location than
// obj[key], removes key. The key is kept when writing at p failed, so the
// value is never silently dropped.
func restore(obj *ir.Node, key string, p keypath.KeyPath, v *ir.Node) {
	p.Set(obj, v)
	if inPlace(p, key) {
		return
	}
	if got := p.Get(obj); got != nil && ir.Equal(got, v) {
		ir.Delete(obj, key)
	}
}

func inPlace(p keypath.KeyPath, key string) bool {
	segs := p.Segments()
	return len(segs) == 1 && segs[0].Field != nil && *segs[0].Field == key
}

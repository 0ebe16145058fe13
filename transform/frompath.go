package transform

import (
	"github.com/remapfmt/remap/debug"
	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/keypath"
)

// FromPath remaps the value found at the given path to the target key. An
// absent source leaves the target untouched, deferring any required-field
// failure to the structural codec.
func FromPath(parts ...any) Transformer {
	return &pathRemap{path: keypath.New(parts...)}
}

type pathRemap struct {
	path keypath.KeyPath
}

func (t *pathRemap) Path() keypath.KeyPath {
	return t.path
}

func (t *pathRemap) String() string {
	return "from(" + t.path.String() + ")"
}

func (t *pathRemap) Transform(obj *ir.Node, key string) {
	v := resolve(t.path, key).Get(obj)
	if v == nil {
		if debug.Transform() {
			debug.Logf("from: %s absent, leaving %q as found", resolve(t.path, key), key)
		}
		return
	}
	ir.Set(obj, key, v)
}

func (t *pathRemap) Reverse(obj *ir.Node, key string) {
	v := ir.Get(obj, key)
	if v == nil {
		return
	}
	restore(obj, key, resolve(t.path, key), v.Clone())
}

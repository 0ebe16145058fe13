package transform

import (
	"fmt"

	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/keypath"
)

// Default sets the target key to a literal value. With override false the
// default applies only when the key is still absent; with override true it
// always overwrites. The value must have a JSON representation; anything
// else panics at table construction time.
func Default(value any, override bool) Transformer {
	node, err := ir.FromAny(value)
	if err != nil {
		panic(fmt.Sprintf("transform: default value %v: %v", value, err))
	}
	return &defaultValue{value: node, override: override}
}

type defaultValue struct {
	value    *ir.Node
	override bool
}

func (t *defaultValue) Path() keypath.KeyPath {
	return keypath.New()
}

func (t *defaultValue) String() string {
	if t.override {
		return "default(override)"
	}
	return "default"
}

func (t *defaultValue) Transform(obj *ir.Node, key string) {
	if !t.override && ir.Get(obj, key) != nil {
		return
	}
	ir.Set(obj, key, t.value.Clone())
}

func (t *defaultValue) Reverse(obj *ir.Node, key string) {}

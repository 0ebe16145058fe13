package transform

import (
	"strings"

	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/keypath"
)

// Chain sequences transformers into one, applied left to right against the
// same target key; each child observes the effects of the previous one.
//
// Reverse also runs the children in declared order, not reversed. For
// genuinely invertible chains that is an asymmetry, but it is the behavior
// callers depend on, so it stays.
func Chain(ts ...Transformer) Transformer {
	return &chain{children: ts}
}

type chain struct {
	children []Transformer
}

// Path returns the first child's path; the chain as a whole reads from
// wherever its first link does.
func (t *chain) Path() keypath.KeyPath {
	if len(t.children) == 0 {
		return keypath.New()
	}
	return t.children[0].Path()
}

func (t *chain) String() string {
	parts := make([]string, len(t.children))
	for i, c := range t.children {
		parts[i] = c.String()
	}
	return "chain(" + strings.Join(parts, ", ") + ")"
}

func (t *chain) Transform(obj *ir.Node, key string) {
	for _, c := range t.children {
		c.Transform(obj, key)
	}
}

func (t *chain) Reverse(obj *ir.Node, key string) {
	for _, c := range t.children {
		c.Reverse(obj, key)
	}
}

package transform

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/keypath"
)

// MergePatch applies an RFC 7386 merge patch to the object at the source
// path and stores the result at the target key. An absent source is treated
// as an empty object, so a merge patch can serve as structured multi-field
// defaulting; a non-object source is left alone. The patch document itself
// must be a JSON object.
func MergePatch(patch []byte, parts ...any) (Transformer, error) {
	node, err := ir.FromJSON(patch)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("merge patch must be an object, got %s", node.Type)
	}
	return &mergePatch{patch: patch, path: keypath.New(parts...)}, nil
}

// MustMergePatch is MergePatch, panicking on an invalid patch document.
func MustMergePatch(patch []byte, parts ...any) Transformer {
	t, err := MergePatch(patch, parts...)
	if err != nil {
		panic(err)
	}
	return t
}

type mergePatch struct {
	patch []byte
	path  keypath.KeyPath
}

func (t *mergePatch) Path() keypath.KeyPath {
	return t.path
}

func (t *mergePatch) String() string {
	return "mergePatch(" + t.path.String() + ")"
}

func (t *mergePatch) Transform(obj *ir.Node, key string) {
	target := resolve(t.path, key).Get(obj)
	if target == nil {
		target = &ir.Node{Type: ir.ObjectType}
	}
	if target.Type != ir.ObjectType {
		return
	}
	doc, err := ir.ToJSON(target)
	if err != nil {
		return
	}
	merged, err := jsonpatch.MergePatch(doc, t.patch)
	if err != nil {
		return
	}
	node, err := ir.FromJSON(merged)
	if err != nil {
		return
	}
	ir.Set(obj, key, node)
}

func (t *mergePatch) Reverse(obj *ir.Node, key string) {}

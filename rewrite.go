package remap

import (
	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/transform"
)

// Rewrite applies a mapping table to a JSON object without binding the
// result to a Go value. Non-object documents pass through unchanged.
func Rewrite(data []byte, table transform.Table) ([]byte, error) {
	node, err := ir.FromJSON(data)
	if err != nil {
		return nil, err
	}
	transform.Apply(node, table)
	return ir.ToJSON(node)
}

// ReverseRewrite applies a mapping table in reverse to a JSON object,
// restoring the source shape of a previously rewritten document.
func ReverseRewrite(data []byte, table transform.Table) ([]byte, error) {
	node, err := ir.FromJSON(data)
	if err != nil {
		return nil, err
	}
	transform.ReverseApply(node, table)
	return ir.ToJSON(node)
}

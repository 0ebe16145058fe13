package remap

import (
	"fmt"

	"github.com/remapfmt/remap/bind"
	"github.com/remapfmt/remap/debug"
	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/transform"
)

// Mappable is implemented by types that decode through a mapping table. The
// table keys are the object keys the type binds from, usually the `json`
// names of its fields.
type Mappable interface {
	Transformers() transform.Table
}

// ShapeError reports a top-level document of the wrong kind, such as an
// array where an object was required.
type ShapeError struct {
	Expected ir.Type
	Got      ir.Type
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("expected top-level %s, got %s", e.Expected, e.Got)
}

// tableOf returns the mapping table of T's zero value.
func tableOf[T Mappable]() transform.Table {
	var v T
	return v.Transformers()
}

// Decode parses a JSON object and binds it to a value of T after applying
// T's mapping table.
func Decode[T Mappable](data []byte) (*T, error) {
	node, err := ir.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeNode[T](node)
}

// DecodeValue binds an object node to a value of T after applying T's
// mapping table. The input node is not modified.
func DecodeValue[T Mappable](node *ir.Node) (*T, error) {
	return decodeNode[T](node.Clone())
}

func decodeNode[T Mappable](node *ir.Node) (*T, error) {
	if node == nil || node.Type != ir.ObjectType {
		return nil, &ShapeError{Expected: ir.ObjectType, Got: typeOf(node)}
	}
	transform.Apply(node, tableOf[T]())
	res := new(T)
	if err := bind.FromIR(node, res); err != nil {
		return nil, err
	}
	if debug.Bind() {
		debug.Logf("bound %T from %v", *res, node)
	}
	return res, nil
}

// DecodeList parses a JSON array of objects and binds each element to a
// value of T.
func DecodeList[T Mappable](data []byte) ([]T, error) {
	node, err := ir.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return decodeListNode[T](node)
}

// DecodeListValue binds an array node to a slice of T. The input node is not
// modified.
func DecodeListValue[T Mappable](node *ir.Node) ([]T, error) {
	return decodeListNode[T](node.Clone())
}

func decodeListNode[T Mappable](node *ir.Node) ([]T, error) {
	if node == nil || node.Type != ir.ArrayType {
		return nil, &ShapeError{Expected: ir.ArrayType, Got: typeOf(node)}
	}
	res := make([]T, 0, len(node.Values))
	for i, elt := range node.Values {
		v, err := decodeNode[T](elt)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		res = append(res, *v)
	}
	return res, nil
}

// Encode serializes a value of T to JSON in its source shape, running T's
// mapping table in reverse.
func Encode[T Mappable](v T) ([]byte, error) {
	node, err := EncodeValue(v)
	if err != nil {
		return nil, err
	}
	return ir.ToJSON(node)
}

// EncodeValue builds the source-shaped object node for a value of T.
func EncodeValue[T Mappable](v T) (*ir.Node, error) {
	node, err := bind.ToIR(v)
	if err != nil {
		return nil, err
	}
	transform.ReverseApply(node, v.Transformers())
	return node, nil
}

// EncodeList serializes a slice of T to a JSON array in source shape.
func EncodeList[T Mappable](vs []T) ([]byte, error) {
	elements := make([]*ir.Node, len(vs))
	for i, v := range vs {
		node, err := EncodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements[i] = node
	}
	return ir.ToJSON(ir.FromSlice(elements))
}

// Nested returns a transformer that rewrites a nested object with T's
// mapping table. An optional key path addresses the source object.
func Nested[T Mappable](parts ...any) transform.Transformer {
	return transform.Nested(tableOf[T](), parts...)
}

// NestedList returns a transformer that rewrites each element of a nested
// array with T's mapping table.
func NestedList[T Mappable](parts ...any) transform.Transformer {
	return transform.NestedList(tableOf[T](), parts...)
}

func typeOf(node *ir.Node) ir.Type {
	if node == nil {
		return ir.NullType
	}
	return node.Type
}

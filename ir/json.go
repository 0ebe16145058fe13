package ir

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
)

// FromJSON parses JSON text into a node tree.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromAny(v)
}

// ToJSON serializes a node tree to JSON text. Object key order is preserved.
func ToJSON(node *Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := appendJSON(buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, node *Node) error {
	if node == nil {
		buf.WriteString("null")
		return nil
	}
	switch node.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		if node.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberType:
		if node.Int64 != nil {
			buf.WriteString(strconv.FormatInt(*node.Int64, 10))
			return nil
		}
		if node.Float64 != nil {
			d, err := json.Marshal(*node.Float64)
			if err != nil {
				return err
			}
			buf.Write(d)
			return nil
		}
		if node.Number == "" {
			return fmt.Errorf("number node with no value")
		}
		buf.WriteString(node.Number)
	case StringType:
		d, err := json.Marshal(node.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range node.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i := range node.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(node.Fields[i].String)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := appendJSON(buf, node.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("invalid node type %s", node.Type)
	}
	return nil
}

// FromAny converts a plain Go value to a node tree.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case []*Node:
		return FromSlice(x), nil
	case map[string]*Node:
		return FromMap(x), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case stdjson.Number:
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		// Integer literals beyond int64 keep their raw text; Float64 would
		// accept them with lost precision.
		if strings.ContainsAny(x.String(), ".eE") {
			if f, err := x.Float64(); err == nil {
				return FromFloat(f), nil
			}
		}
		return &Node{Type: NumberType, Number: x.String()}, nil
	case []any:
		values := make([]*Node, len(x))
		for i, elt := range x {
			node, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			values[i] = node
		}
		return FromSlice(values), nil
	case map[string]any:
		yMap := make(map[string]*Node, len(x))
		for k, elt := range x {
			node, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			yMap[k] = node
		}
		return FromMap(yMap), nil
	default:
		// anything else goes through its JSON representation
		d, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return FromJSON(d)
	}
}

// ToAny converts a node tree to a plain Go value (nil, bool, int64, float64,
// string, []any or map[string]any).
func ToAny(node *Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case NullType:
		return nil
	case BoolType:
		return node.Bool
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return node.Number
	case StringType:
		return node.String
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i := range node.Fields {
			res[node.Fields[i].String] = ToAny(node.Values[i])
		}
		return res
	default:
		panic("impossible production")
	}
}

package bind

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/remapfmt/remap/ir"
)

var timeType = reflect.TypeOf(time.Time{})

// FromIR binds a node tree onto a Go value. v must be a non-nil pointer to
// the target.
func FromIR(node *ir.Node, v any) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	visited := make(map[uintptr]string)
	return fromIR(node, val.Elem(), "", visited)
}

func fromIR(node *ir.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if node == nil {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   "node is nil",
		}
	}

	typ := val.Type()
	kind := typ.Kind()

	if kind == reflect.Ptr {
		if node.Type == ir.NullType {
			if val.CanSet() {
				val.Set(reflect.Zero(typ))
			}
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected (previously seen at %s)", prevPath),
			}
		}
		visited[ptrAddr] = fieldPath
		err := fromIR(node, val.Elem(), fieldPath, visited)
		delete(visited, ptrAddr)
		return err
	}

	if node.Type == ir.NullType {
		if val.CanSet() {
			val.Set(reflect.Zero(typ))
		}
		return nil
	}

	if typ == timeType {
		return fromIRToTime(node, val, fieldPath)
	}

	switch kind {
	case reflect.String:
		return fromIRToString(node, val, fieldPath)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromIRToInt(node, val, fieldPath)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromIRToUint(node, val, fieldPath)

	case reflect.Float32, reflect.Float64:
		return fromIRToFloat(node, val, fieldPath)

	case reflect.Bool:
		return fromIRToBool(node, val, fieldPath)

	case reflect.Slice, reflect.Array:
		return fromIRToSlice(node, val, fieldPath, visited)

	case reflect.Map:
		return fromIRToMap(node, val, fieldPath, visited)

	case reflect.Struct:
		return fromIRToStruct(node, val, fieldPath, visited)

	case reflect.Interface:
		if val.CanSet() {
			val.Set(reflect.ValueOf(ir.ToAny(node)))
		}
		return nil

	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
}

// fromIRToTime reads an instant stored as integer milliseconds since the Unix
// epoch.
func fromIRToTime(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.NumberType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected millisecond timestamp, got %s", node.Type),
		}
	}
	var ms int64
	switch {
	case node.Int64 != nil:
		ms = *node.Int64
	case node.Number != "":
		parsed, err := strconv.ParseInt(node.Number, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("invalid millisecond timestamp: %q", node.Number),
				Err:       err,
			}
		}
		ms = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   "expected integer millisecond timestamp",
		}
	}
	if val.CanSet() {
		val.Set(reflect.ValueOf(time.UnixMilli(ms).UTC()))
	}
	return nil
}

func fromIRToString(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.StringType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected string, got %s", node.Type),
		}
	}
	if val.CanSet() {
		val.SetString(node.String)
	}
	return nil
}

func fromIRToInt(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.NumberType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}
	var intVal int64
	switch {
	case node.Int64 != nil:
		intVal = *node.Int64
	case node.Number != "":
		parsed, err := strconv.ParseInt(node.Number, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("invalid number: %q", node.Number),
				Err:       err,
			}
		}
		intVal = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   "number node has no integer value",
		}
	}
	if val.CanSet() {
		if val.OverflowInt(intVal) {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("value %d overflows %s", intVal, val.Type()),
			}
		}
		val.SetInt(intVal)
	}
	return nil
}

func fromIRToUint(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.NumberType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}
	var uintVal uint64
	switch {
	case node.Int64 != nil:
		if *node.Int64 < 0 {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("negative value %d cannot be converted to unsigned integer", *node.Int64),
			}
		}
		uintVal = uint64(*node.Int64)
	case node.Number != "":
		parsed, err := strconv.ParseUint(node.Number, 10, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("invalid unsigned number: %q", node.Number),
				Err:       err,
			}
		}
		uintVal = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   "number node has no integer value",
		}
	}
	if val.CanSet() {
		if val.OverflowUint(uintVal) {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("value %d overflows %s", uintVal, val.Type()),
			}
		}
		val.SetUint(uintVal)
	}
	return nil
}

func fromIRToFloat(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.NumberType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected number, got %s", node.Type),
		}
	}
	var floatVal float64
	switch {
	case node.Float64 != nil:
		floatVal = *node.Float64
	case node.Int64 != nil:
		floatVal = float64(*node.Int64)
	case node.Number != "":
		parsed, err := strconv.ParseFloat(node.Number, 64)
		if err != nil {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("invalid float: %q", node.Number),
				Err:       err,
			}
		}
		floatVal = parsed
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   "number node has no value",
		}
	}
	if val.CanSet() {
		val.SetFloat(floatVal)
	}
	return nil
}

func fromIRToBool(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.BoolType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected bool, got %s", node.Type),
		}
	}
	if val.CanSet() {
		val.SetBool(node.Bool)
	}
	return nil
}

func fromIRToSlice(node *ir.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if node.Type != ir.ArrayType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected array, got %s", node.Type),
		}
	}

	length := len(node.Values)
	typ := val.Type()

	if typ.Kind() == reflect.Array {
		if val.Len() != length {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("array length mismatch: expected %d, got %d", val.Len(), length),
			}
		}
	} else {
		val.Set(reflect.MakeSlice(typ, length, length))
	}

	for i := 0; i < length; i++ {
		if err := fromIR(node.Values[i], val.Index(i), indexPath(fieldPath, i), visited); err != nil {
			return err
		}
	}
	return nil
}

func fromIRToMap(node *ir.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if node.Type != ir.ObjectType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected object, got %s", node.Type),
		}
	}

	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("map keys must be strings, got %s", typ.Key()),
		}
	}
	valType := typ.Elem()
	val.Set(reflect.MakeMap(typ))

	for i := range node.Fields {
		key := node.Fields[i].String
		elemVal := reflect.New(valType).Elem()
		if err := fromIR(node.Values[i], elemVal, joinPath(fieldPath, key), visited); err != nil {
			return err
		}
		val.SetMapIndex(reflect.ValueOf(key), elemVal)
	}
	return nil
}

// fromIRToStruct binds an object node to a struct. Every non-optional field
// must have a matching key in the object. Keys with no matching field are
// ignored.
func fromIRToStruct(node *ir.Node, val reflect.Value, fieldPath string, visited map[uintptr]string) error {
	if node.Type != ir.ObjectType {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("expected object, got %s", node.Type),
		}
	}

	fields, err := structFields(val.Type())
	if err != nil {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   err.Error(),
			Err:       err,
		}
	}

	for _, f := range fields {
		fieldNode := ir.Get(node, f.name)
		if fieldNode == nil {
			if isOptionalType(f.typ) {
				continue
			}
			return &UnmarshalError{
				FieldPath: joinPath(fieldPath, f.name),
				Message:   "missing required field",
			}
		}
		fieldVal := val.FieldByIndex(f.index)
		if err := fromIR(fieldNode, fieldVal, joinPath(fieldPath, f.name), visited); err != nil {
			return err
		}
	}
	return nil
}

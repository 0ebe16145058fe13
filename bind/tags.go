package bind

import (
	"fmt"
	"reflect"
	"strings"
)

// structField describes one bindable field of a struct type, after `json` tag
// parsing and embedded struct flattening.
type structField struct {
	name      string // key in the object node
	index     []int  // index path for reflect FieldByIndex
	typ       reflect.Type
	omitEmpty bool
}

// parseTag splits a `json` struct tag into its name and the omitempty flag.
// A name of "-" (with no options) marks the field as skipped.
func parseTag(tag string) (name string, omitEmpty, skip bool) {
	if tag == "-" {
		return "", false, true
	}
	name, rest, _ := strings.Cut(tag, ",")
	for rest != "" {
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// structFields lists the bindable fields of a struct type in declaration
// order. Fields of embedded structs are flattened into the parent. A name
// collision between a promoted field and a direct one is an error.
func structFields(typ reflect.Type) ([]structField, error) {
	var fields []structField
	seen := make(map[string]bool)

	var walk func(t reflect.Type, index []int) error
	walk = func(t reflect.Type, index []int) error {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			fullIndex := append(append([]int(nil), index...), i)
			// Embedded structs flatten even when the embedded type itself is
			// unexported; their promoted exported fields still bind.
			if field.Anonymous && field.Type.Kind() == reflect.Struct && field.Tag.Get("json") == "" {
				if err := walk(field.Type, fullIndex); err != nil {
					return err
				}
				continue
			}
			if !field.IsExported() {
				continue
			}
			name, omitEmpty, skip := parseTag(field.Tag.Get("json"))
			if skip {
				continue
			}
			if name == "" {
				name = field.Name
			}
			if seen[name] {
				return fmt.Errorf("duplicate field name %q in %s", name, typ)
			}
			seen[name] = true
			fields = append(fields, structField{
				name:      name,
				index:     fullIndex,
				typ:       field.Type,
				omitEmpty: omitEmpty,
			})
		}
		return nil
	}
	if err := walk(typ, nil); err != nil {
		return nil, err
	}
	return fields, nil
}

// isOptionalType reports whether a missing source key is acceptable for a
// field of this type.
func isOptionalType(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	default:
		return false
	}
}

// joinPath extends a field path for error reporting.
func joinPath(fieldPath, name string) string {
	if fieldPath == "" {
		return name
	}
	return fieldPath + "." + name
}

func indexPath(fieldPath string, i int) string {
	return fmt.Sprintf("%s[%d]", fieldPath, i)
}

// Package remap decodes JSON into Go values through declarative mapping
// tables.
//
// A type opts in by implementing Mappable: its Transformers table describes,
// per struct key, where in the raw document the value comes from and how it
// is reshaped on the way. Decode parses the document, applies the table and
// binds the result onto the Go value. Encode runs the same table in reverse,
// so a decoded value round-trips back to the source shape.
//
//	type Tree struct {
//		Name string `json:"name"`
//		Age  int    `json:"age"`
//	}
//
//	func (Tree) Transformers() transform.Table {
//		return transform.Table{
//			"name": transform.FromPath("tree_name"),
//			"age":  transform.Default(0, false),
//		}
//	}
//
//	tree, err := remap.Decode[Tree](data)
//
// The subpackages divide the work: ir holds the document tree, keypath
// addresses locations in it, transform reshapes it and bind moves it in and
// out of Go values.
package remap

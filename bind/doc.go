// Package bind converts between node trees and Go values by reflection.
//
// FromIR binds a node tree onto a Go value and ToIR builds a node tree from
// one. Struct fields are matched by name or by their `json` tag. A non-pointer
// struct field with no matching key in the source object is a hard error, so
// optional fields are declared as pointers (or slices and maps, which may be
// nil). time.Time values travel as integer milliseconds since the Unix epoch.
package bind

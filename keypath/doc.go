// Package keypath addresses locations inside an ir.Node tree.
//
// A KeyPath is an immutable, ordered sequence of segments; each segment is
// either an object key or an array index. Paths are built once, when a
// transformer table is declared, and consumed by repeated Get and Set calls
// during rewriting:
//
//	p := keypath.New("user.address", "street") // "user", "address", "street"
//	p := keypath.New("a.b", 1)                 // "a", "b", [1]
//
// String components are split on dots as a convenience; integer components
// are never split, so New("a", 1) and New("a.1") address different
// locations. There is no way to escape a dot in New; use Parse with quoting
// when a key contains a literal dot.
//
// Get and Set traverse only containers of the matching kind and never create
// intermediate nodes. Any mismatch makes Get return nil (absent) and makes
// Set a silent no-op.
package keypath

// Package ir defines the generic JSON value tree the mapping engine operates
// on.
//
// A Node is a recursive tagged union over the JSON kinds: null, bool, number,
// string, array and object. Objects keep their keys and values in the
// parallel Fields and Values slices; Fields[i] is the key for Values[i], keys
// are unique within one object and key order is preserved but not
// significant. Array order is significant.
//
// Numbers are stored under Int64 when they are integers, Float64 when they
// are floating point, and fall back to the Number string for literals that
// fit neither.
//
// Nodes are treated as values by the rest of the module: code that rewrites a
// tree works on a Clone and never mutates a tree it does not own. Absence is
// represented by a nil *Node, which is distinct from a NullType node.
//
// Use the constructor functions to build nodes:
//
//	node := ir.FromString("pine")
//	num := ir.FromInt(121)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("pine"),
//	})
//
// FromJSON and ToJSON convert between nodes and JSON text; FromAny and ToAny
// convert between nodes and plain Go values.
package ir

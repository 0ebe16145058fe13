// Package mapfile loads mapping tables from YAML, so table definitions can
// live in configuration instead of code.
//
// A mapping file holds one or more named schemas, each a map of target keys
// to field specs:
//
//	tree:
//	  name:
//	    path: tree_name
//	  age:
//	    default: 0
//	  planted:
//	    date: seconds
//	forest:
//	  region:
//	    path: meta.region
//	  trees:
//	    schema: tree
//	    list: true
//
// A field spec names at most one primary operation (schema, date, expr or
// patch), optionally a source path feeding it, and optionally a default
// applied afterwards. Schema references may point at any schema in the same
// file, in any order.
package mapfile

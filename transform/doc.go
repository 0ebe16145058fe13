// Package transform implements the per-field rewriters that reconcile a raw
// JSON document with a target schema before structural decoding.
//
// A Transformer rewrites one field of a JSON object so that obj[targetKey]
// holds the schema-ready value; its Reverse method is the best-effort inverse
// applied after structural encoding. A Table maps each property key of a
// schema to its transformer. Table entries are applied independently of each
// other; only children of a single Chain observe each other's effects.
//
// Transformers never fail: any value they cannot resolve or convert leaves
// the field exactly as found. The structural codec is the sole place where a
// still-missing required field turns into a hard error.
//
// Each transformer resolves its source location from an explicit key path, or
// defaults to a path built from the target key itself:
//
//	transform.Table{
//	    "name":    transform.FromPath("tree_name"),
//	    "age":     transform.Default(0, false),
//	    "planted": transform.DateISO8601("planted_at"),
//	}
package transform

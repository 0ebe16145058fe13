package transform

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/remapfmt/remap/debug"
	"github.com/remapfmt/remap/ir"
	"github.com/remapfmt/remap/keypath"
)

// Expr compiles an expr-lang expression into a custom-map transformer. The
// raw value at the source path is in scope as "value" (nil when absent). A
// nil result or a runtime error leaves the target untouched; compile errors
// are reported at construction time.
//
//	t, err := transform.Expr("len(value)", "values")
func Expr(src string, parts ...any) (Transformer, error) {
	prog, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return &exprMap{src: src, prog: prog, path: keypath.New(parts...)}, nil
}

// MustExpr is Expr, panicking on compile errors. Intended for static table
// construction.
func MustExpr(src string, parts ...any) Transformer {
	t, err := Expr(src, parts...)
	if err != nil {
		panic(err)
	}
	return t
}

type exprMap struct {
	src  string
	prog *vm.Program
	path keypath.KeyPath
}

func (t *exprMap) Path() keypath.KeyPath {
	return t.path
}

func (t *exprMap) String() string {
	return "expr(" + t.src + ")"
}

func (t *exprMap) Transform(obj *ir.Node, key string) {
	raw := resolve(t.path, key).Get(obj)
	env := map[string]any{
		"value": ir.ToAny(raw),
	}
	out, err := expr.Run(t.prog, env)
	if err != nil || out == nil {
		if debug.Transform() {
			debug.Logf("expr %q for %q: out=%v err=%v", t.src, key, out, err)
		}
		return
	}
	node, err := ir.FromAny(out)
	if err != nil {
		return
	}
	ir.Set(obj, key, node)
}

func (t *exprMap) Reverse(obj *ir.Node, key string) {}

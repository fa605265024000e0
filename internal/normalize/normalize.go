// Package normalize implements β-reduction to normal form plus the
// primitive-rule and fusion reductions for the built-in folds and builders.
// Every rewrite rule follows the same shape: recurse into children first,
// then fold or fuse at the current node once its children are already in
// normal form.
package normalize

import (
	"errors"
	"fmt"

	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/config"
	"github.com/corecalc/corecalc/internal/substitution"
)

// ErrMaxDepthExceeded is returned by the bounded variants when recursion
// would exceed the configured limit: exceeding it is a caller-visible
// error, not unbounded recursion.
var ErrMaxDepthExceeded = errors.New("normalize: maximum recursion depth exceeded")

type options struct{ maxDepth int }

// Option configures NormalizeBounded.
type Option func(*options)

// WithMaxDepth bounds recursion to n levels of Expr nesting.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// Normalize reduces e to normal form. It is not required to terminate on
// ill-typed input; callers concerned about adversarial input should use
// NormalizeBounded instead.
func Normalize[A ast.EmbedPayload](e ast.Expr[A]) ast.Expr[A] {
	out, err := step(e, 0, 0)
	if err != nil {
		// maxDepth == 0 means unbounded; step only ever errors when a
		// positive bound is supplied, so this is unreachable.
		panic(err)
	}
	return out
}

// NormalizeBounded is Normalize with an optional recursion depth limit,
// returning ErrMaxDepthExceeded rather than exhausting the call stack on
// adversarial input.
func NormalizeBounded[A ast.EmbedPayload](e ast.Expr[A], opts ...Option) (ast.Expr[A], error) {
	o := options{maxDepth: config.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return step(e, 0, o.maxDepth)
}

func step[A ast.EmbedPayload](e ast.Expr[A], depth, max int) (ast.Expr[A], error) {
	if max > 0 && depth > max {
		return nil, fmt.Errorf("%w: depth %d", ErrMaxDepthExceeded, depth)
	}
	next := depth + 1

	rec := func(x ast.Expr[A]) (ast.Expr[A], error) { return step(x, next, max) }

	switch n := e.(type) {
	case ast.ConstExpr[A], ast.Var[A], ast.BoolType[A], ast.BoolLit[A],
		ast.NaturalType[A], ast.NaturalLit[A], ast.NaturalFold[A],
		ast.IntegerType[A], ast.IntegerLit[A], ast.DoubleType[A], ast.DoubleLit[A],
		ast.TextType[A], ast.TextLit[A], ast.NothingLit[A], ast.JustLit[A],
		ast.ListBuild[A], ast.ListFold[A], ast.Embed[A]:
		return n, nil

	case ast.Lam[A]:
		annot, err := rec(n.Annot)
		if err != nil {
			return nil, err
		}
		body, err := rec(n.Body)
		if err != nil {
			return nil, err
		}
		return ast.Lam[A]{Arg: n.Arg, Annot: annot, Body: body}, nil

	case ast.Pi[A]:
		annot, err := rec(n.Annot)
		if err != nil {
			return nil, err
		}
		body, err := rec(n.Body)
		if err != nil {
			return nil, err
		}
		return ast.Pi[A]{Arg: n.Arg, Annot: annot, Body: body}, nil

	case ast.App[A]:
		fn, err := rec(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := rec(n.Arg)
		if err != nil {
			return nil, err
		}
		return reduceApp(fn, arg, next, max)

	case ast.Lets[A]:
		return rec(desugarLets(n))

	case ast.Annot[A]:
		return rec(n.Value)

	case ast.BoolAnd[A]:
		l, err := rec(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := rec(n.Right)
		if err != nil {
			return nil, err
		}
		if lb, ok := l.(ast.BoolLit[A]); ok {
			if rb, ok2 := r.(ast.BoolLit[A]); ok2 {
				return ast.BoolLit[A]{Value: lb.Value && rb.Value}, nil
			}
		}
		return ast.BoolAnd[A]{Left: l, Right: r}, nil

	case ast.BoolOr[A]:
		l, err := rec(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := rec(n.Right)
		if err != nil {
			return nil, err
		}
		if lb, ok := l.(ast.BoolLit[A]); ok {
			if rb, ok2 := r.(ast.BoolLit[A]); ok2 {
				return ast.BoolLit[A]{Value: lb.Value || rb.Value}, nil
			}
		}
		return ast.BoolOr[A]{Left: l, Right: r}, nil

	case ast.BoolIf[A]:
		c, err := rec(n.Cond)
		if err != nil {
			return nil, err
		}
		if cb, ok := c.(ast.BoolLit[A]); ok {
			if cb.Value {
				return rec(n.Then)
			}
			return rec(n.Else)
		}
		then, err := rec(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := rec(n.Else)
		if err != nil {
			return nil, err
		}
		return ast.BoolIf[A]{Cond: c, Then: then, Else: els}, nil

	case ast.NaturalPlus[A]:
		l, err := rec(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := rec(n.Right)
		if err != nil {
			return nil, err
		}
		if ln, ok := l.(ast.NaturalLit[A]); ok {
			if rn, ok2 := r.(ast.NaturalLit[A]); ok2 {
				return ast.NaturalLit[A]{Value: ln.Value + rn.Value}, nil
			}
		}
		return ast.NaturalPlus[A]{Left: l, Right: r}, nil

	case ast.NaturalTimes[A]:
		l, err := rec(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := rec(n.Right)
		if err != nil {
			return nil, err
		}
		if ln, ok := l.(ast.NaturalLit[A]); ok {
			if rn, ok2 := r.(ast.NaturalLit[A]); ok2 {
				return ast.NaturalLit[A]{Value: ln.Value * rn.Value}, nil
			}
		}
		return ast.NaturalTimes[A]{Left: l, Right: r}, nil

	case ast.TextAppend[A]:
		l, err := rec(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := rec(n.Right)
		if err != nil {
			return nil, err
		}
		if lt, ok := l.(ast.TextLit[A]); ok {
			if rt, ok2 := r.(ast.TextLit[A]); ok2 {
				return ast.TextLit[A]{Value: ast.NormalizeText(lt.Value + rt.Value)}, nil
			}
		}
		return ast.TextAppend[A]{Left: l, Right: r}, nil

	case ast.MaybeType[A]:
		elem, err := rec(n.Elem)
		if err != nil {
			return nil, err
		}
		return ast.MaybeType[A]{Elem: elem}, nil

	case ast.ListType[A]:
		elem, err := rec(n.Elem)
		if err != nil {
			return nil, err
		}
		return ast.ListType[A]{Elem: elem}, nil

	case ast.ListLit[A]:
		elemType, err := rec(n.ElemType)
		if err != nil {
			return nil, err
		}
		elems := make([]ast.Expr[A], len(n.Elements))
		for i, el := range n.Elements {
			v, err := rec(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return ast.ListLit[A]{ElemType: elemType, Elements: elems}, nil

	case ast.RecordType[A]:
		fields := make([]ast.RecordField[A], len(n.Fields))
		for i, f := range n.Fields {
			t, err := rec(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.RecordField[A]{Key: f.Key, Type: t}
		}
		return ast.RecordType[A]{Fields: fields}, nil

	case ast.RecordLit[A]:
		fields := make([]ast.RecordFieldValue[A], len(n.Fields))
		for i, f := range n.Fields {
			v, err := rec(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.RecordFieldValue[A]{Key: f.Key, Value: v}
		}
		return ast.RecordLit[A]{Fields: fields}, nil

	case ast.Project[A]:
		r, err := rec(n.Record)
		if err != nil {
			return nil, err
		}
		if rl, ok := r.(ast.RecordLit[A]); ok {
			if v, found := ast.LookupRecordValue(rl.Fields, n.Key); found {
				return rec(v)
			}
			// Should not occur on well-typed input but must not crash:
			// reconstruct with the normalized record.
		}
		return ast.Project[A]{Record: r, Key: n.Key}, nil

	default:
		panic(fmt.Sprintf("normalize.step: unhandled node type %T", e))
	}
}

// reduceApp implements β-reduction plus the three fusion rules. fn and arg
// are already normal forms.
func reduceApp[A ast.EmbedPayload](fn, arg ast.Expr[A], depth, max int) (ast.Expr[A], error) {
	if lam, ok := fn.(ast.Lam[A]); ok {
		return step(substitution.Subst(lam.Arg, arg, lam.Body), depth, max)
	}

	candidate := ast.Expr[A](ast.App[A]{Fn: fn, Arg: arg})
	head, args := unrollApp(candidate)

	switch head.(type) {
	case ast.NaturalFold[A]:
		if len(args) == 4 {
			if lit, ok := args[0].(ast.NaturalLit[A]); ok {
				succ, zero := args[2], args[3]
				acc := zero
				for i := uint64(0); i < lit.Value; i++ {
					var err error
					acc, err = step(ast.App[A]{Fn: succ, Arg: acc}, depth, max)
					if err != nil {
						return nil, err
					}
				}
				return acc, nil
			}
		}
	case ast.ListBuild[A]:
		if len(args) == 2 {
			if lit, ok, err := tryListBuildFusion(args[0], args[1], depth, max); err != nil {
				return nil, err
			} else if ok {
				return lit, nil
			}
		}
	case ast.ListFold[A]:
		if len(args) == 5 {
			if lit, ok := args[1].(ast.ListLit[A]); ok {
				cons, nilv := args[3], args[4]
				acc := nilv
				for i := len(lit.Elements) - 1; i >= 0; i-- {
					var err error
					acc, err = step(ast.App[A]{Fn: ast.App[A]{Fn: cons, Arg: lit.Elements[i]}, Arg: acc}, depth, max)
					if err != nil {
						return nil, err
					}
				}
				return acc, nil
			}
		}
	}
	return candidate, nil
}

// unrollApp decomposes a left-nested chain of App nodes into its head and
// its arguments in application order.
func unrollApp[A ast.EmbedPayload](e ast.Expr[A]) (ast.Expr[A], []ast.Expr[A]) {
	var args []ast.Expr[A]
	cur := e
	for {
		app, ok := cur.(ast.App[A])
		if !ok {
			break
		}
		args = append(args, app.Arg)
		cur = app.Fn
	}
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return cur, args
}

// tryListBuildFusion implements List/build fusion: apply the builder k to
// the element type, and the free variables "Cons"/"Nil" standing in for the
// list constructors, normalize, then check whether the result is a
// well-formed Cons/Nil spine. Detection is literal-name based and fragile
// under shadowing; see internal/config's ConsName/NilName doc comment.
func tryListBuildFusion[A ast.EmbedPayload](elemType, builder ast.Expr[A], depth, max int) (ast.ListLit[A], bool, error) {
	applied := ast.Expr[A](ast.App[A]{
		Fn: ast.App[A]{
			Fn:  ast.App[A]{Fn: builder, Arg: ast.ListType[A]{Elem: elemType}},
			Arg: ast.Var[A]{Name: config.ConsName},
		},
		Arg: ast.Var[A]{Name: config.NilName},
	})
	nf, err := step(applied, depth, max)
	if err != nil {
		return ast.ListLit[A]{}, false, err
	}
	elems, ok := spineToList(nf)
	if !ok {
		return ast.ListLit[A]{}, false, nil
	}
	return ast.ListLit[A]{ElemType: elemType, Elements: elems}, true, nil
}

// spineToList recognizes a chain `Cons x1 (Cons x2 (... Nil))` built from the
// literal free variables "Cons"/"Nil" and returns its elements in order.
func spineToList[A ast.EmbedPayload](e ast.Expr[A]) ([]ast.Expr[A], bool) {
	var elems []ast.Expr[A]
	cur := e
	for {
		if v, ok := cur.(ast.Var[A]); ok && v.Name == config.NilName {
			return elems, true
		}
		outer, ok := cur.(ast.App[A])
		if !ok {
			return nil, false
		}
		inner, ok := outer.Fn.(ast.App[A])
		if !ok {
			return nil, false
		}
		consVar, ok := inner.Fn.(ast.Var[A])
		if !ok || consVar.Name != config.ConsName {
			return nil, false
		}
		elems = append(elems, inner.Arg)
		cur = outer.Arg
	}
}

// desugarLets right-folds a Lets block into nested substitutions. For each
// binding, build the λ-chain over its arguments and substitute its name by
// that lambda into everything that follows (remaining bindings and the
// final body), recursing until no bindings remain. Note: this and
// substitution's own Lets handling (internal/substitution.substLets)
// desugar slightly differently (that one walks argument scopes directly;
// this one right-folds via substitution) — both are required to converge on
// the same normal form; see internal/normalize's tests for that convergence
// check.
func desugarLets[A ast.EmbedPayload](n ast.Lets[A]) ast.Expr[A] {
	if len(n.Bindings) == 0 {
		return n.Body
	}
	first := n.Bindings[0]
	lam := buildLambdaChain(first.Args, first.Rhs)
	rest := ast.Lets[A]{Bindings: n.Bindings[1:], Body: n.Body}
	substituted := substitution.Subst(first.Name, lam, ast.Expr[A](rest))
	return desugarLets(substituted.(ast.Lets[A]))
}

func buildLambdaChain[A ast.EmbedPayload](args []ast.Arg[A], rhs ast.Expr[A]) ast.Expr[A] {
	result := rhs
	for i := len(args) - 1; i >= 0; i-- {
		result = ast.Lam[A]{Arg: args[i].Name, Annot: args[i].Type, Body: result}
	}
	return result
}

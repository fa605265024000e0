// Package typecheck implements synthesis-only type checking over the pure
// type system: two sorts, axiom Type : Kind, and the rule set (*,*)→*,
// (□,*)→*, (*,□)→□, (□,□)→□. A single recursive-descent synthesis function
// threads a context and short-circuits on the first error, switching on the
// concrete Expr variant at each step.
//
// The core type-checker operates on closed expressions only (payload type
// ast.X): resolving an Embed's payload into a concrete subexpression is an
// external concern handled before a tree ever reaches this package.
package typecheck

import (
	"errors"
	"fmt"
	"sort"

	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/config"
	"github.com/corecalc/corecalc/internal/corectx"
	"github.com/corecalc/corecalc/internal/diagnostics"
	"github.com/corecalc/corecalc/internal/equivalence"
	"github.com/corecalc/corecalc/internal/normalize"
	"github.com/corecalc/corecalc/internal/prettyprinter"
	"github.com/corecalc/corecalc/internal/substitution"
)

// Expr is shorthand for the closed expression type the checker operates on.
type Expr = ast.Expr[ast.X]

// Context maps names to the (closed) type of their binding.
type Context = corectx.Context[Expr]

// ErrMaxDepthExceeded is returned by TypeWithBounded/TypeOfBounded when
// recursion would exceed the configured limit.
var ErrMaxDepthExceeded = errors.New("typecheck: maximum recursion depth exceeded")

type boundOptions struct{ maxDepth int }

// BoundOption configures TypeWithBounded/TypeOfBounded.
type BoundOption func(*boundOptions)

// WithMaxDepth bounds recursion to n levels of Expr nesting.
func WithMaxDepth(n int) BoundOption {
	return func(o *boundOptions) { o.maxDepth = n }
}

// TypeOf synthesizes the type of e in the empty context.
func TypeOf(e Expr) (Expr, *diagnostics.DiagnosticError) {
	return TypeWith(corectx.Empty[Expr](), e)
}

// TypeWith synthesizes the type of e in ctx.
func TypeWith(ctx *Context, e Expr) (Expr, *diagnostics.DiagnosticError) {
	t, derr, err := typeWith(ctx, e, 0, 0)
	if err != nil {
		// max == 0 means unbounded; typeWith only returns a plain error when
		// a positive bound was supplied, so this is unreachable.
		panic(err)
	}
	return t, derr
}

// TypeOfBounded is TypeOf with a recursion depth limit.
func TypeOfBounded(e Expr, opts ...BoundOption) (Expr, *diagnostics.DiagnosticError, error) {
	return TypeWithBounded(corectx.Empty[Expr](), e, opts...)
}

// TypeWithBounded is TypeWith with a recursion depth limit; exceeding it
// returns ErrMaxDepthExceeded rather than diverging or overflowing the
// call stack on adversarial input.
func TypeWithBounded(ctx *Context, e Expr, opts ...BoundOption) (Expr, *diagnostics.DiagnosticError, error) {
	o := boundOptions{maxDepth: config.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return typeWith(ctx, e, 0, o.maxDepth)
}

func nf(t Expr) Expr { return normalize.Normalize(t) }

func pretty(e Expr) string { return prettyprinter.Pretty(e) }

func contextEntries(ctx *Context) []diagnostics.ContextEntry {
	entries := corectx.ToListOldestFirst(ctx)
	out := make([]diagnostics.ContextEntry, len(entries))
	for i, e := range entries {
		out[i] = diagnostics.ContextEntry{Name: e.Name, Type: pretty(e.Value)}
	}
	return out
}

// rule implements the four pure-type-system rules; in every one of them the
// result sort equals the codomain sort k2.
func rule(k1, k2 ast.Sort) ast.Sort {
	return k2
}

func buildLambdaChain(args []ast.Arg[ast.X], rhs Expr) Expr {
	result := rhs
	for i := len(args) - 1; i >= 0; i-- {
		result = ast.Lam[ast.X]{Arg: args[i].Name, Annot: args[i].Type, Body: result}
	}
	return result
}

func naturalHint(e Expr) string {
	if lit, ok := e.(ast.IntegerLit[ast.X]); ok && lit.Value >= 0 {
		return fmt.Sprintf("+%d", lit.Value)
	}
	return ""
}

// typeWith is the single recursive synthesis function. depth/max implement
// the optional recursion bound (max == 0 means unbounded); every recursive
// call passes depth+1 and propagates a non-nil plain error immediately.
func typeWith(ctx *Context, e Expr, depth, max int) (Expr, *diagnostics.DiagnosticError, error) {
	if max > 0 && depth > max {
		return nil, nil, fmt.Errorf("%w: depth %d", ErrMaxDepthExceeded, depth)
	}
	next := depth + 1
	rec := func(c *Context, x Expr) (Expr, *diagnostics.DiagnosticError, error) { return typeWith(c, x, next, max) }

	switch n := e.(type) {

	case ast.ConstExpr[ast.X]:
		if n.Sort == ast.SortType {
			return ast.ConstExpr[ast.X]{Sort: ast.SortKind}, nil, nil
		}
		return nil, diagnostics.NewUntyped("Kind", contextEntries(ctx)), nil

	case ast.Var[ast.X]:
		t, ok := corectx.Lookup(n.Name, ctx)
		if !ok {
			return nil, diagnostics.NewUnboundVariable(n.Name, contextEntries(ctx)), nil
		}
		return t, nil, nil

	case ast.Lam[ast.X]:
		innerCtx := corectx.Insert(n.Arg, n.Annot, ctx)
		b, derr, err := rec(innerCtx, n.Body)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		pi := Expr(ast.Pi[ast.X]{Arg: n.Arg, Annot: n.Annot, Body: b})
		if _, derr, err := rec(ctx, pi); err != nil || derr != nil {
			return nil, derr, err
		}
		return pi, nil, nil

	case ast.Pi[ast.X]:
		tA, derr, err := rec(ctx, n.Annot)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		cA, ok := nf(tA).(ast.ConstExpr[ast.X])
		if !ok {
			return nil, diagnostics.NewInvalidInputType(pretty(n.Annot), contextEntries(ctx)), nil
		}
		innerCtx := corectx.Insert(n.Arg, n.Annot, ctx)
		tB, derr, err := rec(innerCtx, n.Body)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		cB, ok := nf(tB).(ast.ConstExpr[ast.X])
		if !ok {
			return nil, diagnostics.NewInvalidOutputType(pretty(n.Body), contextEntries(ctx)), nil
		}
		return ast.ConstExpr[ast.X]{Sort: rule(cA.Sort, cB.Sort)}, nil, nil

	case ast.App[ast.X]:
		tf, derr, err := rec(ctx, n.Fn)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		pi, ok := nf(tf).(ast.Pi[ast.X])
		if !ok {
			return nil, diagnostics.NewNotAFunction(pretty(n.Fn), pretty(nf(tf)), contextEntries(ctx)), nil
		}
		ta, derr, err := rec(ctx, n.Arg)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		a2 := nf(ta)
		if !equivalence.StructurallyEqual(pi.Annot, a2) {
			return nil, diagnostics.NewTypeMismatch(pretty(pi.Annot), pretty(a2), contextEntries(ctx)), nil
		}
		return substitution.Subst(pi.Arg, n.Arg, pi.Body), nil, nil

	case ast.Lets[ast.X]:
		cur := ctx
		for _, b := range n.Bindings {
			rhsPrime := buildLambdaChain(b.Args, b.Rhs)
			tr, derr, err := rec(cur, rhsPrime)
			if err != nil || derr != nil {
				return nil, derr, err
			}
			cur = corectx.Insert(b.Name, tr, cur)
		}
		return rec(cur, n.Body)

	case ast.Annot[ast.X]:
		inferred, derr, err := rec(ctx, n.Value)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		if !equivalence.StructurallyEqual(n.Type, inferred) {
			return nil, diagnostics.NewAnnotMismatch(pretty(n.Value), pretty(nf(n.Type)), pretty(nf(inferred)), contextEntries(ctx)), nil
		}
		return n.Type, nil, nil

	case ast.Embed[ast.X]:
		return ast.Absurd[Expr](n.Payload), nil, nil

	case ast.BoolType[ast.X]:
		return typeConst(), nil, nil
	case ast.BoolLit[ast.X]:
		return ast.BoolType[ast.X]{}, nil, nil
	case ast.BoolAnd[ast.X]:
		return typeBoolOp(ctx, n.Left, n.Right, diagnostics.CantAnd, next, max)
	case ast.BoolOr[ast.X]:
		return typeBoolOp(ctx, n.Left, n.Right, diagnostics.CantOr, next, max)
	case ast.BoolIf[ast.X]:
		tc, derr, err := rec(ctx, n.Cond)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		if _, ok := nf(tc).(ast.BoolType[ast.X]); !ok {
			return nil, diagnostics.NewInvalidPredicate(pretty(n.Cond), pretty(nf(tc)), contextEntries(ctx)), nil
		}
		ty, derr, err := rec(ctx, n.Then)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		tz, derr, err := rec(ctx, n.Else)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		if !equivalence.StructurallyEqual(ty, tz) {
			return nil, diagnostics.NewIfBranchMismatch(pretty(n.Then), pretty(n.Else), pretty(nf(ty)), pretty(nf(tz)), contextEntries(ctx)), nil
		}
		return ty, nil, nil

	case ast.NaturalType[ast.X]:
		return typeConst(), nil, nil
	case ast.NaturalLit[ast.X]:
		return ast.NaturalType[ast.X]{}, nil, nil
	case ast.NaturalFold[ast.X]:
		return naturalFoldType(), nil, nil
	case ast.NaturalPlus[ast.X]:
		return typeNaturalOp(ctx, n.Left, n.Right, diagnostics.CantAdd, next, max)
	case ast.NaturalTimes[ast.X]:
		return typeNaturalOp(ctx, n.Left, n.Right, diagnostics.CantMultiply, next, max)

	case ast.IntegerType[ast.X]:
		return typeConst(), nil, nil
	case ast.IntegerLit[ast.X]:
		return ast.IntegerType[ast.X]{}, nil, nil

	case ast.DoubleType[ast.X]:
		return typeConst(), nil, nil
	case ast.DoubleLit[ast.X]:
		return ast.DoubleType[ast.X]{}, nil, nil

	case ast.TextType[ast.X]:
		return typeConst(), nil, nil
	case ast.TextLit[ast.X]:
		return ast.TextType[ast.X]{}, nil, nil
	case ast.TextAppend[ast.X]:
		tl, derr, err := rec(ctx, n.Left)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		if _, ok := nf(tl).(ast.TextType[ast.X]); !ok {
			return nil, diagnostics.NewCantAppend(pretty(n.Left), pretty(nf(tl)), contextEntries(ctx)), nil
		}
		tr, derr, err := rec(ctx, n.Right)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		if _, ok := nf(tr).(ast.TextType[ast.X]); !ok {
			return nil, diagnostics.NewCantAppend(pretty(n.Right), pretty(nf(tr)), contextEntries(ctx)), nil
		}
		return ast.TextType[ast.X]{}, nil, nil

	case ast.MaybeType[ast.X]:
		tt, derr, err := rec(ctx, n.Elem)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		if _, ok := nf(tt).(ast.ConstExpr[ast.X]); !ok {
			return nil, diagnostics.NewInvalidMaybeTypeParam(pretty(n.Elem), contextEntries(ctx)), nil
		}
		return typeConst(), nil, nil
	case ast.NothingLit[ast.X]:
		return nothingType(), nil, nil
	case ast.JustLit[ast.X]:
		return justType(), nil, nil

	case ast.ListType[ast.X]:
		tt, derr, err := rec(ctx, n.Elem)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		if _, ok := nf(tt).(ast.ConstExpr[ast.X]); !ok {
			return nil, diagnostics.NewInvalidListTypeParam(pretty(n.Elem), contextEntries(ctx)), nil
		}
		return typeConst(), nil, nil
	case ast.ListLit[ast.X]:
		tt, derr, err := rec(ctx, n.ElemType)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		if _, ok := nf(tt).(ast.ConstExpr[ast.X]); !ok {
			return nil, diagnostics.NewInvalidListType(pretty(n.ElemType), contextEntries(ctx)), nil
		}
		for i, el := range n.Elements {
			ti, derr, err := rec(ctx, el)
			if err != nil || derr != nil {
				return nil, derr, err
			}
			if !equivalence.StructurallyEqual(n.ElemType, ti) {
				return nil, diagnostics.NewInvalidElement(i, pretty(el), pretty(nf(n.ElemType)), pretty(nf(ti)), contextEntries(ctx)), nil
			}
		}
		return ast.ListType[ast.X]{Elem: n.ElemType}, nil, nil
	case ast.ListBuild[ast.X]:
		return listBuildType(), nil, nil
	case ast.ListFold[ast.X]:
		return listFoldType(), nil, nil

	case ast.RecordType[ast.X]:
		for _, f := range n.Fields {
			tf, derr, err := rec(ctx, f.Type)
			if err != nil || derr != nil {
				return nil, derr, err
			}
			if _, ok := nf(tf).(ast.ConstExpr[ast.X]); !ok {
				return nil, diagnostics.NewInvalidFieldType(f.Key, pretty(f.Type), contextEntries(ctx)), nil
			}
		}
		return typeConst(), nil, nil
	case ast.RecordLit[ast.X]:
		fields := make([]ast.RecordField[ast.X], len(n.Fields))
		for i, f := range n.Fields {
			tv, derr, err := rec(ctx, f.Value)
			if err != nil || derr != nil {
				return nil, derr, err
			}
			fields[i] = ast.RecordField[ast.X]{Key: f.Key, Type: tv}
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
		return ast.RecordType[ast.X]{Fields: fields}, nil, nil
	case ast.Project[ast.X]:
		tr, derr, err := rec(ctx, n.Record)
		if err != nil || derr != nil {
			return nil, derr, err
		}
		rt, ok := nf(tr).(ast.RecordType[ast.X])
		if !ok {
			return nil, diagnostics.NewNotARecord(n.Key, pretty(n.Record), pretty(nf(tr)), contextEntries(ctx)), nil
		}
		ft, ok := ast.LookupRecordType(rt.Fields, n.Key)
		if !ok {
			return nil, diagnostics.NewMissingField(n.Key, pretty(rt), contextEntries(ctx)), nil
		}
		return ft, nil, nil

	default:
		panic(fmt.Sprintf("typecheck.typeWith: unhandled node type %T", e))
	}
}

func typeConst() Expr { return ast.ConstExpr[ast.X]{Sort: ast.SortType} }

func typeBoolOp(ctx *Context, left, right Expr, code diagnostics.ErrorCode, depth, max int) (Expr, *diagnostics.DiagnosticError, error) {
	tl, derr, err := typeWith(ctx, left, depth, max)
	if err != nil || derr != nil {
		return nil, derr, err
	}
	if _, ok := nf(tl).(ast.BoolType[ast.X]); !ok {
		return nil, boolOpError(code, "left", left, nf(tl), contextEntries(ctx)), nil
	}
	tr, derr, err := typeWith(ctx, right, depth, max)
	if err != nil || derr != nil {
		return nil, derr, err
	}
	if _, ok := nf(tr).(ast.BoolType[ast.X]); !ok {
		return nil, boolOpError(code, "right", right, nf(tr), contextEntries(ctx)), nil
	}
	return ast.BoolType[ast.X]{}, nil, nil
}

func boolOpError(code diagnostics.ErrorCode, side string, operand, operandType Expr, ctx []diagnostics.ContextEntry) *diagnostics.DiagnosticError {
	if code == diagnostics.CantAnd {
		return diagnostics.NewCantAnd(side, pretty(operand), pretty(operandType), ctx)
	}
	return diagnostics.NewCantOr(side, pretty(operand), pretty(operandType), ctx)
}

func typeNaturalOp(ctx *Context, left, right Expr, code diagnostics.ErrorCode, depth, max int) (Expr, *diagnostics.DiagnosticError, error) {
	tl, derr, err := typeWith(ctx, left, depth, max)
	if err != nil || derr != nil {
		return nil, derr, err
	}
	if _, ok := nf(tl).(ast.NaturalType[ast.X]); !ok {
		return nil, naturalOpError(code, left, nf(tl), contextEntries(ctx)), nil
	}
	tr, derr, err := typeWith(ctx, right, depth, max)
	if err != nil || derr != nil {
		return nil, derr, err
	}
	if _, ok := nf(tr).(ast.NaturalType[ast.X]); !ok {
		return nil, naturalOpError(code, right, nf(tr), contextEntries(ctx)), nil
	}
	return ast.NaturalType[ast.X]{}, nil, nil
}

func naturalOpError(code diagnostics.ErrorCode, operand, operandType Expr, ctx []diagnostics.ContextEntry) *diagnostics.DiagnosticError {
	hint := naturalHint(operand)
	if code == diagnostics.CantAdd {
		return diagnostics.NewCantAdd(pretty(operand), pretty(operandType), hint, ctx)
	}
	return diagnostics.NewCantMultiply(pretty(operand), pretty(operandType), hint, ctx)
}

// ---- polymorphic built-in types ----
//
// These are written out directly as Pi-chains over ast.X since the core
// never needs to embed a reference inside one of its own built-in types.

func nothingType() Expr {
	return ast.Pi[ast.X]{Arg: "a", Annot: typeConst(), Body: ast.MaybeType[ast.X]{Elem: ast.Var[ast.X]{Name: "a"}}}
}

func justType() Expr {
	a := ast.Var[ast.X]{Name: "a"}
	return ast.Pi[ast.X]{Arg: "a", Annot: typeConst(), Body: ast.Pi[ast.X]{
		Arg: "_", Annot: a, Body: ast.MaybeType[ast.X]{Elem: a},
	}}
}

func naturalFoldType() Expr {
	natural := ast.Var[ast.X]{Name: "natural"}
	succType := ast.Pi[ast.X]{Arg: "_", Annot: natural, Body: natural}
	return ast.Pi[ast.X]{
		Arg: "_", Annot: ast.NaturalType[ast.X]{},
		Body: ast.Pi[ast.X]{
			Arg: "natural", Annot: typeConst(),
			Body: ast.Pi[ast.X]{
				Arg: "_", Annot: succType,
				Body: ast.Pi[ast.X]{Arg: "_", Annot: natural, Body: natural},
			},
		},
	}
}

func listBuildType() Expr {
	a := ast.Var[ast.X]{Name: "a"}
	list := ast.Var[ast.X]{Name: "list"}
	consType := ast.Pi[ast.X]{Arg: "_", Annot: a, Body: ast.Pi[ast.X]{Arg: "_", Annot: list, Body: list}}
	builderType := ast.Pi[ast.X]{
		Arg: "list", Annot: typeConst(),
		Body: ast.Pi[ast.X]{
			Arg: "_", Annot: consType,
			Body: ast.Pi[ast.X]{Arg: "_", Annot: list, Body: list},
		},
	}
	return ast.Pi[ast.X]{
		Arg: "a", Annot: typeConst(),
		Body: ast.Pi[ast.X]{Arg: "_", Annot: builderType, Body: ast.ListType[ast.X]{Elem: a}},
	}
}

func listFoldType() Expr {
	a := ast.Var[ast.X]{Name: "a"}
	list := ast.Var[ast.X]{Name: "list"}
	consType := ast.Pi[ast.X]{Arg: "_", Annot: a, Body: ast.Pi[ast.X]{Arg: "_", Annot: list, Body: list}}
	return ast.Pi[ast.X]{
		Arg: "a", Annot: typeConst(),
		Body: ast.Pi[ast.X]{
			Arg: "_", Annot: ast.ListType[ast.X]{Elem: a},
			Body: ast.Pi[ast.X]{
				Arg: "list", Annot: typeConst(),
				Body: ast.Pi[ast.X]{
					Arg: "_", Annot: consType,
					Body: ast.Pi[ast.X]{Arg: "_", Annot: list, Body: list},
				},
			},
		},
	}
}

// Package equivalence decides e1 ≡ e2: normalize both sides, then walk them
// structurally up to α-renaming using a stack of bound-name correspondences.
package equivalence

import (
	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/normalize"
)

// Equivalent reports whether e1 and e2 denote the same value: their normal
// forms are α-equivalent.
func Equivalent[A ast.EmbedPayload](e1, e2 ast.Expr[A]) bool {
	return StructurallyEqual(normalize.Normalize(e1), normalize.Normalize(e2))
}

// StructurallyEqual decides α-equivalence directly, without normalizing
// first. internal/typecheck calls this on the types it compares (a
// normalized Pi annotation against a normalized argument type in App; the
// annotated, branch and element types as synthesized in Annot, BoolIf and
// ListLit), so types that are only equal after reduction do not match there;
// Equivalent is for callers (tests, external callers) holding arbitrary,
// possibly un-normalized trees.
func StructurallyEqual[A ast.EmbedPayload](e1, e2 ast.Expr[A]) bool {
	return alphaEqual(e1, e2, nil)
}

// correspondence is one (left-name, right-name) pair introduced by a Lam/Pi
// binder pair, innermost last.
type correspondence struct {
	left, right string
}

func alphaEqual[A ast.EmbedPayload](l, r ast.Expr[A], stack []correspondence) bool {
	switch ln := l.(type) {
	case ast.Var[A]:
		rn, ok := r.(ast.Var[A])
		if !ok {
			return false
		}
		return varsCorrespond(ln.Name, rn.Name, stack)

	case ast.ConstExpr[A]:
		rn, ok := r.(ast.ConstExpr[A])
		return ok && ln.Sort == rn.Sort

	case ast.Lam[A]:
		rn, ok := r.(ast.Lam[A])
		if !ok {
			return false
		}
		if !alphaEqual(ln.Annot, rn.Annot, stack) {
			return false
		}
		return alphaEqual(ln.Body, rn.Body, append(stack, correspondence{ln.Arg, rn.Arg}))

	case ast.Pi[A]:
		rn, ok := r.(ast.Pi[A])
		if !ok {
			return false
		}
		if !alphaEqual(ln.Annot, rn.Annot, stack) {
			return false
		}
		return alphaEqual(ln.Body, rn.Body, append(stack, correspondence{ln.Arg, rn.Arg}))

	case ast.App[A]:
		rn, ok := r.(ast.App[A])
		return ok && alphaEqual(ln.Fn, rn.Fn, stack) && alphaEqual(ln.Arg, rn.Arg, stack)

	case ast.Lets[A]:
		rn, ok := r.(ast.Lets[A])
		if !ok || len(ln.Bindings) != len(rn.Bindings) {
			return false
		}
		s := stack
		for i := range ln.Bindings {
			lb, rb := ln.Bindings[i], rn.Bindings[i]
			if len(lb.Args) != len(rb.Args) {
				return false
			}
			for j := range lb.Args {
				if !alphaEqual(lb.Args[j].Type, rb.Args[j].Type, s) {
					return false
				}
				s = append(s, correspondence{lb.Args[j].Name, rb.Args[j].Name})
			}
			if !alphaEqual(lb.Rhs, rb.Rhs, s) {
				return false
			}
			s = append(s, correspondence{lb.Name, rb.Name})
		}
		return alphaEqual(ln.Body, rn.Body, s)

	case ast.Annot[A]:
		rn, ok := r.(ast.Annot[A])
		return ok && alphaEqual(ln.Value, rn.Value, stack) && alphaEqual(ln.Type, rn.Type, stack)

	case ast.Embed[A]:
		rn, ok := r.(ast.Embed[A])
		return ok && ln.Payload.Equal(rn.Payload)

	case ast.BoolType[A]:
		_, ok := r.(ast.BoolType[A])
		return ok
	case ast.BoolLit[A]:
		rn, ok := r.(ast.BoolLit[A])
		return ok && ln.Value == rn.Value
	case ast.BoolAnd[A]:
		rn, ok := r.(ast.BoolAnd[A])
		return ok && alphaEqual(ln.Left, rn.Left, stack) && alphaEqual(ln.Right, rn.Right, stack)
	case ast.BoolOr[A]:
		rn, ok := r.(ast.BoolOr[A])
		return ok && alphaEqual(ln.Left, rn.Left, stack) && alphaEqual(ln.Right, rn.Right, stack)
	case ast.BoolIf[A]:
		rn, ok := r.(ast.BoolIf[A])
		return ok && alphaEqual(ln.Cond, rn.Cond, stack) &&
			alphaEqual(ln.Then, rn.Then, stack) && alphaEqual(ln.Else, rn.Else, stack)

	case ast.NaturalType[A]:
		_, ok := r.(ast.NaturalType[A])
		return ok
	case ast.NaturalLit[A]:
		rn, ok := r.(ast.NaturalLit[A])
		return ok && ln.Value == rn.Value
	case ast.NaturalFold[A]:
		_, ok := r.(ast.NaturalFold[A])
		return ok
	case ast.NaturalPlus[A]:
		rn, ok := r.(ast.NaturalPlus[A])
		return ok && alphaEqual(ln.Left, rn.Left, stack) && alphaEqual(ln.Right, rn.Right, stack)
	case ast.NaturalTimes[A]:
		rn, ok := r.(ast.NaturalTimes[A])
		return ok && alphaEqual(ln.Left, rn.Left, stack) && alphaEqual(ln.Right, rn.Right, stack)

	case ast.IntegerType[A]:
		_, ok := r.(ast.IntegerType[A])
		return ok
	case ast.IntegerLit[A]:
		rn, ok := r.(ast.IntegerLit[A])
		return ok && ln.Value == rn.Value

	case ast.DoubleType[A]:
		_, ok := r.(ast.DoubleType[A])
		return ok
	case ast.DoubleLit[A]:
		rn, ok := r.(ast.DoubleLit[A])
		return ok && ln.Value == rn.Value

	case ast.TextType[A]:
		_, ok := r.(ast.TextType[A])
		return ok
	case ast.TextLit[A]:
		rn, ok := r.(ast.TextLit[A])
		return ok && ln.Value == rn.Value
	case ast.TextAppend[A]:
		rn, ok := r.(ast.TextAppend[A])
		return ok && alphaEqual(ln.Left, rn.Left, stack) && alphaEqual(ln.Right, rn.Right, stack)

	case ast.MaybeType[A]:
		rn, ok := r.(ast.MaybeType[A])
		return ok && alphaEqual(ln.Elem, rn.Elem, stack)
	case ast.NothingLit[A]:
		_, ok := r.(ast.NothingLit[A])
		return ok
	case ast.JustLit[A]:
		_, ok := r.(ast.JustLit[A])
		return ok

	case ast.ListType[A]:
		rn, ok := r.(ast.ListType[A])
		return ok && alphaEqual(ln.Elem, rn.Elem, stack)
	case ast.ListLit[A]:
		rn, ok := r.(ast.ListLit[A])
		if !ok || len(ln.Elements) != len(rn.Elements) || !alphaEqual(ln.ElemType, rn.ElemType, stack) {
			return false
		}
		for i := range ln.Elements {
			if !alphaEqual(ln.Elements[i], rn.Elements[i], stack) {
				return false
			}
		}
		return true
	case ast.ListBuild[A]:
		_, ok := r.(ast.ListBuild[A])
		return ok
	case ast.ListFold[A]:
		_, ok := r.(ast.ListFold[A])
		return ok

	case ast.RecordType[A]:
		rn, ok := r.(ast.RecordType[A])
		if !ok || len(ln.Fields) != len(rn.Fields) {
			return false
		}
		// Canonical (ascending-key) order is an invariant on well-formed
		// Record nodes, so positional comparison suffices.
		for i := range ln.Fields {
			if ln.Fields[i].Key != rn.Fields[i].Key {
				return false
			}
			if !alphaEqual(ln.Fields[i].Type, rn.Fields[i].Type, stack) {
				return false
			}
		}
		return true
	case ast.RecordLit[A]:
		rn, ok := r.(ast.RecordLit[A])
		if !ok || len(ln.Fields) != len(rn.Fields) {
			return false
		}
		for i := range ln.Fields {
			if ln.Fields[i].Key != rn.Fields[i].Key {
				return false
			}
			if !alphaEqual(ln.Fields[i].Value, rn.Fields[i].Value, stack) {
				return false
			}
		}
		return true
	case ast.Project[A]:
		rn, ok := r.(ast.Project[A])
		return ok && ln.Key == rn.Key && alphaEqual(ln.Record, rn.Record, stack)

	default:
		return false
	}
}

// varsCorrespond scans the correspondence stack top-down (innermost binder
// first); on the first entry where either name matches, accept iff both
// match. If no entry matches either name, fall back to free-variable name
// equality.
func varsCorrespond(left, right string, stack []correspondence) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		c := stack[i]
		lm, rm := c.left == left, c.right == right
		if lm || rm {
			return lm && rm
		}
	}
	return left == right
}

// Package substitution implements capture-avoiding substitution: replacing
// free occurrences of a named variable by an expression, with capture
// avoided by shadowing rather than by fresh-variable renaming — a bound
// name that equals the substituted variable stops the recursion at that
// binder instead of renaming it.
package substitution

import (
	"fmt"

	"github.com/corecalc/corecalc/internal/ast"
)

// Subst replaces free occurrences of x in t by e0. Contract:
//
//	Subst(x, e, Var{x}) == e
//	Subst(x, e, Var{y}) == Var{y}  when y != x
//	substitution distributes through every non-binding constructor.
func Subst[A ast.EmbedPayload](x string, e0 ast.Expr[A], t ast.Expr[A]) ast.Expr[A] {
	switch n := t.(type) {
	case ast.ConstExpr[A]:
		return n
	case ast.Var[A]:
		if n.Name == x {
			return e0
		}
		return n
	case ast.Lam[A]:
		annot := Subst(x, e0, n.Annot)
		body := n.Body
		if x != n.Arg {
			body = Subst(x, e0, n.Body)
		}
		return ast.Lam[A]{Arg: n.Arg, Annot: annot, Body: body}
	case ast.Pi[A]:
		annot := Subst(x, e0, n.Annot)
		body := n.Body
		if x != n.Arg {
			body = Subst(x, e0, n.Body)
		}
		return ast.Pi[A]{Arg: n.Arg, Annot: annot, Body: body}
	case ast.App[A]:
		return ast.App[A]{Fn: Subst(x, e0, n.Fn), Arg: Subst(x, e0, n.Arg)}
	case ast.Lets[A]:
		return substLets(x, e0, n)
	case ast.Annot[A]:
		return ast.Annot[A]{Value: Subst(x, e0, n.Value), Type: Subst(x, e0, n.Type)}
	case ast.Embed[A]:
		return n

	case ast.BoolType[A]:
		return n
	case ast.BoolLit[A]:
		return n
	case ast.BoolAnd[A]:
		return ast.BoolAnd[A]{Left: Subst(x, e0, n.Left), Right: Subst(x, e0, n.Right)}
	case ast.BoolOr[A]:
		return ast.BoolOr[A]{Left: Subst(x, e0, n.Left), Right: Subst(x, e0, n.Right)}
	case ast.BoolIf[A]:
		return ast.BoolIf[A]{
			Cond: Subst(x, e0, n.Cond),
			Then: Subst(x, e0, n.Then),
			Else: Subst(x, e0, n.Else),
		}

	case ast.NaturalType[A]:
		return n
	case ast.NaturalLit[A]:
		return n
	case ast.NaturalFold[A]:
		return n
	case ast.NaturalPlus[A]:
		return ast.NaturalPlus[A]{Left: Subst(x, e0, n.Left), Right: Subst(x, e0, n.Right)}
	case ast.NaturalTimes[A]:
		return ast.NaturalTimes[A]{Left: Subst(x, e0, n.Left), Right: Subst(x, e0, n.Right)}

	case ast.IntegerType[A]:
		return n
	case ast.IntegerLit[A]:
		return n

	case ast.DoubleType[A]:
		return n
	case ast.DoubleLit[A]:
		return n

	case ast.TextType[A]:
		return n
	case ast.TextLit[A]:
		return n
	case ast.TextAppend[A]:
		return ast.TextAppend[A]{Left: Subst(x, e0, n.Left), Right: Subst(x, e0, n.Right)}

	case ast.MaybeType[A]:
		return ast.MaybeType[A]{Elem: Subst(x, e0, n.Elem)}
	case ast.NothingLit[A]:
		return n
	case ast.JustLit[A]:
		return n

	case ast.ListType[A]:
		return ast.ListType[A]{Elem: Subst(x, e0, n.Elem)}
	case ast.ListLit[A]:
		elems := make([]ast.Expr[A], len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = Subst(x, e0, el)
		}
		return ast.ListLit[A]{ElemType: Subst(x, e0, n.ElemType), Elements: elems}
	case ast.ListBuild[A]:
		return n
	case ast.ListFold[A]:
		return n

	case ast.RecordType[A]:
		fields := make([]ast.RecordField[A], len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ast.RecordField[A]{Key: f.Key, Type: Subst(x, e0, f.Type)}
		}
		return ast.RecordType[A]{Fields: fields}
	case ast.RecordLit[A]:
		fields := make([]ast.RecordFieldValue[A], len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ast.RecordFieldValue[A]{Key: f.Key, Value: Subst(x, e0, f.Value)}
		}
		return ast.RecordLit[A]{Fields: fields}
	case ast.Project[A]:
		return ast.Project[A]{Record: Subst(x, e0, n.Record), Key: n.Key}

	default:
		panic(fmt.Sprintf("substitution.Subst: unhandled node type %T", t))
	}
}

// substLets walks bindings left-to-right threading a boolean "x still in
// scope" flag. Within one binding, argument
// types are substituted left-to-right gated by that flag (an argument whose
// name equals x shadows x for the remaining arguments and for rhs); the
// flag is then reset for subsequent bindings and the final body based on
// whether this binding's own name equals x.
func substLets[A ast.EmbedPayload](x string, e0 ast.Expr[A], n ast.Lets[A]) ast.Expr[A] {
	inScope := true
	newBindings := make([]ast.LetBinding[A], len(n.Bindings))
	for i, b := range n.Bindings {
		argFlag := inScope
		newArgs := make([]ast.Arg[A], len(b.Args))
		for j, a := range b.Args {
			newType := a.Type
			if argFlag {
				newType = Subst(x, e0, a.Type)
			}
			newArgs[j] = ast.Arg[A]{Name: a.Name, Type: newType}
			if a.Name == x {
				argFlag = false
			}
		}
		newRhs := b.Rhs
		if argFlag {
			newRhs = Subst(x, e0, b.Rhs)
		}
		newBindings[i] = ast.LetBinding[A]{Name: b.Name, Args: newArgs, Rhs: newRhs}
		if b.Name == x {
			inScope = false
		}
	}
	newBody := n.Body
	if inScope {
		newBody = Subst(x, e0, n.Body)
	}
	return ast.Lets[A]{Bindings: newBindings, Body: newBody}
}

// Package prettyprinter renders an Expr to the language's canonical surface
// syntax: a single output buffer plus precedence-driven recursion deciding
// where to parenthesize, using two precedence classes (`parenBind` and
// `parenApp`) since this calculus has no user-definable operators to rank.
package prettyprinter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corecalc/corecalc/internal/ast"
)

// Pretty renders e in canonical surface syntax.
func Pretty[A ast.EmbedPayload](e ast.Expr[A]) string {
	var b strings.Builder
	render(&b, e, false, false)
	return b.String()
}

func wrapIf(b *strings.Builder, cond bool, f func()) {
	if cond {
		b.WriteByte('(')
	}
	f()
	if cond {
		b.WriteByte(')')
	}
}

// render writes e to b. parenBind requests parenthesization if e is a
// binder-level construct (λ/∀/let/annotation); parenApp requests it if e is
// an application-level construct (application, infix primitives, List/
// Maybe type application, field projection).
func render[A ast.EmbedPayload](b *strings.Builder, e ast.Expr[A], parenBind, parenApp bool) {
	switch n := e.(type) {
	case ast.ConstExpr[A]:
		b.WriteString(n.Sort.String())

	case ast.Var[A]:
		b.WriteString(n.Name)

	case ast.Lam[A]:
		wrapIf(b, parenBind, func() {
			fmt.Fprintf(b, "λ(%s : ", n.Arg)
			render(b, n.Annot, false, false)
			b.WriteString(") → ")
			render(b, n.Body, false, false)
		})

	case ast.Pi[A]:
		wrapIf(b, parenBind, func() {
			if n.Arg == "_" {
				render(b, n.Annot, true, true)
				b.WriteString(" → ")
				render(b, n.Body, false, false)
			} else {
				fmt.Fprintf(b, "∀(%s : ", n.Arg)
				render(b, n.Annot, false, false)
				b.WriteString(") → ")
				render(b, n.Body, false, false)
			}
		})

	case ast.App[A]:
		wrapIf(b, parenApp, func() {
			render(b, n.Fn, true, false)
			b.WriteByte(' ')
			render(b, n.Arg, true, true)
		})

	case ast.Lets[A]:
		wrapIf(b, parenBind, func() {
			for _, bind := range n.Bindings {
				fmt.Fprintf(b, "let %s", bind.Name)
				for _, a := range bind.Args {
					fmt.Fprintf(b, " (%s : ", a.Name)
					render(b, a.Type, false, false)
					b.WriteByte(')')
				}
				b.WriteString(" = ")
				render(b, bind.Rhs, false, false)
				b.WriteString(" ")
			}
			b.WriteString("in ")
			render(b, n.Body, false, false)
		})

	case ast.Annot[A]:
		wrapIf(b, parenBind, func() {
			render(b, n.Value, false, true)
			b.WriteString(" : ")
			render(b, n.Type, false, false)
		})

	case ast.Embed[A]:
		b.WriteString(n.Payload.Render())

	case ast.BoolType[A]:
		b.WriteString("Bool")
	case ast.BoolLit[A]:
		if n.Value {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case ast.BoolAnd[A]:
		renderInfix(b, n.Left, "&&", n.Right, parenBind, parenApp)
	case ast.BoolOr[A]:
		renderInfix(b, n.Left, "||", n.Right, parenBind, parenApp)
	case ast.BoolIf[A]:
		wrapIf(b, parenBind || parenApp, func() {
			b.WriteString("if ")
			render(b, n.Cond, false, false)
			b.WriteString(" then ")
			render(b, n.Then, false, false)
			b.WriteString(" else ")
			render(b, n.Else, false, false)
		})

	case ast.NaturalType[A]:
		b.WriteString("Natural")
	case ast.NaturalLit[A]:
		fmt.Fprintf(b, "+%d", n.Value)
	case ast.NaturalFold[A]:
		b.WriteString("Natural/fold")
	case ast.NaturalPlus[A]:
		renderInfix(b, n.Left, "+", n.Right, parenBind, parenApp)
	case ast.NaturalTimes[A]:
		renderInfix(b, n.Left, "*", n.Right, parenBind, parenApp)

	case ast.IntegerType[A]:
		b.WriteString("Integer")
	case ast.IntegerLit[A]:
		if n.Value >= 0 {
			fmt.Fprintf(b, "+%d", n.Value)
		} else {
			fmt.Fprintf(b, "%d", n.Value)
		}

	case ast.DoubleType[A]:
		b.WriteString("Double")
	case ast.DoubleLit[A]:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))

	case ast.TextType[A]:
		b.WriteString("Text")
	case ast.TextLit[A]:
		b.WriteString(strconv.Quote(n.Value))
	case ast.TextAppend[A]:
		renderInfix(b, n.Left, "++", n.Right, parenBind, parenApp)

	case ast.MaybeType[A]:
		wrapIf(b, parenBind || parenApp, func() {
			b.WriteString("Maybe ")
			render(b, n.Elem, true, true)
		})
	case ast.NothingLit[A]:
		b.WriteString("Nothing_")
	case ast.JustLit[A]:
		b.WriteString("Just_")

	case ast.ListType[A]:
		wrapIf(b, parenBind || parenApp, func() {
			b.WriteString("List ")
			render(b, n.Elem, true, true)
		})
	case ast.ListLit[A]:
		if len(n.Elements) == 0 {
			b.WriteString("[ : ")
			render(b, n.ElemType, false, false)
			b.WriteString(" ]")
			return
		}
		b.WriteString("[ ")
		for i, el := range n.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			render(b, el, false, false)
		}
		b.WriteString(" ]")
	case ast.ListBuild[A]:
		b.WriteString("List/build")
	case ast.ListFold[A]:
		b.WriteString("List/fold")

	case ast.RecordType[A]:
		b.WriteString("{{ ")
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s : ", f.Key)
			render(b, f.Type, false, false)
		}
		b.WriteString(" }}")
	case ast.RecordLit[A]:
		b.WriteString("{ ")
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s = ", f.Key)
			render(b, f.Value, false, false)
		}
		b.WriteString(" }")
	case ast.Project[A]:
		wrapIf(b, parenBind || parenApp, func() {
			render(b, n.Record, true, true)
			fmt.Fprintf(b, ".%s", n.Key)
		})

	default:
		panic(fmt.Sprintf("prettyprinter.render: unhandled node type %T", e))
	}
}

func renderInfix[A ast.EmbedPayload](b *strings.Builder, l ast.Expr[A], op string, r ast.Expr[A], parenBind, parenApp bool) {
	wrapIf(b, parenBind || parenApp, func() {
		render(b, l, true, true)
		fmt.Fprintf(b, " %s ", op)
		render(b, r, true, true)
	})
}

// Package builder provides one constructor function per Expr variant, plus
// a handful of convenience builders (Lets1, Arrow) — programmatic tree
// construction for tests, the CLI's JSON decoder (see builder_json.go), and
// error-message construction. It exists only to give internal/ast's
// constructor-per-variant shape a friendlier, fewer-import call surface
// than spelling out struct literals everywhere.
package builder

import "github.com/corecalc/corecalc/internal/ast"

func Const[A ast.EmbedPayload](s ast.Sort) ast.Expr[A] { return ast.ConstExpr[A]{Sort: s} }
func Type[A ast.EmbedPayload]() ast.Expr[A]             { return ast.ConstExpr[A]{Sort: ast.SortType} }
func Kind[A ast.EmbedPayload]() ast.Expr[A]             { return ast.ConstExpr[A]{Sort: ast.SortKind} }

func Var[A ast.EmbedPayload](name string) ast.Expr[A] { return ast.Var[A]{Name: name} }

func Lam[A ast.EmbedPayload](arg string, annot, body ast.Expr[A]) ast.Expr[A] {
	return ast.Lam[A]{Arg: arg, Annot: annot, Body: body}
}

func Pi[A ast.EmbedPayload](arg string, annot, body ast.Expr[A]) ast.Expr[A] {
	return ast.Pi[A]{Arg: arg, Annot: annot, Body: body}
}

// Arrow builds the non-dependent function type `annot → body` (a Pi whose
// bound name is "_").
func Arrow[A ast.EmbedPayload](annot, body ast.Expr[A]) ast.Expr[A] {
	return ast.Pi[A]{Arg: "_", Annot: annot, Body: body}
}

func App[A ast.EmbedPayload](fn, arg ast.Expr[A]) ast.Expr[A] {
	return ast.App[A]{Fn: fn, Arg: arg}
}

// Apply folds App across args left to right: Apply(f, a, b, c) = ((f a) b) c.
func Apply[A ast.EmbedPayload](fn ast.Expr[A], args ...ast.Expr[A]) ast.Expr[A] {
	result := fn
	for _, a := range args {
		result = ast.App[A]{Fn: result, Arg: a}
	}
	return result
}

func NewArg[A ast.EmbedPayload](name string, typ ast.Expr[A]) ast.Arg[A] {
	return ast.Arg[A]{Name: name, Type: typ}
}

func Binding[A ast.EmbedPayload](name string, args []ast.Arg[A], rhs ast.Expr[A]) ast.LetBinding[A] {
	return ast.LetBinding[A]{Name: name, Args: args, Rhs: rhs}
}

func Lets[A ast.EmbedPayload](bindings []ast.LetBinding[A], body ast.Expr[A]) ast.Expr[A] {
	return ast.Lets[A]{Bindings: bindings, Body: body}
}

// Lets1 builds a single-binding let block: `let name args = rhs in body`.
func Lets1[A ast.EmbedPayload](name string, args []ast.Arg[A], rhs, body ast.Expr[A]) ast.Expr[A] {
	return ast.Lets[A]{Bindings: []ast.LetBinding[A]{{Name: name, Args: args, Rhs: rhs}}, Body: body}
}

func Annot[A ast.EmbedPayload](value, typ ast.Expr[A]) ast.Expr[A] {
	return ast.Annot[A]{Value: value, Type: typ}
}

func Embed[A ast.EmbedPayload](payload A) ast.Expr[A] { return ast.Embed[A]{Payload: payload} }

// ---- booleans ----

func Bool[A ast.EmbedPayload]() ast.Expr[A]          { return ast.BoolType[A]{} }
func BoolLit[A ast.EmbedPayload](v bool) ast.Expr[A] { return ast.BoolLit[A]{Value: v} }
func BoolAnd[A ast.EmbedPayload](l, r ast.Expr[A]) ast.Expr[A] {
	return ast.BoolAnd[A]{Left: l, Right: r}
}
func BoolOr[A ast.EmbedPayload](l, r ast.Expr[A]) ast.Expr[A] {
	return ast.BoolOr[A]{Left: l, Right: r}
}
func BoolIf[A ast.EmbedPayload](cond, then, els ast.Expr[A]) ast.Expr[A] {
	return ast.BoolIf[A]{Cond: cond, Then: then, Else: els}
}

// ---- naturals ----

func Natural[A ast.EmbedPayload]() ast.Expr[A] { return ast.NaturalType[A]{} }
func NaturalLit[A ast.EmbedPayload](n uint64) ast.Expr[A] {
	return ast.NaturalLit[A]{Value: n}
}
func NaturalFold[A ast.EmbedPayload]() ast.Expr[A] { return ast.NaturalFold[A]{} }
func NaturalPlus[A ast.EmbedPayload](l, r ast.Expr[A]) ast.Expr[A] {
	return ast.NaturalPlus[A]{Left: l, Right: r}
}
func NaturalTimes[A ast.EmbedPayload](l, r ast.Expr[A]) ast.Expr[A] {
	return ast.NaturalTimes[A]{Left: l, Right: r}
}

// ---- integers / doubles ----

func Integer[A ast.EmbedPayload]() ast.Expr[A]            { return ast.IntegerType[A]{} }
func IntegerLit[A ast.EmbedPayload](n int64) ast.Expr[A]  { return ast.IntegerLit[A]{Value: n} }
func Double[A ast.EmbedPayload]() ast.Expr[A]              { return ast.DoubleType[A]{} }
func DoubleLit[A ast.EmbedPayload](f float64) ast.Expr[A] { return ast.DoubleLit[A]{Value: f} }

// ---- text ----

func Text[A ast.EmbedPayload]() ast.Expr[A] { return ast.TextType[A]{} }
func TextLit[A ast.EmbedPayload](s string) ast.Expr[A] {
	return ast.TextLit[A]{Value: ast.NormalizeText(s)}
}
func TextAppend[A ast.EmbedPayload](l, r ast.Expr[A]) ast.Expr[A] {
	return ast.TextAppend[A]{Left: l, Right: r}
}

// ---- optionals ----

func Maybe[A ast.EmbedPayload](elem ast.Expr[A]) ast.Expr[A] { return ast.MaybeType[A]{Elem: elem} }
func Nothing[A ast.EmbedPayload]() ast.Expr[A]               { return ast.NothingLit[A]{} }
func Just[A ast.EmbedPayload]() ast.Expr[A]                  { return ast.JustLit[A]{} }

// ---- lists ----

func List[A ast.EmbedPayload](elem ast.Expr[A]) ast.Expr[A] { return ast.ListType[A]{Elem: elem} }
func ListLit[A ast.EmbedPayload](elemType ast.Expr[A], elements ...ast.Expr[A]) ast.Expr[A] {
	return ast.ListLit[A]{ElemType: elemType, Elements: elements}
}
func ListBuild[A ast.EmbedPayload]() ast.Expr[A] { return ast.ListBuild[A]{} }
func ListFold[A ast.EmbedPayload]() ast.Expr[A]  { return ast.ListFold[A]{} }

// ---- records ----

func RecordField[A ast.EmbedPayload](key string, typ ast.Expr[A]) ast.RecordField[A] {
	return ast.RecordField[A]{Key: key, Type: typ}
}

func Record[A ast.EmbedPayload](fields ...ast.RecordField[A]) ast.Expr[A] {
	return ast.RecordType[A]{Fields: fields}
}

func RecordFieldValue[A ast.EmbedPayload](key string, value ast.Expr[A]) ast.RecordFieldValue[A] {
	return ast.RecordFieldValue[A]{Key: key, Value: value}
}

func RecordLit[A ast.EmbedPayload](fields ...ast.RecordFieldValue[A]) ast.Expr[A] {
	return ast.RecordLit[A]{Fields: fields}
}

func Project[A ast.EmbedPayload](record ast.Expr[A], key string) ast.Expr[A] {
	return ast.Project[A]{Record: record, Key: key}
}

package ast

import "fmt"

// Bind replaces every Embed payload in e by the subexpression k(p), threading
// through every binder without renaming. Since all Embed payloads are
// closed, no alpha-conversion is required.
func Bind[A, B EmbedPayload](e Expr[A], k func(A) Expr[B]) Expr[B] {
	switch n := e.(type) {
	case ConstExpr[A]:
		return ConstExpr[B]{Sort: n.Sort}
	case Var[A]:
		return Var[B]{Name: n.Name}
	case Lam[A]:
		return Lam[B]{Arg: n.Arg, Annot: Bind(n.Annot, k), Body: Bind(n.Body, k)}
	case Pi[A]:
		return Pi[B]{Arg: n.Arg, Annot: Bind(n.Annot, k), Body: Bind(n.Body, k)}
	case App[A]:
		return App[B]{Fn: Bind(n.Fn, k), Arg: Bind(n.Arg, k)}
	case Lets[A]:
		bindings := make([]LetBinding[B], len(n.Bindings))
		for i, b := range n.Bindings {
			args := make([]Arg[B], len(b.Args))
			for j, a := range b.Args {
				args[j] = Arg[B]{Name: a.Name, Type: Bind(a.Type, k)}
			}
			bindings[i] = LetBinding[B]{Name: b.Name, Args: args, Rhs: Bind(b.Rhs, k)}
		}
		return Lets[B]{Bindings: bindings, Body: Bind(n.Body, k)}
	case Annot[A]:
		return Annot[B]{Value: Bind(n.Value, k), Type: Bind(n.Type, k)}
	case Embed[A]:
		return k(n.Payload)

	case BoolType[A]:
		return BoolType[B]{}
	case BoolLit[A]:
		return BoolLit[B]{Value: n.Value}
	case BoolAnd[A]:
		return BoolAnd[B]{Left: Bind(n.Left, k), Right: Bind(n.Right, k)}
	case BoolOr[A]:
		return BoolOr[B]{Left: Bind(n.Left, k), Right: Bind(n.Right, k)}
	case BoolIf[A]:
		return BoolIf[B]{Cond: Bind(n.Cond, k), Then: Bind(n.Then, k), Else: Bind(n.Else, k)}

	case NaturalType[A]:
		return NaturalType[B]{}
	case NaturalLit[A]:
		return NaturalLit[B]{Value: n.Value}
	case NaturalFold[A]:
		return NaturalFold[B]{}
	case NaturalPlus[A]:
		return NaturalPlus[B]{Left: Bind(n.Left, k), Right: Bind(n.Right, k)}
	case NaturalTimes[A]:
		return NaturalTimes[B]{Left: Bind(n.Left, k), Right: Bind(n.Right, k)}

	case IntegerType[A]:
		return IntegerType[B]{}
	case IntegerLit[A]:
		return IntegerLit[B]{Value: n.Value}

	case DoubleType[A]:
		return DoubleType[B]{}
	case DoubleLit[A]:
		return DoubleLit[B]{Value: n.Value}

	case TextType[A]:
		return TextType[B]{}
	case TextLit[A]:
		return TextLit[B]{Value: n.Value}
	case TextAppend[A]:
		return TextAppend[B]{Left: Bind(n.Left, k), Right: Bind(n.Right, k)}

	case MaybeType[A]:
		return MaybeType[B]{Elem: Bind(n.Elem, k)}
	case NothingLit[A]:
		return NothingLit[B]{}
	case JustLit[A]:
		return JustLit[B]{}

	case ListType[A]:
		return ListType[B]{Elem: Bind(n.Elem, k)}
	case ListLit[A]:
		elems := make([]Expr[B], len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = Bind(el, k)
		}
		return ListLit[B]{ElemType: Bind(n.ElemType, k), Elements: elems}
	case ListBuild[A]:
		return ListBuild[B]{}
	case ListFold[A]:
		return ListFold[B]{}

	case RecordType[A]:
		fields := make([]RecordField[B], len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = RecordField[B]{Key: f.Key, Type: Bind(f.Type, k)}
		}
		return RecordType[B]{Fields: fields}
	case RecordLit[A]:
		fields := make([]RecordFieldValue[B], len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = RecordFieldValue[B]{Key: f.Key, Value: Bind(f.Value, k)}
		}
		return RecordLit[B]{Fields: fields}
	case Project[A]:
		return Project[B]{Record: Bind(n.Record, k), Key: n.Key}

	default:
		panic(fmt.Sprintf("ast.Bind: unhandled node type %T", e))
	}
}

// Map replaces every Embed payload in e by f(p). Map id = id and
// Map (f . g) = Map f . Map g follow from Bind's structural recursion.
func Map[A, B EmbedPayload](e Expr[A], f func(A) B) Expr[B] {
	return Bind(e, func(a A) Expr[B] { return Embed[B]{Payload: f(a)} })
}

// Close asserts that e has no remaining Embed nodes by rebinding every
// payload through Absurd. If e does in fact contain an Embed, Absurd panics
// — correctly so, since a value of X cannot exist.
func Close(e Expr[X]) Expr[X] {
	return Bind(e, func(x X) Expr[X] { return Absurd[Expr[X]](x) })
}

// LookupRecordType returns the type of key in fields, and whether it was present.
func LookupRecordType[A EmbedPayload](fields []RecordField[A], key string) (Expr[A], bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Type, true
		}
	}
	var zero Expr[A]
	return zero, false
}

// LookupRecordValue returns the value of key in fields, and whether it was present.
func LookupRecordValue[A EmbedPayload](fields []RecordFieldValue[A], key string) (Expr[A], bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	var zero Expr[A]
	return zero, false
}

package ast

// ---- booleans ----

type BoolType[A EmbedPayload] struct{}

func (BoolType[A]) exprTag() {}

type BoolLit[A EmbedPayload] struct{ Value bool }

func (BoolLit[A]) exprTag() {}

type BoolAnd[A EmbedPayload] struct{ Left, Right Expr[A] }

func (BoolAnd[A]) exprTag() {}

type BoolOr[A EmbedPayload] struct{ Left, Right Expr[A] }

func (BoolOr[A]) exprTag() {}

type BoolIf[A EmbedPayload] struct {
	Cond, Then, Else Expr[A]
}

func (BoolIf[A]) exprTag() {}

// ---- naturals ----
//
// NaturalLit carries a uint64 rather than a signed integer so its
// non-negativity invariant holds by construction instead of by a runtime
// check.

type NaturalType[A EmbedPayload] struct{}

func (NaturalType[A]) exprTag() {}

type NaturalLit[A EmbedPayload] struct{ Value uint64 }

func (NaturalLit[A]) exprTag() {}

type NaturalFold[A EmbedPayload] struct{}

func (NaturalFold[A]) exprTag() {}

type NaturalPlus[A EmbedPayload] struct{ Left, Right Expr[A] }

func (NaturalPlus[A]) exprTag() {}

type NaturalTimes[A EmbedPayload] struct{ Left, Right Expr[A] }

func (NaturalTimes[A]) exprTag() {}

// ---- integers ----

type IntegerType[A EmbedPayload] struct{}

func (IntegerType[A]) exprTag() {}

type IntegerLit[A EmbedPayload] struct{ Value int64 }

func (IntegerLit[A]) exprTag() {}

// ---- doubles ----

type DoubleType[A EmbedPayload] struct{}

func (DoubleType[A]) exprTag() {}

type DoubleLit[A EmbedPayload] struct{ Value float64 }

func (DoubleLit[A]) exprTag() {}

// ---- text ----

type TextType[A EmbedPayload] struct{}

func (TextType[A]) exprTag() {}

type TextLit[A EmbedPayload] struct{ Value string }

func (TextLit[A]) exprTag() {}

type TextAppend[A EmbedPayload] struct{ Left, Right Expr[A] }

func (TextAppend[A]) exprTag() {}

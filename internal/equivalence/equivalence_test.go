package equivalence

import (
	"testing"

	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/builder"
)

type X = ast.X

func TestEquivalentIsReflexive(t *testing.T) {
	e := builder.Lam[X]("x", builder.Natural[X](), builder.Var[X]("x"))
	if !Equivalent[X](e, e) {
		t.Errorf("Equivalent(e, e) = false, want true")
	}
}

func TestAlphaEquivalenceAcrossBoundNames(t *testing.T) {
	a := builder.Lam[X]("x", builder.Natural[X](), builder.Var[X]("x"))
	b := builder.Lam[X]("y", builder.Natural[X](), builder.Var[X]("y"))
	if !Equivalent[X](a, b) {
		t.Errorf("λx.x and λy.y should be α-equivalent")
	}
}

func TestDistinctBodiesAreNotEquivalent(t *testing.T) {
	a := builder.Lam[X]("x", builder.Natural[X](), builder.Var[X]("x"))
	b := builder.Lam[X]("x", builder.Natural[X](), builder.NaturalLit[X](0))
	if Equivalent[X](a, b) {
		t.Errorf("λx.x and λx.0 must not be equivalent")
	}
}

func TestFreeVariableNamesMustMatch(t *testing.T) {
	a := builder.Var[X]("free1")
	b := builder.Var[X]("free2")
	if Equivalent[X](a, b) {
		t.Errorf("distinct free variables must not be equivalent")
	}
}

func TestShadowingDoesNotLeakOuterCorrespondence(t *testing.T) {
	// λ(x:Natural) → λ(x:Natural) → x   vs   λ(y:Natural) → λ(z:Natural) → z
	// Both inner bodies refer to the innermost binder; equivalent.
	a := builder.Lam[X]("x", builder.Natural[X](), builder.Lam[X]("x", builder.Natural[X](), builder.Var[X]("x")))
	b := builder.Lam[X]("y", builder.Natural[X](), builder.Lam[X]("z", builder.Natural[X](), builder.Var[X]("z")))
	if !Equivalent[X](a, b) {
		t.Errorf("shadowed inner binders should still be α-equivalent")
	}

	// But λ(x:Natural) → λ(y:Natural) → x vs λ(x:Natural) → λ(y:Natural) → y:
	// a reference to the outer binder must NOT be equivalent to a same-shape
	// term referring to the inner binder instead.
	c := builder.Lam[X]("x", builder.Natural[X](), builder.Lam[X]("y", builder.Natural[X](), builder.Var[X]("x")))
	d := builder.Lam[X]("x", builder.Natural[X](), builder.Lam[X]("y", builder.Natural[X](), builder.Var[X]("y")))
	if Equivalent[X](c, d) {
		t.Errorf("outer-bound and inner-bound references must not be equivalent")
	}
}

func TestRecordFieldOrderMatters(t *testing.T) {
	r1 := builder.Record[X](builder.RecordField[X]("a", builder.Natural[X]()), builder.RecordField[X]("b", builder.Bool[X]()))
	r2 := builder.Record[X](builder.RecordField[X]("b", builder.Bool[X]()), builder.RecordField[X]("a", builder.Natural[X]()))
	if Equivalent[X](r1, r2) {
		t.Errorf("records in canonical order are compared positionally; reordered keys must differ")
	}
}

func TestStructurallyEqualDoesNotRenormalize(t *testing.T) {
	// 1 + 1 and 2 are equivalent once normalized, but NOT structurally equal
	// as raw (un-normalized) syntax.
	a := builder.NaturalPlus[X](builder.NaturalLit[X](1), builder.NaturalLit[X](1))
	b := builder.NaturalLit[X](2)
	if StructurallyEqual[X](a, b) {
		t.Errorf("StructurallyEqual must not normalize operands")
	}
	if !Equivalent[X](a, b) {
		t.Errorf("Equivalent must normalize before comparing")
	}
}

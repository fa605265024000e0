package normalize

import (
	"errors"
	"testing"

	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/builder"
	"github.com/corecalc/corecalc/internal/equivalence"
	"github.com/corecalc/corecalc/internal/prettyprinter"
	"github.com/corecalc/corecalc/internal/substitution"
)

type X = ast.X

func pretty(e ast.Expr[X]) string { return prettyprinter.Pretty(e) }

func TestBetaReduction(t *testing.T) {
	// (λ(x : Natural) → x + 1) 5  ~>  6
	id := builder.Lam[X]("x", builder.Natural[X](),
		builder.NaturalPlus[X](builder.Var[X]("x"), builder.NaturalLit[X](1)))
	app := builder.App[X](id, builder.NaturalLit[X](5))

	got := Normalize(app)
	if pretty(got) != "+6" {
		t.Errorf("Normalize(app) = %s, want +6", pretty(got))
	}
}

func TestPrimitiveFolding(t *testing.T) {
	cases := []struct {
		name string
		e    ast.Expr[X]
		want string
	}{
		{"and", builder.BoolAnd[X](builder.BoolLit[X](true), builder.BoolLit[X](false)), "False"},
		{"or", builder.BoolOr[X](builder.BoolLit[X](false), builder.BoolLit[X](true)), "True"},
		{"plus", builder.NaturalPlus[X](builder.NaturalLit[X](2), builder.NaturalLit[X](3)), "+5"},
		{"times", builder.NaturalTimes[X](builder.NaturalLit[X](2), builder.NaturalLit[X](3)), "+6"},
		{"append", builder.TextAppend[X](builder.TextLit[X]("ab"), builder.TextLit[X]("cd")), `"abcd"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := pretty(Normalize(c.e)); got != c.want {
				t.Errorf("Normalize(%s) = %s, want %s", c.name, got, c.want)
			}
		})
	}
}

func TestIfReducesOnLiteralCondition(t *testing.T) {
	e := builder.BoolIf[X](builder.BoolLit[X](true), builder.NaturalLit[X](1), builder.NaturalLit[X](2))
	if got := pretty(Normalize(e)); got != "+1" {
		t.Errorf("Normalize(if True ...) = %s, want +1", got)
	}
}

func TestNaturalFoldFusion(t *testing.T) {
	// Natural/fold 3 Natural (λ(n:Natural) → n + 1) 0  ~>  3
	succ := builder.Lam[X]("n", builder.Natural[X](),
		builder.NaturalPlus[X](builder.Var[X]("n"), builder.NaturalLit[X](1)))
	e := builder.Apply[X](builder.NaturalFold[X](),
		builder.NaturalLit[X](3), builder.Natural[X](), succ, builder.NaturalLit[X](0))

	if got := pretty(Normalize(e)); got != "+3" {
		t.Errorf("Normalize(Natural/fold 3 ...) = %s, want +3", got)
	}
}

func TestListBuildFusion(t *testing.T) {
	// List/build Natural (λ(list:*) → λ(cons : Natural → list → list) → λ(nil : list) → cons 1 (cons 2 nil))
	listVar := "list"
	consVar := "cons"
	nilVar := "nil"
	body := builder.Apply[X](builder.Var[X](consVar),
		builder.NaturalLit[X](1),
		builder.Apply[X](builder.Var[X](consVar), builder.NaturalLit[X](2), builder.Var[X](nilVar)))
	consType := builder.Arrow[X](builder.Natural[X](), builder.Arrow[X](builder.Var[X](listVar), builder.Var[X](listVar)))
	builderFn := builder.Lam[X](listVar, builder.Type[X](),
		builder.Lam[X](consVar, consType,
			builder.Lam[X](nilVar, builder.Var[X](listVar), body)))

	e := builder.Apply[X](builder.ListBuild[X](), builder.Natural[X](), builderFn)

	got := Normalize(e)
	want := builder.ListLit[X](builder.Natural[X](), builder.NaturalLit[X](1), builder.NaturalLit[X](2))
	if !equivalence.Equivalent(got, want) {
		t.Errorf("Normalize(List/build ...) = %s, want %s", pretty(got), pretty(want))
	}
}

func TestListFoldSumsElements(t *testing.T) {
	// List/fold Natural [1, 2, 3] Natural (+) 0  ~>  6
	list := builder.ListLit[X](builder.Natural[X](), builder.NaturalLit[X](1), builder.NaturalLit[X](2), builder.NaturalLit[X](3))
	plus := builder.Lam[X]("a", builder.Natural[X](),
		builder.Lam[X]("b", builder.Natural[X](), builder.NaturalPlus[X](builder.Var[X]("a"), builder.Var[X]("b"))))

	e := builder.Apply[X](builder.ListFold[X](), builder.Natural[X](), list, builder.Natural[X](), plus, builder.NaturalLit[X](0))

	if got := pretty(Normalize(e)); got != "+6" {
		t.Errorf("Normalize(List/fold ...) = %s, want +6", got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	e := builder.NaturalPlus[X](builder.NaturalLit[X](2), builder.NaturalLit[X](3))
	once := Normalize(e)
	twice := Normalize(once)
	if !equivalence.StructurallyEqual(once, twice) {
		t.Errorf("Normalize is not idempotent: once=%s twice=%s", pretty(once), pretty(twice))
	}
}

func TestLetsDesugaringMatchesDirectSubstitution(t *testing.T) {
	// let a = 1 let b (x : Natural) = a + x in b 2
	// Normalizing the Lets form (via desugarLets) must agree with manually
	// substituting both bindings in turn via internal/substitution.Subst.
	inner := builder.Lets1[X]("b",
		[]ast.Arg[X]{builder.NewArg[X]("x", builder.Natural[X]())},
		builder.NaturalPlus[X](builder.Var[X]("a"), builder.Var[X]("x")),
		builder.App[X](builder.Var[X]("b"), builder.NaturalLit[X](2)))
	lets := builder.Lets1[X]("a", nil, builder.NaturalLit[X](1), inner).(ast.Lets[X])

	viaNormalize := Normalize[X](lets)

	bLam := builder.Lam[X]("x", builder.Natural[X](),
		builder.NaturalPlus[X](builder.NaturalLit[X](1), builder.Var[X]("x")))
	viaManualSubst := Normalize[X](substitution.Subst[X]("b", bLam,
		substitution.Subst[X]("a", builder.NaturalLit[X](1), inner)))

	if !equivalence.Equivalent(viaNormalize, viaManualSubst) {
		t.Errorf("desugarLets diverged from manual substitution: %s vs %s",
			pretty(viaNormalize), pretty(viaManualSubst))
	}
	if pretty(viaNormalize) != "+3" {
		t.Errorf("Normalize(lets) = %s, want +3", pretty(viaNormalize))
	}
}

func TestNormalizeBoundedReportsMaxDepthExceeded(t *testing.T) {
	// A deeply right-nested NaturalPlus chain exceeds a tiny bound.
	e := ast.Expr[X](builder.NaturalLit[X](0))
	for i := 0; i < 50; i++ {
		e = builder.NaturalPlus[X](builder.NaturalLit[X](1), e)
	}

	_, err := NormalizeBounded(e, WithMaxDepth(5))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("NormalizeBounded with tiny depth = %v, want ErrMaxDepthExceeded", err)
	}

	_, err = NormalizeBounded(e, WithMaxDepth(1000))
	if err != nil {
		t.Errorf("NormalizeBounded with ample depth: unexpected error %v", err)
	}
}

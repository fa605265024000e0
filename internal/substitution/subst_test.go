package substitution

import (
	"testing"

	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/prettyprinter"
)

func pretty(e ast.Expr[ast.X]) string { return prettyprinter.Pretty(e) }

func TestSubstVar(t *testing.T) {
	x := ast.Var[ast.X]{Name: "x"}
	y := ast.Var[ast.X]{Name: "y"}
	two := ast.NaturalLit[ast.X]{Value: 2}

	if got := Subst[ast.X]("x", two, x); pretty(got) != "+2" {
		t.Errorf("Subst(x, 2, x) = %s, want +2", pretty(got))
	}
	if got := Subst[ast.X]("x", two, y); pretty(got) != "y" {
		t.Errorf("Subst(x, 2, y) = %s, want y", pretty(got))
	}
}

func TestSubstLamShadowsBoundName(t *testing.T) {
	// λ(x : Natural) → x  — substituting x should not touch the bound
	// occurrence, since Lam's own Arg shadows it.
	lam := ast.Lam[ast.X]{
		Arg:   "x",
		Annot: ast.NaturalType[ast.X]{},
		Body:  ast.Var[ast.X]{Name: "x"},
	}
	got := Subst[ast.X]("x", ast.NaturalLit[ast.X]{Value: 9}, lam)
	want := "λ(x : Natural) → x"
	if pretty(got) != want {
		t.Errorf("Subst under shadowing Lam = %s, want %s", pretty(got), want)
	}
}

func TestSubstLamDoesNotShadowFreeAnnot(t *testing.T) {
	// λ(y : x) → y  — x is free in the annotation and must be substituted.
	lam := ast.Lam[ast.X]{
		Arg:   "y",
		Annot: ast.Var[ast.X]{Name: "x"},
		Body:  ast.Var[ast.X]{Name: "y"},
	}
	got := Subst[ast.X]("x", ast.NaturalType[ast.X]{}, lam)
	want := "λ(y : Natural) → y"
	if pretty(got) != want {
		t.Errorf("Subst into Lam annot = %s, want %s", pretty(got), want)
	}
}

func TestSubstLetsShadowingAcrossBindings(t *testing.T) {
	// let a = x let b (x : x) = x in a  — substituting x: the second
	// binding's argument named x shadows the outer substitution target for
	// everything after that argument (argFlag), so its own type annotation is
	// still substituted but the rhs `x` refers to the just-bound argument.
	term := ast.Lets[ast.X]{
		Bindings: []ast.LetBinding[ast.X]{
			{Name: "a", Rhs: ast.Var[ast.X]{Name: "x"}},
			{
				Name: "b",
				Args: []ast.Arg[ast.X]{{Name: "x", Type: ast.Var[ast.X]{Name: "x"}}},
				Rhs:  ast.Var[ast.X]{Name: "x"},
			},
		},
		Body: ast.Var[ast.X]{Name: "a"},
	}
	got := Subst[ast.X]("x", ast.NaturalType[ast.X]{}, term).(ast.Lets[ast.X])

	if pretty(got.Bindings[0].Rhs) != "Natural" {
		t.Errorf("first binding rhs = %s, want Natural (x substituted)", pretty(got.Bindings[0].Rhs))
	}
	// The second binding's argument type still refers to the outer x
	// (argFlag is true before any arg named x has been seen).
	if pretty(got.Bindings[1].Args[0].Type) != "Natural" {
		t.Errorf("second binding arg type = %s, want Natural", pretty(got.Bindings[1].Args[0].Type))
	}
	// But its rhs now refers to the just-bound argument x, not the outer one.
	if pretty(got.Bindings[1].Rhs) != "x" {
		t.Errorf("second binding rhs = %s, want x (shadowed)", pretty(got.Bindings[1].Rhs))
	}
}

func TestSubstDistributesThroughApp(t *testing.T) {
	app := ast.App[ast.X]{
		Fn:  ast.Var[ast.X]{Name: "f"},
		Arg: ast.Var[ast.X]{Name: "x"},
	}
	got := Subst[ast.X]("x", ast.NaturalLit[ast.X]{Value: 5}, app)
	if pretty(got) != "f +5" {
		t.Errorf("Subst through App = %s, want f +5", pretty(got))
	}
}

package cache

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/builder"
	"github.com/corecalc/corecalc/internal/diagnostics"
)

type X = ast.X

func TestTypeOfMissComputesAndHitSkipsCompute(t *testing.T) {
	c := New()
	e := ast.Expr[X](builder.NaturalLit[X](1))
	want := ast.Expr[X](builder.Natural[X]())

	var calls int32
	compute := func() (ast.Expr[X], *diagnostics.DiagnosticError) {
		atomic.AddInt32(&calls, 1)
		return want, nil
	}

	typ, derr := c.TypeOf(e, compute)
	if derr != nil || typ != want {
		t.Fatalf("first TypeOf call: typ=%v derr=%v", typ, derr)
	}
	if calls != 1 {
		t.Fatalf("expected 1 compute call, got %d", calls)
	}

	typ2, derr2 := c.TypeOf(e, compute)
	if derr2 != nil || typ2 != want {
		t.Fatalf("second TypeOf call: typ=%v derr=%v", typ2, derr2)
	}
	if calls != 1 {
		t.Errorf("expected compute to run only once, ran %d times", calls)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestTypeOfDistinguishesDistinctExpressions(t *testing.T) {
	c := New()
	one := ast.Expr[X](builder.NaturalLit[X](1))
	two := ast.Expr[X](builder.NaturalLit[X](2))
	natural := ast.Expr[X](builder.Natural[X]())

	c.TypeOf(one, func() (ast.Expr[X], *diagnostics.DiagnosticError) { return natural, nil })
	c.TypeOf(two, func() (ast.Expr[X], *diagnostics.DiagnosticError) { return natural, nil })

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 distinct entries", c.Len())
	}
}

func TestTypeOfCachesErrors(t *testing.T) {
	c := New()
	e := ast.Expr[X](builder.Var[X]("ghost"))
	wantErr := diagnostics.NewUnboundVariable("ghost", nil)

	var calls int32
	compute := func() (ast.Expr[X], *diagnostics.DiagnosticError) {
		atomic.AddInt32(&calls, 1)
		return nil, wantErr
	}

	_, derr := c.TypeOf(e, compute)
	if derr != wantErr {
		t.Fatalf("unexpected error: %v", derr)
	}
	c.TypeOf(e, compute)
	if calls != 1 {
		t.Errorf("expected error result to be cached, compute ran %d times", calls)
	}
}

func TestTypeOfCoalescesConcurrentDuplicateLookups(t *testing.T) {
	c := New()
	e := ast.Expr[X](builder.NaturalLit[X](7))
	natural := ast.Expr[X](builder.Natural[X]())

	var calls int32
	release := make(chan struct{})
	compute := func() (ast.Expr[X], *diagnostics.DiagnosticError) {
		atomic.AddInt32(&calls, 1)
		<-release
		return natural, nil
	}

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			c.TypeOf(e, compute)
		}()
	}
	close(release)
	wg.Wait()

	if calls != 1 {
		t.Errorf("expected singleflight to coalesce to 1 compute call, got %d", calls)
	}
}

func TestClearEmptiesInMemoryTier(t *testing.T) {
	c := New()
	e := ast.Expr[X](builder.NaturalLit[X](1))
	c.TypeOf(e, func() (ast.Expr[X], *diagnostics.DiagnosticError) { return builder.Natural[X](), nil })
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry before Clear")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestHashExprIsDeterministicAndDistinguishesShapes(t *testing.T) {
	a := builder.NaturalPlus[X](builder.NaturalLit[X](1), builder.NaturalLit[X](2))
	b := builder.NaturalPlus[X](builder.NaturalLit[X](1), builder.NaturalLit[X](2))
	c := builder.NaturalPlus[X](builder.NaturalLit[X](2), builder.NaturalLit[X](1))

	if HashExpr(a) != HashExpr(b) {
		t.Errorf("identical expressions hashed differently")
	}
	if HashExpr(a) == HashExpr(c) {
		t.Errorf("differently-shaped expressions hashed identically")
	}
}

// Package corecalc is the public facade over the core calculus: type
// checking, normalization, substitution, and pretty printing, plus the
// result cache. It is a thin wrapper exposing the internal engine's
// operations under stable names for outside callers, so internal packages
// stay free to change shape.
package corecalc

import (
	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/builder"
	"github.com/corecalc/corecalc/internal/cache"
	"github.com/corecalc/corecalc/internal/diagnostics"
	"github.com/corecalc/corecalc/internal/equivalence"
	"github.com/corecalc/corecalc/internal/normalize"
	"github.com/corecalc/corecalc/internal/prettyprinter"
	"github.com/corecalc/corecalc/internal/substitution"
	"github.com/corecalc/corecalc/internal/typecheck"
)

// Expr is a closed expression tree — the unit every exported operation
// here accepts and returns.
type Expr = ast.Expr[ast.X]

// TypeError is the diagnostic a type-checking call reports on failure.
type TypeError = diagnostics.DiagnosticError

// Context is the typing context TypeWith checks e against: an ordered
// association of names already in scope to their types.
type Context = typecheck.Context

// TypeOf synthesizes e's type.
func TypeOf(e Expr) (Expr, *TypeError) {
	return typecheck.TypeOf(e)
}

// TypeWith synthesizes e's type under ctx, for checking a subexpression
// that references names not bound within e itself.
func TypeWith(ctx *Context, e Expr) (Expr, *TypeError) {
	return typecheck.TypeWith(ctx, e)
}

// Normalize reduces e to normal form.
func Normalize(e Expr) Expr {
	return normalize.Normalize(e)
}

// Subst replaces free occurrences of name with value in e, respecting
// binder scoping and capture-avoidance.
func Subst(name string, value, e Expr) Expr {
	return substitution.Subst[ast.X](name, value, e)
}

// Pretty renders e in canonical surface syntax.
func Pretty(e Expr) string {
	return prettyprinter.Pretty(e)
}

// Equivalent reports whether e1 and e2 denote the same value.
func Equivalent(e1, e2 Expr) bool {
	return equivalence.Equivalent(e1, e2)
}

// ParseJSON decodes a JSON-encoded expression tree (see internal/builder
// for the wire shape). The result may still contain Embed nodes; resolve
// them before calling TypeOf, which only accepts closed expressions.
func ParseJSON(data []byte) (ast.Expr[ast.Path], error) {
	return builder.ParseJSON(data)
}

// Engine bundles a result cache with the stateless operations above, for
// callers that want memoized type-checking across many calls.
type Engine struct {
	cache *cache.Cache
}

// NewEngine returns an Engine backed by an in-memory cache.
func NewEngine() *Engine {
	return &Engine{cache: cache.New()}
}

// NewEngineWithDisk returns an Engine whose cache also persists to disk.
func NewEngineWithDisk(disk *cache.DiskCache) *Engine {
	return &Engine{cache: cache.NewWithDisk(disk)}
}

// TypeOf synthesizes e's type, memoizing the result.
func (g *Engine) TypeOf(e Expr) (Expr, *TypeError) {
	return g.cache.TypeOf(e, func() (Expr, *TypeError) {
		return typecheck.TypeOf(e)
	})
}

// TypeWith synthesizes e's type under ctx, memoizing the result.
//
// The cache key is derived from e's own text alone, so two calls with the
// same e but different ctx would collide; callers mixing TypeWith across
// distinct contexts for structurally identical expressions should use
// separate Engines.
func (g *Engine) TypeWith(ctx *Context, e Expr) (Expr, *TypeError) {
	return g.cache.TypeOf(e, func() (Expr, *TypeError) {
		return typecheck.TypeWith(ctx, e)
	})
}

// CacheLen reports the number of memoized entries.
func (g *Engine) CacheLen() int { return g.cache.Len() }

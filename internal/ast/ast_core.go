// Package ast defines the expression algebra of the core calculus: a
// tagged-variant tree parameterized by the payload type of embedded
// references (Expr[A]), plus the traversal contract (map/bind) that threads
// a function through every embedded payload without disturbing binders.
package ast

import "fmt"

// Sort is the two-element enumeration of sorts in the pure type system:
// Type (the sort of ordinary types) and Kind (the sort of Type itself).
type Sort int

const (
	SortType Sort = iota
	SortKind
)

func (s Sort) String() string {
	switch s {
	case SortType:
		return "Type"
	case SortKind:
		return "Kind"
	default:
		return fmt.Sprintf("Sort(%d)", int(s))
	}
}

// PathKind distinguishes the two forms an Embed payload's Path can take.
type PathKind int

const (
	PathFile PathKind = iota
	PathURL
)

// Path is the payload carried by Embed in the reference implementation: a
// filesystem path or a URL. The core never inspects it beyond structural
// equality; it exists so a concrete EmbedPayload is available to callers
// that don't need a richer one.
type Path struct {
	Kind PathKind
	File string // valid when Kind == PathFile
	URL  string // valid when Kind == PathURL
}

func (p Path) Equal(other EmbedPayload) bool {
	o, ok := other.(Path)
	if !ok {
		return false
	}
	return p.Kind == o.Kind && p.File == o.File && p.URL == o.URL
}

func (p Path) Render() string {
	switch p.Kind {
	case PathURL:
		return p.URL
	default:
		return p.File
	}
}

// EmbedPayload is the contract every Embed payload type must satisfy: the
// core only ever compares payloads for structural equality and renders them
// for diagnostics, so that's all it demands.
type EmbedPayload interface {
	Equal(other EmbedPayload) bool
	Render() string
}

// X is the uninhabited embed-payload type. Its zero-size unexported field
// means X{} cannot be constructed outside this package, and this package
// never constructs one either — so no value of X ever exists. Expr[X]
// denotes a closed expression: one with no remaining Embed nodes.
type X struct {
	never [0]func()
}

func (X) Equal(EmbedPayload) bool { panic("unreachable: X is uninhabited") }
func (X) Render() string          { panic("unreachable: X is uninhabited") }

// Absurd eliminates an (impossible) value of X to any type. Call sites that
// reach this are evidence of a broken invariant elsewhere, not a runtime
// condition to recover from.
func Absurd[T any](x X) T {
	panic("unreachable: Absurd called on uninhabited X")
}

// Expr is the primary tree. A, the embed payload type, threads through every
// node without constraining their shape — only Embed ever holds one.
type Expr[A EmbedPayload] interface {
	exprTag()
}

// ---- variables, application, binders ----

type ConstExpr[A EmbedPayload] struct{ Sort Sort }

func (ConstExpr[A]) exprTag() {}

// Var is a bare variable reference by name; there is no de Bruijn index.
type Var[A EmbedPayload] struct{ Name string }

func (Var[A]) exprTag() {}

// Lam is a λ-abstraction; Body may refer to Var with Name == Arg.
type Lam[A EmbedPayload] struct {
	Arg   string
	Annot Expr[A]
	Body  Expr[A]
}

func (Lam[A]) exprTag() {}

// Pi is the dependent function type ∀(x : A) → B. Arg == "_" means B does
// not depend on x (the ordinary, non-dependent function type A → B).
type Pi[A EmbedPayload] struct {
	Arg   string
	Annot Expr[A]
	Body  Expr[A]
}

func (Pi[A]) exprTag() {}

type App[A EmbedPayload] struct {
	Fn  Expr[A]
	Arg Expr[A]
}

func (App[A]) exprTag() {}

// Arg is one (name, type) pair in a Let binding's argument list.
type Arg[A EmbedPayload] struct {
	Name string
	Type Expr[A]
}

// LetBinding is one binding in a Lets block: `let f (a1:t1)...(an:tn) = rhs`,
// equivalent to `let f = λ(a1:t1) → ... → λ(an:tn) → rhs`.
type LetBinding[A EmbedPayload] struct {
	Name string
	Args []Arg[A]
	Rhs  Expr[A]
}

// Lets is a block of one or more LetBinding, each of which may shadow
// earlier names in the scope of later bindings and of Body.
type Lets[A EmbedPayload] struct {
	Bindings []LetBinding[A]
	Body     Expr[A]
}

func (Lets[A]) exprTag() {}

// Annot is a type ascription `x : t`.
type Annot[A EmbedPayload] struct {
	Value Expr[A]
	Type  Expr[A]
}

func (Annot[A]) exprTag() {}

// Embed is an opaque external reference; the core threads a function
// through its payload (see Bind/Map) but never inspects or reduces it.
type Embed[A EmbedPayload] struct{ Payload A }

func (Embed[A]) exprTag() {}

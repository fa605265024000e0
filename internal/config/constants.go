// Package config holds the names and flags the core must agree on verbatim:
// built-in name constants and a couple of process-wide mode flags.
package config

// Version is the current corecalc version.
var Version = "0.1.0"

// Built-in function names the normalizer and type checker recognize.
const (
	NaturalFoldName = "Natural/fold"
	ListBuildName   = "List/build"
	ListFoldName    = "List/fold"
)

// ConsName and NilName are the literal free-variable names the List/build
// fusion rule scans for when detecting a Cons/Nil spine. This detection is
// fragile under shadowing: the two identifiers are matched literally rather
// than resolved through the surrounding binders, and internal/normalize
// preserves that rather than resolving them properly.
const (
	ConsName = "Cons"
	NilName  = "Nil"
)

// IsTestMode is a process-wide test-mode flag. No package in this module
// reads or sets it, and the core generates no fresh variable names for it
// to affect.
var IsTestMode = false

// DefaultMaxDepth bounds the recursion depth of Normalize/TypeWith when a
// caller opts into the bounded variants (internal/normalize.WithMaxDepth,
// internal/typecheck.WithMaxDepth): exceeding a depth limit must be a
// caller-visible error, not unbounded recursion. The unbounded entry points
// (the package default) never apply this limit.
const DefaultMaxDepth = 4096

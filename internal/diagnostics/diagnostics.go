// Package diagnostics implements the type checker's closed error taxonomy
// and its rendering: one constructor per error kind, each producing the
// shared DiagnosticError struct, with a stable Code field tests and callers
// can assert on directly via errors.As.
package diagnostics

import (
	"fmt"
	"strings"
)

// ErrorCode is the closed enumeration of type-checker failures.
type ErrorCode int

const (
	UnboundVariable ErrorCode = iota
	InvalidInputType
	InvalidOutputType
	NotAFunction
	TypeMismatch
	AnnotMismatch
	Untyped
	InvalidElement
	InvalidMaybeTypeParam
	InvalidListTypeParam
	InvalidListType
	InvalidPredicate
	IfBranchMismatch
	InvalidFieldType
	NotARecord
	MissingField
	CantAnd
	CantOr
	CantAppend
	CantAdd
	CantMultiply
)

var codeNames = map[ErrorCode]string{
	UnboundVariable:       "UnboundVariable",
	InvalidInputType:      "InvalidInputType",
	InvalidOutputType:     "InvalidOutputType",
	NotAFunction:          "NotAFunction",
	TypeMismatch:          "TypeMismatch",
	AnnotMismatch:         "AnnotMismatch",
	Untyped:               "Untyped",
	InvalidElement:        "InvalidElement",
	InvalidMaybeTypeParam: "InvalidMaybeTypeParam",
	InvalidListTypeParam:  "InvalidListTypeParam",
	InvalidListType:       "InvalidListType",
	InvalidPredicate:      "InvalidPredicate",
	IfBranchMismatch:      "IfBranchMismatch",
	InvalidFieldType:      "InvalidFieldType",
	NotARecord:            "NotARecord",
	MissingField:          "MissingField",
	CantAnd:               "CantAnd",
	CantOr:                "CantOr",
	CantAppend:            "CantAppend",
	CantAdd:               "CantAdd",
	CantMultiply:          "CantMultiply",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// ContextEntry is one (name : type) line of the context dump that precedes
// a DiagnosticError's explanation. Type is already pretty-printed —
// diagnostics never imports the prettyprinter itself, so the dependency
// direction points outward from the core algorithms.
type ContextEntry struct {
	Name string
	Type string
}

// DiagnosticError pairs a context dump, an offending (pretty-printed)
// subexpression, and a tagged ErrorCode.
type DiagnosticError struct {
	Code          ErrorCode
	Context       []ContextEntry // oldest-first
	Offending     string         // pretty-printed smallest enclosing expression
	Explanation   string         // one-line human-readable reason
	CorrelationID string         // optional; stamped by cmd/corecalc
}

// Error renders the multi-line diagnostic: context dump, then label, then
// explanation, then the offending subexpression.
func (e *DiagnosticError) Error() string {
	var b strings.Builder
	for _, c := range e.Context {
		fmt.Fprintf(&b, "%s : %s\n", c.Name, c.Type)
	}
	if e.CorrelationID != "" {
		fmt.Fprintf(&b, "[%s] ", e.CorrelationID)
	}
	fmt.Fprintf(&b, "%s\n", e.Code)
	fmt.Fprintf(&b, "%s\n", e.Explanation)
	if e.Offending != "" {
		b.WriteString(e.Offending)
		b.WriteByte('\n')
	}
	return b.String()
}

// WithCorrelationID returns a copy of e stamped with id (cmd/corecalc uses
// this to tie every diagnostic from one invocation together).
func (e *DiagnosticError) WithCorrelationID(id string) *DiagnosticError {
	cp := *e
	cp.CorrelationID = id
	return &cp
}

func newErr(code ErrorCode, ctx []ContextEntry, offending, explanation string) *DiagnosticError {
	return &DiagnosticError{Code: code, Context: ctx, Offending: offending, Explanation: explanation}
}

func NewUnboundVariable(name string, ctx []ContextEntry) *DiagnosticError {
	return newErr(UnboundVariable, ctx, name, fmt.Sprintf("variable %q is not bound in the context", name))
}

func NewInvalidInputType(offending string, ctx []ContextEntry) *DiagnosticError {
	return newErr(InvalidInputType, ctx, offending, "a Pi's input annotation must synthesize to a sort (Type or Kind)")
}

func NewInvalidOutputType(offending string, ctx []ContextEntry) *DiagnosticError {
	return newErr(InvalidOutputType, ctx, offending, "a Pi's output annotation must synthesize to a sort (Type or Kind)")
}

func NewNotAFunction(offending, actualType string, ctx []ContextEntry) *DiagnosticError {
	return newErr(NotAFunction, ctx, offending, fmt.Sprintf("expected a function type, got %s", actualType))
}

func NewTypeMismatch(expected, actual string, ctx []ContextEntry) *DiagnosticError {
	return newErr(TypeMismatch, ctx, "", fmt.Sprintf("expected type %s, got %s", expected, actual))
}

func NewAnnotMismatch(offending, annotated, inferred string, ctx []ContextEntry) *DiagnosticError {
	return newErr(AnnotMismatch, ctx, offending, fmt.Sprintf("annotated as %s but inferred as %s", annotated, inferred))
}

func NewUntyped(sort string, ctx []ContextEntry) *DiagnosticError {
	return newErr(Untyped, ctx, sort, fmt.Sprintf("%s has no type", sort))
}

func NewInvalidElement(index int, elem, expectedType, actualType string, ctx []ContextEntry) *DiagnosticError {
	return newErr(InvalidElement, ctx, elem,
		fmt.Sprintf("list element %d has type %s, expected %s", index, actualType, expectedType))
}

func NewInvalidMaybeTypeParam(offending string, ctx []ContextEntry) *DiagnosticError {
	return newErr(InvalidMaybeTypeParam, ctx, offending, "Maybe's type parameter must synthesize to Type")
}

func NewInvalidListTypeParam(offending string, ctx []ContextEntry) *DiagnosticError {
	return newErr(InvalidListTypeParam, ctx, offending, "List's type parameter must synthesize to Type")
}

func NewInvalidListType(offending string, ctx []ContextEntry) *DiagnosticError {
	return newErr(InvalidListType, ctx, offending, "a list literal's element-type annotation must synthesize to Type")
}

func NewInvalidPredicate(offending, actualType string, ctx []ContextEntry) *DiagnosticError {
	return newErr(InvalidPredicate, ctx, offending, fmt.Sprintf("an if condition must have type Bool, got %s", actualType))
}

func NewIfBranchMismatch(thenExpr, elseExpr, thenType, elseType string, ctx []ContextEntry) *DiagnosticError {
	return newErr(IfBranchMismatch, ctx, fmt.Sprintf("%s : %s\n%s : %s", thenExpr, thenType, elseExpr, elseType),
		fmt.Sprintf("if branches disagree: then-branch has type %s, else-branch has type %s", thenType, elseType))
}

func NewInvalidFieldType(key, offending string, ctx []ContextEntry) *DiagnosticError {
	return newErr(InvalidFieldType, ctx, offending, fmt.Sprintf("record field %q's type must synthesize to Type", key))
}

func NewNotARecord(key, offending, actualType string, ctx []ContextEntry) *DiagnosticError {
	return newErr(NotARecord, ctx, offending, fmt.Sprintf("cannot project field %q: not a record (got %s)", key, actualType))
}

func NewMissingField(key, recordType string, ctx []ContextEntry) *DiagnosticError {
	return newErr(MissingField, ctx, recordType, fmt.Sprintf("record has no field %q", key))
}

// side is "left", "right", or "" when the offending operand's position is
// not distinguished.
func NewCantAnd(side, offending, actualType string, ctx []ContextEntry) *DiagnosticError {
	return newErr(CantAnd, ctx, offending, fmt.Sprintf("&& requires Bool operands, %s side has type %s", sideLabel(side), actualType))
}

func NewCantOr(side, offending, actualType string, ctx []ContextEntry) *DiagnosticError {
	return newErr(CantOr, ctx, offending, fmt.Sprintf("|| requires Bool operands, %s side has type %s", sideLabel(side), actualType))
}

func NewCantAppend(offending, actualType string, ctx []ContextEntry) *DiagnosticError {
	return newErr(CantAppend, ctx, offending, fmt.Sprintf("++ requires Text operands, got %s", actualType))
}

// hint is appended when the offending operand is an IntegerLit n, suggesting
// the Natural literal +n instead.
func NewCantAdd(offending, actualType, hint string, ctx []ContextEntry) *DiagnosticError {
	explanation := fmt.Sprintf("+ requires Natural operands, got %s", actualType)
	if hint != "" {
		explanation += "; did you mean " + hint + "?"
	}
	return newErr(CantAdd, ctx, offending, explanation)
}

func NewCantMultiply(offending, actualType, hint string, ctx []ContextEntry) *DiagnosticError {
	explanation := fmt.Sprintf("* requires Natural operands, got %s", actualType)
	if hint != "" {
		explanation += "; did you mean " + hint + "?"
	}
	return newErr(CantMultiply, ctx, offending, explanation)
}

func sideLabel(side string) string {
	if side == "" {
		return "an"
	}
	return "the " + side
}

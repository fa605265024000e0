package ast

import "golang.org/x/text/unicode/norm"

// NormalizeText applies Unicode NFC normalization to text literal contents.
// Two TextLit values that differ only by composed-vs-decomposed form
// (e.g. "é" as U+00E9 vs "e"+U+0301) compare equal and render identically
// once they pass through here, which both the builder (at construction
// time) and TextAppend fusion (at concatenation time) rely on.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}

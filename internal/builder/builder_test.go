package builder

import (
	"testing"

	"github.com/corecalc/corecalc/internal/ast"
	"github.com/corecalc/corecalc/internal/prettyprinter"
)

type X = ast.X

func pretty(e ast.Expr[X]) string { return prettyprinter.Pretty(e) }

func TestArrowBuildsNonDependentPi(t *testing.T) {
	e := Arrow[X](Natural[X](), Bool[X]())
	pi, ok := e.(ast.Pi[X])
	if !ok {
		t.Fatalf("Arrow did not build a Pi, got %T", e)
	}
	if pi.Arg != "_" {
		t.Errorf("Arrow's bound name = %q, want \"_\"", pi.Arg)
	}
}

func TestApplyFoldsAppLeftToRight(t *testing.T) {
	e := Apply[X](Var[X]("f"), Var[X]("a"), Var[X]("b"), Var[X]("c"))
	if got := pretty(e); got != "f a b c" {
		t.Errorf("Apply(f,a,b,c) = %s, want %s", got, "f a b c")
	}
	outer, ok := e.(ast.App[X])
	if !ok {
		t.Fatalf("Apply result is not an App: %T", e)
	}
	if _, ok := outer.Arg.(ast.Var[X]); !ok || outer.Arg.(ast.Var[X]).Name != "c" {
		t.Errorf("outermost App's argument should be the last operand c")
	}
}

func TestLets1BuildsSingleBinding(t *testing.T) {
	e := Lets1[X]("x", nil, NaturalLit[X](1), Var[X]("x"))
	lets, ok := e.(ast.Lets[X])
	if !ok {
		t.Fatalf("Lets1 did not build a Lets, got %T", e)
	}
	if len(lets.Bindings) != 1 || lets.Bindings[0].Name != "x" {
		t.Errorf("Lets1 produced unexpected bindings: %+v", lets.Bindings)
	}
}

func TestTextLitNormalizesToNFC(t *testing.T) {
	// "e" + combining acute (NFD) should normalize to precomposed é (NFC).
	decomposed := "é"
	e := TextLit[X](decomposed).(ast.TextLit[X])
	if e.Value == decomposed {
		t.Errorf("TextLit did not normalize %q to NFC", decomposed)
	}
	if e.Value != "é" {
		t.Errorf("TextLit(%q) = %q, want %q", decomposed, e.Value, "é")
	}
}

func TestRecordAndProjectRoundTrip(t *testing.T) {
	lit := RecordLit[X](RecordFieldValue[X]("a", NaturalLit[X](1)))
	e := Project[X](lit, "a")
	if got := pretty(e); got != "{ a = +1 }.a" {
		t.Errorf("Project(record, a) = %s, want %s", got, "{ a = +1 }.a")
	}
}

func TestParseJSONVarAndApp(t *testing.T) {
	doc := []byte(`{"kind":"app","fn":{"kind":"var","name":"f"},"arg2":{"kind":"naturalLit","nat":5}}`)
	e, err := ParseJSON(doc)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	app, ok := e.(ast.App[ast.Path])
	if !ok {
		t.Fatalf("expected App, got %T", e)
	}
	if v, ok := app.Fn.(ast.Var[ast.Path]); !ok || v.Name != "f" {
		t.Errorf("unexpected fn: %+v", app.Fn)
	}
	if n, ok := app.Arg.(ast.NaturalLit[ast.Path]); !ok || n.Value != 5 {
		t.Errorf("unexpected arg: %+v", app.Arg)
	}
}

func TestParseJSONLambdaAndPi(t *testing.T) {
	doc := []byte(`{"kind":"lam","arg":"x","annot":{"kind":"natural"},"body":{"kind":"var","name":"x"}}`)
	e, err := ParseJSON(doc)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	lam, ok := e.(ast.Lam[ast.Path])
	if !ok {
		t.Fatalf("expected Lam, got %T", e)
	}
	if lam.Arg != "x" {
		t.Errorf("lam.Arg = %q, want x", lam.Arg)
	}
}

func TestParseJSONEmbedFileAndURL(t *testing.T) {
	fileDoc := []byte(`{"kind":"embed","pathKind":"file","path":"./foo.core"}`)
	e, err := ParseJSON(fileDoc)
	if err != nil {
		t.Fatalf("ParseJSON(file embed) failed: %v", err)
	}
	embed, ok := e.(ast.Embed[ast.Path])
	if !ok {
		t.Fatalf("expected Embed, got %T", e)
	}
	if embed.Payload.Kind != ast.PathFile || embed.Payload.File != "./foo.core" {
		t.Errorf("unexpected file embed payload: %+v", embed.Payload)
	}

	urlDoc := []byte(`{"kind":"embed","pathKind":"url","path":"https://example.com/x.core"}`)
	e2, err := ParseJSON(urlDoc)
	if err != nil {
		t.Fatalf("ParseJSON(url embed) failed: %v", err)
	}
	embed2 := e2.(ast.Embed[ast.Path])
	if embed2.Payload.Kind != ast.PathURL || embed2.Payload.URL != "https://example.com/x.core" {
		t.Errorf("unexpected url embed payload: %+v", embed2.Payload)
	}
}

func TestParseJSONListAndRecord(t *testing.T) {
	doc := []byte(`{
		"kind": "listLit",
		"elemType": {"kind": "natural"},
		"elements": [
			{"kind": "naturalLit", "nat": 1},
			{"kind": "naturalLit", "nat": 2}
		]
	}`)
	e, err := ParseJSON(doc)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	list, ok := e.(ast.ListLit[ast.Path])
	if !ok {
		t.Fatalf("expected ListLit, got %T", e)
	}
	if len(list.Elements) != 2 {
		t.Errorf("expected 2 elements, got %d", len(list.Elements))
	}
}

func TestParseJSONLets(t *testing.T) {
	doc := []byte(`{
		"kind": "lets",
		"bindings": [
			{"name": "double", "args": [{"name": "n", "type": {"kind": "natural"}}],
			 "rhs": {"kind": "naturalTimes", "left": {"kind": "var", "name": "n"}, "right": {"kind": "naturalLit", "nat": 2}}}
		],
		"body": {"kind": "app", "fn": {"kind": "var", "name": "double"}, "arg2": {"kind": "naturalLit", "nat": 21}}
	}`)
	e, err := ParseJSON(doc)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	lets, ok := e.(ast.Lets[ast.Path])
	if !ok {
		t.Fatalf("expected Lets, got %T", e)
	}
	if len(lets.Bindings) != 1 || lets.Bindings[0].Name != "double" || len(lets.Bindings[0].Args) != 1 {
		t.Errorf("unexpected bindings: %+v", lets.Bindings)
	}
}

func TestParseJSONUnknownKindFails(t *testing.T) {
	doc := []byte(`{"kind":"bogus"}`)
	if _, err := ParseJSON(doc); err == nil {
		t.Errorf("expected error for unknown kind, got nil")
	}
}

func TestParseJSONMissingScalarFieldFails(t *testing.T) {
	doc := []byte(`{"kind":"naturalLit"}`)
	if _, err := ParseJSON(doc); err == nil {
		t.Errorf("expected error for naturalLit missing nat field, got nil")
	}
}

func TestParseJSONInvalidJSONFails(t *testing.T) {
	if _, err := ParseJSON([]byte(`not json`)); err == nil {
		t.Errorf("expected decoding error, got nil")
	}
}

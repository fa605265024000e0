// JSON tree decoding for cmd/corecalc: the CLI reads an expression as a
// JSON document shaped like this package's Node, and Build walks it into
// the real Expr[ast.Path] tree using the constructors in builder.go. Embed
// nodes carry ast.Path (file or URL), the one concrete EmbedPayload the
// core ships, so CLI-submitted documents can reference external
// expressions by file path or URL.
package builder

import (
	"encoding/json"
	"fmt"

	"github.com/corecalc/corecalc/internal/ast"
)

// Node is the JSON wire shape of one Expr node. Kind selects which fields
// are meaningful; unused fields are omitted by callers and ignored here.
type Node struct {
	Kind string `json:"kind"`

	// Var
	Name string `json:"name,omitempty"`

	// Lam, Pi: Arg/Annot/Body
	Arg   string `json:"arg,omitempty"`
	Annot *Node  `json:"annot,omitempty"`
	Body  *Node  `json:"body,omitempty"`

	// App: Fn/Arg2 (Arg is taken by Lam/Pi's bound name above)
	Fn   *Node `json:"fn,omitempty"`
	Arg2 *Node `json:"arg2,omitempty"`

	// Lets
	Bindings []JSONBinding `json:"bindings,omitempty"`

	// Annot (type ascription): Value/Type
	Value *Node `json:"value,omitempty"`
	Type  *Node `json:"type,omitempty"`

	// Embed
	PathKind string `json:"pathKind,omitempty"` // "file" | "url"
	Path     string `json:"path,omitempty"`

	// ConstExpr
	Sort string `json:"sort,omitempty"` // "Type" | "Kind"

	// BoolLit, NaturalLit, IntegerLit, DoubleLit, TextLit
	Bool   *bool    `json:"bool,omitempty"`
	Nat    *uint64  `json:"nat,omitempty"`
	Int    *int64   `json:"int,omitempty"`
	Double *float64 `json:"double,omitempty"`
	Text   string   `json:"text,omitempty"`

	// BoolAnd/Or, NaturalPlus/Times, TextAppend: Left/Right
	Left  *Node `json:"left,omitempty"`
	Right *Node `json:"right,omitempty"`

	// BoolIf: Cond/Then/Else
	Cond *Node `json:"cond,omitempty"`
	Then *Node `json:"then,omitempty"`
	Else *Node `json:"else,omitempty"`

	// MaybeType, ListType: Elem
	Elem *Node `json:"elem,omitempty"`

	// ListLit: ElemType/Elements
	ElemType *Node  `json:"elemType,omitempty"`
	Elements []Node `json:"elements,omitempty"`

	// RecordType: Fields
	Fields []JSONField `json:"fields,omitempty"`
	// RecordLit: FieldValues
	FieldValues []JSONFieldValue `json:"fieldValues,omitempty"`

	// Project: Record/Key
	Record *Node  `json:"record,omitempty"`
	Key    string `json:"key,omitempty"`
}

type JSONArg struct {
	Name string `json:"name"`
	Type Node   `json:"type"`
}

type JSONBinding struct {
	Name string    `json:"name"`
	Args []JSONArg `json:"args,omitempty"`
	Rhs  Node      `json:"rhs"`
}

type JSONField struct {
	Key  string `json:"key"`
	Type Node   `json:"type"`
}

type JSONFieldValue struct {
	Key   string `json:"key"`
	Value Node   `json:"value"`
}

// ParseJSON decodes a JSON document into an Expr[ast.Path] tree.
func ParseJSON(data []byte) (ast.Expr[ast.Path], error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("builder: decoding JSON: %w", err)
	}
	return Build(&n)
}

// Build converts a decoded Node tree into the corresponding Expr[ast.Path].
func Build(n *Node) (ast.Expr[ast.Path], error) {
	if n == nil {
		return nil, fmt.Errorf("builder: nil node")
	}
	switch n.Kind {
	case "const":
		switch n.Sort {
		case "Type":
			return Type[ast.Path](), nil
		case "Kind":
			return Kind[ast.Path](), nil
		default:
			return nil, fmt.Errorf("builder: unknown sort %q", n.Sort)
		}
	case "var":
		return Var[ast.Path](n.Name), nil
	case "lam":
		annot, body, err := buildPair(n.Annot, n.Body)
		if err != nil {
			return nil, err
		}
		return Lam[ast.Path](n.Arg, annot, body), nil
	case "pi":
		annot, body, err := buildPair(n.Annot, n.Body)
		if err != nil {
			return nil, err
		}
		return Pi[ast.Path](n.Arg, annot, body), nil
	case "app":
		fn, err := Build(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := Build(n.Arg2)
		if err != nil {
			return nil, err
		}
		return App[ast.Path](fn, arg), nil
	case "lets":
		bindings := make([]ast.LetBinding[ast.Path], len(n.Bindings))
		for i, jb := range n.Bindings {
			args := make([]ast.Arg[ast.Path], len(jb.Args))
			for j, ja := range jb.Args {
				t, err := Build(&ja.Type)
				if err != nil {
					return nil, err
				}
				args[j] = NewArg[ast.Path](ja.Name, t)
			}
			rhs, err := Build(&jb.Rhs)
			if err != nil {
				return nil, err
			}
			bindings[i] = Binding[ast.Path](jb.Name, args, rhs)
		}
		body, err := Build(n.Body)
		if err != nil {
			return nil, err
		}
		return Lets[ast.Path](bindings, body), nil
	case "annot":
		value, typ, err := buildPairVT(n.Value, n.Type)
		if err != nil {
			return nil, err
		}
		return Annot[ast.Path](value, typ), nil
	case "embed":
		switch n.PathKind {
		case "url":
			return Embed[ast.Path](ast.Path{Kind: ast.PathURL, URL: n.Path}), nil
		default:
			return Embed[ast.Path](ast.Path{Kind: ast.PathFile, File: n.Path}), nil
		}

	case "bool":
		return Bool[ast.Path](), nil
	case "boolLit":
		if n.Bool == nil {
			return nil, fmt.Errorf("builder: boolLit missing bool field")
		}
		return BoolLit[ast.Path](*n.Bool), nil
	case "boolAnd":
		l, r, err := buildPair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return BoolAnd[ast.Path](l, r), nil
	case "boolOr":
		l, r, err := buildPair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return BoolOr[ast.Path](l, r), nil
	case "boolIf":
		cond, err := Build(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := Build(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := Build(n.Else)
		if err != nil {
			return nil, err
		}
		return BoolIf[ast.Path](cond, then, els), nil

	case "natural":
		return Natural[ast.Path](), nil
	case "naturalLit":
		if n.Nat == nil {
			return nil, fmt.Errorf("builder: naturalLit missing nat field")
		}
		return NaturalLit[ast.Path](*n.Nat), nil
	case "naturalFold":
		return NaturalFold[ast.Path](), nil
	case "naturalPlus":
		l, r, err := buildPair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return NaturalPlus[ast.Path](l, r), nil
	case "naturalTimes":
		l, r, err := buildPair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return NaturalTimes[ast.Path](l, r), nil

	case "integer":
		return Integer[ast.Path](), nil
	case "integerLit":
		if n.Int == nil {
			return nil, fmt.Errorf("builder: integerLit missing int field")
		}
		return IntegerLit[ast.Path](*n.Int), nil

	case "double":
		return Double[ast.Path](), nil
	case "doubleLit":
		if n.Double == nil {
			return nil, fmt.Errorf("builder: doubleLit missing double field")
		}
		return DoubleLit[ast.Path](*n.Double), nil

	case "text":
		return Text[ast.Path](), nil
	case "textLit":
		return TextLit[ast.Path](n.Text), nil
	case "textAppend":
		l, r, err := buildPair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return TextAppend[ast.Path](l, r), nil

	case "maybe":
		elem, err := Build(n.Elem)
		if err != nil {
			return nil, err
		}
		return Maybe[ast.Path](elem), nil
	case "nothing":
		return Nothing[ast.Path](), nil
	case "just":
		return Just[ast.Path](), nil

	case "list":
		elem, err := Build(n.Elem)
		if err != nil {
			return nil, err
		}
		return List[ast.Path](elem), nil
	case "listLit":
		elemType, err := Build(n.ElemType)
		if err != nil {
			return nil, err
		}
		elements := make([]ast.Expr[ast.Path], len(n.Elements))
		for i := range n.Elements {
			el, err := Build(&n.Elements[i])
			if err != nil {
				return nil, err
			}
			elements[i] = el
		}
		return ListLit[ast.Path](elemType, elements...), nil
	case "listBuild":
		return ListBuild[ast.Path](), nil
	case "listFold":
		return ListFold[ast.Path](), nil

	case "record":
		fields := make([]ast.RecordField[ast.Path], len(n.Fields))
		for i, jf := range n.Fields {
			t, err := Build(&jf.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = RecordField[ast.Path](jf.Key, t)
		}
		return Record[ast.Path](fields...), nil
	case "recordLit":
		fields := make([]ast.RecordFieldValue[ast.Path], len(n.FieldValues))
		for i, jf := range n.FieldValues {
			v, err := Build(&jf.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = RecordFieldValue[ast.Path](jf.Key, v)
		}
		return RecordLit[ast.Path](fields...), nil
	case "project":
		record, err := Build(n.Record)
		if err != nil {
			return nil, err
		}
		return Project[ast.Path](record, n.Key), nil

	default:
		return nil, fmt.Errorf("builder: unknown node kind %q", n.Kind)
	}
}

func buildPair(a, b *Node) (ast.Expr[ast.Path], ast.Expr[ast.Path], error) {
	av, err := Build(a)
	if err != nil {
		return nil, nil, err
	}
	bv, err := Build(b)
	if err != nil {
		return nil, nil, err
	}
	return av, bv, nil
}

func buildPairVT(value, typ *Node) (ast.Expr[ast.Path], ast.Expr[ast.Path], error) {
	return buildPair(value, typ)
}

package jsparse_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Sumatoshi-tech/jsmangle/pkg/jsast"
	"github.com/Sumatoshi-tech/jsmangle/pkg/jsparse"
)

func parse(t *testing.T, source string) *jsast.Program {
	t.Helper()

	program, err := jsparse.NewParser().ParseAs(context.Background(), jsparse.LangJavaScript, []byte(source))
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}

	return program
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     jsparse.Language
		ok       bool
	}{
		{"app.js", jsparse.LangJavaScript, true},
		{"component.jsx", jsparse.LangJavaScript, true},
		{"mod.mjs", jsparse.LangJavaScript, true},
		{"legacy.cjs", jsparse.LangJavaScript, true},
		{"service.ts", jsparse.LangTypeScript, true},
		{"mod.mts", jsparse.LangTypeScript, true},
		{"main.go", "", false},
		{"README", "", false},
	}

	for _, tt := range tests {
		got, ok := jsparse.DetectLanguage(tt.filename)
		if ok != tt.ok || got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, %v; want %q, %v", tt.filename, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseUnsupportedFile(t *testing.T) {
	t.Parallel()

	_, err := jsparse.NewParser().Parse(context.Background(), "main.go", []byte("package main"))
	if !errors.Is(err, jsparse.ErrUnsupportedFile) {
		t.Fatalf("err = %v, want ErrUnsupportedFile", err)
	}
}

func TestParseVariableDeclaration(t *testing.T) {
	t.Parallel()

	program := parse(t, "var a = 1, b")

	if len(program.Body) != 1 {
		t.Fatalf("body length = %d, want 1", len(program.Body))
	}

	decl, ok := program.Body[0].(*jsast.VariableDeclaration)
	if !ok {
		t.Fatalf("statement = %T, want *jsast.VariableDeclaration", program.Body[0])
	}

	if decl.Kind != jsast.DeclVar || len(decl.Declarations) != 2 {
		t.Fatalf("kind = %v, declarators = %d", decl.Kind, len(decl.Declarations))
	}

	if decl.Declarations[1].Init != nil {
		t.Fatal("second declarator should have no initializer")
	}
}

func TestParseConstDetection(t *testing.T) {
	t.Parallel()

	program := parse(t, "const c = 1; let l = 2")

	first := program.Body[0].(*jsast.VariableDeclaration)
	second := program.Body[1].(*jsast.VariableDeclaration)

	if first.Kind != jsast.DeclConst {
		t.Fatalf("first kind = %v, want const", first.Kind)
	}

	if second.Kind != jsast.DeclLet {
		t.Fatalf("second kind = %v, want let", second.Kind)
	}
}

func TestParseFunctionForms(t *testing.T) {
	t.Parallel()

	program := parse(t, "var a = function() {}; var b = function named() {}; var c = () => 1; var d = async () => {}")

	inits := make([]jsast.Expression, 0, 4)
	for _, stmt := range program.Body {
		decl := stmt.(*jsast.VariableDeclaration)
		inits = append(inits, decl.Declarations[0].Init)
	}

	anon, ok := inits[0].(*jsast.FunctionExpression)
	if !ok || anon.Name != nil {
		t.Fatalf("init 0 = %T (name %v), want anonymous function", inits[0], anon.Name)
	}

	named, ok := inits[1].(*jsast.FunctionExpression)
	if !ok || named.Name == nil || named.Name.Name != "named" {
		t.Fatalf("init 1 should be a named function expression")
	}

	if _, ok := inits[2].(*jsast.ArrowFunction); !ok {
		t.Fatalf("init 2 = %T, want *jsast.ArrowFunction", inits[2])
	}

	arrow, ok := inits[3].(*jsast.ArrowFunction)
	if !ok || !arrow.Async {
		t.Fatalf("init 3 should be an async arrow")
	}
}

func TestParseRestParameter(t *testing.T) {
	t.Parallel()

	program := parse(t, "function f(a, ...rest) {}")

	decl, ok := program.Body[0].(*jsast.FunctionDeclaration)
	if !ok {
		t.Fatalf("statement = %T, want *jsast.FunctionDeclaration", program.Body[0])
	}

	if len(decl.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(decl.Params))
	}

	rest, ok := decl.Params[1].(*jsast.BindingRestElement)
	if !ok {
		t.Fatalf("param 1 = %T, want *jsast.BindingRestElement", decl.Params[1])
	}

	id, ok := rest.Arg.(*jsast.BindingIdentifier)
	if !ok || id.Name != "rest" {
		t.Fatalf("rest argument = %T, want identifier rest", rest.Arg)
	}
}

func TestParseClassForms(t *testing.T) {
	t.Parallel()

	program := parse(t, "class Foo extends Bar { constructor() {} get x() { return 1 } static y = 2 }")

	decl, ok := program.Body[0].(*jsast.ClassDeclaration)
	if !ok {
		t.Fatalf("statement = %T, want *jsast.ClassDeclaration", program.Body[0])
	}

	if decl.Name == nil || decl.Name.Name != "Foo" {
		t.Fatal("class name not lowered")
	}

	if _, ok := decl.SuperClass.(*jsast.IdentifierReference); !ok {
		t.Fatalf("superclass = %T, want identifier reference", decl.SuperClass)
	}

	if len(decl.Body) != 3 {
		t.Fatalf("class elements = %d, want 3", len(decl.Body))
	}
}

func TestParseAssignmentOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   jsast.AssignmentOperator
	}{
		{"x = 1", jsast.AssignPlain},
		{"x ||= 1", jsast.AssignLogicalOr},
		{"x &&= 1", jsast.AssignLogicalAnd},
		{"x ??= 1", jsast.AssignNullishCoal},
	}

	for _, tt := range tests {
		program := parse(t, tt.source)

		stmt := program.Body[0].(*jsast.ExpressionStatement)

		assign, ok := stmt.Expr.(*jsast.AssignmentExpression)
		if !ok {
			t.Fatalf("%q: expression = %T, want assignment", tt.source, stmt.Expr)
		}

		if assign.Operator != tt.want {
			t.Errorf("%q: operator = %q, want %q", tt.source, assign.Operator, tt.want)
		}
	}
}

func TestParseDestructuringPatterns(t *testing.T) {
	t.Parallel()

	program := parse(t, "var [a, , b = 1, ...rest] = xs")

	decl := program.Body[0].(*jsast.VariableDeclaration)

	pattern, ok := decl.Declarations[0].ID.(*jsast.ArrayPattern)
	if !ok {
		t.Fatalf("pattern = %T, want *jsast.ArrayPattern", decl.Declarations[0].ID)
	}

	if pattern.Rest == nil {
		t.Fatal("rest element not lowered")
	}

	foundDefault := false

	for _, element := range pattern.Elements {
		if _, ok := element.(*jsast.AssignmentPattern); ok {
			foundDefault = true
		}
	}

	if !foundDefault {
		t.Fatal("defaulted element not lowered as assignment pattern")
	}
}

func TestParseObjectPatternShorthand(t *testing.T) {
	t.Parallel()

	program := parse(t, "var { a, b = 2, c: d } = o")

	decl := program.Body[0].(*jsast.VariableDeclaration)

	pattern, ok := decl.Declarations[0].ID.(*jsast.ObjectPattern)
	if !ok {
		t.Fatalf("pattern = %T, want *jsast.ObjectPattern", decl.Declarations[0].ID)
	}

	if len(pattern.Properties) != 3 {
		t.Fatalf("properties = %d, want 3", len(pattern.Properties))
	}

	if !pattern.Properties[0].Shorthand || pattern.Properties[0].Key != "a" {
		t.Fatal("shorthand property not lowered")
	}

	if _, ok := pattern.Properties[1].Value.(*jsast.AssignmentPattern); !ok {
		t.Fatal("shorthand default not lowered as assignment pattern")
	}

	if pattern.Properties[2].Key != "c" {
		t.Fatal("keyed property key not lowered")
	}
}

func TestParseDestructuringAssignment(t *testing.T) {
	t.Parallel()

	program := parse(t, "({ a, b = 1 } = o)")

	stmt := program.Body[0].(*jsast.ExpressionStatement)

	assign, ok := stmt.Expr.(*jsast.AssignmentExpression)
	if !ok {
		t.Fatalf("expression = %T, want assignment", stmt.Expr)
	}

	target, ok := assign.Target.(*jsast.ObjectAssignmentTarget)
	if !ok {
		t.Fatalf("target = %T, want *jsast.ObjectAssignmentTarget", assign.Target)
	}

	if len(target.Properties) != 2 {
		t.Fatalf("target properties = %d, want 2", len(target.Properties))
	}

	withDefault, ok := target.Properties[1].(*jsast.AssignmentTargetPropertyIdentifier)
	if !ok || withDefault.Init == nil {
		t.Fatal("shorthand target default not lowered")
	}
}

func TestParseForInOf(t *testing.T) {
	t.Parallel()

	program := parse(t, "for (const x of xs) {} for (var k in o) {}")

	forOf, ok := program.Body[0].(*jsast.ForInStatement)
	if !ok || !forOf.Of {
		t.Fatalf("statement 0 should be for-of")
	}

	forIn, ok := program.Body[1].(*jsast.ForInStatement)
	if !ok || forIn.Of {
		t.Fatalf("statement 1 should be for-in")
	}
}

func TestParseTypeScript(t *testing.T) {
	t.Parallel()

	source := "const handler: (e: Event) => void = (e) => {}; interface X { a: number }"

	program, err := jsparse.NewParser().ParseAs(context.Background(), jsparse.LangTypeScript, []byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	decl, ok := program.Body[0].(*jsast.VariableDeclaration)
	if !ok {
		t.Fatalf("statement = %T, want variable declaration", program.Body[0])
	}

	if _, ok := decl.Declarations[0].Init.(*jsast.ArrowFunction); !ok {
		t.Fatalf("init = %T, want arrow function", decl.Declarations[0].Init)
	}
}

func TestParseUnknownConstructs(t *testing.T) {
	t.Parallel()

	// Constructs outside the modeled surface stay visible as unknowns
	// rather than disappearing.
	program := parse(t, "label: { break label }")

	if len(program.Body) == 0 {
		t.Fatal("labeled statement dropped")
	}

	if _, ok := program.Body[0].(*jsast.UnknownStatement); !ok {
		t.Fatalf("statement = %T, want *jsast.UnknownStatement", program.Body[0])
	}
}

package keepnames_test

import (
	"context"
	"sort"
	"testing"

	"github.com/Sumatoshi-tech/jsmangle/pkg/jsparse"
	"github.com/Sumatoshi-tech/jsmangle/pkg/keepnames"
	"github.com/Sumatoshi-tech/jsmangle/pkg/semantic"
)

// collectNames runs the full pipeline on source and returns the sorted
// preserved names.
func collectNames(t *testing.T, source string) []string {
	t.Helper()

	return collectNamesAs(t, jsparse.LangJavaScript, source)
}

func collectNamesAs(t *testing.T, lang jsparse.Language, source string) []string {
	t.Helper()

	parser := jsparse.NewParser()

	program, err := parser.ParseAs(context.Background(), lang, []byte(source))
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}

	sem := semantic.NewBuilder().Build(program)
	preserved := keepnames.Collect(sem.Scoping(), sem.Nodes())

	names := make([]string, 0, len(preserved))
	for id := range preserved {
		names = append(names, sem.Scoping().SymbolName(id))
	}

	sort.Strings(names)

	return names
}

func assertNames(t *testing.T, source string, want ...string) {
	t.Helper()

	got := collectNames(t, source)

	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", source, got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: got %v, want %v", source, got, want)
		}
	}
}

func TestDeclarations(t *testing.T) {
	t.Parallel()

	assertNames(t, "function foo() {}", "foo")
	assertNames(t, "class Foo {}", "Foo")
}

func TestSimpleDeclareInit(t *testing.T) {
	t.Parallel()

	assertNames(t, "var foo = function() {}", "foo")
	assertNames(t, "var foo = () => {}", "foo")
	assertNames(t, "var Foo = class {}", "Foo")
}

func TestSimpleAssign(t *testing.T) {
	t.Parallel()

	assertNames(t, "var foo; foo = function() {}", "foo")
	assertNames(t, "var foo; foo = () => {}", "foo")
	assertNames(t, "var Foo; Foo = class {}", "Foo")

	assertNames(t, "var foo; foo ||= function() {}", "foo")
	assertNames(t, "var foo = 1; foo &&= function() {}", "foo")
	assertNames(t, "var foo; foo ??= function() {}", "foo")

	// Any assignment operator counts; the classification is structural.
	assertNames(t, "var foo; foo += function() {}", "foo")
}

func TestDefaultDeclarations(t *testing.T) {
	t.Parallel()

	assertNames(t, "var [foo = function() {}] = []", "foo")
	assertNames(t, "var [foo = () => {}] = []", "foo")
	assertNames(t, "var [Foo = class {}] = []", "Foo")
	assertNames(t, "var { foo = function() {} } = {}", "foo")
}

func TestDefaultAssign(t *testing.T) {
	t.Parallel()

	assertNames(t, "var foo; [foo = function() {}] = []", "foo")
	assertNames(t, "var foo; [foo = () => {}] = []", "foo")
	assertNames(t, "var Foo; [Foo = class {}] = []", "Foo")
	assertNames(t, "var foo; ({ foo = function() {} } = {})", "foo")
}

func TestForInDeclaration(t *testing.T) {
	t.Parallel()

	assertNames(t, "for (var foo = function() {} in []) {}", "foo")
	assertNames(t, "for (var foo = () => {} in []) {}", "foo")
	assertNames(t, "for (var Foo = class {} in []) {}", "Foo")
}

func TestNoPreservation(t *testing.T) {
	t.Parallel()

	assertNames(t, "var foo = 1")
	assertNames(t, "var foo = bar")
	assertNames(t, "var foo = {}")
	assertNames(t, "foo(function() {})")
	// The binding receives a value whose name is already set; only the
	// expression's own name stays.
	assertNames(t, "var foo = function named() {}", "named")
}

func TestParameterDefaults(t *testing.T) {
	t.Parallel()

	// Parameter defaults set the name on a fresh value per call; the
	// parameter binding itself is free to be renamed.
	assertNames(t, "function outer(foo = function() {}) {}", "outer")
	assertNames(t, "const f = (foo = () => {}) => {}", "f")
}

func TestRestParameterAssignment(t *testing.T) {
	t.Parallel()

	// The rest parameter itself never preserves at its declaration, but an
	// assignment reference to it follows the ordinary reference-site rule.
	assertNames(t, "function f(...cb) { cb = function() {} }", "cb", "f")
	assertNames(t, "function f(...cb) {}", "f")
}

func TestNestedPatterns(t *testing.T) {
	t.Parallel()

	assertNames(t, "var [{ a: [foo = () => {}] }] = []", "foo")
	assertNames(t, "var { a: { b: [Foo = class {}] } } = {}", "Foo")
	assertNames(t, "var [, , foo = function() {}] = []", "foo")
}

func TestMultipleBindings(t *testing.T) {
	t.Parallel()

	assertNames(t, "var a = function() {}, b = 1, c = () => {}", "a", "c")
	assertNames(t, "function foo() {} class Bar {} var baz = class {}", "Bar", "baz", "foo")
}

func TestLexicalDeclarations(t *testing.T) {
	t.Parallel()

	assertNames(t, "let foo = function() {}", "foo")
	assertNames(t, "const Foo = class {}", "Foo")
	assertNames(t, "const foo = () => {}, bar = 1", "foo")
}

func TestInnerScopes(t *testing.T) {
	t.Parallel()

	assertNames(t, "function outer() { var inner = function() {} }", "inner", "outer")
	assertNames(t, "{ let foo = () => {} }", "foo")
	assertNames(t, "var foo; { foo = function() {} }", "foo")
}

func TestTypeScript(t *testing.T) {
	t.Parallel()

	got := collectNamesAs(t, jsparse.LangTypeScript, "const foo: () => void = () => {}")
	if len(got) != 1 || got[0] != "foo" {
		t.Fatalf("got %v, want [foo]", got)
	}
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	const source = "var a = function() {}; var b = () => {}; class C {}"

	first := collectNames(t, source)
	for range 10 {
		if got := collectNames(t, source); len(got) != len(first) {
			t.Fatalf("non-deterministic result: %v vs %v", got, first)
		}
	}
}

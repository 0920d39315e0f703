package semantic_test

import (
	"context"
	"testing"

	"github.com/Sumatoshi-tech/jsmangle/pkg/jsast"
	"github.com/Sumatoshi-tech/jsmangle/pkg/jsparse"
	"github.com/Sumatoshi-tech/jsmangle/pkg/semantic"
)

func build(t *testing.T, source string) *semantic.Semantic {
	t.Helper()

	parser := jsparse.NewParser()

	program, err := parser.ParseAs(context.Background(), jsparse.LangJavaScript, []byte(source))
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}

	return semantic.NewBuilder().Build(program)
}

func symbolNames(sem *semantic.Semantic) map[string]jsast.SymbolID {
	names := make(map[string]jsast.SymbolID)
	for id := range sem.Scoping().SymbolIDs() {
		names[sem.Scoping().SymbolName(id)] = id
	}

	return names
}

func TestBuildDeclarations(t *testing.T) {
	t.Parallel()

	sem := build(t, "var a = 1; let b; const c = 2; function d() {} class E {}")

	names := symbolNames(sem)
	for _, want := range []string{"a", "b", "c", "d", "E"} {
		if _, ok := names[want]; !ok {
			t.Fatalf("symbol %q not declared", want)
		}
	}
}

func TestBuildRootNode(t *testing.T) {
	t.Parallel()

	sem := build(t, "var a = 1")

	root, ok := sem.Nodes().RootNode()
	if !ok {
		t.Fatal("no root node")
	}

	if _, isProgram := root.Kind().(*jsast.Program); !isProgram {
		t.Fatalf("root kind = %T, want *jsast.Program", root.Kind())
	}
}

func TestBuildReferenceResolution(t *testing.T) {
	t.Parallel()

	sem := build(t, "var foo; foo = 1; foo = 2")

	names := symbolNames(sem)

	refs := sem.Scoping().ResolvedReferenceIDs(names["foo"])
	if len(refs) != 2 {
		t.Fatalf("resolved references = %d, want 2", len(refs))
	}
}

func TestBuildHoisting(t *testing.T) {
	t.Parallel()

	// The use precedes the declaration textually; resolution happens after
	// the full walk, so the reference still lands on the symbol.
	sem := build(t, "foo(); function foo() {}")

	names := symbolNames(sem)

	refs := sem.Scoping().ResolvedReferenceIDs(names["foo"])
	if len(refs) != 1 {
		t.Fatalf("resolved references = %d, want 1", len(refs))
	}
}

func TestBuildVarHoistsFromBlock(t *testing.T) {
	t.Parallel()

	sem := build(t, "function f() { { var hoisted = 1 } return hoisted }")

	names := symbolNames(sem)

	refs := sem.Scoping().ResolvedReferenceIDs(names["hoisted"])
	if len(refs) != 1 {
		t.Fatalf("var in block should resolve from function body; got %d refs", len(refs))
	}
}

func TestBuildLetStaysInBlock(t *testing.T) {
	t.Parallel()

	sem := build(t, "{ let scoped = 1 } scoped")

	names := symbolNames(sem)

	refs := sem.Scoping().ResolvedReferenceIDs(names["scoped"])
	if len(refs) != 0 {
		t.Fatalf("let must not leak out of its block; got %d refs", len(refs))
	}
}

func TestBuildShadowing(t *testing.T) {
	t.Parallel()

	sem := build(t, "let x = 1; function f() { let x = 2; x }")

	count := 0
	for id := range sem.Scoping().SymbolIDs() {
		if sem.Scoping().SymbolName(id) == "x" {
			count++
		}
	}

	if count != 2 {
		t.Fatalf("shadowed binding should yield two symbols, got %d", count)
	}
}

func TestBuildNamedFunctionExpressionScope(t *testing.T) {
	t.Parallel()

	// The expression's own name binds inside the function only.
	sem := build(t, "var f = function inner() { inner() }; inner")

	names := symbolNames(sem)

	refs := sem.Scoping().ResolvedReferenceIDs(names["inner"])
	if len(refs) != 1 {
		t.Fatalf("inner name should resolve only inside the function; got %d refs", len(refs))
	}
}

func TestBuildStampsSymbols(t *testing.T) {
	t.Parallel()

	sem := build(t, "var foo = 1")

	names := symbolNames(sem)

	decl := sem.Nodes().Get(sem.Scoping().SymbolDeclaration(names["foo"]))

	declarator, ok := decl.Kind().(*jsast.VariableDeclarator)
	if !ok {
		t.Fatalf("declaration kind = %T, want *jsast.VariableDeclarator", decl.Kind())
	}

	id, ok := declarator.ID.(*jsast.BindingIdentifier)
	if !ok || id.Symbol != names["foo"] {
		t.Fatal("binding identifier not stamped with its symbol")
	}
}

func TestBuildParameterFlags(t *testing.T) {
	t.Parallel()

	sem := build(t, "function f(a, b) {}")

	flagged := 0
	for node := range sem.Nodes().Iter() {
		if _, ok := node.Kind().(*jsast.BindingIdentifier); ok && node.Flags().Has(semantic.FlagParameter) {
			flagged++
		}
	}

	if flagged != 2 {
		t.Fatalf("parameter-flagged identifiers = %d, want 2", flagged)
	}
}

func TestBuildRestParameter(t *testing.T) {
	t.Parallel()

	sem := build(t, "function f(...args) { args }")

	names := symbolNames(sem)

	id, ok := names["args"]
	if !ok {
		t.Fatal("rest parameter binding not declared")
	}

	refs := sem.Scoping().ResolvedReferenceIDs(id)
	if len(refs) != 1 {
		t.Fatalf("rest parameter references = %d, want 1", len(refs))
	}
}

func TestBuildCatchScope(t *testing.T) {
	t.Parallel()

	sem := build(t, "try { work() } catch (err) { err } err")

	names := symbolNames(sem)

	refs := sem.Scoping().ResolvedReferenceIDs(names["err"])
	if len(refs) != 1 {
		t.Fatalf("catch binding should resolve only inside the handler; got %d refs", len(refs))
	}
}

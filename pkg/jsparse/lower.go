package jsparse

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/jsmangle/pkg/jsast"
)

// lowerer converts one tree-sitter parse into jsast constructs. It borrows
// the source bytes for token extraction and is single-use per parse.
type lowerer struct {
	src []byte
}

// text returns the source text a CST node spans.
func (l *lowerer) text(n sitter.Node) string {
	start, end := n.StartByte(), n.EndByte()
	if end <= uint(len(l.src)) && start <= end {
		return string(l.src[start:end])
	}

	return ""
}

// span returns the node's byte range with 1-based line/column.
func (l *lowerer) span(n sitter.Node) jsast.Span {
	point := n.StartPoint()

	return jsast.Span{
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
		Line:      point.Row + 1,
		Column:    point.Column + 1,
	}
}

// hasToken reports whether any direct child is the given anonymous token.
func hasToken(n sitter.Node, token string) bool {
	for idx := range n.ChildCount() {
		if n.Child(idx).Type() == token {
			return true
		}
	}

	return false
}

// declKind returns the declaration keyword of a for-in/for-of head, if any.
func declKind(n sitter.Node) (jsast.DeclarationKind, bool) {
	for idx := range n.ChildCount() {
		switch n.Child(idx).Type() {
		case "var":
			return jsast.DeclVar, true
		case "let":
			return jsast.DeclLet, true
		case "const":
			return jsast.DeclConst, true
		}
	}

	return "", false
}

func (l *lowerer) lowerProgram(root sitter.Node) *jsast.Program {
	return &jsast.Program{Body: l.lowerStatements(root)}
}

// lowerStatements lowers every named child of n as a statement, dropping
// empties and comments.
func (l *lowerer) lowerStatements(n sitter.Node) []jsast.Statement {
	out := make([]jsast.Statement, 0, n.NamedChildCount())

	for idx := range n.NamedChildCount() {
		if stmt := l.lowerStatement(n.NamedChild(idx)); stmt != nil {
			out = append(out, stmt)
		}
	}

	return out
}

//nolint:cyclop,funlen // closed dispatch over the statement grammar.
func (l *lowerer) lowerStatement(n sitter.Node) jsast.Statement {
	switch n.Type() {
	case "expression_statement":
		inner := n.NamedChild(0)
		if inner.IsNull() {
			return nil
		}

		return &jsast.ExpressionStatement{Expr: l.lowerExpression(inner)}
	case "variable_declaration":
		return l.lowerVariableDeclaration(n, jsast.DeclVar)
	case "lexical_declaration":
		kind := jsast.DeclLet
		if hasToken(n, "const") {
			kind = jsast.DeclConst
		}

		return l.lowerVariableDeclaration(n, kind)
	case "function_declaration", "generator_function_declaration":
		return l.lowerFunctionDeclaration(n)
	case "class_declaration":
		return l.lowerClassDeclaration(n)
	case "statement_block":
		return &jsast.BlockStatement{Body: l.lowerStatements(n)}
	case "if_statement":
		return l.lowerIfStatement(n)
	case "for_statement":
		return l.lowerForStatement(n)
	case "for_in_statement":
		return l.lowerForInStatement(n)
	case "while_statement":
		return &jsast.WhileStatement{
			Test: l.lowerFieldExpression(n, "condition"),
			Body: l.lowerStatement(n.ChildByFieldName("body")),
		}
	case "return_statement":
		ret := &jsast.ReturnStatement{}
		if arg := n.NamedChild(0); !arg.IsNull() {
			ret.Arg = l.lowerExpression(arg)
		}

		return ret
	case "throw_statement":
		return &jsast.ThrowStatement{Arg: l.lowerExpression(n.NamedChild(0))}
	case "try_statement":
		return l.lowerTryStatement(n)
	case "export_statement":
		return l.lowerExportStatement(n)
	case "empty_statement", "comment":
		return nil
	default:
		return l.lowerUnknownStatement(n)
	}
}

// lowerUnknownStatement keeps the named children of an unmodeled statement
// visible: known expressions become expression statements, everything else
// recurses through statement lowering.
func (l *lowerer) lowerUnknownStatement(n sitter.Node) jsast.Statement {
	unknown := &jsast.UnknownStatement{CSTKind: n.Type()}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		var stmt jsast.Statement
		if isExpressionType(child.Type()) {
			stmt = &jsast.ExpressionStatement{Expr: l.lowerExpression(child)}
		} else {
			stmt = l.lowerStatement(child)
		}

		if stmt != nil {
			unknown.Children = append(unknown.Children, stmt)
		}
	}

	return unknown
}

func (l *lowerer) lowerVariableDeclaration(n sitter.Node, kind jsast.DeclarationKind) *jsast.VariableDeclaration {
	decl := &jsast.VariableDeclaration{Kind: kind}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() != "variable_declarator" {
			continue
		}

		declarator := &jsast.VariableDeclarator{ID: l.lowerBindingPattern(child.ChildByFieldName("name"))}
		if value := child.ChildByFieldName("value"); !value.IsNull() {
			declarator.Init = l.lowerExpression(value)
		}

		decl.Declarations = append(decl.Declarations, declarator)
	}

	return decl
}

func (l *lowerer) lowerFunctionDeclaration(n sitter.Node) *jsast.FunctionDeclaration {
	decl := &jsast.FunctionDeclaration{
		Params:    l.lowerParams(n.ChildByFieldName("parameters")),
		Body:      l.lowerBlock(n.ChildByFieldName("body")),
		Generator: n.Type() == "generator_function_declaration",
		Async:     hasToken(n, "async"),
	}

	if name := n.ChildByFieldName("name"); !name.IsNull() {
		decl.Name = l.bindingIdentifier(name)
	}

	return decl
}

func (l *lowerer) lowerClassDeclaration(n sitter.Node) *jsast.ClassDeclaration {
	decl := &jsast.ClassDeclaration{
		SuperClass: l.lowerHeritage(n),
		Body:       l.lowerClassBody(n.ChildByFieldName("body")),
	}

	if name := n.ChildByFieldName("name"); !name.IsNull() {
		decl.Name = l.bindingIdentifier(name)
	}

	return decl
}

// lowerHeritage extracts the extends clause expression, if present.
func (l *lowerer) lowerHeritage(n sitter.Node) jsast.Expression {
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() != "class_heritage" {
			continue
		}

		if inner := child.NamedChild(0); !inner.IsNull() {
			return l.lowerExpression(inner)
		}
	}

	return nil
}

func (l *lowerer) lowerIfStatement(n sitter.Node) *jsast.IfStatement {
	stmt := &jsast.IfStatement{
		Test:       l.lowerFieldExpression(n, "condition"),
		Consequent: l.lowerStatement(n.ChildByFieldName("consequence")),
	}

	if alt := n.ChildByFieldName("alternative"); !alt.IsNull() {
		// else_clause wraps the actual statement.
		if inner := alt.NamedChild(0); !inner.IsNull() {
			stmt.Alternate = l.lowerStatement(inner)
		}
	}

	return stmt
}

func (l *lowerer) lowerForStatement(n sitter.Node) *jsast.ForStatement {
	stmt := &jsast.ForStatement{Body: l.lowerStatement(n.ChildByFieldName("body"))}

	if init := n.ChildByFieldName("initializer"); !init.IsNull() {
		switch init.Type() {
		case "variable_declaration":
			stmt.Init = l.lowerVariableDeclaration(init, jsast.DeclVar)
		case "lexical_declaration":
			kind := jsast.DeclLet
			if hasToken(init, "const") {
				kind = jsast.DeclConst
			}

			stmt.Init = l.lowerVariableDeclaration(init, kind)
		case "expression_statement":
			if inner := init.NamedChild(0); !inner.IsNull() {
				stmt.Init = l.lowerExpression(inner)
			}
		case "empty_statement":
		default:
			stmt.Init = l.lowerExpression(init)
		}
	}

	if cond := n.ChildByFieldName("condition"); !cond.IsNull() {
		if cond.Type() == "expression_statement" {
			if inner := cond.NamedChild(0); !inner.IsNull() {
				stmt.Test = l.lowerExpression(inner)
			}
		} else if cond.Type() != "empty_statement" {
			stmt.Test = l.lowerExpression(cond)
		}
	}

	if update := n.ChildByFieldName("increment"); !update.IsNull() {
		stmt.Update = l.lowerExpression(update)
	}

	return stmt
}

// lowerForInStatement lowers both for-in and for-of heads. A declaration
// head becomes a single-declarator VariableDeclaration; the legacy
// var-with-initializer form carries the initializer on the declarator.
func (l *lowerer) lowerForInStatement(n sitter.Node) *jsast.ForInStatement {
	stmt := &jsast.ForInStatement{
		Of:    hasToken(n, "of"),
		Await: hasToken(n, "await"),
		Right: l.lowerFieldExpression(n, "right"),
		Body:  l.lowerStatement(n.ChildByFieldName("body")),
	}

	left := n.ChildByFieldName("left")

	if kind, ok := declKind(n); ok {
		declarator := &jsast.VariableDeclarator{ID: l.lowerBindingPattern(left)}
		if value := n.ChildByFieldName("value"); !value.IsNull() {
			declarator.Init = l.lowerExpression(value)
		}

		stmt.Left = &jsast.VariableDeclaration{Kind: kind, Declarations: []*jsast.VariableDeclarator{declarator}}
	} else if !left.IsNull() {
		stmt.Left = l.lowerAssignmentTarget(left)
	}

	return stmt
}

func (l *lowerer) lowerTryStatement(n sitter.Node) *jsast.TryStatement {
	stmt := &jsast.TryStatement{Block: l.lowerBlock(n.ChildByFieldName("body"))}

	if handler := n.ChildByFieldName("handler"); !handler.IsNull() {
		clause := &jsast.CatchClause{Body: l.lowerBlock(handler.ChildByFieldName("body"))}
		if param := handler.ChildByFieldName("parameter"); !param.IsNull() {
			clause.Param = l.lowerBindingPattern(param)
		}

		stmt.Handler = clause
	}

	if finalizer := n.ChildByFieldName("finalizer"); !finalizer.IsNull() {
		stmt.Finalizer = l.lowerBlock(finalizer.ChildByFieldName("body"))
	}

	return stmt
}

// lowerExportStatement unwraps the exported declaration or default
// expression; the export itself is not modeled.
func (l *lowerer) lowerExportStatement(n sitter.Node) jsast.Statement {
	if decl := n.ChildByFieldName("declaration"); !decl.IsNull() {
		return l.lowerStatement(decl)
	}

	if value := n.ChildByFieldName("value"); !value.IsNull() {
		return &jsast.ExpressionStatement{Expr: l.lowerExpression(value)}
	}

	return &jsast.UnknownStatement{CSTKind: n.Type()}
}

// lowerBlock lowers a statement_block field into a BlockStatement, tolerating
// absent or unexpected nodes.
func (l *lowerer) lowerBlock(n sitter.Node) *jsast.BlockStatement {
	if n.IsNull() {
		return nil
	}

	if block, ok := l.lowerStatement(n).(*jsast.BlockStatement); ok {
		return block
	}

	return &jsast.BlockStatement{}
}

// lowerFieldExpression lowers the named field as an expression, unwrapping
// one level of parentheses (condition fields arrive parenthesized).
func (l *lowerer) lowerFieldExpression(n sitter.Node, field string) jsast.Expression {
	child := n.ChildByFieldName(field)
	if child.IsNull() {
		return nil
	}

	return l.lowerExpression(child)
}

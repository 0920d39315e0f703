package semantic

import (
	"github.com/Sumatoshi-tech/jsmangle/pkg/jsast"
)

// Semantic bundles the two read-only outputs of a build: the node arena and
// the scoping table. Once built, both may be read concurrently.
type Semantic struct {
	nodes   *Nodes
	scoping *Scoping
}

// Nodes returns the node arena.
func (s *Semantic) Nodes() *Nodes { return s.nodes }

// Scoping returns the symbol/reference table.
func (s *Semantic) Scoping() *Scoping { return s.scoping }

// pendingReference is a use-site awaiting resolution. References resolve
// after the full walk so that hoisted declarations are visible regardless of
// their textual position.
type pendingReference struct {
	ref   jsast.ReferenceID
	scope ScopeID
	name  string
}

// bindingContext carries where a binding pattern's identifiers declare:
// the arena node recorded as their declaration and the scope they bind in.
// A NoNode declNode means each identifier declares at its own arena node
// (parameters, catch bindings).
type bindingContext struct {
	declNode NodeID
	scope    ScopeID
}

// Builder walks a [jsast.Program] in pre-order, assigning every construct an
// arena slot, opening scopes at scope boundaries, declaring bindings and
// recording references. A Builder is single-use.
type Builder struct {
	nodes     *Nodes
	scoping   *Scoping
	scope     ScopeID
	block     BlockID
	nextBlock BlockID
	flags     NodeFlags
	pending   []pendingReference
}

// NewBuilder returns a Builder with empty arena and scoping tables.
func NewBuilder() *Builder {
	return &Builder{
		nodes:   NewNodes(),
		scoping: NewScoping(),
		scope:   noScope,
	}
}

// Build constructs the semantic model of program. The returned model owns
// the arena and scoping table; the builder must not be reused.
func (b *Builder) Build(program *jsast.Program) *Semantic {
	b.scope = b.scoping.addScope(noScope, scopeVarBoundary)
	b.block = b.allocBlock()

	root := b.nodes.AddProgramNode(program, b.scope, b.block, b.flags)
	for _, stmt := range program.Body {
		b.visitStatement(stmt, root)
	}

	b.resolve()

	return &Semantic{nodes: b.nodes, scoping: b.scoping}
}

// allocBlock hands out the next control-flow block id. One block per program
// or function entry; finer-grained flow construction lives elsewhere.
func (b *Builder) allocBlock() BlockID {
	id := b.nextBlock
	b.nextBlock++

	return id
}

// enterNode appends an arena node for kind under parent, tagged with the
// builder's current scope, block and flags.
func (b *Builder) enterNode(kind jsast.Node, parent NodeID) NodeID {
	return b.nodes.AddNode(kind, b.scope, parent, b.block, b.flags)
}

// resolve links every pending reference to the symbol its name reaches via
// the scope chain. Names that reach no binding stay unresolved.
func (b *Builder) resolve() {
	for _, p := range b.pending {
		if symbol, ok := b.scoping.lookup(p.scope, p.name); ok {
			b.scoping.resolveReference(p.ref, symbol)
		}
	}

	b.pending = nil
}

func (b *Builder) visitStatement(stmt jsast.Statement, parent NodeID) {
	switch s := stmt.(type) {
	case *jsast.ExpressionStatement:
		id := b.enterNode(s, parent)
		b.visitExpression(s.Expr, id)
	case *jsast.VariableDeclaration:
		b.visitVariableDeclaration(s, parent)
	case *jsast.FunctionDeclaration:
		id := b.enterNode(s, parent)
		if s.Name != nil {
			b.enterNode(s.Name, id)
			s.Name.Symbol = b.scoping.declareSymbol(b.scope, s.Name.Name, id, s.Name.Span)
		}

		b.visitFunctionParts(s.Params, s.Body, id)
	case *jsast.ClassDeclaration:
		id := b.enterNode(s, parent)
		if s.Name != nil {
			b.enterNode(s.Name, id)
			s.Name.Symbol = b.scoping.declareSymbol(b.scope, s.Name.Name, id, s.Name.Span)
		}

		b.visitClassParts(s.SuperClass, s.Body, id)
	case *jsast.BlockStatement:
		id := b.enterNode(s, parent)
		prev := b.scope
		b.scope = b.scoping.addScope(prev, 0)

		for _, inner := range s.Body {
			b.visitStatement(inner, id)
		}

		b.scope = prev
	case *jsast.IfStatement:
		id := b.enterNode(s, parent)
		b.visitExpression(s.Test, id)
		b.visitStatement(s.Consequent, id)

		if s.Alternate != nil {
			b.visitStatement(s.Alternate, id)
		}
	case *jsast.ForStatement:
		id := b.enterNode(s, parent)
		prev := b.scope
		b.scope = b.scoping.addScope(prev, 0)

		if decl, ok := s.Init.(*jsast.VariableDeclaration); ok {
			b.visitVariableDeclaration(decl, id)
		} else if expr, ok := s.Init.(jsast.Expression); ok {
			b.visitExpression(expr, id)
		}

		if s.Test != nil {
			b.visitExpression(s.Test, id)
		}

		if s.Update != nil {
			b.visitExpression(s.Update, id)
		}

		b.visitStatement(s.Body, id)
		b.scope = prev
	case *jsast.ForInStatement:
		id := b.enterNode(s, parent)
		prev := b.scope
		b.scope = b.scoping.addScope(prev, 0)

		if decl, ok := s.Left.(*jsast.VariableDeclaration); ok {
			b.visitVariableDeclaration(decl, id)
		} else if target, ok := s.Left.(jsast.AssignmentTarget); ok {
			b.visitAssignmentTarget(target, id)
		}

		b.visitExpression(s.Right, id)
		b.visitStatement(s.Body, id)
		b.scope = prev
	case *jsast.WhileStatement:
		id := b.enterNode(s, parent)
		b.visitExpression(s.Test, id)
		b.visitStatement(s.Body, id)
	case *jsast.ReturnStatement:
		id := b.enterNode(s, parent)
		if s.Arg != nil {
			b.visitExpression(s.Arg, id)
		}
	case *jsast.ThrowStatement:
		id := b.enterNode(s, parent)
		b.visitExpression(s.Arg, id)
	case *jsast.TryStatement:
		id := b.enterNode(s, parent)
		b.visitStatement(s.Block, id)

		if s.Handler != nil {
			b.visitCatchClause(s.Handler, id)
		}

		if s.Finalizer != nil {
			b.visitStatement(s.Finalizer, id)
		}
	case *jsast.UnknownStatement:
		id := b.enterNode(s, parent)
		for _, inner := range s.Children {
			b.visitStatement(inner, id)
		}
	}
}

func (b *Builder) visitVariableDeclaration(decl *jsast.VariableDeclaration, parent NodeID) {
	id := b.enterNode(decl, parent)

	bindScope := b.scope
	if decl.Kind == jsast.DeclVar {
		bindScope = b.scoping.varScopeFor(b.scope)
	}

	for _, declarator := range decl.Declarations {
		declID := b.enterNode(declarator, id)
		b.visitBindingPattern(declarator.ID, declID, bindingContext{declNode: declID, scope: bindScope})

		if declarator.Init != nil {
			b.visitExpression(declarator.Init, declID)
		}
	}
}

func (b *Builder) visitCatchClause(clause *jsast.CatchClause, parent NodeID) {
	id := b.enterNode(clause, parent)
	prev := b.scope
	b.scope = b.scoping.addScope(prev, 0)

	if clause.Param != nil {
		b.visitBindingPattern(clause.Param, id, bindingContext{declNode: id, scope: b.scope})
	}

	b.visitStatement(clause.Body, id)
	b.scope = prev
}

// visitFunctionParts opens the function scope and block, then visits the
// parameter list (flagged as parameters, binding in the function scope) and
// the body.
func (b *Builder) visitFunctionParts(params []jsast.BindingPattern, body *jsast.BlockStatement, id NodeID) {
	prevScope, prevBlock := b.scope, b.block
	b.scope = b.scoping.addScope(prevScope, scopeVarBoundary)
	b.block = b.allocBlock()

	b.visitParams(params, id)

	if body != nil {
		b.visitStatement(body, id)
	}

	b.scope, b.block = prevScope, prevBlock
}

func (b *Builder) visitParams(params []jsast.BindingPattern, parent NodeID) {
	prevFlags := b.flags
	b.flags = b.flags.Set(FlagParameter)

	for _, param := range params {
		b.visitBindingPattern(param, parent, bindingContext{declNode: NoNode, scope: b.scope})
	}

	b.flags = prevFlags
}

// visitClassParts visits the heritage clause and class body inside the class
// scope, with body nodes flagged as class members.
func (b *Builder) visitClassParts(superClass jsast.Expression, body []jsast.ClassElement, id NodeID) {
	if superClass != nil {
		b.visitExpression(superClass, id)
	}

	prevFlags := b.flags
	b.flags = b.flags.Set(FlagClass)

	for _, element := range body {
		b.visitClassElement(element, id)
	}

	b.flags = prevFlags
}

func (b *Builder) visitClassElement(element jsast.ClassElement, parent NodeID) {
	switch e := element.(type) {
	case *jsast.MethodDefinition:
		id := b.enterNode(e, parent)
		if e.Computed && e.KeyExpr != nil {
			b.visitExpression(e.KeyExpr, id)
		}

		if e.Value != nil {
			b.visitExpression(e.Value, id)
		}
	case *jsast.PropertyDefinition:
		id := b.enterNode(e, parent)
		if e.Computed && e.KeyExpr != nil {
			b.visitExpression(e.KeyExpr, id)
		}

		if e.Value != nil {
			b.visitExpression(e.Value, id)
		}
	case *jsast.UnknownClassElement:
		b.enterNode(e, parent)
	}
}

func (b *Builder) visitBindingPattern(pattern jsast.BindingPattern, parent NodeID, ctx bindingContext) {
	switch p := pattern.(type) {
	case *jsast.BindingIdentifier:
		id := b.enterNode(p, parent)

		declNode := ctx.declNode
		if declNode == NoNode {
			declNode = id
		}

		p.Symbol = b.scoping.declareSymbol(ctx.scope, p.Name, declNode, p.Span)
	case *jsast.ObjectPattern:
		id := b.enterNode(p, parent)
		for _, prop := range p.Properties {
			propID := b.enterNode(prop, id)
			if prop.Computed && prop.KeyExpr != nil {
				b.visitExpression(prop.KeyExpr, propID)
			}

			b.visitBindingPattern(prop.Value, propID, ctx)
		}

		if p.Rest != nil {
			restID := b.enterNode(p.Rest, id)
			b.visitBindingPattern(p.Rest.Arg, restID, ctx)
		}
	case *jsast.ArrayPattern:
		id := b.enterNode(p, parent)
		for _, element := range p.Elements {
			if element == nil {
				continue
			}

			b.visitBindingPattern(element, id, ctx)
		}

		if p.Rest != nil {
			restID := b.enterNode(p.Rest, id)
			b.visitBindingPattern(p.Rest.Arg, restID, ctx)
		}
	case *jsast.AssignmentPattern:
		id := b.enterNode(p, parent)
		b.visitBindingPattern(p.Left, id, ctx)
		b.visitExpression(p.Right, id)
	case *jsast.BindingRestElement:
		// A rest element in a parameter list; rests inside object/array
		// patterns are visited through their Rest field.
		id := b.enterNode(p, parent)
		b.visitBindingPattern(p.Arg, id, ctx)
	case *jsast.UnknownPattern:
		b.enterNode(p, parent)
	}
}

func (b *Builder) visitAssignmentTarget(target jsast.AssignmentTarget, parent NodeID) {
	switch t := target.(type) {
	case *jsast.IdentifierReference:
		b.visitExpression(t, parent)
	case *jsast.MemberExpression:
		b.visitExpression(t, parent)
	case *jsast.ArrayAssignmentTarget:
		id := b.enterNode(t, parent)
		for _, element := range t.Elements {
			if element == nil {
				continue
			}

			b.visitAssignmentTarget(element, id)
		}

		if t.Rest != nil {
			b.visitAssignmentTarget(t.Rest, id)
		}
	case *jsast.ObjectAssignmentTarget:
		id := b.enterNode(t, parent)
		for _, prop := range t.Properties {
			b.visitAssignmentTargetProperty(prop, id)
		}

		if t.Rest != nil {
			b.visitAssignmentTarget(t.Rest, id)
		}
	case *jsast.AssignmentTargetWithDefault:
		id := b.enterNode(t, parent)
		b.visitAssignmentTarget(t.Target, id)
		b.visitExpression(t.Init, id)
	case *jsast.UnknownTarget:
		b.enterNode(t, parent)
	}
}

func (b *Builder) visitAssignmentTargetProperty(prop jsast.AssignmentTargetProperty, parent NodeID) {
	switch p := prop.(type) {
	case *jsast.AssignmentTargetPropertyIdentifier:
		id := b.enterNode(p, parent)
		b.visitExpression(p.Binding, id)

		if p.Init != nil {
			b.visitExpression(p.Init, id)
		}
	case *jsast.AssignmentTargetPropertyProperty:
		id := b.enterNode(p, parent)
		if p.Computed && p.KeyExpr != nil {
			b.visitExpression(p.KeyExpr, id)
		}

		b.visitAssignmentTarget(p.Value, id)
	}
}

func (b *Builder) visitExpression(expr jsast.Expression, parent NodeID) {
	switch e := expr.(type) {
	case *jsast.IdentifierReference:
		id := b.enterNode(e, parent)
		e.Ref = b.scoping.addReference(id)
		b.pending = append(b.pending, pendingReference{ref: e.Ref, scope: b.scope, name: e.Name})
	case *jsast.FunctionExpression:
		id := b.enterNode(e, parent)
		prevScope, prevBlock := b.scope, b.block
		b.scope = b.scoping.addScope(prevScope, scopeVarBoundary)
		b.block = b.allocBlock()

		// A named function expression binds its own name in an inner
		// scope; the surrounding scope never sees it.
		if e.Name != nil {
			b.enterNode(e.Name, id)
			e.Name.Symbol = b.scoping.declareSymbol(b.scope, e.Name.Name, id, e.Name.Span)
		}

		b.visitParams(e.Params, id)

		if e.Body != nil {
			b.visitStatement(e.Body, id)
		}

		b.scope, b.block = prevScope, prevBlock
	case *jsast.ArrowFunction:
		id := b.enterNode(e, parent)
		prevScope, prevBlock := b.scope, b.block
		b.scope = b.scoping.addScope(prevScope, scopeVarBoundary)
		b.block = b.allocBlock()

		b.visitParams(e.Params, id)

		switch body := e.Body.(type) {
		case *jsast.BlockStatement:
			b.visitStatement(body, id)
		case jsast.Expression:
			b.visitExpression(body, id)
		}

		b.scope, b.block = prevScope, prevBlock
	case *jsast.ClassExpression:
		id := b.enterNode(e, parent)
		prevScope := b.scope
		b.scope = b.scoping.addScope(prevScope, 0)

		// A named class expression binds its own name in the class scope.
		if e.Name != nil {
			b.enterNode(e.Name, id)
			e.Name.Symbol = b.scoping.declareSymbol(b.scope, e.Name.Name, id, e.Name.Span)
		}

		b.visitClassParts(e.SuperClass, e.Body, id)
		b.scope = prevScope
	case *jsast.AssignmentExpression:
		id := b.enterNode(e, parent)
		b.visitAssignmentTarget(e.Target, id)
		b.visitExpression(e.Value, id)
	case *jsast.BinaryExpression:
		id := b.enterNode(e, parent)
		b.visitExpression(e.Left, id)
		b.visitExpression(e.Right, id)
	case *jsast.UnaryExpression:
		id := b.enterNode(e, parent)
		b.visitExpression(e.Operand, id)
	case *jsast.UpdateExpression:
		id := b.enterNode(e, parent)
		b.visitExpression(e.Operand, id)
	case *jsast.ConditionalExpression:
		id := b.enterNode(e, parent)
		b.visitExpression(e.Test, id)
		b.visitExpression(e.Consequent, id)
		b.visitExpression(e.Alternate, id)
	case *jsast.CallExpression:
		id := b.enterNode(e, parent)
		b.visitExpression(e.Callee, id)

		for _, arg := range e.Arguments {
			b.visitExpression(arg, id)
		}
	case *jsast.NewExpression:
		id := b.enterNode(e, parent)
		b.visitExpression(e.Callee, id)

		for _, arg := range e.Arguments {
			b.visitExpression(arg, id)
		}
	case *jsast.MemberExpression:
		id := b.enterNode(e, parent)
		b.visitExpression(e.Object, id)

		if e.Computed && e.Index != nil {
			b.visitExpression(e.Index, id)
		}
	case *jsast.ObjectExpression:
		id := b.enterNode(e, parent)
		for _, prop := range e.Properties {
			switch p := prop.(type) {
			case *jsast.ObjectProperty:
				propID := b.enterNode(p, id)
				if p.Computed && p.KeyExpr != nil {
					b.visitExpression(p.KeyExpr, propID)
				}

				if p.Value != nil {
					b.visitExpression(p.Value, propID)
				}
			case *jsast.SpreadElement:
				b.visitExpression(p, id)
			}
		}
	case *jsast.ArrayExpression:
		id := b.enterNode(e, parent)
		for _, element := range e.Elements {
			if element == nil {
				continue
			}

			b.visitExpression(element, id)
		}
	case *jsast.SpreadElement:
		id := b.enterNode(e, parent)
		b.visitExpression(e.Arg, id)
	case *jsast.SequenceExpression:
		id := b.enterNode(e, parent)
		for _, inner := range e.Expressions {
			b.visitExpression(inner, id)
		}
	case *jsast.AwaitExpression:
		id := b.enterNode(e, parent)
		b.visitExpression(e.Operand, id)
	case *jsast.YieldExpression:
		id := b.enterNode(e, parent)
		if e.Operand != nil {
			b.visitExpression(e.Operand, id)
		}
	case *jsast.TemplateLiteral:
		id := b.enterNode(e, parent)
		for _, inner := range e.Expressions {
			b.visitExpression(inner, id)
		}
	default:
		// Literals, this, and unknown expressions carry no children.
		b.enterNode(e, parent)
	}
}

// Package keepnames decides which declared bindings must keep their textual
// name through identifier renaming. A binding's name is load-bearing when an
// anonymous function or class expression flows into it: the language's named
// evaluation rule then sets the value's `name` property from the binding, so
// renaming the binding would change a runtime-observable string.
package keepnames

import (
	"github.com/Sumatoshi-tech/jsmangle/pkg/jsast"
	"github.com/Sumatoshi-tech/jsmangle/pkg/semantic"
)

// Collect returns the set of symbols whose names are used to set the `name`
// property of a function or class value. Deterministic for fixed inputs and
// mutates neither of them.
func Collect(scoping *semantic.Scoping, nodes *semantic.Nodes) map[jsast.SymbolID]struct{} {
	c := collector{scoping: scoping, nodes: nodes}

	return c.collect()
}

type collector struct {
	scoping *semantic.Scoping
	nodes   *semantic.Nodes
}

func (c collector) collect() map[jsast.SymbolID]struct{} {
	preserved := make(map[jsast.SymbolID]struct{})

	for symbol := range c.scoping.SymbolIDs() {
		declNode := c.nodes.Get(c.scoping.SymbolDeclaration(symbol))
		if c.isNameSetDeclareNode(declNode, symbol) || c.hasNameSetReferenceNode(symbol) {
			preserved[symbol] = struct{}{}
		}
	}

	return preserved
}

// hasNameSetReferenceNode reports whether any resolved reference to symbol
// sits in a position that would set a `name` property.
func (c collector) hasNameSetReferenceNode(symbol jsast.SymbolID) bool {
	for _, refID := range c.scoping.ResolvedReferenceIDs(symbol) {
		node := c.nodes.Get(c.scoping.Reference(refID).NodeID())
		if c.isNameSetReferenceNode(node, refID) {
			return true
		}
	}

	return false
}

// isNameSetDeclareNode classifies the declaration site of symbol. Function
// and class declarations (and named function/class expressions) carry the
// name syntactically; declarators preserve it when an anonymous definition
// is the initializer, directly or as a destructuring default.
func (c collector) isNameSetDeclareNode(node semantic.Node, symbol jsast.SymbolID) bool {
	switch kind := node.Kind().(type) {
	case *jsast.FunctionDeclaration:
		return kind.Name != nil && kind.Name.Symbol == symbol
	case *jsast.FunctionExpression:
		return kind.Name != nil && kind.Name.Symbol == symbol
	case *jsast.ClassDeclaration:
		return kind.Name != nil && kind.Name.Symbol == symbol
	case *jsast.ClassExpression:
		return kind.Name != nil && kind.Name.Symbol == symbol
	case *jsast.VariableDeclarator:
		if id, ok := kind.ID.(*jsast.BindingIdentifier); ok {
			if id.Symbol == symbol {
				return kind.Init != nil && jsast.IsAnonymousFunctionDefinition(kind.Init)
			}
		}

		if pattern := findAssignmentPatternOfSymbol(kind.ID, symbol); pattern != nil {
			return jsast.IsAnonymousFunctionDefinition(pattern.Right)
		}

		return false
	default:
		return false
	}
}

// isNameSetReferenceNode classifies one use-site of a symbol by the shape of
// its parent node: a direct assignment target, a destructuring default
// target, or a shorthand object target with default. Any other shape does
// not set a name.
func (c collector) isNameSetReferenceNode(node semantic.Node, refID jsast.ReferenceID) bool {
	parent, ok := c.nodes.ParentNode(node.ID())
	if !ok {
		return false
	}

	switch kind := parent.Kind().(type) {
	case *jsast.AssignmentExpression:
		return isAssignmentTargetOfReference(kind.Target, refID) &&
			jsast.IsAnonymousFunctionDefinition(kind.Value)
	case *jsast.AssignmentTargetWithDefault:
		return isAssignmentTargetOfReference(kind.Target, refID) &&
			jsast.IsAnonymousFunctionDefinition(kind.Init)
	case *jsast.AssignmentTargetPropertyIdentifier:
		return kind.Binding != nil && kind.Binding.Ref == refID &&
			kind.Init != nil && jsast.IsAnonymousFunctionDefinition(kind.Init)
	default:
		return false
	}
}

// findAssignmentPatternOfSymbol searches a binding pattern for the default
// sub-pattern whose left-hand identifier binds symbol. A symbol binds at one
// position only, so the first match along the structural path is the match.
func findAssignmentPatternOfSymbol(pattern jsast.BindingPattern, symbol jsast.SymbolID) *jsast.AssignmentPattern {
	switch p := pattern.(type) {
	case *jsast.ObjectPattern:
		for _, property := range p.Properties {
			if found := findAssignmentPatternOfSymbol(property.Value, symbol); found != nil {
				return found
			}
		}

		return nil
	case *jsast.ArrayPattern:
		for _, element := range p.Elements {
			if element == nil {
				continue
			}

			if found := findAssignmentPatternOfSymbol(element, symbol); found != nil {
				return found
			}
		}

		return nil
	case *jsast.AssignmentPattern:
		if isBindingIdentifierOfSymbol(p.Left, symbol) {
			return p
		}

		return findAssignmentPatternOfSymbol(p.Left, symbol)
	default:
		return nil
	}
}

func isBindingIdentifierOfSymbol(pattern jsast.BindingPattern, symbol jsast.SymbolID) bool {
	id, ok := pattern.(*jsast.BindingIdentifier)

	return ok && id.Symbol == symbol
}

func isAssignmentTargetOfReference(target jsast.AssignmentTarget, refID jsast.ReferenceID) bool {
	id, ok := target.(*jsast.IdentifierReference)

	return ok && id.Ref == refID
}

// Package jsast defines the JavaScript/TypeScript syntax constructs produced
// by the parser frontend and consumed by the semantic analyses. The construct
// space is a closed tagged union: every node implements [Node] plus exactly
// one of the category interfaces ([Expression], [Statement], [BindingPattern],
// [AssignmentTarget]), so analyses over it are total type switches rather
// than virtual dispatch.
package jsast

// SymbolID identifies one declared binding, independent of its spelling.
// Assigned by the semantic binder, which stamps it onto the declaring
// [BindingIdentifier].
type SymbolID int32

// ReferenceID identifies one use-site of a binding. Assigned by the semantic
// binder, which stamps it onto the [IdentifierReference] at the use-site.
type ReferenceID int32

// Sentinel values for unassigned or unresolved identifiers.
const (
	NoSymbol    SymbolID    = -1
	NoReference ReferenceID = -1
)

// Span is a half-open byte range in the source text, with the 1-based
// line/column of its start for diagnostics.
type Span struct {
	StartByte uint
	EndByte   uint
	Line      uint
	Column    uint
}

// Node is implemented by every syntax construct. The semantic builder assigns
// each Node it visits a slot in the node arena.
type Node interface {
	node()
}

// Expression is the sum of all expression constructs.
type Expression interface {
	Node
	expression()
}

// Statement is the sum of all statement constructs.
type Statement interface {
	Node
	statement()
}

// BindingPattern is the sum of all binding-position patterns: the left-hand
// shapes of declarations, parameters and catch clauses.
type BindingPattern interface {
	Node
	bindingPattern()
}

// AssignmentTarget is the sum of all assignment-position targets: the
// left-hand shapes of assignment expressions and for-in/for-of heads.
type AssignmentTarget interface {
	Node
	assignmentTarget()
}

// AssignmentTargetProperty is the sum of property shapes inside an
// [ObjectAssignmentTarget].
type AssignmentTargetProperty interface {
	Node
	assignmentTargetProperty()
}

// ClassElement is the sum of member shapes inside a class body.
type ClassElement interface {
	Node
	classElement()
}

package jsast

// BindingIdentifier is an identifier in declaration position: it introduces a
// binding. Symbol is stamped by the semantic binder; it stays [NoSymbol]
// until then.
type BindingIdentifier struct {
	Name   string
	Symbol SymbolID
	Span   Span
}

// ObjectPattern is object destructuring in binding position.
type ObjectPattern struct {
	Properties []*BindingProperty
	Rest       *BindingRestElement
}

// BindingProperty is one property of an [ObjectPattern]. For the shorthand
// forms `{ foo }` and `{ foo = init }`, Value is the bound identifier or an
// [AssignmentPattern] wrapping it.
type BindingProperty struct {
	Key       string
	KeyExpr   Expression
	Computed  bool
	Value     BindingPattern
	Shorthand bool
}

// ArrayPattern is array destructuring in binding position. Nil elements are
// elision holes.
type ArrayPattern struct {
	Elements []BindingPattern
	Rest     *BindingRestElement
}

// AssignmentPattern is `<pattern> = <default>` inside a binding pattern or
// parameter list.
type AssignmentPattern struct {
	Left  BindingPattern
	Right Expression
}

// BindingRestElement is `...pattern` in a binding pattern or parameter list.
type BindingRestElement struct {
	Arg BindingPattern
}

// UnknownPattern stands in for any binding shape the lowering does not model.
type UnknownPattern struct {
	CSTKind string
}

// ArrayAssignmentTarget is array destructuring in assignment position. Nil
// elements are elision holes; elements with defaults appear as
// [AssignmentTargetWithDefault].
type ArrayAssignmentTarget struct {
	Elements []AssignmentTarget
	Rest     AssignmentTarget
}

// ObjectAssignmentTarget is object destructuring in assignment position.
type ObjectAssignmentTarget struct {
	Properties []AssignmentTargetProperty
	Rest       AssignmentTarget
}

// AssignmentTargetWithDefault is `<target> = <default>` inside a
// destructuring assignment.
type AssignmentTargetWithDefault struct {
	Target AssignmentTarget
	Init   Expression
}

// AssignmentTargetPropertyIdentifier is the shorthand property form of an
// [ObjectAssignmentTarget]: `{ foo }` or `{ foo = init }`. Init is nil when
// no default is present.
type AssignmentTargetPropertyIdentifier struct {
	Binding *IdentifierReference
	Init    Expression
}

// AssignmentTargetPropertyProperty is the keyed property form of an
// [ObjectAssignmentTarget]: `{ key: <target> }`.
type AssignmentTargetPropertyProperty struct {
	Key      string
	KeyExpr  Expression
	Computed bool
	Value    AssignmentTarget
}

// UnknownTarget stands in for any assignment-target shape the lowering does
// not model.
type UnknownTarget struct {
	CSTKind string
}

func (*BindingIdentifier) node()                  {}
func (*ObjectPattern) node()                      {}
func (*BindingProperty) node()                    {}
func (*ArrayPattern) node()                       {}
func (*AssignmentPattern) node()                  {}
func (*BindingRestElement) node()                 {}
func (*UnknownPattern) node()                     {}
func (*ArrayAssignmentTarget) node()              {}
func (*ObjectAssignmentTarget) node()             {}
func (*AssignmentTargetWithDefault) node()        {}
func (*AssignmentTargetPropertyIdentifier) node() {}
func (*AssignmentTargetPropertyProperty) node()   {}
func (*UnknownTarget) node()                      {}

func (*BindingIdentifier) bindingPattern()  {}
func (*ObjectPattern) bindingPattern()      {}
func (*ArrayPattern) bindingPattern()       {}
func (*AssignmentPattern) bindingPattern()  {}
func (*BindingRestElement) bindingPattern() {}
func (*UnknownPattern) bindingPattern()     {}

func (*IdentifierReference) assignmentTarget()         {}
func (*MemberExpression) assignmentTarget()            {}
func (*ArrayAssignmentTarget) assignmentTarget()       {}
func (*ObjectAssignmentTarget) assignmentTarget()      {}
func (*AssignmentTargetWithDefault) assignmentTarget() {}
func (*UnknownTarget) assignmentTarget()               {}

func (*AssignmentTargetPropertyIdentifier) assignmentTargetProperty() {}
func (*AssignmentTargetPropertyProperty) assignmentTargetProperty()   {}

package jsast

// Method kinds for [MethodDefinition].
const (
	MethodKindMethod      = "method"
	MethodKindGetter      = "get"
	MethodKindSetter      = "set"
	MethodKindConstructor = "constructor"
)

// MethodDefinition is a method, getter, setter or constructor in a class
// body.
type MethodDefinition struct {
	Key      string
	KeyExpr  Expression
	Computed bool
	Value    *FunctionExpression
	Static   bool
	Kind     string
}

// PropertyDefinition is a class field. Value is nil for bare declarations.
type PropertyDefinition struct {
	Key      string
	KeyExpr  Expression
	Computed bool
	Value    Expression
	Static   bool
}

// UnknownClassElement stands in for class-body constructs the lowering does
// not model (static blocks, TS index signatures).
type UnknownClassElement struct {
	CSTKind string
}

func (*MethodDefinition) node()    {}
func (*PropertyDefinition) node()  {}
func (*UnknownClassElement) node() {}

func (*MethodDefinition) classElement()    {}
func (*PropertyDefinition) classElement()  {}
func (*UnknownClassElement) classElement() {}

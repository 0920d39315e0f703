package jsast

// IdentifierReference is an identifier in use position: it reads or writes an
// existing binding. Ref is stamped by the semantic binder; it stays
// [NoReference] until then.
type IdentifierReference struct {
	Name string
	Ref  ReferenceID
	Span Span
}

// FunctionExpression is a function in expression position. Name is nil for
// the anonymous form.
type FunctionExpression struct {
	Name      *BindingIdentifier
	Params    []BindingPattern
	Body      *BlockStatement
	Generator bool
	Async     bool
}

// ArrowFunction is an arrow function. Body is either an Expression (concise
// body) or a *BlockStatement.
type ArrowFunction struct {
	Params []BindingPattern
	Body   Node
	Async  bool
}

// ClassExpression is a class in expression position. Name is nil for the
// anonymous form.
type ClassExpression struct {
	Name       *BindingIdentifier
	SuperClass Expression
	Body       []ClassElement
}

// AssignmentExpression is `<target> <op> <value>` for any assignment
// operator, plain or compound.
type AssignmentExpression struct {
	Operator AssignmentOperator
	Target   AssignmentTarget
	Value    Expression
}

// BinaryExpression covers arithmetic, comparison and logical binary forms.
type BinaryExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

// UnaryExpression is a prefix unary operation.
type UnaryExpression struct {
	Operator string
	Operand  Expression
}

// UpdateExpression is `++`/`--` in prefix or postfix position.
type UpdateExpression struct {
	Operator string
	Prefix   bool
	Operand  Expression
}

// ConditionalExpression is the ternary operator.
type ConditionalExpression struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

// CallExpression is a function call.
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
	Optional  bool
}

// NewExpression is a constructor call.
type NewExpression struct {
	Callee    Expression
	Arguments []Expression
}

// MemberExpression is property access. Static access carries the property
// name in Property; computed access carries the index expression in Index.
type MemberExpression struct {
	Object   Expression
	Property string
	Index    Expression
	Computed bool
	Optional bool
}

// ObjectExpression is an object literal. Properties holds *ObjectProperty
// and *SpreadElement entries.
type ObjectExpression struct {
	Properties []Node
}

// ObjectProperty is one `key: value` entry of an object literal, including
// shorthand and method forms.
type ObjectProperty struct {
	Key       string
	KeyExpr   Expression
	Computed  bool
	Value     Expression
	Shorthand bool
}

// ArrayExpression is an array literal. Nil elements are elision holes.
type ArrayExpression struct {
	Elements []Expression
}

// SpreadElement is `...expr` in call, array or object position.
type SpreadElement struct {
	Arg Expression
}

// SequenceExpression is the comma operator.
type SequenceExpression struct {
	Expressions []Expression
}

// AwaitExpression awaits its operand.
type AwaitExpression struct {
	Operand Expression
}

// YieldExpression yields its operand; Delegate marks `yield*`.
type YieldExpression struct {
	Operand  Expression
	Delegate bool
}

// TemplateLiteral is a template string; only the substitutions are modeled.
type TemplateLiteral struct {
	Expressions []Expression
}

// ThisExpression is `this`.
type ThisExpression struct{}

// NumericLiteral is a number literal, kept raw.
type NumericLiteral struct {
	Raw string
}

// StringLiteral is a string literal, kept raw (quotes included).
type StringLiteral struct {
	Raw string
}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Value bool
}

// NullLiteral is `null`.
type NullLiteral struct{}

// RegExpLiteral is a regular expression literal, kept raw.
type RegExpLiteral struct {
	Raw string
}

// UnknownExpression stands in for any expression construct the lowering does
// not model. It carries no children: anything inside it is invisible to the
// analyses, which is the conservative direction.
type UnknownExpression struct {
	CSTKind string
}

func (*IdentifierReference) node()   {}
func (*FunctionExpression) node()    {}
func (*ArrowFunction) node()         {}
func (*ClassExpression) node()       {}
func (*AssignmentExpression) node()  {}
func (*BinaryExpression) node()      {}
func (*UnaryExpression) node()       {}
func (*UpdateExpression) node()      {}
func (*ConditionalExpression) node() {}
func (*CallExpression) node()        {}
func (*NewExpression) node()         {}
func (*MemberExpression) node()      {}
func (*ObjectExpression) node()      {}
func (*ObjectProperty) node()        {}
func (*ArrayExpression) node()       {}
func (*SpreadElement) node()         {}
func (*SequenceExpression) node()    {}
func (*AwaitExpression) node()       {}
func (*YieldExpression) node()       {}
func (*TemplateLiteral) node()       {}
func (*ThisExpression) node()        {}
func (*NumericLiteral) node()        {}
func (*StringLiteral) node()         {}
func (*BooleanLiteral) node()        {}
func (*NullLiteral) node()           {}
func (*RegExpLiteral) node()         {}
func (*UnknownExpression) node()     {}

func (*IdentifierReference) expression()   {}
func (*FunctionExpression) expression()    {}
func (*ArrowFunction) expression()         {}
func (*ClassExpression) expression()       {}
func (*AssignmentExpression) expression()  {}
func (*BinaryExpression) expression()      {}
func (*UnaryExpression) expression()       {}
func (*UpdateExpression) expression()      {}
func (*ConditionalExpression) expression() {}
func (*CallExpression) expression()        {}
func (*NewExpression) expression()         {}
func (*MemberExpression) expression()      {}
func (*ObjectExpression) expression()      {}
func (*ArrayExpression) expression()       {}
func (*SpreadElement) expression()         {}
func (*SequenceExpression) expression()    {}
func (*AwaitExpression) expression()       {}
func (*YieldExpression) expression()       {}
func (*TemplateLiteral) expression()       {}
func (*ThisExpression) expression()        {}
func (*NumericLiteral) expression()        {}
func (*StringLiteral) expression()         {}
func (*BooleanLiteral) expression()        {}
func (*NullLiteral) expression()           {}
func (*RegExpLiteral) expression()         {}
func (*UnknownExpression) expression()     {}

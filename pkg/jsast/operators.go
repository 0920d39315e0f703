package jsast

// DeclarationKind distinguishes the three variable declaration forms.
type DeclarationKind string

// Variable declaration kinds.
const (
	DeclVar   DeclarationKind = "var"
	DeclLet   DeclarationKind = "let"
	DeclConst DeclarationKind = "const"
)

// AssignmentOperator is the operator of an [AssignmentExpression], as it
// appears in source. Operators outside the named set pass through verbatim.
type AssignmentOperator string

// Assignment operators with named-evaluation relevance.
const (
	AssignPlain       AssignmentOperator = "="
	AssignLogicalOr   AssignmentOperator = "||="
	AssignLogicalAnd  AssignmentOperator = "&&="
	AssignNullishCoal AssignmentOperator = "??="
)

package jsast

// Program is the unique tree root.
type Program struct {
	Body []Statement
}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Expr Expression
}

// VariableDeclaration is a `var`, `let` or `const` statement holding one or
// more declarators.
type VariableDeclaration struct {
	Kind         DeclarationKind
	Declarations []*VariableDeclarator
}

// VariableDeclarator is one `<pattern> = <init>` unit of a declaration.
// Init is nil when the declarator has no initializer.
type VariableDeclarator struct {
	ID   BindingPattern
	Init Expression
}

// FunctionDeclaration is a function declared in statement position. Name is
// nil only for `export default function () {}` forms.
type FunctionDeclaration struct {
	Name      *BindingIdentifier
	Params    []BindingPattern
	Body      *BlockStatement
	Generator bool
	Async     bool
}

// ClassDeclaration is a class declared in statement position.
type ClassDeclaration struct {
	Name       *BindingIdentifier
	SuperClass Expression
	Body       []ClassElement
}

// BlockStatement is a braced statement list owning its own lexical scope.
type BlockStatement struct {
	Body []Statement
}

// IfStatement is a conditional with an optional else arm.
type IfStatement struct {
	Test       Expression
	Consequent Statement
	Alternate  Statement
}

// ForStatement is a classic three-clause loop. Init is either a
// *VariableDeclaration or an Expression; any clause may be nil.
type ForStatement struct {
	Init   Node
	Test   Expression
	Update Expression
	Body   Statement
}

// ForInStatement covers both for-in and for-of heads. Left is either a
// *VariableDeclaration (with at most one declarator, whose Init carries the
// legacy for-in initializer when present) or an AssignmentTarget.
type ForInStatement struct {
	Of    bool
	Await bool
	Left  Node
	Right Expression
	Body  Statement
}

// WhileStatement is a while loop.
type WhileStatement struct {
	Test Expression
	Body Statement
}

// ReturnStatement returns from the enclosing function. Arg may be nil.
type ReturnStatement struct {
	Arg Expression
}

// ThrowStatement throws its argument.
type ThrowStatement struct {
	Arg Expression
}

// TryStatement is a try with optional handler and finalizer.
type TryStatement struct {
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

// CatchClause is the handler arm of a try. Param is nil for the bare
// `catch {}` form.
type CatchClause struct {
	Param BindingPattern
	Body  *BlockStatement
}

// UnknownStatement stands in for any statement construct the lowering does
// not model. Children carries the best-effort lowering of its named children
// so declarations and assignments inside it are still seen.
type UnknownStatement struct {
	CSTKind  string
	Children []Statement
}

func (*Program) node()             {}
func (*ExpressionStatement) node() {}
func (*VariableDeclaration) node() {}
func (*VariableDeclarator) node()  {}
func (*FunctionDeclaration) node() {}
func (*ClassDeclaration) node()    {}
func (*BlockStatement) node()      {}
func (*IfStatement) node()         {}
func (*ForStatement) node()        {}
func (*ForInStatement) node()      {}
func (*WhileStatement) node()      {}
func (*ReturnStatement) node()     {}
func (*ThrowStatement) node()      {}
func (*TryStatement) node()        {}
func (*CatchClause) node()         {}
func (*UnknownStatement) node()    {}

func (*Program) statement()             {}
func (*ExpressionStatement) statement() {}
func (*VariableDeclaration) statement() {}
func (*FunctionDeclaration) statement() {}
func (*ClassDeclaration) statement()    {}
func (*BlockStatement) statement()      {}
func (*IfStatement) statement()         {}
func (*ForStatement) statement()        {}
func (*ForInStatement) statement()      {}
func (*WhileStatement) statement()      {}
func (*ReturnStatement) statement()     {}
func (*ThrowStatement) statement()      {}
func (*TryStatement) statement()        {}
func (*UnknownStatement) statement()    {}

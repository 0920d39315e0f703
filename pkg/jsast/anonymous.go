package jsast

// IsAnonymousFunctionDefinition reports whether expr is an anonymous
// function definition in the ECMAScript sense: a function or class value
// whose `name` property is inferred from the binding it flows into. Named
// function and class expressions carry their own name and are excluded.
func IsAnonymousFunctionDefinition(expr Expression) bool {
	switch e := expr.(type) {
	case *ArrowFunction:
		return true
	case *FunctionExpression:
		return e.Name == nil
	case *ClassExpression:
		return e.Name == nil
	default:
		return false
	}
}

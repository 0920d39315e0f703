package jsparse

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/jsmangle/pkg/jsast"
)

// expressionTypes lists the CST kinds lowerExpression models precisely.
// Used when dispatching children of unmodeled statements.
var expressionTypes = map[string]bool{
	"identifier": true, "this": true, "number": true, "string": true,
	"template_string": true, "true": true, "false": true, "null": true,
	"undefined": true, "regex": true, "function_expression": true,
	"function": true, "generator_function": true, "arrow_function": true,
	"class": true, "assignment_expression": true,
	"augmented_assignment_expression": true, "binary_expression": true,
	"unary_expression": true, "update_expression": true,
	"ternary_expression": true, "call_expression": true,
	"new_expression": true, "member_expression": true,
	"subscript_expression": true, "parenthesized_expression": true,
	"object": true, "array": true, "sequence_expression": true,
	"await_expression": true, "yield_expression": true,
	"spread_element": true,
}

func isExpressionType(cstKind string) bool {
	return expressionTypes[cstKind]
}

func (l *lowerer) bindingIdentifier(n sitter.Node) *jsast.BindingIdentifier {
	return &jsast.BindingIdentifier{Name: l.text(n), Symbol: jsast.NoSymbol, Span: l.span(n)}
}

func (l *lowerer) identifierReference(n sitter.Node) *jsast.IdentifierReference {
	return &jsast.IdentifierReference{Name: l.text(n), Ref: jsast.NoReference, Span: l.span(n)}
}

//nolint:cyclop,funlen,gocyclo // closed dispatch over the expression grammar.
func (l *lowerer) lowerExpression(n sitter.Node) jsast.Expression {
	switch n.Type() {
	case "identifier", "undefined":
		return l.identifierReference(n)
	case "this":
		return &jsast.ThisExpression{}
	case "number":
		return &jsast.NumericLiteral{Raw: l.text(n)}
	case "string":
		return &jsast.StringLiteral{Raw: l.text(n)}
	case "template_string":
		return l.lowerTemplateString(n)
	case "true":
		return &jsast.BooleanLiteral{Value: true}
	case "false":
		return &jsast.BooleanLiteral{Value: false}
	case "null":
		return &jsast.NullLiteral{}
	case "regex":
		return &jsast.RegExpLiteral{Raw: l.text(n)}
	case "function_expression", "function", "generator_function":
		return l.lowerFunctionExpression(n)
	case "arrow_function":
		return l.lowerArrowFunction(n)
	case "class":
		return l.lowerClassExpression(n)
	case "assignment_expression":
		return &jsast.AssignmentExpression{
			Operator: jsast.AssignPlain,
			Target:   l.lowerAssignmentTarget(n.ChildByFieldName("left")),
			Value:    l.lowerFieldExpression(n, "right"),
		}
	case "augmented_assignment_expression":
		return &jsast.AssignmentExpression{
			Operator: jsast.AssignmentOperator(l.text(n.ChildByFieldName("operator"))),
			Target:   l.lowerAssignmentTarget(n.ChildByFieldName("left")),
			Value:    l.lowerFieldExpression(n, "right"),
		}
	case "binary_expression":
		return &jsast.BinaryExpression{
			Operator: l.text(n.ChildByFieldName("operator")),
			Left:     l.lowerFieldExpression(n, "left"),
			Right:    l.lowerFieldExpression(n, "right"),
		}
	case "unary_expression":
		return &jsast.UnaryExpression{
			Operator: l.text(n.ChildByFieldName("operator")),
			Operand:  l.lowerFieldExpression(n, "argument"),
		}
	case "update_expression":
		operand := n.ChildByFieldName("argument")
		operator := n.ChildByFieldName("operator")

		return &jsast.UpdateExpression{
			Operator: l.text(operator),
			Prefix:   !operator.IsNull() && !operand.IsNull() && operator.StartByte() < operand.StartByte(),
			Operand:  l.lowerExpression(operand),
		}
	case "ternary_expression":
		return &jsast.ConditionalExpression{
			Test:       l.lowerFieldExpression(n, "condition"),
			Consequent: l.lowerFieldExpression(n, "consequence"),
			Alternate:  l.lowerFieldExpression(n, "alternative"),
		}
	case "call_expression":
		return &jsast.CallExpression{
			Callee:    l.lowerFieldExpression(n, "function"),
			Arguments: l.lowerArguments(n.ChildByFieldName("arguments")),
			Optional:  hasToken(n, "?."),
		}
	case "new_expression":
		return &jsast.NewExpression{
			Callee:    l.lowerFieldExpression(n, "constructor"),
			Arguments: l.lowerArguments(n.ChildByFieldName("arguments")),
		}
	case "member_expression":
		return &jsast.MemberExpression{
			Object:   l.lowerFieldExpression(n, "object"),
			Property: l.text(n.ChildByFieldName("property")),
			Optional: hasToken(n, "?."),
		}
	case "subscript_expression":
		return &jsast.MemberExpression{
			Object:   l.lowerFieldExpression(n, "object"),
			Index:    l.lowerFieldExpression(n, "index"),
			Computed: true,
			Optional: hasToken(n, "?."),
		}
	case "parenthesized_expression":
		if inner := n.NamedChild(0); !inner.IsNull() {
			return l.lowerExpression(inner)
		}

		return &jsast.UnknownExpression{CSTKind: n.Type()}
	case "object":
		return l.lowerObjectExpression(n)
	case "array":
		return l.lowerArrayExpression(n)
	case "sequence_expression":
		return &jsast.SequenceExpression{Expressions: []jsast.Expression{
			l.lowerFieldExpression(n, "left"),
			l.lowerFieldExpression(n, "right"),
		}}
	case "await_expression":
		return &jsast.AwaitExpression{Operand: l.lowerExpression(n.NamedChild(0))}
	case "yield_expression":
		expr := &jsast.YieldExpression{Delegate: hasToken(n, "*")}
		if operand := n.NamedChild(0); !operand.IsNull() {
			expr.Operand = l.lowerExpression(operand)
		}

		return expr
	case "spread_element":
		return &jsast.SpreadElement{Arg: l.lowerExpression(n.NamedChild(0))}
	case "as_expression", "satisfies_expression", "non_null_expression":
		// TypeScript wrappers are transparent for analysis.
		if inner := n.NamedChild(0); !inner.IsNull() {
			return l.lowerExpression(inner)
		}

		return &jsast.UnknownExpression{CSTKind: n.Type()}
	default:
		return &jsast.UnknownExpression{CSTKind: n.Type()}
	}
}

func (l *lowerer) lowerTemplateString(n sitter.Node) *jsast.TemplateLiteral {
	tmpl := &jsast.TemplateLiteral{}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() != "template_substitution" {
			continue
		}

		if inner := child.NamedChild(0); !inner.IsNull() {
			tmpl.Expressions = append(tmpl.Expressions, l.lowerExpression(inner))
		}
	}

	return tmpl
}

func (l *lowerer) lowerFunctionExpression(n sitter.Node) *jsast.FunctionExpression {
	expr := &jsast.FunctionExpression{
		Params:    l.lowerParams(n.ChildByFieldName("parameters")),
		Body:      l.lowerBlock(n.ChildByFieldName("body")),
		Generator: n.Type() == "generator_function" || hasToken(n, "*"),
		Async:     hasToken(n, "async"),
	}

	if name := n.ChildByFieldName("name"); !name.IsNull() {
		expr.Name = l.bindingIdentifier(name)
	}

	return expr
}

func (l *lowerer) lowerArrowFunction(n sitter.Node) *jsast.ArrowFunction {
	arrow := &jsast.ArrowFunction{Async: hasToken(n, "async")}

	if single := n.ChildByFieldName("parameter"); !single.IsNull() {
		arrow.Params = []jsast.BindingPattern{l.bindingIdentifier(single)}
	} else if params := n.ChildByFieldName("parameters"); !params.IsNull() {
		arrow.Params = l.lowerParams(params)
	}

	if body := n.ChildByFieldName("body"); !body.IsNull() {
		if body.Type() == "statement_block" {
			arrow.Body = l.lowerBlock(body)
		} else {
			arrow.Body = l.lowerExpression(body)
		}
	}

	return arrow
}

func (l *lowerer) lowerClassExpression(n sitter.Node) *jsast.ClassExpression {
	expr := &jsast.ClassExpression{
		SuperClass: l.lowerHeritage(n),
		Body:       l.lowerClassBody(n.ChildByFieldName("body")),
	}

	if name := n.ChildByFieldName("name"); !name.IsNull() {
		expr.Name = l.bindingIdentifier(name)
	}

	return expr
}

func (l *lowerer) lowerArguments(n sitter.Node) []jsast.Expression {
	if n.IsNull() {
		return nil
	}

	// Tagged template calls carry the template as the arguments node.
	if n.Type() == "template_string" {
		return []jsast.Expression{l.lowerTemplateString(n)}
	}

	args := make([]jsast.Expression, 0, n.NamedChildCount())
	for idx := range n.NamedChildCount() {
		args = append(args, l.lowerExpression(n.NamedChild(idx)))
	}

	return args
}

func (l *lowerer) lowerObjectExpression(n sitter.Node) *jsast.ObjectExpression {
	obj := &jsast.ObjectExpression{}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		switch child.Type() {
		case "pair":
			prop := &jsast.ObjectProperty{Value: l.lowerFieldExpression(child, "value")}
			l.lowerPropertyKey(child.ChildByFieldName("key"), &prop.Key, &prop.KeyExpr, &prop.Computed)
			obj.Properties = append(obj.Properties, prop)
		case "shorthand_property_identifier":
			obj.Properties = append(obj.Properties, &jsast.ObjectProperty{
				Key:       l.text(child),
				Value:     l.identifierReference(child),
				Shorthand: true,
			})
		case "method_definition":
			prop := &jsast.ObjectProperty{Value: l.lowerMethodFunction(child)}
			l.lowerPropertyKey(child.ChildByFieldName("name"), &prop.Key, &prop.KeyExpr, &prop.Computed)
			obj.Properties = append(obj.Properties, prop)
		case "spread_element":
			obj.Properties = append(obj.Properties, &jsast.SpreadElement{Arg: l.lowerExpression(child.NamedChild(0))})
		case "comment":
		default:
			obj.Properties = append(obj.Properties, &jsast.ObjectProperty{
				Key:   l.text(child),
				Value: &jsast.UnknownExpression{CSTKind: child.Type()},
			})
		}
	}

	return obj
}

func (l *lowerer) lowerArrayExpression(n sitter.Node) *jsast.ArrayExpression {
	arr := &jsast.ArrayExpression{}

	for idx := range n.NamedChildCount() {
		arr.Elements = append(arr.Elements, l.lowerExpression(n.NamedChild(idx)))
	}

	return arr
}

// lowerPropertyKey fills the key name, computed-key expression and computed
// flag from a property name node.
func (l *lowerer) lowerPropertyKey(key sitter.Node, name *string, keyExpr *jsast.Expression, computed *bool) {
	if key.IsNull() {
		return
	}

	if key.Type() == "computed_property_name" {
		*computed = true
		if inner := key.NamedChild(0); !inner.IsNull() {
			*keyExpr = l.lowerExpression(inner)
		}

		return
	}

	*name = l.text(key)
}

// lowerMethodFunction lowers a method_definition's callable part.
func (l *lowerer) lowerMethodFunction(n sitter.Node) *jsast.FunctionExpression {
	return &jsast.FunctionExpression{
		Params:    l.lowerParams(n.ChildByFieldName("parameters")),
		Body:      l.lowerBlock(n.ChildByFieldName("body")),
		Generator: hasToken(n, "*"),
		Async:     hasToken(n, "async"),
	}
}

func (l *lowerer) lowerClassBody(n sitter.Node) []jsast.ClassElement {
	if n.IsNull() {
		return nil
	}

	elements := make([]jsast.ClassElement, 0, n.NamedChildCount())

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		switch child.Type() {
		case "method_definition":
			method := &jsast.MethodDefinition{
				Value:  l.lowerMethodFunction(child),
				Static: hasToken(child, "static"),
				Kind:   methodKind(child),
			}
			l.lowerPropertyKey(child.ChildByFieldName("name"), &method.Key, &method.KeyExpr, &method.Computed)
			elements = append(elements, method)
		case "field_definition", "public_field_definition":
			field := &jsast.PropertyDefinition{Static: hasToken(child, "static")}
			l.lowerPropertyKey(child.ChildByFieldName("property"), &field.Key, &field.KeyExpr, &field.Computed)

			if value := child.ChildByFieldName("value"); !value.IsNull() {
				field.Value = l.lowerExpression(value)
			}

			elements = append(elements, field)
		case "comment":
		default:
			elements = append(elements, &jsast.UnknownClassElement{CSTKind: child.Type()})
		}
	}

	return elements
}

func methodKind(n sitter.Node) string {
	switch {
	case hasToken(n, "get"):
		return jsast.MethodKindGetter
	case hasToken(n, "set"):
		return jsast.MethodKindSetter
	default:
		return jsast.MethodKindMethod
	}
}

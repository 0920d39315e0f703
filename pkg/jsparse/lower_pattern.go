package jsparse

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/jsmangle/pkg/jsast"
)

func (l *lowerer) lowerParams(n sitter.Node) []jsast.BindingPattern {
	if n.IsNull() {
		return nil
	}

	params := make([]jsast.BindingPattern, 0, n.NamedChildCount())

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		switch child.Type() {
		case "required_parameter", "optional_parameter":
			// TypeScript parameter wrappers carry the pattern in a field.
			if pattern := child.ChildByFieldName("pattern"); !pattern.IsNull() {
				params = append(params, l.lowerBindingPattern(pattern))
			}
		case "rest_pattern":
			params = append(params, &jsast.BindingRestElement{Arg: l.lowerBindingPattern(child.NamedChild(0))})
		case "comment":
		default:
			params = append(params, l.lowerBindingPattern(child))
		}
	}

	return params
}

func (l *lowerer) lowerBindingPattern(n sitter.Node) jsast.BindingPattern {
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return l.bindingIdentifier(n)
	case "object_pattern":
		return l.lowerObjectPattern(n)
	case "array_pattern":
		return l.lowerArrayPattern(n)
	case "assignment_pattern":
		return &jsast.AssignmentPattern{
			Left:  l.lowerBindingPattern(n.ChildByFieldName("left")),
			Right: l.lowerFieldExpression(n, "right"),
		}
	default:
		return &jsast.UnknownPattern{CSTKind: n.Type()}
	}
}

func (l *lowerer) lowerObjectPattern(n sitter.Node) *jsast.ObjectPattern {
	pattern := &jsast.ObjectPattern{}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		switch child.Type() {
		case "shorthand_property_identifier_pattern":
			pattern.Properties = append(pattern.Properties, &jsast.BindingProperty{
				Key:       l.text(child),
				Value:     l.bindingIdentifier(child),
				Shorthand: true,
			})
		case "object_assignment_pattern":
			// Shorthand with default: `{ foo = init }`.
			pattern.Properties = append(pattern.Properties, &jsast.BindingProperty{
				Key: l.text(child.ChildByFieldName("left")),
				Value: &jsast.AssignmentPattern{
					Left:  l.lowerBindingPattern(child.ChildByFieldName("left")),
					Right: l.lowerFieldExpression(child, "right"),
				},
				Shorthand: true,
			})
		case "pair_pattern":
			prop := &jsast.BindingProperty{Value: l.lowerBindingPattern(child.ChildByFieldName("value"))}
			l.lowerPropertyKey(child.ChildByFieldName("key"), &prop.Key, &prop.KeyExpr, &prop.Computed)
			pattern.Properties = append(pattern.Properties, prop)
		case "rest_pattern":
			pattern.Rest = &jsast.BindingRestElement{Arg: l.lowerBindingPattern(child.NamedChild(0))}
		case "comment":
		default:
			pattern.Properties = append(pattern.Properties, &jsast.BindingProperty{
				Key:   l.text(child),
				Value: &jsast.UnknownPattern{CSTKind: child.Type()},
			})
		}
	}

	return pattern
}

func (l *lowerer) lowerArrayPattern(n sitter.Node) *jsast.ArrayPattern {
	pattern := &jsast.ArrayPattern{}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		if child.Type() == "rest_pattern" {
			pattern.Rest = &jsast.BindingRestElement{Arg: l.lowerBindingPattern(child.NamedChild(0))}

			continue
		}

		pattern.Elements = append(pattern.Elements, l.lowerBindingPattern(child))
	}

	return pattern
}

// lowerAssignmentTarget lowers the left-hand side of an assignment. The
// grammar reuses object_pattern/array_pattern nodes in assignment position,
// so destructuring targets are rebuilt here in terms of references rather
// than bindings.
func (l *lowerer) lowerAssignmentTarget(n sitter.Node) jsast.AssignmentTarget {
	if n.IsNull() {
		return &jsast.UnknownTarget{CSTKind: ""}
	}

	switch n.Type() {
	case "identifier", "undefined":
		return l.identifierReference(n)
	case "member_expression", "subscript_expression":
		if member, ok := l.lowerExpression(n).(*jsast.MemberExpression); ok {
			return member
		}

		return &jsast.UnknownTarget{CSTKind: n.Type()}
	case "parenthesized_expression":
		if inner := n.NamedChild(0); !inner.IsNull() {
			return l.lowerAssignmentTarget(inner)
		}

		return &jsast.UnknownTarget{CSTKind: n.Type()}
	case "array_pattern":
		return l.lowerArrayAssignmentTarget(n)
	case "object_pattern":
		return l.lowerObjectAssignmentTarget(n)
	case "non_null_expression", "as_expression":
		if inner := n.NamedChild(0); !inner.IsNull() {
			return l.lowerAssignmentTarget(inner)
		}

		return &jsast.UnknownTarget{CSTKind: n.Type()}
	default:
		return &jsast.UnknownTarget{CSTKind: n.Type()}
	}
}

func (l *lowerer) lowerArrayAssignmentTarget(n sitter.Node) *jsast.ArrayAssignmentTarget {
	target := &jsast.ArrayAssignmentTarget{}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		if child.Type() == "rest_pattern" {
			target.Rest = l.lowerAssignmentTarget(child.NamedChild(0))

			continue
		}

		target.Elements = append(target.Elements, l.lowerAssignmentTargetMaybeDefault(child))
	}

	return target
}

func (l *lowerer) lowerObjectAssignmentTarget(n sitter.Node) *jsast.ObjectAssignmentTarget {
	target := &jsast.ObjectAssignmentTarget{}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)

		switch child.Type() {
		case "shorthand_property_identifier_pattern":
			target.Properties = append(target.Properties, &jsast.AssignmentTargetPropertyIdentifier{
				Binding: l.identifierReference(child),
			})
		case "object_assignment_pattern":
			target.Properties = append(target.Properties, l.lowerObjectAssignmentProperty(child))
		case "pair_pattern":
			prop := &jsast.AssignmentTargetPropertyProperty{
				Value: l.lowerAssignmentTargetMaybeDefault(child.ChildByFieldName("value")),
			}
			l.lowerPropertyKey(child.ChildByFieldName("key"), &prop.Key, &prop.KeyExpr, &prop.Computed)
			target.Properties = append(target.Properties, prop)
		case "rest_pattern":
			target.Rest = l.lowerAssignmentTarget(child.NamedChild(0))
		case "comment":
		default:
			target.Properties = append(target.Properties, &jsast.AssignmentTargetPropertyProperty{
				Key:   l.text(child),
				Value: &jsast.UnknownTarget{CSTKind: child.Type()},
			})
		}
	}

	return target
}

// lowerObjectAssignmentProperty lowers `{ foo = init }` in assignment
// position. The shorthand form keeps the identifier reference on the
// property itself; a non-identifier left side falls back to a keyed
// property with a defaulted target.
func (l *lowerer) lowerObjectAssignmentProperty(n sitter.Node) jsast.AssignmentTargetProperty {
	left := n.ChildByFieldName("left")
	init := l.lowerFieldExpression(n, "right")

	if !left.IsNull() && left.Type() == "shorthand_property_identifier_pattern" {
		return &jsast.AssignmentTargetPropertyIdentifier{
			Binding: l.identifierReference(left),
			Init:    init,
		}
	}

	return &jsast.AssignmentTargetPropertyProperty{
		Key: l.text(left),
		Value: &jsast.AssignmentTargetWithDefault{
			Target: l.lowerAssignmentTarget(left),
			Init:   init,
		},
	}
}

// lowerAssignmentTargetMaybeDefault lowers an element that may carry a
// default: `[foo = init] = arr`.
func (l *lowerer) lowerAssignmentTargetMaybeDefault(n sitter.Node) jsast.AssignmentTarget {
	if n.Type() == "assignment_pattern" {
		return &jsast.AssignmentTargetWithDefault{
			Target: l.lowerAssignmentTarget(n.ChildByFieldName("left")),
			Init:   l.lowerFieldExpression(n, "right"),
		}
	}

	return l.lowerAssignmentTarget(n)
}

package brewin

import (
	"strconv"
)

const (
	keywordMe    = "me"
	keywordSuper = "super"
	keywordNew   = "new"
	keywordCall  = "call"
	keywordTrue  = "true"
	keywordFalse = "false"
	keywordNull  = "null"
)

var binaryOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"&": true, "|": true,
}

func lowerExpression(node *SExpr) (Expression, error) {
	if node.IsString {
		return &StringLiteral{Value: node.Atom, position: node.Pos}, nil
	}
	if !node.IsList() {
		return lowerAtom(node)
	}
	head := node.Head()
	if head == "" {
		return nil, newError(SyntaxError, node.Pos, "expression list must start with an operator")
	}

	switch {
	case head == keywordNew:
		if len(node.List) != 2 || !node.List[1].IsSymbol() {
			return nil, newError(SyntaxError, node.Pos, "new must be (new CLASS)")
		}
		return &NewExpr{Class: node.List[1].Atom, position: node.Pos}, nil
	case head == keywordCall:
		return lowerCall(node)
	case head == "!":
		if len(node.List) != 2 {
			return nil, newError(SyntaxError, node.Pos, "! takes exactly one operand")
		}
		operand, err := lowerExpression(node.List[1])
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: head, Operand: operand, position: node.Pos}, nil
	case binaryOperators[head]:
		if len(node.List) != 3 {
			return nil, newError(SyntaxError, node.Pos, "%s takes exactly two operands", head)
		}
		left, err := lowerExpression(node.List[1])
		if err != nil {
			return nil, err
		}
		right, err := lowerExpression(node.List[2])
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Operator: head, Left: left, Right: right, position: node.Pos}, nil
	default:
		return nil, newError(SyntaxError, node.Pos, "unknown operator %s", head)
	}
}

func lowerAtom(node *SExpr) (Expression, error) {
	switch node.Atom {
	case keywordTrue:
		return &BoolLiteral{Value: true, position: node.Pos}, nil
	case keywordFalse:
		return &BoolLiteral{Value: false, position: node.Pos}, nil
	case keywordNull:
		return &NullLiteral{position: node.Pos}, nil
	case keywordMe:
		return &MeExpr{position: node.Pos}, nil
	case keywordSuper:
		return nil, newError(SyntaxError, node.Pos, "super may only be used as a call target")
	}
	if isIntegerAtom(node.Atom) {
		n, err := strconv.ParseInt(node.Atom, 10, 64)
		if err != nil {
			return nil, newError(SyntaxError, node.Pos, "integer literal %s out of range", node.Atom)
		}
		return &IntLiteral{Value: n, position: node.Pos}, nil
	}
	return &Identifier{Name: node.Atom, position: node.Pos}, nil
}

// lowerLiteral accepts only constant forms, as used by field initializers.
func lowerLiteral(node *SExpr) (Expression, error) {
	if node.IsList() {
		return nil, newError(SyntaxError, node.Pos, "initializer must be a literal, got %s", describeNode(node))
	}
	expr, err := lowerExpression(node)
	if err != nil {
		return nil, err
	}
	switch expr.(type) {
	case *IntLiteral, *StringLiteral, *BoolLiteral, *NullLiteral:
		return expr, nil
	default:
		return nil, newError(SyntaxError, node.Pos, "initializer must be a literal, got %s", node.Atom)
	}
}

func lowerCall(node *SExpr) (*CallExpr, error) {
	if len(node.List) < 3 {
		return nil, newError(SyntaxError, node.Pos, "call must be (call TARGET METHOD ARGS...)")
	}
	if !node.List[2].IsSymbol() {
		return nil, newError(SyntaxError, node.List[2].Pos, "method name must be a bare name")
	}
	call := &CallExpr{Method: node.List[2].Atom, position: node.Pos}

	target := node.List[1]
	if target.IsSymbol() && target.Atom == keywordSuper {
		call.Super = true
	} else {
		expr, err := lowerExpression(target)
		if err != nil {
			return nil, err
		}
		call.Target = expr
	}

	for _, arg := range node.List[3:] {
		expr, err := lowerExpression(arg)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, expr)
	}
	return call, nil
}

func isIntegerAtom(atom string) bool {
	digits := atom
	if len(digits) > 1 && (digits[0] == '-' || digits[0] == '+') {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

func isLiteralAtom(atom string) bool {
	return atom == keywordTrue || atom == keywordFalse || atom == keywordNull || isIntegerAtom(atom)
}

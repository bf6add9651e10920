package brewin

import "math"

func (exec *Execution) evalUnary(e *UnaryExpr) (Value, error) {
	operand, err := exec.evalValue(e.Operand, "operand of "+e.Operator)
	if err != nil {
		return NewVoid(), err
	}
	if operand.Kind() != KindBool {
		return NewVoid(), exec.errorAt(TypeError, e.Pos(), "%s expects bool, got %s", e.Operator, operand.TypeName())
	}
	return NewBool(!operand.Bool()), nil
}

func (exec *Execution) evalBinary(e *BinaryExpr) (Value, error) {
	left, err := exec.evalValue(e.Left, "operand of "+e.Operator)
	if err != nil {
		return NewVoid(), err
	}
	right, err := exec.evalValue(e.Right, "operand of "+e.Operator)
	if err != nil {
		return NewVoid(), err
	}

	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return exec.intOperator(e, left.Int(), right.Int())
	case left.Kind() == KindString && right.Kind() == KindString:
		if val, ok := stringOperator(e.Operator, left.Str(), right.Str()); ok {
			return val, nil
		}
		return NewVoid(), exec.operatorError(e, "string")
	case left.Kind() == KindBool && right.Kind() == KindBool:
		if val, ok := boolOperator(e.Operator, left.Bool(), right.Bool()); ok {
			return val, nil
		}
		return NewVoid(), exec.operatorError(e, "bool")
	case left.IsReference() && right.IsReference():
		if val, ok := referenceOperator(e.Operator, left, right); ok {
			return val, nil
		}
		return NewVoid(), exec.operatorError(e, "object references")
	default:
		return NewVoid(), exec.errorAt(TypeError, e.Pos(), "incompatible operands for %s: %s and %s", e.Operator, left.TypeName(), right.TypeName())
	}
}

func (exec *Execution) intOperator(e *BinaryExpr, a, b int64) (Value, error) {
	switch e.Operator {
	case "+", "-", "*":
		val, ok := checkedArithmetic(e.Operator, a, b)
		if !ok {
			return NewVoid(), exec.errorAt(FaultError, e.Pos(), "integer overflow in (%s %d %d)", e.Operator, a, b)
		}
		return NewInt(val), nil
	case "/":
		if b == 0 {
			return NewVoid(), exec.errorAt(FaultError, e.Pos(), "division by zero")
		}
		if a == math.MinInt64 && b == -1 {
			return NewVoid(), exec.errorAt(FaultError, e.Pos(), "integer overflow in (/ %d %d)", a, b)
		}
		return NewInt(floorDiv(a, b)), nil
	case "%":
		if b == 0 {
			return NewVoid(), exec.errorAt(FaultError, e.Pos(), "modulo by zero")
		}
		return NewInt(floorMod(a, b)), nil
	case "==":
		return NewBool(a == b), nil
	case "!=":
		return NewBool(a != b), nil
	case "<":
		return NewBool(a < b), nil
	case ">":
		return NewBool(a > b), nil
	case "<=":
		return NewBool(a <= b), nil
	case ">=":
		return NewBool(a >= b), nil
	}
	return NewVoid(), exec.operatorError(e, "int")
}

func (exec *Execution) operatorError(e *BinaryExpr, kind string) error {
	return exec.errorAt(TypeError, e.Pos(), "operator %s is not defined for %s", e.Operator, kind)
}

func stringOperator(op, a, b string) (Value, bool) {
	switch op {
	case "+":
		return NewString(a + b), true
	case "==":
		return NewBool(a == b), true
	case "!=":
		return NewBool(a != b), true
	case "<":
		return NewBool(a < b), true
	case ">":
		return NewBool(a > b), true
	case "<=":
		return NewBool(a <= b), true
	case ">=":
		return NewBool(a >= b), true
	}
	return NewVoid(), false
}

func boolOperator(op string, a, b bool) (Value, bool) {
	switch op {
	case "&":
		return NewBool(a && b), true
	case "|":
		return NewBool(a || b), true
	case "==":
		return NewBool(a == b), true
	case "!=":
		return NewBool(a != b), true
	}
	return NewVoid(), false
}

// referenceOperator compares object references by identity. Any two nulls
// are equal regardless of their declared class.
func referenceOperator(op string, a, b Value) (Value, bool) {
	same := a.Object() == b.Object()
	switch op {
	case "==":
		return NewBool(same), true
	case "!=":
		return NewBool(!same), true
	}
	return NewVoid(), false
}

// checkedArithmetic applies + - or * and reports false when the result
// does not fit in an int64.
func checkedArithmetic(op string, a, b int64) (int64, bool) {
	switch op {
	case "+":
		sum := a + b
		return sum, (a^sum)&(b^sum) >= 0
	case "-":
		diff := a - b
		return diff, (a^b)&(a^diff) >= 0
	default:
		if a == 0 || b == 0 {
			return 0, true
		}
		product := a * b
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return product, false
		}
		return product, product/b == a
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

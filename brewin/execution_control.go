package brewin

func (exec *Execution) evalCondition(expr Expression, what string) (bool, error) {
	val, err := exec.evalValue(expr, what+" condition")
	if err != nil {
		return false, err
	}
	if val.Kind() != KindBool {
		return false, exec.errorAt(TypeError, expr.Pos(), "%s condition must be bool, got %s", what, val.TypeName())
	}
	return val.Bool(), nil
}

func (exec *Execution) execWhile(s *WhileStmt) error {
	frame := exec.frame()
	for {
		ok, err := exec.evalCondition(s.Condition, "while")
		if err != nil {
			return err
		}
		if !ok || frame.terminated {
			return nil
		}
		if err := exec.execStatement(s.Body); err != nil {
			return err
		}
		if frame.terminated {
			return nil
		}
	}
}

func (exec *Execution) execIf(s *IfStmt) error {
	ok, err := exec.evalCondition(s.Condition, "if")
	if err != nil {
		return err
	}
	switch {
	case ok:
		return exec.execStatement(s.Then)
	case s.Else != nil:
		return exec.execStatement(s.Else)
	default:
		return nil
	}
}

func (exec *Execution) execReturn(s *ReturnStmt) error {
	frame := exec.frame()
	declared := frame.method.ReturnType

	if s.Value == nil {
		frame.result = declared.Zero()
		frame.terminated = true
		return nil
	}

	val, err := exec.evalExpression(s.Value)
	if err != nil {
		return err
	}
	if declared.Kind == TypeVoid {
		if !val.IsNull() {
			return exec.errorAt(TypeError, s.Pos(), "void method %s cannot return a value", frame.method.qualifiedName())
		}
		frame.terminated = true
		return nil
	}
	if !compatible(declared, val) {
		return exec.errorAt(TypeError, s.Pos(), "method %s returns %s, got %s", frame.method.qualifiedName(), declared, val.TypeName())
	}
	frame.result = coerce(declared, val)
	frame.terminated = true
	return nil
}

// execLet binds the declared locals in a new scope for the body. The scope
// is dropped on every exit path, including return.
func (exec *Execution) execLet(s *LetStmt) error {
	frame := exec.frame()
	scope := newEnv(frame.locals)

	for _, local := range s.Locals {
		if scope.Declared(local.Name) {
			return exec.errorAt(NameError, local.Pos(), "duplicate local %s", local.Name)
		}
		typ, err := exec.program.registry.resolveType(local.Type, local.Pos(), false)
		if err != nil {
			return exec.wrapError(err, local.Pos())
		}
		val := typ.Zero()
		if local.Init != nil {
			init, err := exec.evalValue(local.Init, "initializer of "+local.Name)
			if err != nil {
				return err
			}
			if !compatible(typ, init) {
				return exec.errorAt(TypeError, local.Pos(), "local %s declared %s cannot hold %s", local.Name, typ, init.TypeName())
			}
			val = coerce(typ, init)
		}
		scope.Define(local.Name, &Variable{Type: typ, Value: val})
	}

	outer := frame.locals
	frame.locals = scope
	defer func() { frame.locals = outer }()
	return exec.execBlock(s.Body)
}

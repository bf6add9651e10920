package brewin

func (exec *Execution) evalCall(call *CallExpr) (Value, error) {
	frame := exec.frame()

	var target *Object
	if call.Super {
		target = frame.self
	} else {
		val, err := exec.evalValue(call.Target, "call target")
		if err != nil {
			return NewVoid(), err
		}
		switch val.Kind() {
		case KindObject:
			target = val.Object()
		case KindNull:
			return NewVoid(), exec.errorAt(FaultError, call.Pos(), "call to %s on null reference", call.Method)
		default:
			return NewVoid(), exec.errorAt(TypeError, call.Pos(), "call target must be an object, got %s", val.TypeName())
		}
	}

	args := make([]Value, len(call.Args))
	for i, arg := range call.Args {
		val, err := exec.evalValue(arg, "argument")
		if err != nil {
			return NewVoid(), err
		}
		args[i] = val
	}

	return exec.dispatch(target, call.Method, args, call.Super, call.Pos())
}

// dispatch selects the nearest method named name whose parameters accept
// args, starting at target or, for super calls, at its nearest ancestor.
func (exec *Execution) dispatch(target *Object, name string, args []Value, super bool, pos Position) (Value, error) {
	method, owner := resolveMethod(target, name, args, super)
	if method == nil {
		if super {
			return NewVoid(), exec.errorAt(NameError, pos, "no ancestor of %s has a method %s%s", target.Class.Name, name, describeArgs(args))
		}
		return NewVoid(), exec.errorAt(NameError, pos, "class %s has no method %s%s", target.Class.Name, name, describeArgs(args))
	}
	return exec.invoke(owner, method, args, pos)
}

func resolveMethod(target *Object, name string, args []Value, super bool) (*MethodDef, *Object) {
	if !super {
		if m, ok := target.Class.Methods[name]; ok && m.accepts(args) {
			return m, target
		}
	}
	for _, level := range target.Ancestors() {
		if m, ok := level.Class.Methods[name]; ok && m.accepts(args) {
			return m, level
		}
	}
	return nil, nil
}

// invokeHost dispatches a call made by the embedding program. Host
// arguments skip the evaluator, so when no overload accepts them the
// nearest method with the same name and arity is bound anyway and the
// mismatched argument surfaces as a TypeError.
func (exec *Execution) invokeHost(target *Object, name string, args []Value) (Value, error) {
	if method, owner := resolveMethod(target, name, args, false); method != nil {
		return exec.invoke(owner, method, args, Position{})
	}
	if method, owner := resolveByArity(target, name, len(args)); method != nil {
		return exec.invoke(owner, method, args, Position{})
	}
	return exec.dispatch(target, name, args, false, Position{})
}

func resolveByArity(target *Object, name string, arity int) (*MethodDef, *Object) {
	levels := append([]*Object{target}, target.Ancestors()...)
	for _, level := range levels {
		if m, ok := level.Class.Methods[name]; ok && len(m.Params) == arity {
			return m, level
		}
	}
	return nil, nil
}

// invoke runs method against the object level that owns it.
func (exec *Execution) invoke(self *Object, method *MethodDef, args []Value, pos Position) (Value, error) {
	frame, err := exec.pushFrame(self, method, pos)
	if err != nil {
		return NewVoid(), err
	}
	defer exec.popFrame()

	for i, param := range method.Params {
		if !compatible(param.Type, args[i]) {
			return NewVoid(), exec.errorAt(TypeError, pos, "argument %s of %s expects %s, got %s", param.Name, method.qualifiedName(), param.Type, args[i].TypeName())
		}
		frame.params.Define(param.Name, &Variable{Type: param.Type, Value: coerce(param.Type, args[i])})
	}

	if exec.trace {
		execLog.Debugf("enter %s depth %d", method.qualifiedName(), len(exec.callStack))
	}
	if err := exec.execStatement(method.Body); err != nil {
		return NewVoid(), err
	}
	if exec.trace {
		execLog.Debugf("exit %s", method.qualifiedName())
	}
	return frame.result, nil
}

func describeArgs(args []Value) string {
	if len(args) == 0 {
		return "()"
	}
	out := "("
	for i, arg := range args {
		if i > 0 {
			out += ", "
		}
		out += arg.TypeName()
	}
	return out + ")"
}

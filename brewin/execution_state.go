package brewin

func (exec *Execution) frame() *callFrame {
	return exec.callStack[len(exec.callStack)-1]
}

func (exec *Execution) pushFrame(self *Object, method *MethodDef, pos Position) (*callFrame, error) {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return nil, exec.errorAt(FaultError, pos, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	frame := &callFrame{
		method:  method,
		self:    self,
		params:  newEnv(nil),
		callPos: pos,
		result:  method.ReturnType.Zero(),
	}
	exec.callStack = append(exec.callStack, frame)
	return frame, nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack[len(exec.callStack)-1] = nil
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

// lookup resolves a variable as local, then parameter, then field of the
// object level that owns the running method.
func (exec *Execution) lookup(name string) (*Variable, bool) {
	frame := exec.frame()
	if frame.locals != nil {
		if v, ok := frame.locals.Get(name); ok {
			return v, true
		}
	}
	if v, ok := frame.params.Get(name); ok {
		return v, true
	}
	return frame.self.Field(name)
}

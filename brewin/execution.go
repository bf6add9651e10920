package brewin

import (
	"context"
	"errors"
	"strings"
)

// Execution is the state of one run: I/O, limits, and the call stack.
type Execution struct {
	program      *Program
	ctx          context.Context
	out          OutputSink
	in           InputSource
	quota        int
	recursionCap int
	steps        int
	trace        bool
	callStack    []*callFrame
}

// callFrame is the state of one method invocation. self is the object level
// that owns the running method.
type callFrame struct {
	method     *MethodDef
	self       *Object
	params     *Env
	locals     *Env
	callPos    Position
	terminated bool
	result     Value
}

func (exec *Execution) execStatement(stmt Statement) error {
	frame := exec.frame()
	if frame.terminated {
		return nil
	}
	if err := exec.step(); err != nil {
		return exec.wrapError(err, stmt.Pos())
	}
	if exec.trace {
		execLog.Debugf("%s line %d: %s", frame.method.qualifiedName(), stmt.Pos().Line, StatementName(stmt))
	}

	switch s := stmt.(type) {
	case *PrintStmt:
		return exec.execPrint(s)
	case *SetStmt:
		return exec.execSet(s)
	case *InputStmt:
		return exec.execInput(s)
	case *CallStmt:
		_, err := exec.evalCall(s.Call)
		return err
	case *WhileStmt:
		return exec.execWhile(s)
	case *IfStmt:
		return exec.execIf(s)
	case *ReturnStmt:
		return exec.execReturn(s)
	case *BeginStmt:
		return exec.execBlock(s.Body)
	case *LetStmt:
		return exec.execLet(s)
	default:
		return exec.errorAt(SyntaxError, stmt.Pos(), "unsupported statement %T", stmt)
	}
}

func (exec *Execution) execBlock(stmts []Statement) error {
	frame := exec.frame()
	for _, stmt := range stmts {
		if frame.terminated {
			return nil
		}
		if err := exec.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (exec *Execution) execPrint(s *PrintStmt) error {
	var b strings.Builder
	for _, arg := range s.Args {
		val, err := exec.evalValue(arg, "print argument")
		if err != nil {
			return err
		}
		b.WriteString(val.String())
	}
	if err := exec.out.WriteLine(b.String()); err != nil {
		return exec.wrapError(err, s.Pos())
	}
	return nil
}

func (exec *Execution) evalExpression(expr Expression) (Value, error) {
	if err := exec.step(); err != nil {
		return NewVoid(), exec.wrapError(err, expr.Pos())
	}

	switch e := expr.(type) {
	case *IntLiteral:
		return NewInt(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NullLiteral:
		return NewNull(), nil
	case *MeExpr:
		return NewObject(exec.frame().self.Origin()), nil
	case *Identifier:
		v, ok := exec.lookup(e.Name)
		if !ok {
			return NewVoid(), exec.errorAt(NameError, e.Pos(), "undefined variable %s", e.Name)
		}
		return v.Value, nil
	case *NewExpr:
		def, err := exec.program.registry.classForNew(e.Class, e.Pos())
		if err != nil {
			var be *Error
			if errors.As(err, &be) && be.Frames == nil {
				// Expansion errors point at the template member; the
				// stack still starts at the new expression.
				be.Frames = exec.frames(e.Pos())
			}
			return NewVoid(), exec.wrapError(err, e.Pos())
		}
		return NewObject(instantiate(def)), nil
	case *UnaryExpr:
		return exec.evalUnary(e)
	case *BinaryExpr:
		return exec.evalBinary(e)
	case *CallExpr:
		return exec.evalCall(e)
	default:
		return NewVoid(), exec.errorAt(SyntaxError, expr.Pos(), "unsupported expression %T", expr)
	}
}

// evalValue evaluates expr and rejects the void result of a void method.
func (exec *Execution) evalValue(expr Expression, use string) (Value, error) {
	val, err := exec.evalExpression(expr)
	if err != nil {
		return NewVoid(), err
	}
	if val.IsVoid() {
		return NewVoid(), exec.errorAt(TypeError, expr.Pos(), "%s has no value (void)", use)
	}
	return val, nil
}

package brewin

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

func (exec *Execution) execSet(s *SetStmt) error {
	target, ok := exec.lookup(s.Name)
	if !ok {
		return exec.errorAt(NameError, s.Pos(), "undefined variable %s", s.Name)
	}
	val, err := exec.evalValue(s.Value, "assigned value")
	if err != nil {
		return err
	}
	return exec.assign(target, s.Name, val, s.Pos())
}

func (exec *Execution) assign(target *Variable, name string, val Value, pos Position) error {
	if !compatible(target.Type, val) {
		return exec.errorAt(TypeError, pos, "cannot assign %s to %s declared %s", val.TypeName(), name, target.Type)
	}
	target.Value = coerce(target.Type, val)
	return nil
}

func (exec *Execution) execInput(s *InputStmt) error {
	target, ok := exec.lookup(s.Name)
	if !ok {
		return exec.errorAt(NameError, s.Pos(), "undefined variable %s", s.Name)
	}
	line, err := exec.in.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return exec.errorAt(FaultError, s.Pos(), "no more input for %s", StatementName(s))
		}
		return exec.wrapError(err, s.Pos())
	}

	val := NewString(line)
	if s.Integer {
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return exec.errorAt(TypeError, s.Pos(), "inputi expects an integer, got %q", line)
		}
		val = NewInt(n)
	}
	return exec.assign(target, s.Name, val, s.Pos())
}

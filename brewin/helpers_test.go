package brewin

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func compileProgram(t testing.TB, source string) *Program {
	t.Helper()
	return compileProgramWithConfig(t, Config{}, source)
}

func compileProgramWithConfig(t testing.TB, cfg Config, source string) *Program {
	t.Helper()
	engine := MustNewEngine(cfg)
	program, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return program
}

func compileError(t testing.TB, source string) error {
	t.Helper()
	_, err := MustNewEngine(Config{}).Compile(source)
	if err == nil {
		t.Fatalf("expected compile to fail")
	}
	return err
}

// runProgram compiles and runs source, returning the printed lines.
func runProgram(t testing.TB, source string, input ...string) []string {
	t.Helper()
	program := compileProgram(t, source)
	out := &BufferSink{}
	if err := program.Run(context.Background(), RunOptions{Output: out, Input: NewLineSource(input)}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return out.Lines()
}

// runProgramError runs source expecting a failure at load or run time and
// returns the lines printed before it together with the error.
func runProgramError(t testing.TB, source string, input ...string) ([]string, error) {
	t.Helper()
	program, err := MustNewEngine(Config{}).Compile(source)
	if err != nil {
		return nil, err
	}
	out := &BufferSink{}
	err = program.Run(context.Background(), RunOptions{Output: out, Input: NewLineSource(input)})
	if err == nil {
		t.Fatalf("expected run to fail, printed %q", out.Lines())
	}
	return out.Lines(), err
}

func requireErrorKind(t testing.TB, err error, want ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", want)
	}
	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if be.Kind != want {
		t.Fatalf("expected %s, got %s: %v", want, be.Kind, err)
	}
}

func requireErrorContains(t testing.TB, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error containing %q, got %v", want, err)
	}
}

func requireLines(t testing.TB, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines %q, got %d lines %q", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q (all output %q)", i+1, want[i], got[i], got)
		}
	}
}

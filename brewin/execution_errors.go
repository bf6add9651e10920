package brewin

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the fixed taxonomy of fatal Brewin errors.
type ErrorKind int

const (
	SyntaxError ErrorKind = iota + 1
	NameError
	TypeError
	FaultError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case FaultError:
		return "FaultError"
	default:
		return "Error"
	}
}

// ParseErrorKind maps a kind name such as "TypeError" back to its kind.
func ParseErrorKind(name string) (ErrorKind, bool) {
	for _, kind := range []ErrorKind{SyntaxError, NameError, TypeError, FaultError} {
		if strings.EqualFold(name, kind.String()) {
			return kind, true
		}
	}
	return 0, false
}

type StackFrame struct {
	Function string
	Pos      Position
}

// Error is the single error type returned for every fatal condition.
type Error struct {
	Kind      ErrorKind
	Message   string
	Pos       Position
	CodeFrame string
	Frames    []StackFrame

	cause error
}

const (
	errorFrameHead = 8
	errorFrameTail = 8
)

// ErrStepQuotaExceeded is wrapped by the FaultError returned when a run
// executes more steps than Config.StepQuota allows.
var ErrStepQuotaExceeded = errors.New("step quota exceeded")

func newError(kind ErrorKind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(e.Frames) <= errorFrameHead+errorFrameTail {
		for _, frame := range e.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range e.Frames[:errorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(e.Frames) - (errorFrameHead + errorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range e.Frames[len(e.Frames)-errorFrameTail:] {
		renderFrame(frame)
	}
	return b.String()
}

// Summary renders the kind, message, and line without the code frame.
func (e *Error) Summary() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Message, e.Pos.Line)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes host signals such as ErrStepQuotaExceeded and
// context.Canceled.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the kind of a Brewin error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

func isHostControlSignal(err error) bool {
	return errors.Is(err, ErrStepQuotaExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", ErrStepQuotaExceeded, exec.quota)
	}
	if exec.ctx != nil && exec.steps&63 == 0 {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) errorAt(kind ErrorKind, pos Position, format string, args ...any) error {
	return exec.decorate(newError(kind, pos, format, args...))
}

// decorate attaches the call stack and code frame to an error raised by a
// collaborator that had no access to them.
func (exec *Execution) decorate(e *Error) *Error {
	if e.Frames == nil {
		e.Frames = exec.frames(e.Pos)
	}
	if e.CodeFrame == "" && exec.program != nil {
		e.CodeFrame = formatCodeFrame(exec.program.source, e.Pos)
	}
	return e
}

func (exec *Execution) frames(pos Position) []StackFrame {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) == 0 {
		return append(frames, StackFrame{Function: "<program>", Pos: pos})
	}
	current := exec.callStack[len(exec.callStack)-1]
	frames = append(frames, StackFrame{Function: current.method.qualifiedName(), Pos: pos})
	for i := len(exec.callStack) - 1; i >= 0; i-- {
		cf := exec.callStack[i]
		caller := "<program>"
		if i > 0 {
			caller = exec.callStack[i-1].method.qualifiedName()
		}
		frames = append(frames, StackFrame{Function: caller, Pos: cf.callPos})
	}
	return frames
}

// wrapError converts any error into a decorated *Error. Host signals
// become FaultErrors that still unwrap to the signal.
func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return exec.decorate(be)
	}
	message := err.Error()
	if isHostControlSignal(err) {
		message = "execution aborted: " + message
	}
	wrapped := exec.decorate(newError(FaultError, pos, "%s", message))
	wrapped.cause = err
	return wrapped
}

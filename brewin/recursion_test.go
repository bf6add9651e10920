package brewin

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

const countdownSource = `
(class main
  (method int down ((int n))
    (if (<= n 0)
      (return 0)
      (return (+ 1 (call me down (- n 1))))))
  (method void main () (print (call me down depth)))
  (field int depth 5))`

func TestRecursionLimitExceeded(t *testing.T) {
	program := compileProgramWithConfig(t, Config{RecursionLimit: 3}, countdownSource)
	err := program.Run(context.Background(), RunOptions{})
	requireErrorKind(t, err, FaultError)
	requireErrorContains(t, err, "recursion depth exceeded (limit 3)")
}

func TestRecursionLimitAllowsWithinBound(t *testing.T) {
	program := compileProgramWithConfig(t, Config{RecursionLimit: 7}, countdownSource)
	out := &BufferSink{}
	if err := program.Run(context.Background(), RunOptions{Output: out}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireLines(t, out.Lines(), "5")
}

func TestDeepErrorTraceIsTruncated(t *testing.T) {
	program := compileProgramWithConfig(t, Config{RecursionLimit: 40}, `
(class main
  (method void down ((int n)) (call me down (+ n 1)))
  (method void main () (call me down 0)))`)
	err := program.Run(context.Background(), RunOptions{})
	requireErrorKind(t, err, FaultError)
	requireErrorContains(t, err, "frames omitted")
}

func TestStepQuotaExceeded(t *testing.T) {
	program := compileProgramWithConfig(t, Config{StepQuota: 500}, `
(class main
  (method void main () (while true (print "spin"))))`)
	err := program.Run(context.Background(), RunOptions{})
	requireErrorKind(t, err, FaultError)
	if !errors.Is(err, ErrStepQuotaExceeded) {
		t.Fatalf("expected ErrStepQuotaExceeded in chain, got %v", err)
	}
}

func TestContextCancellationStopsRun(t *testing.T) {
	program := compileProgramWithConfig(t, Config{StepQuota: math.MaxInt32}, `
(class main
  (field int n 0)
  (method void main () (while true (set n (+ n 1)))))`)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := program.Run(ctx, RunOptions{})
	requireErrorKind(t, err, FaultError)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline in chain, got %v", err)
	}
}

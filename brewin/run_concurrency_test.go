package brewin

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestProgramRunsConcurrently(t *testing.T) {
	program := compileProgram(t, `
(tclass Box (T)
  (field T item)
  (method void put ((T x)) (set item x))
  (method T take () (return item)))
(class main
  (field int n)
  (method void main ()
    (begin
      (inputi n)
      (let ((Box@int b (new Box@int)) (Box@bool flag (new Box@bool)))
        (call b put (* n n))
        (call flag put (> n 10))
        (print (call b take) " " (call flag take))))))`)

	const workers = 8
	var wg sync.WaitGroup
	results := make([][]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out := &BufferSink{}
			errs[i] = program.Run(context.Background(), RunOptions{
				Output: out,
				Input:  NewLineSource([]string{fmt.Sprint(i)}),
			})
			results[i] = out.Lines()
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d failed: %v", i, errs[i])
		}
		requireLines(t, results[i], fmt.Sprintf("%d %t", i*i, i > 10))
	}
	if got := program.TemplateInstances(); got != 2 {
		t.Fatalf("expected 2 template instances, got %d", got)
	}
}

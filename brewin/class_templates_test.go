package brewin

import (
	"context"
	"testing"
)

const pairSource = `
(tclass Pair (K V)
  (field K key)
  (field V value)
  (method void set ((K k) (V v)) (begin (set key k) (set value v)))
  (method K first () (return key))
  (method V second () (return value))
  (method string label () (return "K and V")))
`

func TestTemplateInstantiation(t *testing.T) {
	lines := runProgram(t, pairSource+`
(class main
  (field Pair@int@string p)
  (method void main ()
    (begin
      (set p (new Pair@int@string))
      (call p set 7 "seven")
      (print (call p first) " " (call p second) " " (call p label)))))`)
	requireLines(t, lines, "7 seven K and V")
}

func TestTemplateInstancesAreCachedButObjectsAreFresh(t *testing.T) {
	program := compileProgram(t, pairSource+`
(class main
  (field Pair@int@string a)
  (field Pair@int@string b)
  (method void main ()
    (begin
      (set a (new Pair@int@string))
      (set b (new Pair@int@string))
      (call a set 1 "one")
      (call b set 2 "two")
      (print (call a first) (call b first) " " (== a b)))))`)

	if got := program.TemplateInstances(); got != 1 {
		t.Fatalf("expected 1 cached instance after load, got %d", got)
	}
	out := &BufferSink{}
	if err := program.Run(context.Background(), RunOptions{Output: out}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	requireLines(t, out.Lines(), "12 false")
	if got := program.TemplateInstances(); got != 1 {
		t.Fatalf("expected cache hit on repeated new, got %d instances", got)
	}

	first, err := program.Instantiate("Pair@int@string")
	if err != nil {
		t.Fatalf("instantiate failed: %v", err)
	}
	second, err := program.Instantiate("Pair@int@string")
	if err != nil {
		t.Fatalf("instantiate failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct objects")
	}
	if first.Class != second.Class {
		t.Fatalf("expected the same class definition")
	}

	if _, err := program.Instantiate("Pair@string@int"); err != nil {
		t.Fatalf("instantiate failed: %v", err)
	}
	if got := program.TemplateInstances(); got != 2 {
		t.Fatalf("expected a second instance for new arguments, got %d", got)
	}
}

func TestTemplateTypeChecking(t *testing.T) {
	_, err := runProgramError(t, pairSource+`
(class main
  (method void main ()
    (call (new Pair@int@string) set "wrong" "order")))`)
	requireErrorKind(t, err, NameError)

	_, err = runProgramError(t, pairSource+`
(class main
  (field Pair@int@int p)
  (method void main () (set p (new Pair@int@string))))`)
	requireErrorKind(t, err, TypeError)
}

func TestSelfReferentialTemplate(t *testing.T) {
	lines := runProgram(t, `
(tclass Node (T)
  (field T value)
  (field Node@T next)
  (method void init ((T v) (Node@T n)) (begin (set value v) (set next n)))
  (method T get () (return value))
  (method Node@T rest () (return next)))
(class main
  (method void main ()
    (let ((Node@string a (new Node@string)) (Node@string b (new Node@string)))
      (call b init "tail" null)
      (call a init "head" b)
      (print (call a get) " " (call (call a rest) get) " " (== (call b rest) null)))))`)
	requireLines(t, lines, "head tail true")
}

func TestTemplateWithClassArgument(t *testing.T) {
	lines := runProgram(t, `
(class Animal (method string noise () (return "...")))
(class Dog inherits Animal (method string noise () (return "woof")))
(tclass Box (T)
  (field T item)
  (method void put ((T x)) (set item x))
  (method T take () (return item)))
(class main
  (method void main ()
    (let ((Box@Animal box (new Box@Animal)))
      (call box put (new Dog))
      (print (call (call box take) noise)))))`)
	requireLines(t, lines, "woof")
}

func TestTemplateErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		kind   ErrorKind
	}{
		{"wrong count", pairSource + `(class main (method void main () (print (new Pair@int))))`, TypeError},
		{"unknown argument", pairSource + `(class main (method void main () (print (new Pair@int@Ghost))))`, TypeError},
		{"template argument", pairSource + `(class main (method void main () (print (new Pair@int@Pair))))`, TypeError},
		{"bare template", pairSource + `(class main (method void main () (print (new Pair))))`, TypeError},
		{"undeclared template", `(class main (method void main () (print (new Ghost@int))))`, NameError},
		{"non-template", `(class Plain) (class main (method void main () (print (new Plain@int))))`, TypeError},
		{"bad initializer", `(tclass Box (T) (field T v 5)) (class main (method void main () (print (new Box@string))))`, TypeError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runProgramError(t, tc.source)
			requireErrorKind(t, err, tc.kind)
		})
	}
}

func TestTemplateInstanceLimit(t *testing.T) {
	program := compileProgramWithConfig(t, Config{MaxTemplateInstances: 1}, `(tclass Box (T) (field T v))`)
	if _, err := program.Instantiate("Box@int"); err != nil {
		t.Fatalf("first instance failed: %v", err)
	}
	_, err := program.Instantiate("Box@bool")
	requireErrorKind(t, err, FaultError)
	requireErrorContains(t, err, "template instance limit")
}

const mutualTemplateSource = `
(tclass A (T)
  (field B@T b null)
  (field T x "bad")
  (method void show () (print "A made")))
(tclass B (T)
  (field A@T a null)
  (method void show () (print "B made")))
(class main
  (field int choice)
  (method void main ()
    (begin
      (inputi choice)
      (if (== choice 1)
        (call (new A@int) show)
        (call (new B@int) show)))))
`

func TestFailedExpansionLeavesNoInstancesBehind(t *testing.T) {
	program := compileProgram(t, mutualTemplateSource)

	for _, input := range []string{"1", "2", "2"} {
		out := &BufferSink{}
		err := program.Run(context.Background(), RunOptions{Output: out, Input: NewLineSource([]string{input})})
		requireErrorKind(t, err, TypeError)
		requireErrorContains(t, err, "field x declared int cannot hold string")
		if lines := out.Lines(); len(lines) != 0 {
			t.Fatalf("input %s: expected no output, got %q", input, lines)
		}
		if got := program.TemplateInstances(); got != 0 {
			t.Fatalf("input %s: expected failed expansion to leave no instances, got %d", input, got)
		}
	}

	_, err := program.Instantiate("B@int")
	requireErrorKind(t, err, TypeError)
	if got := program.TemplateInstances(); got != 0 {
		t.Fatalf("expected no instances after failed Instantiate, got %d", got)
	}
}

func TestExpansionAfterFailureStillCaches(t *testing.T) {
	program := compileProgram(t, pairSource+`(tclass Broken (T) (field T v "bad"))`)
	if _, err := program.Instantiate("Broken@int"); err == nil {
		t.Fatalf("expected Broken@int to fail")
	}
	if _, err := program.Instantiate("Pair@int@int"); err != nil {
		t.Fatalf("instantiate failed: %v", err)
	}
	if _, err := program.Instantiate("Pair@int@int"); err != nil {
		t.Fatalf("instantiate failed: %v", err)
	}
	if got := program.TemplateInstances(); got != 1 {
		t.Fatalf("expected 1 cached instance, got %d", got)
	}
}

func TestExpansionErrorReportsNewSite(t *testing.T) {
	_, err := runProgramError(t, `(tclass Box (T)
  (field T v "bad"))
(class main
  (method void main ()
    (print (new Box@int))))`)
	requireErrorKind(t, err, TypeError)
	be := err.(*Error)
	if be.Pos.Line != 2 {
		t.Fatalf("expected error on the field line, got %+v", be.Pos)
	}
	if len(be.Frames) == 0 || be.Frames[0].Pos.Line != 5 {
		t.Fatalf("expected current frame at the new expression on line 5, got %+v", be.Frames)
	}
	requireErrorContains(t, err, "at main.main (5:")
	requireErrorContains(t, err, "--> line 2")
}

func TestSubstituteLeavesStringsAlone(t *testing.T) {
	trees, err := ParseSource(`(x T "T" Node@T (T U@T))`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	node := trees[0]
	substitute(node, map[string]string{"T": "int", "U": "Box"})
	if got := node.String(); got != `(x int "T" Node@int (int Box@int))` {
		t.Fatalf("unexpected substitution: %s", got)
	}
}

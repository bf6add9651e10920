package brewin

import (
	"testing"
)

func lowerSource(t *testing.T, source string) *ClassDecl {
	t.Helper()
	trees, err := ParseSource(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	decl, err := LowerClass(trees[0])
	if err != nil {
		t.Fatalf("lower failed: %v", err)
	}
	return decl
}

func TestLowerClassDeclaration(t *testing.T) {
	decl := lowerSource(t, `
(class Dog inherits Animal
  (field int age 3)
  (field Dog friend)
  (method string greet ((string name) (int times))
    (begin
      (print "hi " name)
      (return (+ "x" name)))))`)

	if decl.Name != "Dog" || decl.Super != "Animal" || decl.IsTemplate() {
		t.Fatalf("unexpected header: %+v", decl)
	}
	if len(decl.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(decl.Fields))
	}
	if lit, ok := decl.Fields[0].Init.(*IntLiteral); !ok || lit.Value != 3 {
		t.Fatalf("unexpected initializer: %#v", decl.Fields[0].Init)
	}
	if decl.Fields[1].Init != nil {
		t.Fatalf("expected omitted initializer")
	}

	method := decl.Methods[0]
	if method.ReturnType != "string" || method.Name != "greet" || len(method.Params) != 2 {
		t.Fatalf("unexpected method: %+v", method)
	}
	if method.Params[1].Type != "int" || method.Params[1].Name != "times" {
		t.Fatalf("unexpected param: %+v", method.Params[1])
	}
	begin, ok := method.Body.(*BeginStmt)
	if !ok || len(begin.Body) != 2 {
		t.Fatalf("expected begin with 2 statements, got %#v", method.Body)
	}
	ret, ok := begin.Body[1].(*ReturnStmt)
	if !ok {
		t.Fatalf("expected return, got %T", begin.Body[1])
	}
	bin, ok := ret.Value.(*BinaryExpr)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected + expression, got %#v", ret.Value)
	}
	if _, ok := bin.Right.(*Identifier); !ok {
		t.Fatalf("expected identifier operand, got %T", bin.Right)
	}
}

func TestLowerTemplateDeclaration(t *testing.T) {
	decl := lowerSource(t, `(tclass Box (T) (field T value) (method T get () (return value)))`)
	if !decl.IsTemplate() || len(decl.TypeParams) != 1 || decl.TypeParams[0] != "T" {
		t.Fatalf("unexpected template header: %+v", decl)
	}
	if decl.Source == nil || decl.Source.Head() != "tclass" {
		t.Fatalf("template should keep its source tree")
	}
}

func TestLowerExpressions(t *testing.T) {
	decl := lowerSource(t, `
(class main
  (method void main ()
    (begin
      (print -12 true null "s" me)
      (call super go (! false) (new Foo@int))
      (let ((int x 1) (string y)) (set x 2))
      (if x (inputi x) (inputs x)))))`)

	begin := decl.Methods[0].Body.(*BeginStmt)
	printStmt := begin.Body[0].(*PrintStmt)
	if lit := printStmt.Args[0].(*IntLiteral); lit.Value != -12 {
		t.Fatalf("expected -12, got %d", lit.Value)
	}
	if _, ok := printStmt.Args[2].(*NullLiteral); !ok {
		t.Fatalf("expected null literal, got %T", printStmt.Args[2])
	}
	if _, ok := printStmt.Args[4].(*MeExpr); !ok {
		t.Fatalf("expected me, got %T", printStmt.Args[4])
	}

	call := begin.Body[1].(*CallStmt).Call
	if !call.Super || call.Target != nil || call.Method != "go" || len(call.Args) != 2 {
		t.Fatalf("unexpected super call: %+v", call)
	}
	if ne, ok := call.Args[1].(*NewExpr); !ok || ne.Class != "Foo@int" {
		t.Fatalf("unexpected new expression: %#v", call.Args[1])
	}

	let := begin.Body[2].(*LetStmt)
	if len(let.Locals) != 2 || let.Locals[1].Init != nil || len(let.Body) != 1 {
		t.Fatalf("unexpected let: %+v", let)
	}

	ifStmt := begin.Body[3].(*IfStmt)
	if in := ifStmt.Then.(*InputStmt); !in.Integer {
		t.Fatalf("expected inputi")
	}
	if in := ifStmt.Else.(*InputStmt); in.Integer {
		t.Fatalf("expected inputs")
	}
}

func TestLowerSyntaxErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"not a class", `(print 1)`, "expected class or tclass"},
		{"field arity", `(class main (field int))`, "field must be"},
		{"method arity", `(class main (method void main ()))`, "method must be"},
		{"bad param", `(class main (method void f ((int)) (print 1)))`, "parameter must be"},
		{"set arity", `(class main (method void main () (set x)))`, "set must be"},
		{"unknown statement", `(class main (method void main () (jump 3)))`, "unknown statement jump"},
		{"unknown operator", `(class main (method void main () (print (^ 1 2))))`, "unknown operator ^"},
		{"binary arity", `(class main (method void main () (print (+ 1 2 3))))`, "exactly two operands"},
		{"non-literal field", `(class main (field int x (+ 1 2)))`, "must be a literal"},
		{"identifier field", `(class main (field int x y))`, "must be a literal"},
		{"empty begin", `(class main (method void main () (begin)))`, "at least one statement"},
		{"bare super", `(class main (method void main () (print super)))`, "call target"},
		{"reserved name", `(class main (field int true))`, "reserved"},
		{"primitive class name", `(class int (field int x))`, "class name int is reserved"},
		{"primitive field name", `(class main (field int string))`, "field name string is reserved"},
		{"primitive parameter name", `(class main (method void f ((int bool)) (print 1)))`, "parameter name bool is reserved"},
		{"primitive local name", `(class main (method void main () (let ((int void 0)) (print 1))))`, "local name void is reserved"},
		{"primitive type parameter", `(tclass Box (int) (field int v))`, "type parameter name int is reserved"},
		{"at in class name", `(class A@B)`, "may not contain"},
		{"integer overflow", `(class main (method void main () (print 99999999999999999999)))`, "out of range"},
		{"stray item", `(class main (print 1))`, "expected field or method"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := compileError(t, tc.source)
			requireErrorKind(t, err, SyntaxError)
			requireErrorContains(t, err, tc.want)
		})
	}
}

func TestDuplicateTypeParameterIsNameError(t *testing.T) {
	err := compileError(t, `(tclass Pair (T T) (field T a))`)
	requireErrorKind(t, err, NameError)
}

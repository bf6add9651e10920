package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTestCommandRunsRepoSuite(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return testCommand([]string{filepath.Join("..", "..", "tests", "suite.yaml")})
	})
	if err != nil {
		t.Fatalf("suite failed: %v\n%s", err, out)
	}
	for _, name := range []string{"hello", "greet", "inline arithmetic", "null call"} {
		if !strings.Contains(out, "PASS "+name) {
			t.Fatalf("expected %q to pass, got:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "4 passed, 0 failed") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}

func TestTestCommandReportsFailures(t *testing.T) {
	suite := writeSuite(t, `cases:
  - name: wrong output
    source: |
      (class main (method void main () (print "actual")))
    expect: [expected]
  - name: missing error
    source: |
      (class main (method void main () (print 1)))
    error: NameError
  - name: wrong kind
    source: |
      (class main (method void main () (print (/ 1 0))))
    error: TypeError
`)

	out, err := captureStdout(t, func() error {
		return testCommand([]string{suite})
	})
	if err == nil {
		t.Fatalf("expected failures")
	}
	if !strings.Contains(err.Error(), "3 case(s) failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"FAIL wrong output: output mismatch",
		"FAIL missing error: expected NameError, program finished",
		"FAIL wrong kind: expected TypeError, got FaultError",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLoadSuiteRejectsMalformedCases(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "cases:\n  - name: a\n    source: x\n    stdout: [1]\n",
		"no source":      "cases:\n  - name: a\n",
		"both sources":   "cases:\n  - name: a\n    source: x\n    program: y.brewin\n",
		"bad error kind": "cases:\n  - name: a\n    source: x\n    error: Oops\n",
		"unnamed case":   "cases:\n  - source: x\n",
	}
	for label, body := range cases {
		t.Run(label, func(t *testing.T) {
			if _, err := loadSuite(writeSuite(t, body)); err == nil {
				t.Fatalf("expected %s to be rejected", label)
			}
		})
	}
}

func TestRunSuiteCaseReadsProgramRelativeToSuite(t *testing.T) {
	dir := t.TempDir()
	program := "(class main (field string s) (method void main () (begin (inputs s) (print s s))))"
	if err := os.WriteFile(filepath.Join(dir, "echo.brewin"), []byte(program), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	c := suiteCase{Name: "echo", Program: "echo.brewin", Stdin: []string{"ab"}, Expect: []string{"abab"}}
	if err := runSuiteCase(c, dir); err != nil {
		t.Fatalf("case failed: %v", err)
	}
}

func writeSuite(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write suite: %v", err)
	}
	return path
}

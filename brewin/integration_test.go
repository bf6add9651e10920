package brewin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fixture is a program under ../tests with optional siblings: .in (input
// lines), .out (expected output), and .err (expected error kind).
type fixture struct {
	path   string
	input  []string
	output []string
	kind   string
}

func loadFixtures(t *testing.T) []fixture {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("..", "tests", "*", "*.brewin"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures found")
	}
	fixtures := make([]fixture, 0, len(paths))
	for _, path := range paths {
		base := strings.TrimSuffix(path, ".brewin")
		fx := fixture{path: path}
		fx.input = readFixtureLines(t, base+".in")
		fx.output = readFixtureLines(t, base+".out")
		if kind := readFixtureLines(t, base+".err"); len(kind) > 0 {
			fx.kind = strings.TrimSpace(kind[0])
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures
}

func readFixtureLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestFixturePrograms(t *testing.T) {
	engine := MustNewEngine(Config{})
	for _, fx := range loadFixtures(t) {
		name := filepath.ToSlash(strings.TrimPrefix(fx.path, filepath.Join("..", "tests")+string(filepath.Separator)))
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(fx.path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			out := &BufferSink{}
			program, err := engine.Compile(string(source))
			if err == nil {
				err = program.Run(context.Background(), RunOptions{Output: out, Input: NewLineSource(fx.input)})
			}

			if fx.kind != "" {
				want, ok := ParseErrorKind(fx.kind)
				if !ok {
					t.Fatalf("unknown error kind %q in fixture", fx.kind)
				}
				requireErrorKind(t, err, want)
			} else if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			requireLines(t, out.Lines(), fx.output...)
		})
	}
}

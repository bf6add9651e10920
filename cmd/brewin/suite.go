package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mgomes/brewin/brewin"
	"gopkg.in/yaml.v3"
)

// suiteFile lists fixture cases. Program paths are relative to the suite.
type suiteFile struct {
	Cases []suiteCase `yaml:"cases"`
}

type suiteCase struct {
	Name    string   `yaml:"name"`
	Program string   `yaml:"program"`
	Source  string   `yaml:"source"`
	Stdin   []string `yaml:"stdin"`
	Expect  []string `yaml:"expect"`
	Error   string   `yaml:"error"`
}

type caseResult struct {
	name   string
	failed bool
	detail string
}

func testCommand(args []string) error {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("brewin test: suite path required")
	}

	suitePath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve suite path: %w", err)
	}
	suite, err := loadSuite(suitePath)
	if err != nil {
		return err
	}

	results := runSuite(suite, filepath.Dir(suitePath))
	failed := 0
	for _, result := range results {
		if result.failed {
			failed++
			fmt.Printf("%s %s: %s\n", errorKindStyle.Render("FAIL"), result.name, result.detail)
			continue
		}
		fmt.Printf("%s %s\n", passStyle.Render("PASS"), result.name)
	}
	fmt.Println(mutedStyle.Render(fmt.Sprintf("%d passed, %d failed", len(results)-failed, failed)))

	if failed > 0 {
		return fmt.Errorf("brewin test: %d case(s) failed", failed)
	}
	return nil
}

func loadSuite(path string) (*suiteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var suite suiteFile
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("parse suite %s: %w", path, err)
	}
	for i, c := range suite.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("%s: case %d has no name", path, i+1)
		}
		if (c.Program == "") == (c.Source == "") {
			return nil, fmt.Errorf("%s: case %q needs exactly one of program or source", path, c.Name)
		}
		if c.Error != "" {
			if _, ok := brewin.ParseErrorKind(c.Error); !ok {
				return nil, fmt.Errorf("%s: case %q names unknown error kind %s", path, c.Name, c.Error)
			}
		}
	}
	return &suite, nil
}

func runSuite(suite *suiteFile, dir string) []caseResult {
	results := make([]caseResult, 0, len(suite.Cases))
	for _, c := range suite.Cases {
		result := caseResult{name: c.Name}
		if err := runSuiteCase(c, dir); err != nil {
			result.failed = true
			result.detail = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// runSuiteCase runs one case on a fresh engine. A case expecting an error
// only checks output when it also lists expected lines.
func runSuiteCase(c suiteCase, dir string) error {
	source := c.Source
	if c.Program != "" {
		data, err := os.ReadFile(filepath.Join(dir, c.Program))
		if err != nil {
			return fmt.Errorf("read program: %w", err)
		}
		source = string(data)
	}

	engine := brewin.MustNewEngine(brewin.Config{})
	out := &brewin.BufferSink{}
	err := func() error {
		program, err := engine.Compile(source)
		if err != nil {
			return err
		}
		return program.Run(context.Background(), brewin.RunOptions{
			Output: out,
			Input:  brewin.NewLineSource(c.Stdin),
		})
	}()

	if c.Error == "" && err != nil {
		return fmt.Errorf("unexpected error: %s", firstLine(err.Error()))
	}
	if c.Error != "" {
		want, _ := brewin.ParseErrorKind(c.Error)
		got, ok := brewin.KindOf(err)
		if err == nil {
			return fmt.Errorf("expected %s, program finished", want)
		}
		if !ok || got != want {
			return fmt.Errorf("expected %s, got %s", want, firstLine(err.Error()))
		}
	}
	if c.Error != "" && len(c.Expect) == 0 {
		return nil
	}
	if lines := out.Lines(); !slices.Equal(lines, c.Expect) {
		return fmt.Errorf("output mismatch\n  want: %q\n  got:  %q", c.Expect, lines)
	}
	return nil
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}

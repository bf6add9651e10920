package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mgomes/brewin/brewin"
)

type lintWarning struct {
	Method  string
	Pos     brewin.Position
	Message string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("brewin analyze: program path required")
	}

	programPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve program path: %w", err)
	}
	input, err := os.ReadFile(programPath)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}

	engine := brewin.MustNewEngine(brewin.Config{})
	program, err := engine.Compile(string(input))
	if err != nil {
		return fmt.Errorf("analysis load failed: %w", err)
	}

	warnings := analyzeProgramWarnings(program)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := max(warning.Pos.Line, 1)
		column := max(warning.Pos.Column, 1)
		fmt.Printf("%s:%d:%d: %s (%s)\n", programPath, line, column, warning.Message, warning.Method)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

// analyzeProgramWarnings lints every method as declared, so template bodies
// are checked once regardless of how many instances a run would create.
func analyzeProgramWarnings(program *brewin.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	for _, def := range program.Classes() {
		if def.Decl == nil {
			continue
		}
		for _, method := range def.Decl.Methods {
			name := def.Name + "." + method.Name
			lintStatement(name, method.Body, &warnings)
		}
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Method < warnings[j].Method
	})

	return warnings
}

func lintStatements(method string, statements []brewin.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Method:  method,
				Pos:     stmt.Pos(),
				Message: "unreachable statement",
			})
			continue
		}
		if lintStatement(method, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

// lintStatement reports whether stmt always ends the method.
func lintStatement(method string, stmt brewin.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *brewin.ReturnStmt:
		return true
	case *brewin.BeginStmt:
		return lintStatements(method, typed.Body, warnings)
	case *brewin.LetStmt:
		for _, local := range typed.Locals {
			if !statementsRead(local.Name, typed.Body) {
				*warnings = append(*warnings, lintWarning{
					Method:  method,
					Pos:     local.Pos(),
					Message: fmt.Sprintf("local %s is never read", local.Name),
				})
			}
		}
		return lintStatements(method, typed.Body, warnings)
	case *brewin.IfStmt:
		thenTerminated := lintStatement(method, typed.Then, warnings)
		if typed.Else == nil {
			return false
		}
		elseTerminated := lintStatement(method, typed.Else, warnings)
		return thenTerminated && elseTerminated
	case *brewin.WhileStmt:
		lintStatement(method, typed.Body, warnings)
		return false
	default:
		return false
	}
}

func statementsRead(name string, statements []brewin.Statement) bool {
	for _, stmt := range statements {
		if statementReads(name, stmt) {
			return true
		}
	}
	return false
}

// statementReads reports whether stmt reads the variable name before any
// nested let shadows it. Assignments and input targets are writes.
func statementReads(name string, stmt brewin.Statement) bool {
	switch typed := stmt.(type) {
	case *brewin.PrintStmt:
		return expressionsRead(name, typed.Args)
	case *brewin.SetStmt:
		return expressionReads(name, typed.Value)
	case *brewin.CallStmt:
		return expressionReads(name, typed.Call)
	case *brewin.ReturnStmt:
		return typed.Value != nil && expressionReads(name, typed.Value)
	case *brewin.WhileStmt:
		return expressionReads(name, typed.Condition) || statementReads(name, typed.Body)
	case *brewin.IfStmt:
		if expressionReads(name, typed.Condition) || statementReads(name, typed.Then) {
			return true
		}
		return typed.Else != nil && statementReads(name, typed.Else)
	case *brewin.BeginStmt:
		return statementsRead(name, typed.Body)
	case *brewin.LetStmt:
		for _, local := range typed.Locals {
			if local.Init != nil && expressionReads(name, local.Init) {
				return true
			}
			if local.Name == name {
				return false
			}
		}
		return statementsRead(name, typed.Body)
	default:
		return false
	}
}

func expressionsRead(name string, exprs []brewin.Expression) bool {
	for _, expr := range exprs {
		if expressionReads(name, expr) {
			return true
		}
	}
	return false
}

func expressionReads(name string, expr brewin.Expression) bool {
	switch typed := expr.(type) {
	case *brewin.Identifier:
		return typed.Name == name
	case *brewin.BinaryExpr:
		return expressionReads(name, typed.Left) || expressionReads(name, typed.Right)
	case *brewin.UnaryExpr:
		return expressionReads(name, typed.Operand)
	case *brewin.CallExpr:
		if typed.Target != nil && expressionReads(name, typed.Target) {
			return true
		}
		return expressionsRead(name, typed.Args)
	default:
		return false
	}
}

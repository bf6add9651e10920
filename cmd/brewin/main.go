package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgomes/brewin/brewin"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "test":
		return testCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "repl":
		return runREPL()
	case "lsp":
		return runLSP()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a brewin.toml file")
	trace := fs.Bool("trace", false, "log statements and calls while running")
	checkOnly := fs.Bool("check", false, "only load the classes without running main")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("brewin run: program path required")
	}
	absPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve program path: %w", err)
	}
	source, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}

	cfg, verbosity, err := resolveConfig(*configPath, filepath.Dir(absPath))
	if err != nil {
		return err
	}
	if *trace {
		cfg.Trace = true
		verbosity = max(verbosity, 2)
	}
	commonlog.Configure(verbosity, nil)

	engine, err := brewin.NewEngine(cfg)
	if err != nil {
		return err
	}
	program, err := engine.Compile(string(source))
	if err != nil {
		return err
	}
	if *checkOnly {
		return nil
	}
	return program.Run(context.Background(), brewin.RunOptions{
		Output: brewin.NewWriterSink(os.Stdout),
		Input:  brewin.NewReaderSource(os.Stdin),
	})
}

// resolveConfig loads an explicit config file, or the nearest brewin.toml
// above dir. It returns the engine config and the log verbosity.
func resolveConfig(explicit, dir string) (brewin.Config, int, error) {
	var (
		file *brewin.ConfigFile
		err  error
	)
	if explicit != "" {
		file, err = brewin.LoadConfig(explicit)
	} else {
		file, err = brewin.FindConfig(dir)
	}
	if err != nil {
		return brewin.Config{}, 0, err
	}
	if file == nil {
		return brewin.Config{}, 0, nil
	}
	return file.Apply(brewin.Config{}), file.Trace.Verbosity, nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-config file] [-trace] [-check] <program.brewin>")
	fmt.Fprintln(os.Stderr, "    load the program and call main.main with stdin and stdout")
	fmt.Fprintln(os.Stderr, "  test <suite.yaml>")
	fmt.Fprintln(os.Stderr, "    run the cases listed in a fixture suite")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <paths...>")
	fmt.Fprintln(os.Stderr, "    normalize indentation and whitespace in .brewin files")
	fmt.Fprintln(os.Stderr, "  analyze <program.brewin>")
	fmt.Fprintln(os.Stderr, "    report unreachable statements and unused let locals")
	fmt.Fprintln(os.Stderr, "  repl")
	fmt.Fprintln(os.Stderr, "    start an interactive session")
	fmt.Fprintln(os.Stderr, "  lsp")
	fmt.Fprintln(os.Stderr, "    serve diagnostics, completion and hover over stdio")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/bisp/bisp"
	"github.com/mgomes/bisp/syntax"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "repl":
		return replCommand(args[2:])
	case "run":
		return runCommand(args[2:])
	case "eval":
		return evalCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "lsp":
		return runLSP()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	plain := fs.Bool("plain", false, "use a line-based prompt instead of the full-screen REPL")
	configPath := fs.String("config", "", "path to a YAML settings file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := loadSettings(*configPath)
	if err != nil {
		return err
	}
	if *plain || s.REPL.Plain {
		return runPlainREPL(s)
	}
	return runREPL(s)
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a YAML settings file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("bisp run: script path required")
	}
	absPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	engine, err := newEngineFromFlags(*configPath)
	if err != nil {
		return err
	}

	failed := 0
	for _, source := range splitInputs(string(input)) {
		output, err := engine.EvalString(source)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed++
			continue
		}
		fmt.Println(output)
	}
	if failed > 0 {
		return fmt.Errorf("bisp run: %d input(s) failed", failed)
	}
	return nil
}

func evalCommand(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a YAML settings file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("bisp eval: expression required")
	}
	engine, err := newEngineFromFlags(*configPath)
	if err != nil {
		return err
	}

	result, err := engine.Run(strings.Join(remaining, " "))
	if err != nil {
		return fmt.Errorf("eval failed: %w", err)
	}
	defer engine.Release(result)
	fmt.Println(result.String())
	if evalErr := result.Err(); evalErr != nil {
		return fmt.Errorf("eval failed: %s", result.ErrorKind())
	}
	return nil
}

// splitInputs cuts source into top-level inputs the way a line-based REPL
// would see them: one per line, with lines that leave a list open joined to
// the lines that close it. Blank lines are dropped.
func splitInputs(source string) []string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	var inputs []string
	var pending strings.Builder
	for _, line := range strings.Split(normalized, "\n") {
		if pending.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)
		if inputIncomplete(pending.String()) {
			continue
		}
		inputs = append(inputs, pending.String())
		pending.Reset()
	}
	if pending.Len() > 0 {
		inputs = append(inputs, pending.String())
	}
	return inputs
}

func inputIncomplete(source string) bool {
	_, err := syntax.Parse(source)
	return err != nil && syntax.IsIncomplete(err)
}

func newEngineFromFlags(configPath string) (*bisp.Engine, error) {
	s, err := loadSettings(configPath)
	if err != nil {
		return nil, err
	}
	engine, err := bisp.NewEngine(s.engineConfig())
	if err != nil {
		return nil, fmt.Errorf("configure engine: %w", err)
	}
	return engine, nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  repl [-plain] [-config file]    start an interactive session")
	fmt.Fprintln(os.Stderr, "  run [-config file] <script>     evaluate every expression in a script")
	fmt.Fprintln(os.Stderr, "  eval [-config file] <expr>      evaluate one expression and print it")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <paths>       format .bisp sources")
	fmt.Fprintln(os.Stderr, "  analyze <script>                report likely mistakes without evaluating")
	fmt.Fprintln(os.Stderr, "  lsp                             serve the language server protocol on stdio")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/mgomes/bisp/bisp"
)

const (
	replBanner       = "Bisp version 0.0.0.2"
	replBannerSuffix = "Press ctrl-c to exit"
	continuePrompt   = "  ... "
)

// runPlainREPL is the line-based session used when the terminal cannot host
// the full-screen REPL.
func runPlainREPL(s settings) error {
	engine, err := bisp.NewEngine(s.engineConfig())
	if err != nil {
		return fmt.Errorf("configure engine: %w", err)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completeBuiltins)

	if s.REPL.HistoryFile != "" {
		if f, err := os.Open(s.REPL.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer saveHistory(ln, s.REPL.HistoryFile)
	}

	fmt.Println(replBanner)
	fmt.Println(replBannerSuffix)
	fmt.Println()

	for {
		input, err := readInput(ln, s.REPL.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		output, err := engine.EvalString(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(output)
	}
}

// readInput keeps prompting while the text so far leaves a list open.
func readInput(ln *liner.State, prompt string) (string, error) {
	var b strings.Builder
	current := prompt
	for {
		line, err := ln.Prompt(current)
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return b.String(), nil
			}
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !inputIncomplete(b.String()) {
			return b.String(), nil
		}
		current = continuePrompt
	}
}

func saveHistory(ln *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "write history: %v\n", err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		fmt.Fprintf(os.Stderr, "write history: %v\n", err)
	}
}

// completeBuiltins offers builtin names for the word under the cursor.
func completeBuiltins(line string) []string {
	prefix, word := splitLastWord(line)
	var out []string
	for _, name := range completions(word) {
		out = append(out, prefix+name)
	}
	return out
}

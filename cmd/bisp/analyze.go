package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"

	"github.com/mgomes/bisp/bisp"
	"github.com/mgomes/bisp/syntax"
)

type lintWarning struct {
	Pos     syntax.Position
	Message string
	Fatal   bool
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("bisp analyze: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	warnings := analyzeSource(string(input))
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := warning.Pos.Line
		column := warning.Pos.Column
		if line <= 0 {
			line = 1
		}
		if column <= 0 {
			column = 1
		}
		fmt.Printf("%s:%d:%d: %s\n", scriptPath, line, column, warning.Message)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

// analyzeSource reports parse errors and expressions that are certain to
// evaluate to an Error value, without evaluating anything.
func analyzeSource(source string) []lintWarning {
	warnings := make([]lintWarning, 0)
	root, err := syntax.Parse(source)
	if err != nil {
		var list syntax.ErrorList
		if errors.As(err, &list) {
			for _, e := range list {
				warnings = append(warnings, lintWarning{Pos: e.Pos, Message: e.Msg, Fatal: true})
			}
		} else {
			warnings = append(warnings, lintWarning{Pos: syntax.Position{Line: 1, Column: 1}, Message: err.Error(), Fatal: true})
		}
		return warnings
	}

	for _, expr := range root.Exprs() {
		lintNode(expr, &warnings)
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		return warnings[i].Pos.Column < warnings[j].Pos.Column
	})
	return warnings
}

func lintNode(n *syntax.Node, warnings *[]lintWarning) {
	switch n.Tag {
	case syntax.TagNumber:
		lintNumber(n, warnings)
	case syntax.TagQExpr:
		// quoted code never runs unless it reaches eval
		for _, child := range n.Exprs() {
			lintQuoted(child, warnings)
		}
	case syntax.TagSExpr:
		lintCall(n.Exprs(), warnings)
	}
}

func lintNumber(n *syntax.Node, warnings *[]lintWarning) {
	if _, err := strconv.ParseInt(n.Contents, 10, 64); err != nil {
		*warnings = append(*warnings, lintWarning{Pos: n.Pos, Message: fmt.Sprintf("number %s out of range", n.Contents)})
	}
}

// lintQuoted only checks literals, which are read the same way quoted or not.
func lintQuoted(n *syntax.Node, warnings *[]lintWarning) {
	if n.Tag == syntax.TagNumber {
		lintNumber(n, warnings)
		return
	}
	for _, child := range n.Exprs() {
		lintQuoted(child, warnings)
	}
}

// lintCall checks the elements of an S-expression that is certain to be
// evaluated.
func lintCall(exprs []*syntax.Node, warnings *[]lintWarning) {
	warn := func(pos syntax.Position, format string, args ...any) {
		*warnings = append(*warnings, lintWarning{Pos: pos, Message: fmt.Sprintf(format, args...)})
	}

	for _, child := range exprs {
		lintNode(child, warnings)
	}
	if len(exprs) < 2 {
		return
	}

	head, args := exprs[0], exprs[1:]
	switch head.Tag {
	case syntax.TagNumber, syntax.TagQExpr:
		warn(head.Pos, "S-expression does not start with symbol")
		return
	case syntax.TagKeyword, syntax.TagOperator:
	default:
		return
	}

	name := head.Contents
	switch name {
	case "head", "tail", "eval":
		if len(args) != 1 {
			warn(head.Pos, "function '%s' expects 1 argument, got %d", name, len(args))
			return
		}
		arg := args[0]
		if arg.Tag != syntax.TagQExpr && arg.Tag != syntax.TagSExpr {
			warn(arg.Pos, "function '%s' passed incorrect type", name)
			return
		}
		if arg.Tag != syntax.TagQExpr {
			return
		}
		if name == "eval" {
			lintEvaluated(arg, warnings)
		} else if len(arg.Exprs()) == 0 {
			warn(arg.Pos, "function '%s' passed {}", name)
		}
	case "join":
		for _, arg := range args {
			if arg.Tag == syntax.TagNumber || arg.Tag == syntax.TagKeyword || arg.Tag == syntax.TagOperator {
				warn(arg.Pos, "function 'join' passed incorrect type")
			}
		}
	default:
		if !bisp.IsBuiltin(name) || name == "list" {
			return
		}
		for i, arg := range args {
			if arg.Tag == syntax.TagQExpr || arg.Tag == syntax.TagKeyword || arg.Tag == syntax.TagOperator {
				warn(arg.Pos, "cannot operate on non-number")
				continue
			}
			if i > 0 && (name == "/" || name == "%") && isLiteralZero(arg) {
				if name == "/" {
					warn(arg.Pos, "Division By Zero")
				} else {
					warn(arg.Pos, "Modulo By Zero")
				}
			}
		}
	}
}

// lintEvaluated checks a literal Q-expression handed straight to eval, which
// runs it as an S-expression. Literal findings already reported for the
// quoted form are not repeated.
func lintEvaluated(q *syntax.Node, warnings *[]lintWarning) {
	var found []lintWarning
	lintCall(q.Exprs(), &found)
	for _, w := range found {
		if !slices.Contains(*warnings, w) {
			*warnings = append(*warnings, w)
		}
	}
}

func isLiteralZero(n *syntax.Node) bool {
	if n.Tag != syntax.TagNumber {
		return false
	}
	v, err := strconv.ParseInt(n.Contents, 10, 64)
	return err == nil && v == 0
}

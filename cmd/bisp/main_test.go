package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"bisp", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"bisp", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"bisp"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandPrintsEachResult(t *testing.T) {
	scriptPath := writeScript(t, "+ 1 2\n(* 2\n   3)\n\nhead {1 2 3}\n(/ 10 0)\n")

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	want := "3\n6\n{1}\nError: Division By Zero\n"
	if out != want {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestRunCommandReportsParseFailures(t *testing.T) {
	scriptPath := writeScript(t, "(+ 1 ))\n(+ 1 1)\n")

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err == nil {
		t.Fatalf("expected run failure")
	}
	if !strings.Contains(err.Error(), "1 input(s) failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "2\n" {
		t.Fatalf("later inputs should still run, got %q", out)
	}
}

func TestRunCommandRequiresScriptPath(t *testing.T) {
	err := runCommand(nil)
	if err == nil {
		t.Fatalf("expected script path error")
	}
	if !strings.Contains(err.Error(), "script path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvalCommandPrintsResult(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return evalCommand([]string{"eval", "(tail", "{tail", "tail", "{5", "6", "7}})"})
	})
	if err != nil {
		t.Fatalf("evalCommand failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "{6 7}" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestEvalCommandFailsOnErrorValue(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return evalCommand([]string{"(% 7 0)"})
	})
	if err == nil {
		t.Fatalf("expected eval failure for error value")
	}
	if !strings.Contains(err.Error(), "ModuloByZero") {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out); got != "Error: Modulo By Zero" {
		t.Fatalf("error value should still be printed, got %q", got)
	}
}

func TestEvalCommandHonoursConfigQuota(t *testing.T) {
	configPath := writeConfig(t, "engine:\n  step_quota: 3\n")
	err := evalCommand([]string{"-config", configPath, "+ 1 2 3 4 5"})
	if err == nil {
		t.Fatalf("expected step quota error")
	}
	if !strings.Contains(err.Error(), "step quota exceeded") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvalCommandRequiresExpression(t *testing.T) {
	err := evalCommand(nil)
	if err == nil {
		t.Fatalf("expected expression error")
	}
	if !strings.Contains(err.Error(), "expression required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSplitInputsJoinsOpenLists(t *testing.T) {
	got := splitInputs("(+ 1\n2)\r\n\n3\n(list 4")
	want := []string{"(+ 1\n2)", "3", "(list 4"}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected inputs: %q", got)
	}
}

func TestSplitInputsKeepsBrokenLinesSeparate(t *testing.T) {
	got := splitInputs("1 )\n2\n")
	want := []string{"1 )", "2"}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected inputs: %q", got)
	}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.bisp")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}

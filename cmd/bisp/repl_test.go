package main

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgomes/bisp/bisp"
)

func newTestREPLModel(t *testing.T) replModel {
	t.Helper()
	return newREPLModel(bisp.MustNewEngine(bisp.Config{}), "Bisp :> ")
}

func submit(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	rm, cmd := submit(t, newTestREPLModel(t), ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	rm, cmd := submit(t, newTestREPLModel(t), ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestUpdateUnknownCommandIsReported(t *testing.T) {
	rm, _ := submit(t, newTestREPLModel(t), ":vars")
	if len(rm.history) != 1 || !rm.history[0].isErr {
		t.Fatalf("expected an error entry, got %+v", rm.history)
	}
	if !strings.Contains(rm.history[0].output, "Unknown command: :vars") {
		t.Fatalf("unexpected output %q", rm.history[0].output)
	}
}

func TestUpdateEvaluatesInput(t *testing.T) {
	rm, _ := submit(t, newTestREPLModel(t), "+ 1 (* 7 5) 3")

	if len(rm.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(rm.history))
	}
	entry := rm.history[0]
	if entry.isErr || entry.output != "39" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if !slices.Equal(rm.cmdHistory, []string{"+ 1 (* 7 5) 3"}) {
		t.Fatalf("unexpected command history %q", rm.cmdHistory)
	}
}

func TestUpdateContinuesOpenLists(t *testing.T) {
	rm, _ := submit(t, newTestREPLModel(t), "(list 1 2")
	if len(rm.history) != 0 {
		t.Fatalf("incomplete input should not be evaluated yet")
	}
	if rm.textInput.Prompt != continuePrompt {
		t.Fatalf("expected continuation prompt, got %q", rm.textInput.Prompt)
	}

	rm, _ = submit(t, rm, "3)")
	if len(rm.history) != 1 || rm.history[0].output != "{1 2 3}" {
		t.Fatalf("unexpected history %+v", rm.history)
	}
	if rm.history[0].input != "(list 1 2 3)" {
		t.Fatalf("unexpected joined input %q", rm.history[0].input)
	}
	if rm.textInput.Prompt != "Bisp :> " {
		t.Fatalf("prompt not restored, got %q", rm.textInput.Prompt)
	}
}

func TestEvaluateFlagsErrors(t *testing.T) {
	m := newTestREPLModel(t)

	output, isErr := m.evaluate("(head {})")
	if !isErr || output != "Error: function 'head' passed {}" {
		t.Fatalf("unexpected result %q (isErr=%v)", output, isErr)
	}

	output, isErr = m.evaluate("(+ 1")
	if !isErr || !strings.Contains(output, "parse error") {
		t.Fatalf("expected parse error, got %q", output)
	}

	if live := m.engine.Stats().Live; live != 0 {
		t.Fatalf("evaluate leaked %d values", live)
	}
}

func TestAutocompleteSingleMatch(t *testing.T) {
	m := newTestREPLModel(t)
	m.textInput.SetValue("(he")
	m = m.handleAutocomplete()
	if got := m.textInput.Value(); got != "(head" {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestAutocompleteNoWord(t *testing.T) {
	m := newTestREPLModel(t)
	m.textInput.SetValue("(")
	m = m.handleAutocomplete()
	if got := m.textInput.Value(); got != "(" {
		t.Fatalf("input should be unchanged, got %q", got)
	}
	if len(m.history) != 0 {
		t.Fatalf("no completions expected, got %+v", m.history)
	}
}

func TestCompleteBuiltinsKeepsPrefix(t *testing.T) {
	got := completeBuiltins("{1 2} (ta")
	if !slices.Equal(got, []string{"{1 2} (tail"}) {
		t.Fatalf("unexpected completions %q", got)
	}
}

func TestViewShowsStats(t *testing.T) {
	m := newTestREPLModel(t)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	rm := model.(replModel)
	rm, _ = submit(t, rm, ":stats")
	view := rm.View()
	if !strings.Contains(view, "steps=100000") {
		t.Fatalf("stats panel missing config summary:\n%s", view)
	}
}

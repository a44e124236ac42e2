package syntax

import "testing"

func TestFormatCanonicalSpacing(t *testing.T) {
	root, err := Parse("(  +  1   ( *  2 3 ) {  } )")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := Format(root); got != "(+ 1 (* 2 3) {})" {
		t.Fatalf("unexpected format: %q", got)
	}
}

func TestFormatSourceJoinsContinuationLines(t *testing.T) {
	source := "(+ 1\n   2)\n\n{ 1  2 }  \n"
	got, err := FormatSource(source)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if got != "(+ 1 2)\n\n{1 2}\n" {
		t.Fatalf("unexpected format: %q", got)
	}
}

func TestFormatSourceReportsUnterminatedInput(t *testing.T) {
	if _, err := FormatSource("(+ 1 2\n"); err == nil {
		t.Fatalf("expected error for unterminated input")
	}
}

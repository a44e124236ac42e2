package syntax

import (
	"strings"
	"testing"
)

func TestParseNumberAndSymbolTags(t *testing.T) {
	root, err := Parse("+ -12 head")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root.Tag != TagRoot {
		t.Fatalf("expected root tag %q, got %q", TagRoot, root.Tag)
	}
	if len(root.Children) != 5 {
		t.Fatalf("expected anchors plus 3 exprs, got %d children", len(root.Children))
	}
	if root.Children[0].Tag != TagAnchor || root.Children[4].Tag != TagAnchor {
		t.Fatalf("expected anchors at both ends, got %q and %q", root.Children[0].Tag, root.Children[4].Tag)
	}

	exprs := root.Exprs()
	want := []struct {
		tag      string
		contents string
	}{
		{TagOperator, "+"},
		{TagNumber, "-12"},
		{TagKeyword, "head"},
	}
	for i, w := range want {
		if exprs[i].Tag != w.tag || exprs[i].Contents != w.contents {
			t.Fatalf("expr %d: expected %s %q, got %s %q", i, w.tag, w.contents, exprs[i].Tag, exprs[i].Contents)
		}
	}
}

func TestParseNestedLists(t *testing.T) {
	root, err := Parse("(join {1 2} {3})")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	exprs := root.Exprs()
	if len(exprs) != 1 || exprs[0].Tag != TagSExpr {
		t.Fatalf("expected a single sexpr, got %#v", exprs)
	}
	sexpr := exprs[0]
	if sexpr.Children[0].Contents != "(" || sexpr.Children[len(sexpr.Children)-1].Contents != ")" {
		t.Fatalf("expected delimiter children around sexpr")
	}
	inner := sexpr.Exprs()
	if len(inner) != 3 {
		t.Fatalf("expected 3 inner exprs, got %d", len(inner))
	}
	if inner[1].Tag != TagQExpr || len(inner[1].Exprs()) != 2 {
		t.Fatalf("unexpected first qexpr: %#v", inner[1])
	}
}

func TestParseNegativeNumberVersusMinus(t *testing.T) {
	root, err := Parse("(- 5) (-5)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	exprs := root.Exprs()
	first := exprs[0].Exprs()
	if first[0].Tag != TagOperator || first[1].Contents != "5" {
		t.Fatalf("expected minus operator then 5, got %#v", first)
	}
	second := exprs[1].Exprs()
	if len(second) != 1 || second[0].Tag != TagNumber || second[0].Contents != "-5" {
		t.Fatalf("expected number -5, got %#v", second)
	}
}

func TestParsePositions(t *testing.T) {
	root, err := Parse("(+ 1\n  22)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	inner := root.Exprs()[0].Exprs()
	if got := inner[2].Pos; got.Line != 2 || got.Column != 3 {
		t.Fatalf("expected 22 at 2:3, got %d:%d", got.Line, got.Column)
	}
}

func TestParseUnknownSymbol(t *testing.T) {
	_, err := Parse("(foo 1 2)")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), `unknown symbol "foo"`) {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "--> line 1, column 2") {
		t.Fatalf("expected code frame, got %v", err)
	}
	if IsIncomplete(err) {
		t.Fatalf("unknown symbol should not be reported as incomplete")
	}
}

func TestParseUnterminatedIsIncomplete(t *testing.T) {
	_, err := Parse("(+ 1 {2")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !IsIncomplete(err) {
		t.Fatalf("expected incomplete error, got %v", err)
	}
}

func TestParseStrayCloser(t *testing.T) {
	_, err := Parse("1 )")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if IsIncomplete(err) {
		t.Fatalf("stray closer should not be incomplete")
	}
	if !strings.Contains(err.Error(), `unexpected ")"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseMismatchedCloser(t *testing.T) {
	_, err := Parse("(1 2}")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), `expected ')', got "}"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseCollectsAllErrors(t *testing.T) {
	_, err := Parse("(foo) & (bar)")
	list, ok := err.(ErrorList)
	if !ok {
		t.Fatalf("expected ErrorList, got %T", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(list), err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	root, err := Parse("   ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(root.Exprs()) != 0 {
		t.Fatalf("expected no exprs, got %d", len(root.Exprs()))
	}
}

func TestParseNulIsNotEndOfInput(t *testing.T) {
	_, err := Parse("(+ 1 2)\x00 garbage")
	list, ok := err.(ErrorList)
	if !ok {
		t.Fatalf("expected ErrorList, got %T (%v)", err, err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(list), err)
	}
	if !strings.Contains(list[0].Msg, `invalid character "\x00"`) {
		t.Fatalf("unexpected first error: %v", list[0])
	}
	if !strings.Contains(list[1].Msg, `unknown symbol "garbage"`) {
		t.Fatalf("unexpected second error: %v", list[1])
	}
	if IsIncomplete(err) {
		t.Fatalf("NUL byte should not be reported as incomplete")
	}
}

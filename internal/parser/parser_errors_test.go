package parser_test

import (
	"strings"
	"testing"

	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/pipeline"
)

// parseWithErrors runs the lexer+parser and returns all diagnostic errors.
func parseWithErrors(input string) []*diagnostics.DiagnosticError {
	return parseSources(pipeline.Source{Path: "bad.cl", Text: input}).Errors
}

// expectError asserts an error with the given code and message exists.
func expectError(t *testing.T, input string, code diagnostics.ErrorCode, message string) *diagnostics.DiagnosticError {
	t.Helper()
	errs := parseWithErrors(input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code && strings.Contains(e.Message, message) {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s %q, got:\n%s\ninput: %s", code, message, strings.Join(msgs, "\n"), input)
	return nil
}

func TestP001_MissingSemicolonAfterClass(t *testing.T) {
	err := expectError(t, "class A {}\nclass B {};", diagnostics.ErrP001, "syntax error at or near class")
	if err.Token.Line != 2 || err.File != "bad.cl" {
		t.Errorf("unexpected position %s", err.Error())
	}
}

func TestP001_EmptyProgram(t *testing.T) {
	expectError(t, "  -- nothing here\n", diagnostics.ErrP001, "at or near EOF")
}

func TestP001_EmptyBlock(t *testing.T) {
	expectError(t, "class A { f() : Int { {} }; };", diagnostics.ErrP001, "at or near }")
}

func TestP001_ChainedComparison(t *testing.T) {
	expectError(t, "class A { f() : Bool { 1 < 2 < 3 }; };", diagnostics.ErrP001, "at or near <")
}

func TestP001_LowercaseClassName(t *testing.T) {
	expectError(t, "class a {};", diagnostics.ErrP001, "OBJECTID = a")
}

func TestP001_UnclosedClass(t *testing.T) {
	expectError(t, "class A { x : Int;", diagnostics.ErrP001, "EOF")
}

func TestL001_ReportedThroughParser(t *testing.T) {
	err := expectError(t, "class A { s : String <- \"abc\n; };", diagnostics.ErrL001, "Unterminated string constant")
	if err.Error() != `"bad.cl", line 1:25, Lexical error: Unterminated string constant` {
		t.Errorf("unexpected rendering %q", err.Error())
	}
}

func TestRecoveryReportsOneErrorPerFeature(t *testing.T) {
	errs := parseWithErrors(`
class A {
    x : Int <- ;
    ok : Int;
    f( : Int { 1 };
    g() : Int { 2 };
};
class B inherits { };
class C {};
`)
	var lines []int
	for _, e := range errs {
		if e.Code != diagnostics.ErrP001 {
			t.Errorf("unexpected %s", e.Error())
		}
		lines = append(lines, e.Token.Line)
	}
	want := []int{3, 5, 8}
	if len(lines) != len(want) {
		t.Fatalf("expected errors on lines %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("expected errors on lines %v, got %v", want, lines)
			break
		}
	}
}

func TestRecoveryKeepsValidClasses(t *testing.T) {
	ctx := parseSources(pipeline.Source{Path: "bad.cl", Text: "class A { f() : Int { + }; }; class B {};"})
	if len(ctx.Errors) == 0 {
		t.Fatal("expected a syntax error")
	}
	var names []string
	for _, c := range ctx.Program.Classes {
		names = append(names, c.Name.Value)
	}
	if strings.Join(names, ",") != "A,B" {
		t.Errorf("expected classes A,B after recovery, got %v", names)
	}
}

func TestP001_MissingSemicolonBetweenFeatures(t *testing.T) {
	expectError(t, "class A { x : Int y : Int; };", diagnostics.ErrP001, "at or near y")
}

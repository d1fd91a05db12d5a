package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/lexer"
	"github.com/funvibe/coolc/internal/parser"
	"github.com/funvibe/coolc/internal/pipeline"
)

// analyzeContext lexes, parses and analyzes the sources.
func analyzeContext(requireMain bool, sources ...pipeline.Source) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(sources...)
	ctx.RequireMain = requireMain
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	return (&SemanticAnalyzerProcessor{}).Process(ctx)
}

// analyzeSource runs the whole front end on input and returns all errors.
func analyzeSource(input string) []error {
	var errs []error
	for _, e := range analyzeContext(false, pipeline.Source{Path: "test.cl", Text: input}).Errors {
		errs = append(errs, e)
	}
	return errs
}

// expectAnalyzerError asserts that at least one error with the given code is produced.
func expectAnalyzerError(t *testing.T, input string, code diagnostics.ErrorCode) error {
	t.Helper()
	errs := analyzeSource(input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if de, ok := e.(*diagnostics.DiagnosticError); ok {
			if de.Code == code {
				return e
			}
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

// expectAnalyzerErrorContains asserts an error with the given code whose message contains substr.
func expectAnalyzerErrorContains(t *testing.T, input string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	e := expectAnalyzerError(t, input, code)
	if !strings.Contains(e.Error(), substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, e.Error())
	}
}

// expectNoAnalyzerErrors asserts that analysis produces no errors.
func expectNoAnalyzerErrors(t *testing.T, input string) {
	t.Helper()
	errs := analyzeSource(input)
	if len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
}

// expectDiagnostics asserts the exact rendered diagnostics, in order.
func expectDiagnostics(t *testing.T, input string, want ...string) {
	t.Helper()
	var got []string
	for _, e := range analyzeSource(input) {
		got = append(got, e.Error())
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("diagnostics mismatch\nwant:\n%s\ngot:\n%s\ninput: %s",
			strings.Join(want, "\n"), strings.Join(got, "\n"), input)
	}
}

func at(line, col string, msg string) string {
	return `"test.cl", line ` + line + ":" + col + ", Semantic error: " + msg
}

// ---------------------------------------------------------------------------
// S001 Structural: duplicates, illegal self / SELF_TYPE
// ---------------------------------------------------------------------------

func TestS001_DuplicateClass(t *testing.T) {
	expectDiagnostics(t, "class A {};\nclass A {};", at("2", "7", "Class A is redefined"))
}

func TestS001_RedefinedBuiltinClass(t *testing.T) {
	expectAnalyzerErrorContains(t, "class IO {};", diagnostics.ErrS001, "Class IO is redefined")
}

func TestS001_ClassNamedSelfType(t *testing.T) {
	expectDiagnostics(t, "class SELF_TYPE {};", at("1", "7", "Class has illegal name SELF_TYPE"))
}

func TestS001_RejectedClassBodyStillChecked(t *testing.T) {
	expectDiagnostics(t, "class A {};\nclass A { f() : Int { y }; };",
		at("2", "7", "Class A is redefined"),
		at("2", "23", "Undefined identifier y"))
}

func TestS001_DuplicateMethod(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Int { 1 }; f() : Int { 2 }; };", at("1", "28", "Class A redefines method f"))
}

func TestS001_DuplicateFormal(t *testing.T) {
	expectDiagnostics(t, "class A { f(x : Int, x : Bool) : Int { 1 }; };",
		at("1", "22", "Method f of class A redefines formal parameter x"))
}

func TestS001_DuplicateAttribute(t *testing.T) {
	expectDiagnostics(t, "class A { x : Int; x : Bool; };", at("1", "20", "Class A redefines attribute x"))
}

func TestS001_AttributeNamedSelf(t *testing.T) {
	expectDiagnostics(t, "class A { self : Int; };", at("1", "11", "Class A has attribute with illegal name self"))
}

func TestS001_InheritedAttribute(t *testing.T) {
	expectDiagnostics(t, "class A { x : Int; };\nclass B inherits A { x : Int; };",
		at("2", "22", "Class B redefines inherited attribute x"))
}

func TestS001_InheritedAttributeDeclaredLater(t *testing.T) {
	// C is checked before its ancestors are declared.
	expectDiagnostics(t, "class C inherits B { x : Int; };\nclass B inherits A {};\nclass A { x : Int; };",
		at("1", "22", "Class C redefines inherited attribute x"))
}

func TestS001_FormalNamedSelf(t *testing.T) {
	expectDiagnostics(t, "class A { f(self : Int) : Int { 1 }; };",
		at("1", "13", "Method f of class A has formal parameter with illegal name self"))
}

func TestS001_FormalTypedSelfType(t *testing.T) {
	expectDiagnostics(t, "class A { f(x : SELF_TYPE) : Int { 1 }; };",
		at("1", "17", "Method f of class A has formal parameter x with illegal type SELF_TYPE"))
}

func TestS001_AssignToSelf(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Object { self <- 1 }; };", at("1", "26", "Cannot assign to self"))
}

func TestS001_StaticDispatchOnSelfType(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Object { self@SELF_TYPE.f() }; };",
		at("1", "31", "Type of static dispatch cannot be SELF_TYPE"))
}

func TestS001_LetNamedSelf(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Object { let self : Int in 1 }; };",
		at("1", "30", "Let variable has illegal name self"))
}

func TestS001_CaseVariable(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Object { case 1 of self : Int => 1; esac }; };",
		at("1", "36", "Case variable has illegal name self"))
	expectDiagnostics(t, "class A { f() : Object { case 1 of x : SELF_TYPE => x; esac }; };",
		at("1", "40", "Case variable x has illegal type SELF_TYPE"))
}

// ---------------------------------------------------------------------------
// S002 Referential: undefined identifier, method or type
// ---------------------------------------------------------------------------

func TestS002_UndefinedIdentifier(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Int { y }; };", at("1", "23", "Undefined identifier y"))
}

func TestS002_UndefinedAssignmentTarget(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Object { y <- 1 }; };", at("1", "26", "Undefined identifier y"))
}

func TestS002_AttributeUndefinedType(t *testing.T) {
	expectDiagnostics(t, "class A { x : Foo; };", at("1", "15", "Class A has attribute x with undefined type Foo"))
}

func TestS002_MethodUndefinedReturnType(t *testing.T) {
	// The body is not compared against an unknown return type.
	expectDiagnostics(t, "class A { f() : Foo { 1 }; };", at("1", "17", "Class A has method f with undefined return type Foo"))
}

func TestS002_FormalUndefinedType(t *testing.T) {
	expectDiagnostics(t, "class A { f(x : Foo) : Int { 1 }; };",
		at("1", "17", "Method f of class A has formal parameter x with undefined type Foo"))
}

func TestS002_NewUndefinedType(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Object { new Foo }; };", at("1", "30", "new is used with undefined type Foo"))
}

func TestS002_UndefinedMethod(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Object { g() }; };", at("1", "26", "Undefined method g in class A"))
	expectDiagnostics(t, "class A { f() : Object { 1.foo() }; };", at("1", "28", "Undefined method foo in class Int"))
}

func TestS002_StaticDispatchUndefinedType(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Object { self@Foo.f() }; };",
		at("1", "31", "Type Foo of static dispatch is undefined"))
}

func TestS002_LetAndCaseUndefinedType(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Object { let x : Foo in 1 }; };",
		at("1", "34", "Let variable x has undefined type Foo"))
	expectDiagnostics(t, "class A { f() : Object { case 1 of x : Foo => 1; esac }; };",
		at("1", "40", "Case variable x has undefined type Foo"))
}

// ---------------------------------------------------------------------------
// S003 Inheritance: illegal or undefined parent, cycles
// ---------------------------------------------------------------------------

func TestS003_IllegalParent(t *testing.T) {
	for _, parent := range []string{"Int", "String", "Bool", "SELF_TYPE"} {
		t.Run(parent, func(t *testing.T) {
			expectDiagnostics(t, "class A inherits "+parent+" {};", at("1", "18", "Class A has illegal parent "+parent))
		})
	}
}

func TestS003_UndefinedParent(t *testing.T) {
	expectDiagnostics(t, "class A inherits B {};", at("1", "18", "Class A has undefined parent B"))
}

func TestS003_InheritanceCycle(t *testing.T) {
	expectDiagnostics(t, "class A inherits B {};\nclass B inherits A {};",
		at("1", "7", "Inheritance cycle for class A"),
		at("2", "7", "Inheritance cycle for class B"))
}

func TestS003_CycleDoesNotHang(t *testing.T) {
	input := `
class A inherits B { x : Int; f() : Int { x + y }; };
class B inherits A { y : Int; g() : Object { h() }; };
class C inherits A { };
`
	errs := analyzeSource(input)
	var cycles int
	for _, e := range errs {
		if strings.Contains(e.Error(), "Inheritance cycle") {
			cycles++
		}
	}
	if cycles != 2 {
		t.Errorf("expected 2 cycle diagnostics, got %d: %v", cycles, errs)
	}
}

// ---------------------------------------------------------------------------
// S004 Type: subtype violations, comparisons, overrides
// ---------------------------------------------------------------------------

func TestS004_AttributeInit(t *testing.T) {
	expectDiagnostics(t, `class A { x : Int <- "s"; };`,
		at("1", "22", "Type String of initialization expression of attribute x is incompatible with declared type Int"))
}

func TestS004_MethodBody(t *testing.T) {
	expectDiagnostics(t, `class A { f() : Int { "s" }; };`,
		at("1", "23", "Type String of the body of method f is incompatible with declared return type Int"))
}

func TestS004_MethodBodySelfTypeSubstituted(t *testing.T) {
	expectDiagnostics(t, "class A { f() : B { self }; };\nclass B {};",
		at("1", "21", "Type A of the body of method f is incompatible with declared return type B"))
}

func TestS004_MethodBodyAgainstSelfType(t *testing.T) {
	expectDiagnostics(t, "class A { f() : SELF_TYPE { new A }; };",
		at("1", "29", "Type A of the body of method f is incompatible with declared return type SELF_TYPE"))
	expectNoAnalyzerErrors(t, "class A { f() : SELF_TYPE { self }; g() : SELF_TYPE { new SELF_TYPE }; };")
}

func TestS004_Assignment(t *testing.T) {
	expectDiagnostics(t, `class A { x : Int; f() : Object { x <- "s" }; };`,
		at("1", "40", "Type String of assigned expression is incompatible with declared type Int of identifier x"))
}

func TestS004_AssignmentToSelfTypeVariable(t *testing.T) {
	expectNoAnalyzerErrors(t, "class Main { x : SELF_TYPE; f() : Object { x <- new Main }; g() : Object { x <- self }; };")
	expectBodyType(t, "class Main { x : SELF_TYPE; f() : Object { x <- new Main }; };", "Main", "f", "Main")
	expectDiagnostics(t, "class Main { x : SELF_TYPE; f() : Object { x <- new Object }; };",
		at("1", "49", "Type Object of assigned expression is incompatible with declared type SELF_TYPE of identifier x"))
}

func TestS004_ArithmeticOperands(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Int { 1 + true }; };", at("1", "27", "Operand of + has type Bool instead of Int"))
	// Both sides are reported; the untyped result does not cascade into the body check.
	expectDiagnostics(t, `class A { f() : Int { "a" * true }; };`,
		at("1", "23", "Operand of * has type String instead of Int"),
		at("1", "29", "Operand of * has type Bool instead of Int"))
	expectDiagnostics(t, `class A { f() : Bool { 1 < "a" }; };`, at("1", "28", "Operand of < has type String instead of Int"))
}

func TestS004_UnaryOperands(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Int { ~true }; };", at("1", "24", "Operand of ~ has type Bool instead of Int"))
	expectDiagnostics(t, "class A { f() : Bool { not 1 }; };", at("1", "28", "Operand of not has type Int instead of Bool"))
}

func TestS004_Compare(t *testing.T) {
	expectDiagnostics(t, `class A { f() : Bool { 1 = "a" }; };`, at("1", "26", "Cannot compare Int with String"))
	expectNoAnalyzerErrors(t, `class A { f() : Bool { (new A) = new Object }; g() : Bool { "a" = "b" }; };`)
}

func TestS004_ArgumentType(t *testing.T) {
	expectDiagnostics(t, `class A inherits IO { f() : Object { out_int("s") }; };`,
		at("1", "46", "In call to method out_int of class A, actual type String of formal parameter x is incompatible with declared type Int"))
}

func TestS004_StaticDispatchNotSuperclass(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Object { self@IO.f() }; };",
		at("1", "31", "Type IO of static dispatch is not a superclass of type A"))
}

func TestS005_StaticDispatchMessagesNameReceiver(t *testing.T) {
	expectDiagnostics(t, "class A { f(x : Int) : Int { x }; };\nclass B inherits A { g() : Object { self@A.f() }; };",
		at("2", "44", "Method f of class B is applied to wrong number of arguments"))
	expectDiagnostics(t, "class A { f(x : Int) : Int { x }; };\nclass B inherits A { g() : Object { self@A.f(\"s\") }; };",
		at("2", "46", "In call to method f of class B, actual type String of formal parameter x is incompatible with declared type Int"))
}

func TestS004_Conditions(t *testing.T) {
	expectDiagnostics(t, "class A { f() : Int { if 1 then 2 else 3 fi }; };",
		at("1", "26", "If condition has type Int instead of Bool"))
	expectDiagnostics(t, "class A { f() : Object { while 1 loop 2 pool }; };",
		at("1", "32", "While condition has type Int instead of Bool"))
}

func TestS004_LetInit(t *testing.T) {
	expectDiagnostics(t, `class A { f() : Object { let x : Int <- "s" in x }; };`,
		at("1", "41", "Type String of initialization expression of identifier x is incompatible with declared type Int"))
}

func TestS004_OverrideReturnType(t *testing.T) {
	expectDiagnostics(t, "class A { f(x : Int) : Int { x }; };\nclass B inherits A { f(x : Int) : Bool { true }; };",
		at("2", "35", "Class B overrides method f but changes return type from Int to Bool"))
}

func TestS004_OverrideArity(t *testing.T) {
	expectDiagnostics(t, "class A { f(x : Int) : Int { x }; };\nclass B inherits A { f() : Int { 1 }; };",
		at("2", "22", "Class B overrides method f with different number of formal parameters"))
}

func TestS004_OverrideFormalType(t *testing.T) {
	expectDiagnostics(t, "class A { f(x : Int) : Int { x }; };\nclass B inherits A { f(y : Bool) : Int { 1 }; };",
		at("2", "28", "Class B overrides method f but changes type of formal parameter y from Int to Bool"))
}

func TestS004_OverrideMismatchesReportedIndividually(t *testing.T) {
	expectDiagnostics(t, "class A { f(x : Int, y : Int) : Int { x }; };\nclass B inherits A { f(x : Bool, y : String) : Bool { true }; };",
		at("2", "48", "Class B overrides method f but changes return type from Int to Bool"),
		at("2", "28", "Class B overrides method f but changes type of formal parameter x from Int to Bool"),
		at("2", "38", "Class B overrides method f but changes type of formal parameter y from Int to String"))
}

// ---------------------------------------------------------------------------
// S005 Arity
// ---------------------------------------------------------------------------

func TestS005_WrongNumberOfArguments(t *testing.T) {
	expectDiagnostics(t, `class A { f() : Object { "s".concat() }; };`,
		at("1", "30", "Method concat of class String is applied to wrong number of arguments"))
}

func TestS005_ArgumentsStillChecked(t *testing.T) {
	expectDiagnostics(t, `class A { f() : Object { "s".concat(y, z) }; };`,
		at("1", "37", "Undefined identifier y"),
		at("1", "40", "Undefined identifier z"),
		at("1", "30", "Method concat of class String is applied to wrong number of arguments"))
}

// ---------------------------------------------------------------------------
// S006 Program entry point
// ---------------------------------------------------------------------------

func TestS006_RequireMain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"class A {};", "Semantic error: No class Main"},
		{"class Main {};", "Semantic error: Class Main has no method main"},
		{"class B { main() : Int { 0 }; };\nclass Main inherits B {};", ""},
	}
	for _, tt := range tests {
		ctx := analyzeContext(true, pipeline.Source{Path: "test.cl", Text: tt.input})
		var got []string
		for _, e := range ctx.Errors {
			got = append(got, e.Error())
		}
		if strings.Join(got, "\n") != tt.want {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestS006_OffByDefault(t *testing.T) {
	expectNoAnalyzerErrors(t, "class A {};")
}

// ---------------------------------------------------------------------------
// Reporting
// ---------------------------------------------------------------------------

func TestDiagnosticsNameTheDeclaringFile(t *testing.T) {
	ctx := analyzeContext(false,
		pipeline.Source{Path: "src/a.cl", Text: "class A { f() : Int { 1 }; };"},
		pipeline.Source{Path: "src/b.cl", Text: "class B inherits A {\n  g() : Int { f() + x };\n};"},
	)
	if len(ctx.Errors) != 1 {
		t.Fatalf("expected one error, got %v", ctx.Errors)
	}
	want := `"b.cl", line 2:21, Semantic error: Undefined identifier x`
	if ctx.Errors[0].Error() != want {
		t.Errorf("expected %s, got %s", want, ctx.Errors[0].Error())
	}
}

func TestSyntaxErrorsSkipAnalysis(t *testing.T) {
	ctx := analyzeContext(false, pipeline.Source{Path: "test.cl", Text: "class A { f() : Int { y + }; };"})
	for _, e := range ctx.Errors {
		if e.Kind() == diagnostics.KindSemantic {
			t.Errorf("unexpected semantic error after a syntax error: %s", e.Error())
		}
	}
	if ctx.Registry != nil {
		t.Errorf("expected no analysis to run")
	}
}

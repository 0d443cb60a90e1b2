package parser

import (
	"testing"

	"github.com/lnsp/tea/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Sequence {
	t.Helper()
	seq, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return seq
}

func TestParseLiteralStatement(t *testing.T) {
	seq := mustParse(t, "42;")
	if len(seq.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(seq.Body))
	}
	lit, ok := seq.Body[0].(*ast.Literal)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Literal", seq.Body[0])
	}
	if lit.TypeName != "int" || lit.Raw.(int64) != 42 {
		t.Errorf("literal = %v %v, want int 42", lit.TypeName, lit.Raw)
	}
}

func TestParseFloatLiteral(t *testing.T) {
	seq := mustParse(t, "3.5;")
	lit := seq.Body[0].(*ast.Literal)
	if lit.TypeName != "float" || lit.Raw.(float64) != 3.5 {
		t.Errorf("literal = %v %v, want float 3.5", lit.TypeName, lit.Raw)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	seq := mustParse(t, "1 + 2 * 3;")
	op, ok := seq.Body[0].(*ast.Operation)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Operation", seq.Body[0])
	}
	if op.Symbol != "+" {
		t.Fatalf("root operator = %q, want +", op.Symbol)
	}
	rhs, ok := op.Operands[1].(*ast.Operation)
	if !ok || rhs.Symbol != "*" {
		t.Fatalf("rhs operand = %#v, want a '*' operation", op.Operands[1])
	}
}

func TestParseUnaryMinusBindsTighter(t *testing.T) {
	seq := mustParse(t, "-5 + 1;")
	op := seq.Body[0].(*ast.Operation)
	if op.Symbol != "+" {
		t.Fatalf("root operator = %q, want +", op.Symbol)
	}
	neg, ok := op.Operands[0].(*ast.Operation)
	if !ok || neg.Symbol != "-" || neg.ArgCount != 1 {
		t.Fatalf("lhs operand = %#v, want unary '-'", op.Operands[0])
	}
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	seq := mustParse(t, "(1 + 2) * 3;")
	op := seq.Body[0].(*ast.Operation)
	if op.Symbol != "*" {
		t.Fatalf("root operator = %q, want *", op.Symbol)
	}
	lhs, ok := op.Operands[0].(*ast.Operation)
	if !ok || lhs.Symbol != "+" {
		t.Fatalf("lhs operand = %#v, want a '+' operation", op.Operands[0])
	}
}

func TestParseModuloBindsLooserThanAdditive(t *testing.T) {
	// "%" sits below "+"/"-" in the precedence table, so 2 + 3 % 4
	// groups as (2 + 3) % 4, not 2 + (3 % 4).
	seq := mustParse(t, "2 + 3 % 4;")
	op, ok := seq.Body[0].(*ast.Operation)
	if !ok || op.Symbol != "%" {
		t.Fatalf("root operator = %#v, want '%%'", seq.Body[0])
	}
	lhs, ok := op.Operands[0].(*ast.Operation)
	if !ok || lhs.Symbol != "+" {
		t.Fatalf("lhs operand = %#v, want a '+' operation", op.Operands[0])
	}
}

func TestParseLogicalOperatorsShareLeftAssociativeTier(t *testing.T) {
	// "&&" and "||" sit in the same precedence tier, so a || b && c
	// groups left-to-right as (a || b) && c.
	seq := mustParse(t, "a || b && c;")
	op, ok := seq.Body[0].(*ast.Operation)
	if !ok || op.Symbol != "&&" {
		t.Fatalf("root operator = %#v, want '&&'", seq.Body[0])
	}
	lhs, ok := op.Operands[0].(*ast.Operation)
	if !ok || lhs.Symbol != "||" {
		t.Fatalf("lhs operand = %#v, want a '||' operation", op.Operands[0])
	}
}

func TestParseXorOperator(t *testing.T) {
	seq := mustParse(t, "a ^| b;")
	op, ok := seq.Body[0].(*ast.Operation)
	if !ok || op.Symbol != "^|" {
		t.Fatalf("statement is %#v, want a '^|' operation", seq.Body[0])
	}
}

func TestParseFunctionCall(t *testing.T) {
	seq := mustParse(t, "add(1, 2);")
	call, ok := seq.Body[0].(*ast.Call)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Call", seq.Body[0])
	}
	if call.Name != "add" || len(call.Arguments) != 2 {
		t.Fatalf("call = %+v, want add/2 args", call)
	}
}

func TestParseCallWithNoArguments(t *testing.T) {
	seq := mustParse(t, "now();")
	call := seq.Body[0].(*ast.Call)
	if call.Name != "now" || len(call.Arguments) != 0 {
		t.Fatalf("call = %+v, want now/0 args", call)
	}
}

func TestParseCastDesugaring(t *testing.T) {
	seq := mustParse(t, "int(\"5\");")
	cast, ok := seq.Body[0].(*ast.Cast)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Cast", seq.Body[0])
	}
	if cast.TypeName != "int" {
		t.Errorf("cast.TypeName = %q, want int", cast.TypeName)
	}
}

func TestParseDeclarationWithInitializer(t *testing.T) {
	seq := mustParse(t, "var x = 1;")
	if len(seq.Body) != 2 {
		t.Fatalf("got %d statements, want 2 (declaration + assignment)", len(seq.Body))
	}
	decl, ok := seq.Body[0].(*ast.Declaration)
	if !ok || decl.Name != "x" {
		t.Fatalf("first statement = %#v, want Declaration(x)", seq.Body[0])
	}
	assign, ok := seq.Body[1].(*ast.Assignment)
	if !ok || assign.Name != "x" || !assign.IgnoreType {
		t.Fatalf("second statement = %#v, want IgnoreType Assignment(x)", seq.Body[1])
	}
}

func TestParseMultiNameDeclaration(t *testing.T) {
	seq := mustParse(t, "var a, b: int;")
	if len(seq.Body) != 2 {
		t.Fatalf("got %d statements, want 2 declarations", len(seq.Body))
	}
	for i, name := range []string{"a", "b"} {
		decl, ok := seq.Body[i].(*ast.Declaration)
		if !ok || decl.Name != name || decl.TypeName != "int" {
			t.Fatalf("statement %d = %#v, want Declaration(%s, int)", i, seq.Body[i], name)
		}
	}
}

func TestParseCompoundAssignment(t *testing.T) {
	seq := mustParse(t, "x += 1;")
	assign, ok := seq.Body[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Assignment", seq.Body[0])
	}
	op, ok := assign.Expr.(*ast.Operation)
	if !ok || op.Symbol != "+" {
		t.Fatalf("assignment expr = %#v, want a '+' operation", assign.Expr)
	}
	lhs, ok := op.Operands[0].(*ast.Identifier)
	if !ok || lhs.Name != "x" {
		t.Fatalf("lhs of rewritten '+' = %#v, want Identifier(x)", op.Operands[0])
	}
}

func TestParseIfElseIfElse(t *testing.T) {
	seq := mustParse(t, `
		if (a) { 1; }
		else if (b) { 2; }
		else { 3; }
	`)
	branch, ok := seq.Body[0].(*ast.Branch)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Branch", seq.Body[0])
	}
	if len(branch.Conditionals) != 2 {
		t.Fatalf("got %d conditionals, want 2", len(branch.Conditionals))
	}
	if branch.Else == nil || len(branch.Else.Body) != 1 {
		t.Fatalf("else body = %#v, want one statement", branch.Else)
	}
}

func TestParseWhileLoop(t *testing.T) {
	seq := mustParse(t, "while (x < 10) { x += 1; }")
	loop, ok := seq.Body[0].(*ast.Loop)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Loop", seq.Body[0])
	}
	if loop.Body.Substitute != true {
		t.Errorf("loop body Substitute = false, want true")
	}
	if len(loop.Body.Body) != 1 {
		t.Fatalf("loop body has %d statements, want 1", len(loop.Body.Body))
	}
}

func TestParseForLoopDesugarsToWhile(t *testing.T) {
	seq := mustParse(t, "for (var i = 0; i < 3; i += 1) { print(i); }")
	if len(seq.Body) == 0 {
		t.Fatal("expected a desugared for-loop sequence")
	}
	outer, ok := seq.Body[0].(*ast.Sequence)
	if !ok || !outer.Substitute {
		t.Fatalf("statement is %#v, want a substituting Sequence", seq.Body[0])
	}
	var sawLoop bool
	for _, n := range outer.Body {
		if loop, ok := n.(*ast.Loop); ok {
			sawLoop = true
			if len(loop.Body.Body) != 2 {
				t.Fatalf("loop body has %d statements, want 2 (body + iter)", len(loop.Body.Body))
			}
		}
	}
	if !sawLoop {
		t.Fatal("desugared for-loop has no *ast.Loop")
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	seq := mustParse(t, "func add(a: int, b: int) { return a + b; }")
	def, ok := seq.Body[0].(*ast.Definition)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Definition", seq.Body[0])
	}
	if def.Name != "add" || len(def.Params) != 2 {
		t.Fatalf("def = %+v, want add/2 params", def)
	}
	if def.Params[0].TypeName != "int" || def.Params[1].TypeName != "int" {
		t.Fatalf("params = %+v, want both int", def.Params)
	}
}

func TestParseReturnBreakContinue(t *testing.T) {
	seq := mustParse(t, "return 1; break; continue;")
	if _, ok := seq.Body[0].(*ast.Return); !ok {
		t.Errorf("statement 0 is %T, want *ast.Return", seq.Body[0])
	}
	if _, ok := seq.Body[1].(*ast.Break); !ok {
		t.Errorf("statement 1 is %T, want *ast.Break", seq.Body[1])
	}
	if _, ok := seq.Body[2].(*ast.Continue); !ok {
		t.Errorf("statement 2 is %T, want *ast.Continue", seq.Body[2])
	}
}

func TestParseNestedBlock(t *testing.T) {
	seq := mustParse(t, "{ 1; 2; }")
	inner, ok := seq.Body[0].(*ast.Sequence)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Sequence", seq.Body[0])
	}
	if len(inner.Body) != 2 {
		t.Fatalf("inner block has %d statements, want 2", len(inner.Body))
	}
}

func TestParseInvalidExpressionErrors(t *testing.T) {
	_, err := Parse("1 +;")
	if err == nil {
		t.Fatal("expected an error for a dangling operator")
	}
}

func TestParseStrayStatementTokenIsNoOp(t *testing.T) {
	seq := mustParse(t, ";;1;;")
	if len(seq.Body) != 1 {
		t.Fatalf("got %d statements, want 1 (loose ';' are no-ops)", len(seq.Body))
	}
}

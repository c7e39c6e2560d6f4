package sylph

import (
	"errors"
	"math/big"
	"strings"
	"testing"
)

func parseSource(t *testing.T, source string) *Program {
	t.Helper()
	program, err := newParser(source).ParseProgram()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return program
}

func parseError(t *testing.T, source string) *SyntaxError {
	t.Helper()
	_, err := newParser(source).ParseProgram()
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected SyntaxError, got %T: %v", err, err)
	}
	return synErr
}

func TestParseProgramShape(t *testing.T) {
	program := parseSource(t, `
def add(a, b)
  return a + b
end

result = add 5, 3
out result
`)

	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}

	fn, ok := program.Statements[0].(*FunctionStmt)
	if !ok {
		t.Fatalf("expected function statement, got %T", program.Statements[0])
	}
	if fn.Name != "add" {
		t.Fatalf("function name mismatch: %q", fn.Name)
	}
	if len(fn.Params) != 2 || fn.Params[0] != "a" || fn.Params[1] != "b" {
		t.Fatalf("unexpected params: %v", fn.Params)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ReturnStmt)
	if !ok {
		t.Fatalf("expected return statement, got %T", fn.Body[0])
	}
	if _, ok := ret.Value.(*BinaryExpr); !ok {
		t.Fatalf("expected binary return value, got %T", ret.Value)
	}

	assign, ok := program.Statements[1].(*AssignStmt)
	if !ok {
		t.Fatalf("expected assignment, got %T", program.Statements[1])
	}
	if assign.Name != "result" {
		t.Fatalf("assignment target mismatch: %q", assign.Name)
	}
	call, ok := assign.Value.(*CallExpr)
	if !ok {
		t.Fatalf("expected call on right-hand side, got %T", assign.Value)
	}
	if call.Callee != "add" || len(call.Args) != 2 {
		t.Fatalf("unexpected call: %s with %d args", call.Callee, len(call.Args))
	}

	if _, ok := program.Statements[2].(*OutStmt); !ok {
		t.Fatalf("expected out statement, got %T", program.Statements[2])
	}
}

func TestParseCallSeparators(t *testing.T) {
	tests := []struct {
		name   string
		source string
		args   int
	}{
		{"comma separated", "multiply 2, 3, 4", 3},
		{"space separated", "add x y", 2},
		{"mixed separators", "combine 1 2, 3", 3},
		{"single argument", "show 7", 1},
		{"operator extends argument", "add 1 + 2", 1},
		{"comma splits operands", "add 1 + 2, 3", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			program := parseSource(t, tc.source)
			stmt, ok := program.Statements[0].(*ExprStmt)
			if !ok {
				t.Fatalf("expected expression statement, got %T", program.Statements[0])
			}
			call, ok := stmt.Expr.(*CallExpr)
			if !ok {
				t.Fatalf("expected call, got %T", stmt.Expr)
			}
			if len(call.Args) != tc.args {
				t.Fatalf("argument count mismatch: got %d want %d", len(call.Args), tc.args)
			}
		})
	}
}

func TestParseBareNameIsIdentifierStatement(t *testing.T) {
	program := parseSource(t, "ping\n")
	stmt, ok := program.Statements[0].(*ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", program.Statements[0])
	}
	if _, ok := stmt.Expr.(*Identifier); !ok {
		t.Fatalf("expected identifier, got %T", stmt.Expr)
	}
}

func TestParseGroupedCallArgument(t *testing.T) {
	program := parseSource(t, "out add (add 1 2), 3")
	out := program.Statements[0].(*OutStmt)
	call, ok := out.Value.(*CallExpr)
	if !ok {
		t.Fatalf("expected call, got %T", out.Value)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	inner, ok := call.Args[0].(*CallExpr)
	if !ok {
		t.Fatalf("expected nested call argument, got %T", call.Args[0])
	}
	if inner.Callee != "add" || len(inner.Args) != 2 {
		t.Fatalf("unexpected nested call: %s with %d args", inner.Callee, len(inner.Args))
	}
}

func TestParsePrecedence(t *testing.T) {
	program := parseSource(t, "x = 1 + 2 * 3 < 10")
	assign := program.Statements[0].(*AssignStmt)

	cmp, ok := assign.Value.(*BinaryExpr)
	if !ok || cmp.Operator != tokenLT {
		t.Fatalf("expected comparison at the root, got %T", assign.Value)
	}
	sum, ok := cmp.Left.(*BinaryExpr)
	if !ok || sum.Operator != tokenPlus {
		t.Fatalf("expected sum under comparison, got %T", cmp.Left)
	}
	product, ok := sum.Right.(*BinaryExpr)
	if !ok || product.Operator != tokenAsterisk {
		t.Fatalf("expected product under sum, got %T", sum.Right)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	program := parseSource(t, "x = 10 - 4 - 3")
	assign := program.Statements[0].(*AssignStmt)

	outer, ok := assign.Value.(*BinaryExpr)
	if !ok || outer.Operator != tokenMinus {
		t.Fatalf("expected subtraction at the root, got %T", assign.Value)
	}
	inner, ok := outer.Left.(*BinaryExpr)
	if !ok || inner.Operator != tokenMinus {
		t.Fatalf("expected nested subtraction on the left, got %T", outer.Left)
	}
	if lit, ok := outer.Right.(*IntegerLiteral); !ok || lit.Value.Int64() != 3 {
		t.Fatalf("expected literal 3 on the right, got %T", outer.Right)
	}
}

func TestParseUnaryMinus(t *testing.T) {
	program := parseSource(t, "x = -5 * 2")
	assign := program.Statements[0].(*AssignStmt)

	product, ok := assign.Value.(*BinaryExpr)
	if !ok || product.Operator != tokenAsterisk {
		t.Fatalf("expected product at the root, got %T", assign.Value)
	}
	neg, ok := product.Left.(*UnaryExpr)
	if !ok || neg.Operator != tokenMinus {
		t.Fatalf("expected negation on the left, got %T", product.Left)
	}
}

func TestParseIfElseWhile(t *testing.T) {
	program := parseSource(t, `
i = 0
while i < 3
  if i == 1
    out "one"
  else
    out i
  end
  i += 1
end
`)

	loop, ok := program.Statements[1].(*WhileStmt)
	if !ok {
		t.Fatalf("expected while statement, got %T", program.Statements[1])
	}
	if len(loop.Body) != 2 {
		t.Fatalf("expected 2 loop body statements, got %d", len(loop.Body))
	}

	cond, ok := loop.Body[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected if statement, got %T", loop.Body[0])
	}
	if len(cond.Consequent) != 1 || len(cond.Alternate) != 1 {
		t.Fatalf("unexpected branch sizes: then=%d else=%d", len(cond.Consequent), len(cond.Alternate))
	}

	inc, ok := loop.Body[1].(*CompoundAssignStmt)
	if !ok {
		t.Fatalf("expected compound assignment, got %T", loop.Body[1])
	}
	if inc.Name != "i" || inc.Op != tokenPlus {
		t.Fatalf("unexpected compound assignment: %s %s=", inc.Name, inc.Op)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	program := parseSource(t, "if x > 0\n  out x\nend")
	cond := program.Statements[0].(*IfStmt)
	if cond.Alternate != nil {
		t.Fatalf("expected nil alternate, got %d statements", len(cond.Alternate))
	}
}

func TestParseCompoundAssignOperators(t *testing.T) {
	program := parseSource(t, "a += 1\na -= 2\na *= 3\na %= 4")

	want := []TokenType{tokenPlus, tokenMinus, tokenAsterisk, tokenPercent}
	if len(program.Statements) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(program.Statements))
	}
	for i, op := range want {
		stmt, ok := program.Statements[i].(*CompoundAssignStmt)
		if !ok {
			t.Fatalf("statement %d: expected compound assignment, got %T", i, program.Statements[i])
		}
		if stmt.Op != op {
			t.Fatalf("statement %d: operator mismatch: got %s want %s", i, stmt.Op, op)
		}
	}
}

func TestParseIntegerLiteralWidths(t *testing.T) {
	tests := []struct {
		source string
		width  Width
		value  int64
	}{
		{"x = 7", WidthUnset, 7},
		{"x = 10i64", WidthI64, 10},
		{"x = 0i8", WidthI8, 0},
		{"x = 99bigint", WidthBig, 99},
	}

	for _, tc := range tests {
		program := parseSource(t, tc.source)
		assign := program.Statements[0].(*AssignStmt)
		lit, ok := assign.Value.(*IntegerLiteral)
		if !ok {
			t.Fatalf("%s: expected integer literal, got %T", tc.source, assign.Value)
		}
		if lit.Width != tc.width {
			t.Fatalf("%s: width mismatch: got %s want %s", tc.source, lit.Width, tc.width)
		}
		if lit.Value.Cmp(big.NewInt(tc.value)) != 0 {
			t.Fatalf("%s: value mismatch: got %s want %d", tc.source, lit.Value, tc.value)
		}
	}
}

func TestParseSuffixedLiteralOutOfRange(t *testing.T) {
	synErr := parseError(t, "x = 300i8")
	if !strings.Contains(synErr.Error(), "out of range for i8") {
		t.Fatalf("unexpected error: %v", synErr)
	}
}

func TestParseFunctionArityZero(t *testing.T) {
	program := parseSource(t, "def ping()\n  out \"pong\"\nend")
	fn := program.Statements[0].(*FunctionStmt)
	if len(fn.Params) != 0 {
		t.Fatalf("expected no params, got %v", fn.Params)
	}
}

func TestParseReturnWithoutValue(t *testing.T) {
	program := parseSource(t, "def stop()\n  return\nend")
	fn := program.Statements[0].(*FunctionStmt)
	ret := fn.Body[0].(*ReturnStmt)
	if ret.Value != nil {
		t.Fatalf("expected bare return, got value %T", ret.Value)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"missing end", "def f()\n  out 1\n", "expected end"},
		{"else without if", "else\n", "expected statement"},
		{"return at top level", "return 5\n", "return outside a function body"},
		{"nested def", "def outer()\n  def inner()\n  end\nend", "only allowed at the top level"},
		{"missing function name", "def ()\n end", "expected function name"},
		{"missing parameter", "def f(a,)\nend", "expected parameter name"},
		{"two statements on a line", "a = 1 b = 2", "expected newline"},
		{"unclosed paren", "x = (1 + 2", "expected )"},
		{"dangling operator", "x = 1 +", "expected expression"},
		{"assignment to keyword", "end = 1", "expected statement"},
		{"bare operator statement", "x + 1", "expected assignment or call arguments"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			synErr := parseError(t, tc.source)
			if !strings.Contains(synErr.Error(), tc.message) {
				t.Fatalf("error %q does not mention %q", synErr.Error(), tc.message)
			}
		})
	}
}

func TestParseLexErrorSurfacesFromParse(t *testing.T) {
	_, err := newParser(`s = "open`).ParseProgram()
	if err == nil {
		t.Fatalf("expected error")
	}
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexError, got %T", err)
	}
}

func TestParseStatementPositions(t *testing.T) {
	program := parseSource(t, "a = 1\nout a\n")
	if pos := program.Statements[0].Pos(); pos.Line != 1 || pos.Column != 1 {
		t.Fatalf("assignment position mismatch: %d:%d", pos.Line, pos.Column)
	}
	if pos := program.Statements[1].Pos(); pos.Line != 2 || pos.Column != 1 {
		t.Fatalf("out position mismatch: %d:%d", pos.Line, pos.Column)
	}
}

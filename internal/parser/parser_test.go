package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/klox-lang/klox/internal/ast"
	"github.com/klox-lang/klox/internal/lexer"
	"github.com/klox-lang/klox/internal/parser"
)

func parse(t *testing.T, src string) *parser.Parser {
	t.Helper()
	tokens, lexErrs := lexer.ScanTokens(src)
	require.Empty(t, lexErrs)
	return parser.New(tokens)
}

func TestPrecedenceCascade(t *testing.T) {
	p := parse(t, "print 1 + 2 * 3;")
	program := p.ParseProgram()
	require.False(t, p.HadError())
	require.Len(t, program.Statements, 1)

	stmt, ok := program.Statements[0].(*ast.PrintStmt)
	require.True(t, ok)
	require.Equal(t, "(1 + (2 * 3))", stmt.Expression.String())
}

func TestTernaryIsRightAssociative(t *testing.T) {
	p := parse(t, "var a = true ? 1 : false ? 2 : 3;")
	program := p.ParseProgram()
	require.False(t, p.HadError())

	stmt := program.Statements[0].(*ast.VarStmt)
	tern := stmt.Initializer.(*ast.Ternary)
	require.Equal(t, "true", tern.Cond.String())
	_, elseIsTernary := tern.Else.(*ast.Ternary)
	require.True(t, elseIsTernary)
}

func TestAssignmentRequiresVariableTarget(t *testing.T) {
	p := parse(t, "1 = 2;")
	p.ParseProgram()
	require.True(t, p.HadError())
	require.Contains(t, p.Errors()[0].Error(), "Invalid assignment target.")
}

func TestForDesugarsToWhile(t *testing.T) {
	p := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	program := p.ParseProgram()
	require.False(t, p.HadError())

	outer, ok := program.Statements[0].(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, outer.Statements, 2)

	_, isVar := outer.Statements[0].(*ast.VarStmt)
	require.True(t, isVar)

	whileStmt, ok := outer.Statements[1].(*ast.WhileStmt)
	require.True(t, ok)

	body, ok := whileStmt.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Statements, 2) // original body + increment
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	p := parse(t, "break;")
	p.ParseProgram()
	require.True(t, p.HadError())
	require.Contains(t, p.Errors()[0].Error(), "'break' outside of a loop")
}

func TestContinueInsideLoopIsFine(t *testing.T) {
	p := parse(t, "while (true) { continue; }")
	p.ParseProgram()
	require.False(t, p.HadError())
}

func TestMissingLeftHandOperand(t *testing.T) {
	p := parse(t, "== 1;")
	p.ParseProgram()
	require.True(t, p.HadError())
	require.Contains(t, p.Errors()[0].Error(), "Missing left-hand operand.")
}

func TestMissingLeftHandConditionOfTernary(t *testing.T) {
	p := parse(t, "? 1 : 2;")
	p.ParseProgram()
	require.True(t, p.HadError())
	require.Contains(t, p.Errors()[0].Error(), "Missing left-hand condition of a ternary operator.")
}

func TestSynchronizationRecoversAfterError(t *testing.T) {
	p := parse(t, "var = ; print 1;")
	program := p.ParseProgram()
	require.True(t, p.HadError())

	// Second statement should still parse despite the first failing.
	var sawPrint bool
	for _, s := range program.Statements {
		if _, ok := s.(*ast.PrintStmt); ok {
			sawPrint = true
		}
	}
	require.True(t, sawPrint)
}

func TestFunctionDeclaration(t *testing.T) {
	p := parse(t, "fun add(a, b) { return a + b; }")
	program := p.ParseProgram()
	require.False(t, p.HadError())

	fn, ok := program.Statements[0].(*ast.FunctionStmt)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
}

func TestCallArgumentLimit(t *testing.T) {
	src := "fun f() {} f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ");"

	p := parse(t, src)
	p.ParseProgram()
	require.True(t, p.HadError())
	require.Contains(t, p.Errors()[len(p.Errors())-1].Error(), "Can't have more than 255 arguments.")
}

package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/klox-lang/klox/internal/interp"
	"github.com/klox-lang/klox/internal/lexer"
	"github.com/klox-lang/klox/internal/parser"
	"github.com/klox-lang/klox/internal/resolver"
)

func run(t *testing.T, src string) (string, *interp.RuntimeError) {
	t.Helper()

	tokens, lexErrs := lexer.ScanTokens(src)
	require.Empty(t, lexErrs)

	p := parser.New(tokens)
	program := p.ParseProgram()
	require.False(t, p.HadError(), "parse errors: %v", p.Errors())

	r := resolver.New()
	depths := r.Resolve(program)
	require.False(t, r.HadError(), "resolve errors: %v", r.Errors())

	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // discard

	i := interp.New(&out, logger)
	i.SetLocals(depths)
	err := i.Interpret(program)
	return out.String(), err
}

func TestScenario1_ArithmeticPrecedence(t *testing.T) {
	out, err := run(t, "print 1 + 2 * 3;")
	require.Nil(t, err)
	require.Equal(t, "7\n", out)
}

func TestScenario2_BlockShadowing(t *testing.T) {
	out, err := run(t, `var a = 1; { var a = 2; print a; } print a;`)
	require.Nil(t, err)
	require.Equal(t, "2\n1\n", out)
}

func TestScenario3_ClosureCapture(t *testing.T) {
	src := `fun make(x){ fun get(){ return x; } return get; } var g = make(42); print g();`
	out, err := run(t, src)
	require.Nil(t, err)
	require.Equal(t, "42\n", out)
}

func TestScenario4_BreakContinueInWhile(t *testing.T) {
	src := `var i = 0; while (i < 3) { if (i == 1) { i = i + 1; continue; } print i; i = i + 1; }`
	out, err := run(t, src)
	require.Nil(t, err)
	require.Equal(t, "0\n2\n", out)
}

func TestScenario5_Fibonacci(t *testing.T) {
	src := `fun fib(n){ if (n<2) return n; return fib(n-1)+fib(n-2); } print fib(10);`
	out, err := run(t, src)
	require.Nil(t, err)
	require.Equal(t, "55\n", out)
}

func TestScenario6_StringNumberConcat(t *testing.T) {
	out, err := run(t, `print "hi " + 3;`)
	require.Nil(t, err)
	require.Equal(t, "hi 3\n", out)
}

func TestTruthinessBoundary(t *testing.T) {
	out, err := run(t, `print !nil; print !false; print !0; print !"";`)
	require.Nil(t, err)
	require.Equal(t, "true\ntrue\nfalse\nfalse\n", out)
}

func TestStringPlusNumberCoercion(t *testing.T) {
	out, err := run(t, `print "a" + 1; print "a" + 1.5;`)
	require.Nil(t, err)
	require.Equal(t, "a1\na1.5\n", out)
}

func TestNumberPlusStringIsRuntimeError(t *testing.T) {
	_, err := run(t, `print 1 + "a";`)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Operands must be two strings or two numbers.")
}

func TestDivisionByZeroMessage(t *testing.T) {
	_, err := run(t, `print 1 / 0;`)
	require.NotNil(t, err)
	require.Contains(t, err.Error(),
		"It looks like you tried division by 0. Yeah better don't try this at home.")
}

func TestWrongArityMessage(t *testing.T) {
	_, err := run(t, `fun f(a, b) { return a + b; } f(1);`)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestUndefinedVariableMessage(t *testing.T) {
	_, err := run(t, `print x;`)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Undefined variable 'x'.")
}

func TestParenthesizationIsTransparent(t *testing.T) {
	out1, err1 := run(t, `print (1 + 2);`)
	out2, err2 := run(t, `print 1 + 2;`)
	require.Nil(t, err1)
	require.Nil(t, err2)
	require.Equal(t, out1, out2)
}

func TestIntegerStringifiesWithoutTrailingZero(t *testing.T) {
	out, err := run(t, `print 10 / 2;`)
	require.Nil(t, err)
	require.Equal(t, "5\n", out)
}

func TestClockReturnsNumber(t *testing.T) {
	out, err := run(t, `print clock() > 0;`)
	require.Nil(t, err)
	require.Equal(t, "true\n", out)
}

func TestReplModePrintsExpressionStatements(t *testing.T) {
	tokens, _ := lexer.ScanTokens(`1 + 1;`)
	p := parser.New(tokens)
	program := p.ParseProgram()
	r := resolver.New()
	depths := r.Resolve(program)

	var out bytes.Buffer
	i := interp.New(&out, nil)
	i.SetLocals(depths)
	i.SetReplMode(true)
	err := i.Interpret(program)

	require.Nil(t, err)
	require.Equal(t, "2\n", out.String())
}

func TestSeparateCallsDoNotShareCallFrames(t *testing.T) {
	src := `
	fun counter() {
		var i = 0;
		fun inc() { i = i + 1; return i; }
		return inc;
	}
	var a = counter();
	var b = counter();
	print a();
	print a();
	print b();
	`
	out, err := run(t, src)
	require.Nil(t, err)
	require.Equal(t, []string{"1", "2", "1"}, strings.Split(strings.TrimSpace(out), "\n"))
}

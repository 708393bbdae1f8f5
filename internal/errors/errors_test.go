package errors_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	errs "github.com/klox-lang/klox/internal/errors"
	"github.com/klox-lang/klox/internal/token"
)

func TestTokenErrorFormatsAtLexeme(t *testing.T) {
	tok := token.New(token.IDENTIFIER, "foo", nil, 3)
	e := &errs.TokenError{Tok: tok, Message: "Undefined variable 'foo'."}
	require.Equal(t, "[line 3] Error at 'foo': Undefined variable 'foo'.", e.Error())
}

func TestTokenErrorFormatsAtEnd(t *testing.T) {
	tok := token.New(token.EOF, "", nil, 7)
	e := &errs.TokenError{Tok: tok, Message: "Expect expression."}
	require.Equal(t, "[line 7] Error at end: Expect expression.", e.Error())
}

func TestRuntimeErrorFormat(t *testing.T) {
	tok := token.New(token.SLASH, "/", nil, 2)
	e := errs.NewRuntimeError(tok, "It looks like you tried division by 0. Yeah better don't try this at home.")
	require.Equal(t, "[line 2] It looks like you tried division by 0. Yeah better don't try this at home.", e.Error())
}

func TestReporterAccumulatesAndResets(t *testing.T) {
	r := errs.NewReporter()
	require.False(t, r.HadError())

	r.Token(token.New(token.IDENTIFIER, "x", nil, 1), "Variable with this name already exists in this scope.")
	r.Line(5, "Can't return from top-level.")

	require.True(t, r.HadError())
	require.Len(t, r.Errors(), 2)

	r.Reset()
	require.False(t, r.HadError())
	require.Empty(t, r.Errors())
}

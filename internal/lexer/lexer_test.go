package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/klox-lang/klox/internal/lexer"
	"github.com/klox-lang/klox/internal/token"
)

func TestScanTokens_Operators(t *testing.T) {
	tokens, errs := lexer.ScanTokens("1 + 2 * (3 - 4) / 5 == 6 != 7 <= 8 >= 9")
	require.Empty(t, errs)

	var types []token.Type
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}

	require.Equal(t, []token.Type{
		token.NUMBER, token.PLUS, token.NUMBER, token.STAR, token.LEFT_PAREN,
		token.NUMBER, token.MINUS, token.NUMBER, token.RIGHT_PAREN, token.SLASH,
		token.NUMBER, token.EQUAL_EQUAL, token.NUMBER, token.BANG_EQUAL, token.NUMBER,
		token.LESS_EQUAL, token.NUMBER, token.GREATER_EQUAL, token.NUMBER, token.EOF,
	}, types)
}

func TestScanTokens_Keywords(t *testing.T) {
	tokens, errs := lexer.ScanTokens("var x = nil; if (true) print false; else continue;")
	require.Empty(t, errs)
	require.Equal(t, token.VAR, tokens[0].Type)
	require.Equal(t, token.IDENTIFIER, tokens[1].Type)
	require.Equal(t, token.NIL, tokens[3].Type)
}

func TestScanTokens_StringLiteral(t *testing.T) {
	tokens, errs := lexer.ScanTokens(`"hello world"`)
	require.Empty(t, errs)
	require.Equal(t, token.STRING, tokens[0].Type)
	require.Equal(t, "hello world", tokens[0].Literal)
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	_, errs := lexer.ScanTokens(`"abc`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Message, "unterminated string")
}

func TestScanTokens_NumberLiteral(t *testing.T) {
	tokens, errs := lexer.ScanTokens("42 3.14")
	require.Empty(t, errs)
	require.Equal(t, 42.0, tokens[0].Literal)
	require.Equal(t, 3.14, tokens[1].Literal)
}

func TestScanTokens_LineTracking(t *testing.T) {
	tokens, _ := lexer.ScanTokens("var a = 1;\nvar b = 2;")
	require.Equal(t, 1, tokens[0].Line)

	var secondVarLine int
	seen := 0
	for _, tok := range tokens {
		if tok.Type == token.VAR {
			seen++
			if seen == 2 {
				secondVarLine = tok.Line
			}
		}
	}
	require.Equal(t, 2, secondVarLine)
}

func TestScanTokens_LineComment(t *testing.T) {
	tokens, errs := lexer.ScanTokens("1 // a comment\n+ 2")
	require.Empty(t, errs)
	require.Equal(t, token.NUMBER, tokens[0].Type)
	require.Equal(t, token.PLUS, tokens[1].Type)
}

func TestScanTokens_IllegalCharacter(t *testing.T) {
	_, errs := lexer.ScanTokens("1 @ 2")
	require.Len(t, errs, 1)
}

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxvm/loxvm/internal/token"
)

func scanAll(t *testing.T, source string) []token.Token {
	t.Helper()
	l := New(source)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.ERROR {
			return tokens
		}
	}
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	tokens := scanAll(t, "(){};,.-+*!= == <= >=")
	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.SEMICOLON, token.COMMA, token.DOT, token.MINUS, token.PLUS, token.STAR,
		token.BANG_EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.EOF,
	}, kinds)
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	tokens := scanAll(t, "class orbit fun")
	require.Len(t, tokens, 4)
	assert.Equal(t, token.CLASS, tokens[0].Kind)
	assert.Equal(t, token.IDENTIFIER, tokens[1].Kind, "orbit must not be mistaken for or")
	assert.Equal(t, token.FUN, tokens[2].Kind)
}

func TestLexerLineCommentsAreSkipped(t *testing.T) {
	tokens := scanAll(t, "// a comment\nvar")
	require.Len(t, tokens, 2)
	assert.Equal(t, token.VAR, tokens[0].Kind)
	assert.Equal(t, 2, tokens[0].Line)
}

func TestLexerBlockCommentsAreRejected(t *testing.T) {
	tokens := scanAll(t, "/* nope */")
	require.NotEmpty(t, tokens)
	assert.Equal(t, token.ERROR, tokens[0].Kind)
	assert.Equal(t, "Block comments are not supported.", tokens[0].Lexeme)
}

func TestLexerUnterminatedString(t *testing.T) {
	tokens := scanAll(t, `"unterminated`)
	require.NotEmpty(t, tokens)
	assert.Equal(t, token.ERROR, tokens[0].Kind)
	assert.Equal(t, "Unterminated string.", tokens[0].Lexeme)
}

func TestLexerNumberWithFraction(t *testing.T) {
	tokens := scanAll(t, "3.14 10 .5")
	require.True(t, len(tokens) >= 2)
	assert.Equal(t, token.NUMBER, tokens[0].Kind)
	assert.Equal(t, "3.14", tokens[0].Lexeme)
	assert.Equal(t, token.NUMBER, tokens[1].Kind)
	assert.Equal(t, "10", tokens[1].Lexeme)
}

func TestLexerTracksLineAndColumn(t *testing.T) {
	tokens := scanAll(t, "var a\n  = 1;")
	require.True(t, len(tokens) >= 4)
	assert.Equal(t, 1, tokens[0].Line)
	eq := tokens[2]
	assert.Equal(t, token.EQUAL, eq.Kind)
	assert.Equal(t, 2, eq.Line)
	assert.Equal(t, 3, eq.Column)
}

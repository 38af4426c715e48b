// Package chessql implements the ChessQL query language: a boolean
// expression grammar over game fields and motif predicates, compiled to
// parameterized SQL. Query text is never passed through as raw SQL.
package chessql

import (
	"strings"
	"unicode"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF      TokenType = iota
	TokenIdent              // field names, motif names
	TokenNumber             // integer literal
	TokenString             // quoted string literal
	TokenLParen             // (
	TokenRParen             // )
	TokenLBracket           // [
	TokenRBracket           // ]
	TokenComma              // ,
	TokenDot                // .
	TokenEq                 // =
	TokenNeq                // !=
	TokenLt                 // <
	TokenLte                // <=
	TokenGt                 // >
	TokenGte                // >=
	TokenAnd                // AND
	TokenOr                 // OR
	TokenNot                // NOT
	TokenIn                 // IN
	TokenMotif              // motif
	TokenSequence           // sequence
	TokenOrder              // ORDER
	TokenBy                 // BY
	TokenAsc                // ASC
	TokenDesc               // DESC
	TokenError              // unrecognized input
)

// Token represents a lexer token.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// keywords are matched case-insensitively against identifiers.
var keywords = map[string]TokenType{
	"and":      TokenAnd,
	"or":       TokenOr,
	"not":      TokenNot,
	"in":       TokenIn,
	"motif":    TokenMotif,
	"sequence": TokenSequence,
	"order":    TokenOrder,
	"by":       TokenBy,
	"asc":      TokenAsc,
	"desc":     TokenDesc,
}

// Lexer tokenizes a ChessQL string.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: start}
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: start}
	case '[':
		l.pos++
		return Token{Type: TokenLBracket, Value: "[", Pos: start}
	case ']':
		l.pos++
		return Token{Type: TokenRBracket, Value: "]", Pos: start}
	case ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: start}
	case '.':
		l.pos++
		return Token{Type: TokenDot, Value: ".", Pos: start}
	case '=':
		l.pos++
		return Token{Type: TokenEq, Value: "=", Pos: start}
	case '!':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '=' {
			l.pos += 2
			return Token{Type: TokenNeq, Value: "!=", Pos: start}
		}
		l.pos++
		return Token{Type: TokenError, Value: "!", Pos: start}
	case '<':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '=' {
			l.pos += 2
			return Token{Type: TokenLte, Value: "<=", Pos: start}
		}
		l.pos++
		return Token{Type: TokenLt, Value: "<", Pos: start}
	case '>':
		if l.pos+1 < len(l.input) && l.input[l.pos+1] == '=' {
			l.pos += 2
			return Token{Type: TokenGte, Value: ">=", Pos: start}
		}
		l.pos++
		return Token{Type: TokenGt, Value: ">", Pos: start}
	case '\'', '"':
		return l.scanString(ch)
	}

	if ch >= '0' && ch <= '9' || ch == '-' {
		return l.scanNumber()
	}
	if isIdentStart(ch) {
		return l.scanIdent()
	}

	l.pos++
	return Token{Type: TokenError, Value: string(ch), Pos: start}
}

// Tokenize returns all tokens up to and including EOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			return tokens
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

func (l *Lexer) scanIdent() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}
	value := l.input[start:l.pos]
	if t, ok := keywords[strings.ToLower(value)]; ok {
		return Token{Type: t, Value: value, Pos: start}
	}
	return Token{Type: TokenIdent, Value: value, Pos: start}
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	if l.input[l.pos] == '-' {
		l.pos++
	}
	digits := 0
	for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
		l.pos++
		digits++
	}
	if digits == 0 {
		return Token{Type: TokenError, Value: l.input[start:l.pos], Pos: start}
	}
	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Pos: start}
}

// scanString reads a quoted literal with backslash escapes. The quote
// character matches the opening one.
func (l *Lexer) scanString(quote byte) Token {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && l.pos+1 < len(l.input) {
			sb.WriteByte(l.input[l.pos+1])
			l.pos += 2
			continue
		}
		if ch == quote {
			l.pos++
			return Token{Type: TokenString, Value: sb.String(), Pos: start}
		}
		sb.WriteByte(ch)
		l.pos++
	}
	return Token{Type: TokenError, Value: l.input[start:], Pos: start}
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || ch >= '0' && ch <= '9'
}

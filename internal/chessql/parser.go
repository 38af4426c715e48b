package chessql

import (
	"fmt"
	"strconv"
)

// ParseError reports a syntax error at a byte position in the query.
type ParseError struct {
	Msg string
	Pos int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("chessql: parse error at position %d: %s", e.Pos, e.Msg)
}

// Parser parses ChessQL strings into Query ASTs.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse parses a ChessQL string and returns its AST.
func Parse(input string) (*Query, error) {
	tokens := NewLexer(input).Tokenize()
	last := tokens[len(tokens)-1]
	if last.Type == TokenError {
		return nil, &ParseError{Msg: fmt.Sprintf("unrecognized input %q", last.Value), Pos: last.Pos}
	}

	p := &Parser{tokens: tokens}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	query := &Query{Expr: expr}

	if p.check(TokenOrder) {
		orderBy, err := p.parseOrderBy()
		if err != nil {
			return nil, err
		}
		query.OrderBy = orderBy
	}

	if !p.check(TokenEOF) {
		t := p.current()
		return nil, &ParseError{Msg: fmt.Sprintf("unexpected trailing token %q", t.Value), Pos: t.Pos}
	}
	return query, nil
}

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []Expr{left}
	for p.check(TokenOr) {
		p.advance()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return &Or{Operands: operands}, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	operands := []Expr{left}
	for p.check(TokenAnd) {
		p.advance()
		next, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return &And{Operands: operands}, nil
}

func (p *Parser) parseNot() (Expr, error) {
	if p.check(TokenNot) {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	switch p.current().Type {
	case TokenLParen:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenMotif:
		return p.parseMotif()
	case TokenSequence:
		return p.parseSequence()
	case TokenIdent:
		return p.parseFieldExpr()
	}
	t := p.current()
	return nil, &ParseError{Msg: fmt.Sprintf("unexpected token %q", t.Value), Pos: t.Pos}
}

func (p *Parser) parseMotif() (Expr, error) {
	p.advance() // motif
	if err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("motif name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}
	return &MotifPredicate{Name: name}, nil
}

func (p *Parser) parseSequence() (Expr, error) {
	p.advance() // sequence
	if err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}
	var names []string
	name, err := p.expectIdent("motif name")
	if err != nil {
		return nil, err
	}
	names = append(names, name)
	for p.check(TokenComma) {
		p.advance()
		name, err := p.expectIdent("motif name")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}
	return &Sequence{Names: names}, nil
}

func (p *Parser) parseFieldExpr() (Expr, error) {
	field, err := p.parseFieldName()
	if err != nil {
		return nil, err
	}

	if p.check(TokenIn) {
		p.advance()
		return p.parseInValues(field)
	}

	op, err := p.parseCompOp()
	if err != nil {
		return nil, err
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &Comparison{Field: field, Op: op, Value: value}, nil
}

// parseFieldName accepts snake_case identifiers and dot notation
// ("white.elo"), which the compiler maps to columns.
func (p *Parser) parseFieldName() (string, error) {
	field, err := p.expectIdent("field name")
	if err != nil {
		return "", err
	}
	for p.check(TokenDot) {
		p.advance()
		next, err := p.expectIdent("field name")
		if err != nil {
			return "", err
		}
		field += "." + next
	}
	return field, nil
}

func (p *Parser) parseCompOp() (string, error) {
	t := p.current()
	switch t.Type {
	case TokenEq, TokenNeq, TokenLt, TokenLte, TokenGt, TokenGte:
		p.advance()
		return t.Value, nil
	}
	return "", &ParseError{Msg: fmt.Sprintf("expected comparison operator, got %q", t.Value), Pos: t.Pos}
}

func (p *Parser) parseValue() (any, error) {
	t := p.current()
	switch t.Type {
	case TokenNumber:
		p.advance()
		n, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil {
			return nil, &ParseError{Msg: fmt.Sprintf("bad number %q", t.Value), Pos: t.Pos}
		}
		return n, nil
	case TokenString:
		p.advance()
		return t.Value, nil
	}
	return nil, &ParseError{Msg: fmt.Sprintf("expected value, got %q", t.Value), Pos: t.Pos}
}

func (p *Parser) parseInValues(field string) (Expr, error) {
	if err := p.expect(TokenLBracket, "["); err != nil {
		return nil, err
	}
	var values []any
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	values = append(values, v)
	for p.check(TokenComma) {
		p.advance()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := p.expect(TokenRBracket, "]"); err != nil {
		return nil, err
	}
	return &In{Field: field, Values: values}, nil
}

func (p *Parser) parseOrderBy() (*OrderBy, error) {
	p.advance() // ORDER
	if err := p.expect(TokenBy, "BY"); err != nil {
		return nil, err
	}
	if err := p.expect(TokenMotif, "motif"); err != nil {
		return nil, err
	}
	if err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("motif name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}

	orderBy := &OrderBy{Motif: name, Ascending: true}
	switch p.current().Type {
	case TokenAsc:
		p.advance()
	case TokenDesc:
		orderBy.Ascending = false
		p.advance()
	}
	return orderBy, nil
}

func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

func (p *Parser) check(t TokenType) bool {
	return p.current().Type == t
}

func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(t TokenType, want string) error {
	if !p.check(t) {
		curr := p.current()
		return &ParseError{Msg: fmt.Sprintf("expected %s, got %q", want, curr.Value), Pos: curr.Pos}
	}
	p.advance()
	return nil
}

func (p *Parser) expectIdent(what string) (string, error) {
	t := p.current()
	if t.Type != TokenIdent {
		return "", &ParseError{Msg: fmt.Sprintf("expected %s, got %q", what, t.Value), Pos: t.Pos}
	}
	p.advance()
	return t.Value, nil
}

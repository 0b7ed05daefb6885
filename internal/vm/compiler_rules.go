package vm

import "github.com/loxvm/loxvm/internal/token"

// Precedence levels, ascending.
type Precedence int

const (
	PREC_NONE Precedence = iota
	PREC_ASSIGNMENT
	PREC_OR
	PREC_AND
	PREC_EQUALITY
	PREC_COMPARISON
	PREC_TERM
	PREC_FACTOR
	PREC_UNARY
	PREC_CALL
	PREC_PRIMARY
)

type parseFn func(p *Parser, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
		token.LEFT_PAREN:    {grouping, call, PREC_CALL},
		token.RIGHT_PAREN:   {nil, nil, PREC_NONE},
		token.LEFT_BRACE:    {nil, nil, PREC_NONE},
		token.RIGHT_BRACE:   {nil, nil, PREC_NONE},
		token.COMMA:         {nil, nil, PREC_NONE},
		token.DOT:           {nil, dot, PREC_CALL},
		token.MINUS:         {unary, binary, PREC_TERM},
		token.PLUS:          {nil, binary, PREC_TERM},
		token.SEMICOLON:     {nil, nil, PREC_NONE},
		token.SLASH:         {nil, binary, PREC_FACTOR},
		token.STAR:          {nil, binary, PREC_FACTOR},
		token.BANG:          {unary, nil, PREC_NONE},
		token.BANG_EQUAL:    {nil, binary, PREC_EQUALITY},
		token.EQUAL:         {nil, nil, PREC_NONE},
		token.EQUAL_EQUAL:   {nil, binary, PREC_EQUALITY},
		token.GREATER:       {nil, binary, PREC_COMPARISON},
		token.GREATER_EQUAL: {nil, binary, PREC_COMPARISON},
		token.LESS:          {nil, binary, PREC_COMPARISON},
		token.LESS_EQUAL:    {nil, binary, PREC_COMPARISON},
		token.IDENTIFIER:    {variable, nil, PREC_NONE},
		token.STRING:        {stringLiteral, nil, PREC_NONE},
		token.NUMBER:        {number, nil, PREC_NONE},
		token.AND:           {nil, and_, PREC_AND},
		token.CLASS:         {nil, nil, PREC_NONE},
		token.ELSE:          {nil, nil, PREC_NONE},
		token.FALSE:         {literal, nil, PREC_NONE},
		token.FOR:           {nil, nil, PREC_NONE},
		token.FUN:           {nil, nil, PREC_NONE},
		token.IF:            {nil, nil, PREC_NONE},
		token.NIL:           {literal, nil, PREC_NONE},
		token.OR:            {nil, or_, PREC_OR},
		token.PRINT:         {nil, nil, PREC_NONE},
		token.RETURN:        {nil, nil, PREC_NONE},
		token.SUPER:         {super_, nil, PREC_NONE},
		token.THIS:          {this_, nil, PREC_NONE},
		token.TRUE:          {literal, nil, PREC_NONE},
		token.VAR:           {nil, nil, PREC_NONE},
		token.WHILE:         {nil, nil, PREC_NONE},
		token.ERROR:         {nil, nil, PREC_NONE},
		token.EOF:           {nil, nil, PREC_NONE},
	}
}

func getRule(kind token.Kind) parseRule {
	if r, ok := rules[kind]; ok {
		return r
	}
	return parseRule{nil, nil, PREC_NONE}
}

func (p *Parser) expression() {
	p.parsePrecedence(PREC_ASSIGNMENT)
}

func (p *Parser) parsePrecedence(prec Precedence) {
	p.advance()
	prefix := getRule(p.previous.Kind).prefix
	if prefix == nil {
		p.error("Expect expression.")
		return
	}

	canAssign := prec <= PREC_ASSIGNMENT
	prefix(p, canAssign)

	for prec <= getRule(p.current.Kind).precedence {
		p.advance()
		infix := getRule(p.previous.Kind).infix
		infix(p, canAssign)
	}

	if canAssign && p.match(token.EQUAL) {
		p.error("Invalid assignment target.")
	}
}

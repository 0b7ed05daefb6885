package vm

import "github.com/loxvm/loxvm/internal/token"

func number(p *Parser, canAssign bool) {
	p.emitConstant(NumberVal(parseFloat(p.previous.Lexeme)))
}

func stringLiteral(p *Parser, canAssign bool) {
	// Lexeme includes the surrounding quotes; Lox strings have no escapes.
	raw := p.previous.Lexeme
	chars := raw[1 : len(raw)-1]
	p.emitConstant(ObjVal(p.pool.Intern(chars)))
}

func literal(p *Parser, canAssign bool) {
	switch p.previous.Kind {
	case token.FALSE:
		p.emitOp(OP_FALSE)
	case token.TRUE:
		p.emitOp(OP_TRUE)
	case token.NIL:
		p.emitOp(OP_NIL)
	}
}

func grouping(p *Parser, canAssign bool) {
	p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
}

func unary(p *Parser, canAssign bool) {
	opKind := p.previous.Kind
	p.parsePrecedence(PREC_UNARY)
	switch opKind {
	case token.BANG:
		p.emitOp(OP_NOT)
	case token.MINUS:
		p.emitOp(OP_NEGATE)
	}
}

func binary(p *Parser, canAssign bool) {
	opKind := p.previous.Kind
	rule := getRule(opKind)
	p.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case token.BANG_EQUAL:
		p.emitOp(OP_EQUAL)
		p.emitOp(OP_NOT)
	case token.EQUAL_EQUAL:
		p.emitOp(OP_EQUAL)
	case token.GREATER:
		p.emitOp(OP_GREATER)
	case token.GREATER_EQUAL:
		p.emitOp(OP_LESS)
		p.emitOp(OP_NOT)
	case token.LESS:
		p.emitOp(OP_LESS)
	case token.LESS_EQUAL:
		p.emitOp(OP_GREATER)
		p.emitOp(OP_NOT)
	case token.PLUS:
		p.emitOp(OP_ADD)
	case token.MINUS:
		p.emitOp(OP_SUBTRACT)
	case token.STAR:
		p.emitOp(OP_MULTIPLY)
	case token.SLASH:
		p.emitOp(OP_DIVIDE)
	}
}

// and_ short-circuits: after the left operand, a false leaves it on the
// stack and skips the right operand entirely.
func and_(p *Parser, canAssign bool) {
	endJump := p.emitJump(OP_JUMP_IF_FALSE)
	p.emitOp(OP_POP)
	p.parsePrecedence(PREC_AND)
	p.patchJump(endJump)
}

// or_ short-circuits the other way: a truthy left jumps over the right
// operand; a falsey left falls through to evaluate it.
func or_(p *Parser, canAssign bool) {
	elseJump := p.emitJump(OP_JUMP_IF_FALSE)
	endJump := p.emitJump(OP_JUMP)
	p.patchJump(elseJump)
	p.emitOp(OP_POP)
	p.parsePrecedence(PREC_OR)
	p.patchJump(endJump)
}

func (p *Parser) argumentList() byte {
	count := 0
	if !p.check(token.RIGHT_PAREN) {
		for {
			p.expression()
			if count == maxArgs {
				p.error("Can't have more than 255 arguments.")
			}
			count++
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return byte(count)
}

func call(p *Parser, canAssign bool) {
	argCount := p.argumentList()
	p.emitOpByte(OP_CALL, argCount)
}

func dot(p *Parser, canAssign bool) {
	p.consume(token.IDENTIFIER, "Expect property name after '.'.")
	name := p.identifierConstant(p.previous.Lexeme)

	if canAssign && p.match(token.EQUAL) {
		p.expression()
		p.emitOpByte(OP_SET_PROPERTY, name)
	} else if p.match(token.LEFT_PAREN) {
		argCount := p.argumentList()
		p.emitOpByte(OP_INVOKE, name)
		p.emitByte(argCount)
	} else {
		p.emitOpByte(OP_GET_PROPERTY, name)
	}
}

// namedVariable resolves name as a local, upvalue, or global (in that
// order) and emits the matching GET/SET pair, consuming a trailing '='
// as an assignment when canAssign permits it.
func (p *Parser) namedVariable(name string, canAssign bool) {
	var getOp, setOp OpCode
	var arg int

	if local := p.resolveLocal(p.current_, name); local != -1 {
		getOp, setOp, arg = OP_GET_LOCAL, OP_SET_LOCAL, local
	} else if upvalue := p.resolveUpvalue(p.current_, name); upvalue != -1 {
		getOp, setOp, arg = OP_GET_UPVALUE, OP_SET_UPVALUE, upvalue
	} else {
		arg = int(p.identifierConstant(name))
		getOp, setOp = OP_GET_GLOBAL, OP_SET_GLOBAL
	}

	if canAssign && p.match(token.EQUAL) {
		p.expression()
		p.emitOpByte(setOp, byte(arg))
	} else {
		p.emitOpByte(getOp, byte(arg))
	}
}

func variable(p *Parser, canAssign bool) {
	p.namedVariable(p.previous.Lexeme, canAssign)
}

func this_(p *Parser, canAssign bool) {
	if p.class == nil {
		p.error("Can't use 'this' outside of a class.")
		return
	}
	p.namedVariable("this", false)
}

func super_(p *Parser, canAssign bool) {
	if p.class == nil {
		p.error("Can't use 'super' outside of a class.")
	} else if !p.class.hasSuperclass {
		p.error("Can't use 'super' in a class with no superclass.")
	}

	p.consume(token.DOT, "Expect '.' after 'super'.")
	p.consume(token.IDENTIFIER, "Expect superclass method name.")
	name := p.identifierConstant(p.previous.Lexeme)

	p.namedVariable("this", false)
	if p.match(token.LEFT_PAREN) {
		argCount := p.argumentList()
		p.namedVariable("super", false)
		p.emitOpByte(OP_SUPER_INVOKE, name)
		p.emitByte(argCount)
	} else {
		p.namedVariable("super", false)
		p.emitOpByte(OP_GET_SUPER, name)
	}
}

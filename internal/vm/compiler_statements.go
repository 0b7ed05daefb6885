package vm

import "github.com/loxvm/loxvm/internal/token"

func (p *Parser) declaration() {
	switch {
	case p.match(token.CLASS):
		p.classDeclaration()
	case p.match(token.FUN):
		p.funDeclaration()
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.statement()
	}

	if p.panicMode {
		p.synchronize()
	}
}

func (p *Parser) statement() {
	switch {
	case p.match(token.PRINT):
		p.printStatement()
	case p.match(token.FOR):
		p.forStatement()
	case p.match(token.IF):
		p.ifStatement()
	case p.match(token.RETURN):
		p.returnStatement()
	case p.match(token.WHILE):
		p.whileStatement()
	case p.match(token.LEFT_BRACE):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *Parser) block() {
	for !p.check(token.RIGHT_BRACE) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
}

func (p *Parser) expressionStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	p.emitOp(OP_POP)
}

func (p *Parser) printStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	p.emitOp(OP_PRINT)
}

func (p *Parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")

	if p.match(token.EQUAL) {
		p.expression()
	} else {
		p.emitOp(OP_NIL)
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	p.defineVariable(global)
}

func (p *Parser) ifStatement() {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	thenJump := p.emitJump(OP_JUMP_IF_FALSE)
	p.emitOp(OP_POP)
	p.statement()

	elseJump := p.emitJump(OP_JUMP)
	p.patchJump(thenJump)
	p.emitOp(OP_POP)

	if p.match(token.ELSE) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *Parser) whileStatement() {
	loopStart := p.currentChunk().Len()
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	exitJump := p.emitJump(OP_JUMP_IF_FALSE)
	p.emitOp(OP_POP)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitOp(OP_POP)
}

// forStatement desugars the C-style for loop into: init; loop { cond-check;
// body; increment }. If an increment clause is present, the body jumps
// over it on the way in, runs, then loops back to the increment, which
// itself loops back to the condition check — reproducing the canonical
// for-loop semantics with two backward LOOPs.
func (p *Parser) forStatement() {
	p.beginScope()
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	if p.match(token.SEMICOLON) {
		// no initializer
	} else if p.match(token.VAR) {
		p.varDeclaration()
	} else {
		p.expressionStatement()
	}

	loopStart := p.currentChunk().Len()
	exitJump := -1
	if !p.match(token.SEMICOLON) {
		p.expression()
		p.consume(token.SEMICOLON, "Expect ';' after loop condition.")
		exitJump = p.emitJump(OP_JUMP_IF_FALSE)
		p.emitOp(OP_POP)
	}

	if !p.match(token.RIGHT_PAREN) {
		bodyJump := p.emitJump(OP_JUMP)
		incrementStart := p.currentChunk().Len()
		p.expression()
		p.emitOp(OP_POP)
		p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

		p.emitLoop(loopStart)
		loopStart = incrementStart
		p.patchJump(bodyJump)
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emitOp(OP_POP)
	}

	p.endScope()
}

func (p *Parser) returnStatement() {
	if p.current_.funcType == TYPE_SCRIPT {
		p.error("Can't return from top-level code.")
	}
	if p.match(token.SEMICOLON) {
		p.emitReturn()
		return
	}
	if p.current_.funcType == TYPE_INITIALIZER {
		p.error("Can't return a value from an initializer.")
	}
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	p.emitOp(OP_RETURN)
}

// function compiles a nested function body (plain function, method, or
// initializer) in its own Compiler, then emits CLOSURE in the enclosing
// compiler so the VM can build the runtime closure.
func (p *Parser) function(funcType FunctionType, name string) {
	p.current_ = newCompiler(p.current_, funcType, p.pool.Intern(name))
	p.beginScope()

	p.consume(token.LEFT_PAREN, "Expect '(' after function name.")
	if !p.check(token.RIGHT_PAREN) {
		for {
			p.current_.function.Arity++
			if p.current_.function.Arity > maxArgs {
				p.error("Can't have more than 255 parameters.")
			}
			paramConst := p.parseVariable("Expect parameter name.")
			p.defineVariable(paramConst)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")
	p.consume(token.LEFT_BRACE, "Expect '{' before function body.")
	p.block()

	upvalues := p.current_.upvalues
	fn := p.endCompiler()

	p.emitOpByte(OP_CLOSURE, p.makeConstant(ObjVal(fn)))
	for _, uv := range upvalues {
		if uv.IsLocal {
			p.emitByte(1)
		} else {
			p.emitByte(0)
		}
		p.emitByte(uv.Index)
	}
}

func (p *Parser) funDeclaration() {
	global := p.parseVariable("Expect function name.")
	p.markInitialized()
	p.function(TYPE_FUNCTION, p.previous.Lexeme)
	p.defineVariable(global)
}

func (p *Parser) method() {
	p.consume(token.IDENTIFIER, "Expect method name.")
	name := p.previous.Lexeme
	nameConst := p.identifierConstant(name)

	funcType := TYPE_METHOD
	if name == "init" {
		funcType = TYPE_INITIALIZER
	}
	p.function(funcType, name)
	p.emitOpByte(OP_METHOD, nameConst)
}

func (p *Parser) classDeclaration() {
	p.consume(token.IDENTIFIER, "Expect class name.")
	className := p.previous.Lexeme
	nameConst := p.identifierConstant(className)
	p.declareVariable()

	p.emitOpByte(OP_CLASS, nameConst)
	p.defineVariable(nameConst)

	class := &classCompiler{enclosing: p.class}
	p.class = class

	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, "Expect superclass name.")
		if p.previous.Lexeme == className {
			p.error("A class can't inherit from itself.")
		}
		variable(p, false)

		p.beginScope()
		p.addLocal("super")
		p.defineVariable(0)

		p.namedVariable(className, false)
		p.emitOp(OP_INHERIT)
		class.hasSuperclass = true
	}

	p.namedVariable(className, false)
	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")
	for !p.check(token.RIGHT_BRACE) && !p.check(token.EOF) {
		p.method()
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")
	p.emitOp(OP_POP)

	if class.hasSuperclass {
		p.endScope()
	}

	p.class = class.enclosing
}

package vm

import "github.com/loxvm/loxvm/internal/token"

func (p *Parser) beginScope() {
	p.current_.scopeDepth++
}

// endScope pops every local declared in the scope being left. A captured
// local emits CLOSE_UPVALUE (so any upvalue pointing at it is closed);
// an uncaptured one just emits POP.
func (p *Parser) endScope() {
	c := p.current_
	c.scopeDepth--

	for len(c.locals) > 0 && c.locals[len(c.locals)-1].Depth > c.scopeDepth {
		last := c.locals[len(c.locals)-1]
		if last.IsCaptured {
			p.emitOp(OP_CLOSE_UPVALUE)
		} else {
			p.emitOp(OP_POP)
		}
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// addLocal appends a new local in depth -1 (uninitialized); markInitialized
// stamps it once its initializer has been compiled.
func (p *Parser) addLocal(name string) {
	if len(p.current_.locals) >= maxLocals {
		p.error("Too many local variables in function.")
		return
	}
	p.current_.locals = append(p.current_.locals, Local{Name: name, Depth: -1})
}

func (p *Parser) markInitialized() {
	c := p.current_
	if c.scopeDepth == 0 {
		return
	}
	c.locals[len(c.locals)-1].Depth = c.scopeDepth
}

// declareVariable binds the identifier in p.previous as a local (if inside
// a scope) after checking for illegal shadowing within the same scope.
// At global scope it does nothing: globals are resolved dynamically.
func (p *Parser) declareVariable() {
	if p.current_.scopeDepth == 0 {
		return
	}
	name := p.previous.Lexeme
	c := p.current_
	for i := len(c.locals) - 1; i >= 0; i-- {
		local := c.locals[i]
		if local.Depth != -1 && local.Depth < c.scopeDepth {
			break
		}
		if local.Name == name {
			p.error("Already a variable with this name in this scope.")
		}
	}
	p.addLocal(name)
}

// parseVariable consumes an identifier token and declares it, returning
// the constant-pool index of its name (used only for globals).
func (p *Parser) parseVariable(errMsg string) byte {
	p.consume(token.IDENTIFIER, errMsg)
	p.declareVariable()
	if p.current_.scopeDepth > 0 {
		return 0
	}
	return p.identifierConstant(p.previous.Lexeme)
}

// defineVariable finishes a variable declaration: marks a local
// initialized, or emits DEFINE_GLOBAL for a global.
func (p *Parser) defineVariable(globalIdx byte) {
	if p.current_.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	p.emitOpByte(OP_DEFINE_GLOBAL, globalIdx)
}

// resolveLocal scans c's locals inner-to-outer for name, returning its
// slot or -1. It is an error to read a local that is still uninitialized
// (Depth == -1), which happens only inside its own initializer.
func (p *Parser) resolveLocal(c *Compiler, name string) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].Name == name {
			if c.locals[i].Depth == -1 {
				p.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

// resolveUpvalue looks for name in enclosing compilers. If found as a
// local there, it is marked captured and a new upvalue{isLocal=true} is
// recorded; if found as an upvalue there, a new upvalue{isLocal=false} is
// recorded referencing it. Returns -1 if name is not found in any
// enclosing function (meaning it must be a global).
func (p *Parser) resolveUpvalue(c *Compiler, name string) int {
	if c.enclosing == nil {
		return -1
	}
	if local := p.resolveLocal(c.enclosing, name); local != -1 {
		c.enclosing.locals[local].IsCaptured = true
		return p.addUpvalue(c, uint8(local), true)
	}
	if upvalue := p.resolveUpvalue(c.enclosing, name); upvalue != -1 {
		return p.addUpvalue(c, uint8(upvalue), false)
	}
	return -1
}

// addUpvalue deduplicates by (index, isLocal) before appending.
func (p *Parser) addUpvalue(c *Compiler, index uint8, isLocal bool) int {
	for i, uv := range c.upvalues {
		if uv.Index == index && uv.IsLocal == isLocal {
			return i
		}
	}
	if len(c.upvalues) >= maxUpvalues {
		p.error("Too many closure variables in function.")
		return 0
	}
	c.upvalues = append(c.upvalues, Upvalue{Index: index, IsLocal: isLocal})
	return len(c.upvalues) - 1
}

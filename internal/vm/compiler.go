package vm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/loxvm/loxvm/internal/lexer"
	"github.com/loxvm/loxvm/internal/token"
)

// FunctionType distinguishes the kind of body a Compiler is assembling.
// It determines what slot 0 of the function means and what an implicit
// return produces.
type FunctionType int

const (
	TYPE_SCRIPT FunctionType = iota
	TYPE_FUNCTION
	TYPE_METHOD
	TYPE_INITIALIZER
)

const maxLocals = 256
const maxUpvalues = 256
const maxConstants = 256
const maxArgs = 255
const maxJump = 1<<16 - 1

// Local is a lexically-scoped variable tracked during compilation.
type Local struct {
	Name       string
	Depth      int // -1 while uninitialized
	IsCaptured bool
}

// Upvalue records where a captured variable lives in the enclosing
// function: either one of its locals, or one of its own upvalues.
type Upvalue struct {
	Index   uint8
	IsLocal bool
}

// classCompiler tracks the compiler's class-nesting stack so `this` and
// `super` can be validated and so a superclass scope can be opened.
type classCompiler struct {
	enclosing     *classCompiler
	hasSuperclass bool
}

// Compiler is one record in the stack of in-progress functions: the
// script, then every nested function/method/initializer currently being
// compiled.
type Compiler struct {
	enclosing *Compiler

	function *ObjFunction
	funcType FunctionType

	locals     []Local
	scopeDepth int

	upvalues []Upvalue
}

func newCompiler(enclosing *Compiler, funcType FunctionType, name *ObjString) *Compiler {
	c := &Compiler{
		enclosing: enclosing,
		funcType:  funcType,
		function: &ObjFunction{
			Name:  name,
			Chunk: NewChunk(),
		},
	}
	// Slot 0 is reserved: `this` for methods/initializers, an unnamed
	// placeholder (the callee) for plain functions and the script.
	slotName := ""
	if funcType == TYPE_METHOD || funcType == TYPE_INITIALIZER {
		slotName = "this"
	}
	c.locals = append(c.locals, Local{Name: slotName, Depth: 0})
	return c
}

// Parser drives the single-pass Pratt compiler: it owns the token stream
// and the stack of in-progress function compilers.
type Parser struct {
	lex *lexer.Lexer

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool

	pool *StringPool
	errW io.Writer

	current_ *Compiler // current innermost Compiler
	class    *classCompiler
}

// Compile compiles source into a top-level function. It returns (nil,
// false) if any lexical or compile-time error occurred; diagnostics are
// written to errW in the form "[line L, column C] Error at 'lexeme':
// message" as they are found.
func Compile(source string, pool *StringPool, errW io.Writer) (*ObjFunction, bool) {
	p := &Parser{
		lex:  lexer.New(source),
		pool: pool,
		errW: errW,
	}
	p.current_ = newCompiler(nil, TYPE_SCRIPT, nil)

	p.advance()
	for !p.match(token.EOF) {
		p.declaration()
	}
	fn := p.endCompiler()

	if p.hadError {
		return nil, false
	}
	return fn, true
}

func (p *Parser) currentChunk() *Chunk {
	return p.current_.function.Chunk
}

// --- token stream -----------------------------------------------------

func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lex.NextToken()
		if p.current.Kind != token.ERROR {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *Parser) check(kind token.Kind) bool {
	return p.current.Kind == kind
}

func (p *Parser) match(kind token.Kind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(kind token.Kind, message string) {
	if p.current.Kind == kind {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

// --- error reporting ----------------------------------------------------

func (p *Parser) errorAtCurrent(message string) {
	p.errorAt(&p.current, message)
}

func (p *Parser) error(message string) {
	p.errorAt(&p.previous, message)
}

func (p *Parser) errorAt(tok *token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = "at end"
	} else if tok.Kind == token.ERROR {
		where = ""
	}

	if where == "" {
		fmt.Fprintf(p.errW, "[line %d, column %d] Error: %s\n", tok.Line, tok.Column, message)
	} else {
		fmt.Fprintf(p.errW, "[line %d, column %d] Error %s: %s\n", tok.Line, tok.Column, where, message)
	}
}

// synchronize recovers from panic mode at the next likely statement
// boundary: after a semicolon, or before a statement-starting keyword.
func (p *Parser) synchronize() {
	p.panicMode = false

	for p.current.Kind != token.EOF {
		if p.previous.Kind == token.SEMICOLON {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// --- emitting bytecode --------------------------------------------------

func (p *Parser) emitByte(b byte) {
	p.currentChunk().Write(b, p.previous.Line)
}

func (p *Parser) emitOp(op OpCode) {
	p.currentChunk().WriteOp(op, p.previous.Line)
}

func (p *Parser) emitOpByte(op OpCode, operand byte) {
	p.emitOp(op)
	p.emitByte(operand)
}

func (p *Parser) emitConstant(v Value) {
	idx := p.makeConstant(v)
	p.emitOpByte(OP_CONSTANT, idx)
}

func (p *Parser) makeConstant(v Value) byte {
	if len(p.currentChunk().Constants) >= maxConstants {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return byte(p.currentChunk().AddConstant(v))
}

func (p *Parser) identifierConstant(name string) byte {
	return p.makeConstant(ObjVal(p.pool.Intern(name)))
}

// emitJump writes a jump opcode with a placeholder 16-bit operand and
// returns the offset of the first operand byte, to be patched later.
func (p *Parser) emitJump(op OpCode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return p.currentChunk().Len() - 2
}

func (p *Parser) patchJump(offset int) {
	jump := p.currentChunk().Len() - offset - 2
	if jump > maxJump {
		p.error("Too much code to jump over.")
		return
	}
	p.currentChunk().Code[offset] = byte(jump >> 8)
	p.currentChunk().Code[offset+1] = byte(jump)
}

func (p *Parser) emitLoop(loopStart int) {
	p.emitOp(OP_LOOP)
	offset := p.currentChunk().Len() - loopStart + 2
	if offset > maxJump {
		p.error("Loop body too large.")
	}
	p.emitByte(byte(offset >> 8))
	p.emitByte(byte(offset))
}

func (p *Parser) emitReturn() {
	if p.current_.funcType == TYPE_INITIALIZER {
		p.emitOpByte(OP_GET_LOCAL, 0)
	} else {
		p.emitOp(OP_NIL)
	}
	p.emitOp(OP_RETURN)
}

func (p *Parser) endCompiler() *ObjFunction {
	p.emitReturn()
	fn := p.current_.function
	fn.UpvalueCount = len(p.current_.upvalues)
	if p.current_.enclosing != nil {
		p.current_ = p.current_.enclosing
	}
	return fn
}

// number/string literal helpers shared across expression files.

func parseFloat(lexeme string) float64 {
	f, _ := strconv.ParseFloat(lexeme, 64)
	return f
}

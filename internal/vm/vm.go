package vm

import (
	"fmt"
	"io"
)

// MaxFrames bounds call-stack depth: a call nested deeper than this
// raises a runtime "Stack overflow." error instead of overflowing the
// host stack.
const MaxFrames = 64

// MaxStack is a nominal ceiling for the operand stack, well above
// anything MaxFrames × a function's locals can produce. The VM does not
// check it: push appends to a slice that grows as needed.
const MaxStack = MaxFrames * 256

// CallFrame identifies the closure currently executing, its instruction
// pointer, and the base offset of its locals on the value stack.
type CallFrame struct {
	closure *ObjClosure
	ip      int
	base    int
}

// VM is a stack-based bytecode interpreter. All of its state — the
// stacks, globals, string pool, and open-upvalue list — belongs to one
// VM instance and is touched only by its own dispatch loop; nothing here
// is safe to share across goroutines.
type VM struct {
	stack []Value

	frames     [MaxFrames]CallFrame
	frameCount int

	globals Table
	pool    *StringPool

	openUpvalues *ObjUpvalue

	initString *ObjString

	// Steps counts dispatched instructions, surfaced by the CLI when
	// Settings.ShowStats is on. It has no effect on execution.
	Steps int64

	Stdout io.Writer
	Stderr io.Writer
}

// New creates a VM with the given string pool (so the compiler and VM
// agree on interned identifiers) and registers the standard natives.
func New(pool *StringPool, stdout, stderr io.Writer) *VM {
	vm := &VM{
		stack:      make([]Value, 0, 256),
		pool:       pool,
		initString: pool.Intern("init"),
		Stdout:     stdout,
		Stderr:     stderr,
	}
	vm.registerNatives()
	return vm
}

func (vm *VM) push(v Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) peek(distance int) Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) resetStack() {
	vm.stack = vm.stack[:0]
	vm.frameCount = 0
	vm.openUpvalues = nil
}

func (vm *VM) frame() *CallFrame {
	return &vm.frames[vm.frameCount-1]
}

// Interpret wraps an already-compiled top-level function in a closure and
// runs it to completion, for the REPL and for running a whole file.
func (vm *VM) Interpret(fn *ObjFunction) error {
	closure := &ObjClosure{Function: fn}
	vm.push(ObjVal(closure))
	if err := vm.callClosure(closure, 0); err != nil {
		return err
	}
	return vm.run()
}

// runtimeError formats message, prints it and a stack trace to Stderr,
// then resets the VM so it is ready for the next REPL line.
func (vm *VM) runtimeError(format string, args ...interface{}) error {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(vm.Stderr, message)

	for i := vm.frameCount - 1; i >= 0; i-- {
		frame := &vm.frames[i]
		fn := frame.closure.Function
		line := 0
		// frame.ip already advanced past the failing instruction's opcode
		// byte by the time an error is raised; back up one for the report.
		idx := frame.ip - 1
		if idx >= 0 && idx < len(fn.Chunk.Lines) {
			line = fn.Chunk.Lines[idx]
		}
		name := "script"
		if fn.Name != nil {
			name = fn.Name.Chars + "()"
		} else if i > 0 {
			name = "script"
		}
		fmt.Fprintf(vm.Stderr, "[line %d] in %s\n", line, name)
	}

	vm.resetStack()
	return fmt.Errorf("%s", message)
}

package vm

import "fmt"

// Obj is implemented by every heap-allocated value: strings, functions,
// closures, upvalues, classes, instances, bound methods and natives.
type Obj interface {
	String() string
	TypeName() string
}

// ObjString is an immutable, interned character sequence. Two ObjString
// values with equal characters are always the same pointer (see
// internal/vm/intern.go), so string equality reduces to pointer equality.
type ObjString struct {
	Chars string
	Hash  uint32
}

func (s *ObjString) String() string   { return s.Chars }
func (s *ObjString) TypeName() string { return "string" }

// ObjFunction is a compiled function body: its arity, upvalue count, an
// optional name and the chunk holding its bytecode.
type ObjFunction struct {
	Arity        int
	UpvalueCount int
	Name         *ObjString // nil for the top-level script
	Chunk        *Chunk
}

func (f *ObjFunction) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name.Chars)
}
func (f *ObjFunction) TypeName() string { return "function" }

// ObjUpvalue is a reference cell used to implement lexical capture across
// function boundaries. While open it points at a slot in the VM's value
// stack; once closed it owns the value directly.
type ObjUpvalue struct {
	// Location is the stack index while open, or -1 once closed.
	Location int
	Closed   Value
	// Next links the VM's open-upvalue list, kept in descending Location order.
	Next *ObjUpvalue
}

func (u *ObjUpvalue) String() string   { return "<upvalue>" }
func (u *ObjUpvalue) TypeName() string { return "upvalue" }

func (u *ObjUpvalue) isClosed() bool { return u.Location == -1 }

// ObjClosure pairs a function with the upvalues it captured at creation.
type ObjClosure struct {
	Function *ObjFunction
	Upvalues []*ObjUpvalue
}

func (c *ObjClosure) String() string   { return c.Function.String() }
func (c *ObjClosure) TypeName() string { return "function" }

// ObjClass is a named bag of methods. Methods are closures compiled once
// and shared by every instance of the class.
type ObjClass struct {
	Name    *ObjString
	Methods map[*ObjString]*ObjClosure
}

func NewClass(name *ObjString) *ObjClass {
	return &ObjClass{Name: name, Methods: make(map[*ObjString]*ObjClosure)}
}

func (c *ObjClass) String() string   { return c.Name.Chars }
func (c *ObjClass) TypeName() string { return "class" }

// ObjInstance is a live object of some class: a fixed class reference and
// a freely-mutable field table.
type ObjInstance struct {
	Class  *ObjClass
	Fields map[*ObjString]Value
}

func NewInstance(class *ObjClass) *ObjInstance {
	return &ObjInstance{Class: class, Fields: make(map[*ObjString]Value)}
}

func (i *ObjInstance) String() string   { return i.Class.Name.Chars + " instance" }
func (i *ObjInstance) TypeName() string { return "instance" }

// ObjBoundMethod pairs a receiver with the method closure invoked on it,
// produced by a property access that resolves to a method.
type ObjBoundMethod struct {
	Receiver Value
	Method   *ObjClosure
}

func (b *ObjBoundMethod) String() string   { return b.Method.String() }
func (b *ObjBoundMethod) TypeName() string { return "function" }

// NativeFn is a host-provided callable.
type NativeFn func(args []Value) (Value, error)

// ObjNative wraps a Go function so the VM can call it like any closure.
type ObjNative struct {
	Name string
	Fn   NativeFn
}

func (n *ObjNative) String() string   { return fmt.Sprintf("<native fn %s>", n.Name) }
func (n *ObjNative) TypeName() string { return "function" }

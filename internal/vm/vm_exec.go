package vm

// run executes bytecode via the call-frame stack until the frame stack
// empties (the top-level script returns) or a runtime error occurs.
func (vm *VM) run() error {
	frame := vm.frame()

	for {
		vm.Steps++
		op := OpCode(frame.closure.Function.Chunk.Code[frame.ip])
		frame.ip++

		switch op {
		case OP_CONSTANT:
			idx := vm.readByte(frame)
			vm.push(frame.closure.Function.Chunk.Constants[idx])

		case OP_NIL:
			vm.push(NilVal())
		case OP_TRUE:
			vm.push(BoolVal(true))
		case OP_FALSE:
			vm.push(BoolVal(false))
		case OP_POP:
			vm.pop()

		case OP_GET_LOCAL:
			slot := vm.readByte(frame)
			vm.push(vm.stack[frame.base+int(slot)])
		case OP_SET_LOCAL:
			slot := vm.readByte(frame)
			vm.stack[frame.base+int(slot)] = vm.peek(0)

		case OP_GET_GLOBAL:
			name := vm.readStringConstant(frame)
			value, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(value)
		case OP_DEFINE_GLOBAL:
			name := vm.readStringConstant(frame)
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case OP_SET_GLOBAL:
			name := vm.readStringConstant(frame)
			if vm.globals.Set(name, vm.peek(0)) {
				// Set() makes a new key as a side effect; an assignment to an
				// undefined global is an error, so undo the insert.
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}

		case OP_GET_UPVALUE:
			slot := vm.readByte(frame)
			vm.push(vm.readUpvalue(frame.closure.Upvalues[slot]))
		case OP_SET_UPVALUE:
			slot := vm.readByte(frame)
			vm.writeUpvalue(frame.closure.Upvalues[slot], vm.peek(0))

		case OP_GET_PROPERTY:
			if err := vm.getProperty(frame); err != nil {
				return err
			}
		case OP_SET_PROPERTY:
			if err := vm.setProperty(frame); err != nil {
				return err
			}
		case OP_GET_SUPER:
			name := vm.readStringConstant(frame)
			superclass := vm.pop().Obj.(*ObjClass)
			if err := vm.bindMethod(superclass, name); err != nil {
				return err
			}

		case OP_EQUAL:
			b := vm.pop()
			a := vm.pop()
			vm.push(BoolVal(a.Equals(b)))
		case OP_GREATER:
			if err := vm.numericCompareOp(func(a, b float64) bool { return a > b }); err != nil {
				return err
			}
		case OP_LESS:
			if err := vm.numericCompareOp(func(a, b float64) bool { return a < b }); err != nil {
				return err
			}

		case OP_ADD:
			if err := vm.add(); err != nil {
				return err
			}
		case OP_SUBTRACT:
			if err := vm.numericBinaryOp(func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
		case OP_MULTIPLY:
			if err := vm.numericBinaryOp(func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
		case OP_DIVIDE:
			if err := vm.numericBinaryOp(func(a, b float64) float64 { return a / b }); err != nil {
				return err
			}
		case OP_NOT:
			vm.push(BoolVal(vm.pop().IsFalsey()))
		case OP_NEGATE:
			if err := vm.negate(); err != nil {
				return err
			}

		case OP_PRINT:
			vm.printValue(vm.pop())

		case OP_JUMP:
			offset := vm.readShort(frame)
			frame.ip += int(offset)
		case OP_JUMP_IF_FALSE:
			offset := vm.readShort(frame)
			if vm.peek(0).IsFalsey() {
				frame.ip += int(offset)
			}
		case OP_LOOP:
			offset := vm.readShort(frame)
			frame.ip -= int(offset)

		case OP_CALL:
			argCount := int(vm.readByte(frame))
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}
			frame = vm.frame()

		case OP_INVOKE:
			name := vm.readStringConstant(frame)
			argCount := int(vm.readByte(frame))
			if err := vm.invoke(name, argCount); err != nil {
				return err
			}
			frame = vm.frame()

		case OP_SUPER_INVOKE:
			name := vm.readStringConstant(frame)
			argCount := int(vm.readByte(frame))
			superclass := vm.pop().Obj.(*ObjClass)
			if err := vm.invokeFromClass(superclass, name, argCount); err != nil {
				return err
			}
			frame = vm.frame()

		case OP_CLOSURE:
			idx := vm.readByte(frame)
			fn := frame.closure.Function.Chunk.Constants[idx].Obj.(*ObjFunction)
			closure := &ObjClosure{Function: fn, Upvalues: make([]*ObjUpvalue, fn.UpvalueCount)}
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte(frame)
				index := vm.readByte(frame)
				if isLocal == 1 {
					closure.Upvalues[i] = vm.captureUpvalue(frame.base + int(index))
				} else {
					closure.Upvalues[i] = frame.closure.Upvalues[index]
				}
			}
			vm.push(ObjVal(closure))

		case OP_CLOSE_UPVALUE:
			vm.closeUpvalues(len(vm.stack) - 1)
			vm.pop()

		case OP_RETURN:
			result := vm.pop()
			vm.closeUpvalues(frame.base)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop() // the top-level script closure
				return nil
			}
			vm.stack = vm.stack[:frame.base]
			vm.push(result)
			frame = vm.frame()

		case OP_CLASS:
			name := vm.readStringConstant(frame)
			vm.push(ObjVal(NewClass(name)))
		case OP_INHERIT:
			superVal := vm.peek(1)
			if !superVal.IsObj() {
				return vm.runtimeError("Superclass must be a class.")
			}
			superclass, ok := superVal.Obj.(*ObjClass)
			if !ok {
				return vm.runtimeError("Superclass must be a class.")
			}
			subclass := vm.peek(0).Obj.(*ObjClass)
			for name, method := range superclass.Methods {
				subclass.Methods[name] = method
			}
			vm.pop() // subclass

		case OP_METHOD:
			name := vm.readStringConstant(frame)
			method := vm.peek(0).Obj.(*ObjClosure)
			class := vm.peek(1).Obj.(*ObjClass)
			class.Methods[name] = method
			vm.pop()

		default:
			return vm.runtimeError("Unknown opcode %d.", op)
		}
	}
}

func (vm *VM) readByte(frame *CallFrame) byte {
	b := frame.closure.Function.Chunk.Code[frame.ip]
	frame.ip++
	return b
}

func (vm *VM) readShort(frame *CallFrame) uint16 {
	hi := vm.readByte(frame)
	lo := vm.readByte(frame)
	return uint16(hi)<<8 | uint16(lo)
}

func (vm *VM) readStringConstant(frame *CallFrame) *ObjString {
	idx := vm.readByte(frame)
	return frame.closure.Function.Chunk.Constants[idx].Obj.(*ObjString)
}

func (vm *VM) readUpvalue(uv *ObjUpvalue) Value {
	if uv.isClosed() {
		return uv.Closed
	}
	return vm.stack[uv.Location]
}

func (vm *VM) writeUpvalue(uv *ObjUpvalue, v Value) {
	if uv.isClosed() {
		uv.Closed = v
	} else {
		vm.stack[uv.Location] = v
	}
}

func (vm *VM) getProperty(frame *CallFrame) error {
	name := vm.readStringConstant(frame)
	receiverVal := vm.peek(0)
	if !receiverVal.IsObj() {
		return vm.runtimeError("Only instances have properties.")
	}
	instance, ok := receiverVal.Obj.(*ObjInstance)
	if !ok {
		return vm.runtimeError("Only instances have properties.")
	}
	if field, ok := instance.Fields[name]; ok {
		vm.pop()
		vm.push(field)
		return nil
	}
	return vm.bindMethod(instance.Class, name)
}

func (vm *VM) setProperty(frame *CallFrame) error {
	name := vm.readStringConstant(frame)
	receiverVal := vm.peek(1)
	if !receiverVal.IsObj() {
		return vm.runtimeError("Only instances have fields.")
	}
	instance, ok := receiverVal.Obj.(*ObjInstance)
	if !ok {
		return vm.runtimeError("Only instances have fields.")
	}
	value := vm.peek(0)
	instance.Fields[name] = value
	vm.pop()
	vm.pop()
	vm.push(value)
	return nil
}

func (vm *VM) printValue(v Value) {
	vm.Stdout.Write([]byte(v.String()))
	vm.Stdout.Write([]byte("\n"))
}

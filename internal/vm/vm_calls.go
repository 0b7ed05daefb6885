package vm

// callValue dispatches a call to whatever is on the stack at
// stack[len-argCount-1]: a closure, a bound method, a class (which
// constructs an instance), or a native.
func (vm *VM) callValue(callee Value, argCount int) error {
	if callee.IsObj() {
		switch obj := callee.Obj.(type) {
		case *ObjClosure:
			return vm.callClosure(obj, argCount)
		case *ObjBoundMethod:
			vm.stack[len(vm.stack)-argCount-1] = obj.Receiver
			return vm.callClosure(obj.Method, argCount)
		case *ObjClass:
			return vm.callClass(obj, argCount)
		case *ObjNative:
			return vm.callNative(obj, argCount)
		}
	}
	return vm.runtimeError("Can only call functions and classes.")
}

func (vm *VM) callClass(class *ObjClass, argCount int) error {
	instance := NewInstance(class)
	vm.stack[len(vm.stack)-argCount-1] = ObjVal(instance)

	if initializer, ok := class.Methods[vm.initString]; ok {
		return vm.callClosure(initializer, argCount)
	}
	if argCount != 0 {
		return vm.runtimeError("Expected 0 arguments but got %d.", argCount)
	}
	return nil
}

func (vm *VM) callClosure(closure *ObjClosure, argCount int) error {
	fn := closure.Function
	if argCount != fn.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", fn.Arity, argCount)
	}
	if vm.frameCount == MaxFrames {
		return vm.runtimeError("Stack overflow.")
	}

	frame := &vm.frames[vm.frameCount]
	frame.closure = closure
	frame.ip = 0
	frame.base = len(vm.stack) - argCount - 1
	vm.frameCount++
	return nil
}

func (vm *VM) callNative(native *ObjNative, argCount int) error {
	args := vm.stack[len(vm.stack)-argCount:]
	result, err := native.Fn(args)
	if err != nil {
		return vm.runtimeError("%s", err.Error())
	}
	vm.stack = vm.stack[:len(vm.stack)-argCount-1]
	vm.push(result)
	return nil
}

// bindMethod looks up name on class, pops the receiver, and pushes a
// freshly-created bound method in its place.
func (vm *VM) bindMethod(class *ObjClass, name *ObjString) error {
	method, ok := class.Methods[name]
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	bound := &ObjBoundMethod{Receiver: vm.peek(0), Method: method}
	vm.pop()
	vm.push(ObjVal(bound))
	return nil
}

func (vm *VM) invokeFromClass(class *ObjClass, name *ObjString, argCount int) error {
	method, ok := class.Methods[name]
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	return vm.callClosure(method, argCount)
}

// invoke is the fast path for `receiver.name(args)`: it skips materializing
// a bound method when name resolves directly to a method on the class, but
// still honors a field of the same name by falling back to callValue.
func (vm *VM) invoke(name *ObjString, argCount int) error {
	receiver := vm.peek(argCount)
	if !receiver.IsObj() {
		return vm.runtimeError("Only instances have properties.")
	}
	instance, ok := receiver.Obj.(*ObjInstance)
	if !ok {
		return vm.runtimeError("Only instances have properties.")
	}

	if field, ok := instance.Fields[name]; ok {
		vm.stack[len(vm.stack)-argCount-1] = field
		return vm.callValue(field, argCount)
	}
	return vm.invokeFromClass(instance.Class, name, argCount)
}

package vm

// add implements ADD: string + string concatenates (through the string
// pool, so the result is itself interned); number + number adds; any
// other combination is a runtime error.
func (vm *VM) add() error {
	b := vm.peek(0)
	a := vm.peek(1)

	switch {
	case a.IsString() && b.IsString():
		concatenated := a.AsString().Chars + b.AsString().Chars
		vm.pop()
		vm.pop()
		vm.push(ObjVal(vm.pool.Intern(concatenated)))
		return nil
	case a.IsNumber() && b.IsNumber():
		vm.pop()
		vm.pop()
		vm.push(NumberVal(a.AsNumber() + b.AsNumber()))
		return nil
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
}

func (vm *VM) numericBinaryOp(apply func(a, b float64) float64) error {
	b := vm.peek(0)
	a := vm.peek(1)
	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	vm.push(NumberVal(apply(a.AsNumber(), b.AsNumber())))
	return nil
}

func (vm *VM) numericCompareOp(apply func(a, b float64) bool) error {
	b := vm.peek(0)
	a := vm.peek(1)
	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	vm.push(BoolVal(apply(a.AsNumber(), b.AsNumber())))
	return nil
}

func (vm *VM) negate() error {
	if !vm.peek(0).IsNumber() {
		return vm.runtimeError("Operand must be a number.")
	}
	v := vm.pop()
	vm.push(NumberVal(-v.AsNumber()))
	return nil
}

package vm

// captureUpvalue returns the open upvalue for stack slot location,
// reusing an existing one if the open list (kept in descending-location
// order) already has it, or inserting a new one in sorted position.
func (vm *VM) captureUpvalue(location int) *ObjUpvalue {
	var prev *ObjUpvalue
	upvalue := vm.openUpvalues

	for upvalue != nil && upvalue.Location > location {
		prev = upvalue
		upvalue = upvalue.Next
	}

	if upvalue != nil && upvalue.Location == location {
		return upvalue
	}

	created := &ObjUpvalue{Location: location, Next: upvalue}
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.Next = created
	}
	return created
}

// closeUpvalues closes every open upvalue whose stack index is >=
// lastSlot, copying the live stack value into the upvalue and unlinking
// it from the open list.
func (vm *VM) closeUpvalues(lastSlot int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Location >= lastSlot {
		upvalue := vm.openUpvalues
		upvalue.Closed = vm.stack[upvalue.Location]
		upvalue.Location = -1
		vm.openUpvalues = upvalue.Next
	}
}

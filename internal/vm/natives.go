package vm

import "time"

// registerNatives installs the VM's one pre-registered native: clock(),
// which returns the host wall-clock time in seconds.
func (vm *VM) registerNatives() {
	vm.defineNative("clock", func(args []Value) (Value, error) {
		return NumberVal(float64(time.Now().UnixNano()) / 1e9), nil
	})
}

func (vm *VM) defineNative(name string, fn NativeFn) {
	nameStr := vm.pool.Intern(name)
	vm.globals.Set(nameStr, ObjVal(&ObjNative{Name: name, Fn: fn}))
}

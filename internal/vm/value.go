package vm

import (
	"fmt"
	"math"
)

// ValueType identifies which variant of Value is populated.
type ValueType uint8

const (
	ValNil ValueType = iota
	ValBool
	ValNumber
	ValObj
)

// Value is a stack-allocated tagged union. Nil, booleans and numbers never
// allocate; object references share the underlying heap object.
type Value struct {
	Type ValueType
	Data uint64 // bool (0/1) or float64 bits
	Obj  Obj    // populated only when Type == ValObj
}

func NilVal() Value {
	return Value{Type: ValNil}
}

func BoolVal(b bool) Value {
	var data uint64
	if b {
		data = 1
	}
	return Value{Type: ValBool, Data: data}
}

func NumberVal(n float64) Value {
	return Value{Type: ValNumber, Data: math.Float64bits(n)}
}

func ObjVal(o Obj) Value {
	return Value{Type: ValObj, Obj: o}
}

func (v Value) IsNil() bool    { return v.Type == ValNil }
func (v Value) IsBool() bool   { return v.Type == ValBool }
func (v Value) IsNumber() bool { return v.Type == ValNumber }
func (v Value) IsObj() bool    { return v.Type == ValObj }

func (v Value) AsBool() bool      { return v.Data == 1 }
func (v Value) AsNumber() float64 { return math.Float64frombits(v.Data) }

// IsFalsey reports whether v is falsey: nil or false. Everything else,
// including 0 and the empty string, is truthy.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

func (v Value) IsString() bool {
	if v.Type != ValObj {
		return false
	}
	_, ok := v.Obj.(*ObjString)
	return ok
}

func (v Value) AsString() *ObjString {
	return v.Obj.(*ObjString)
}

// Equals implements the language's strict equality: values of different
// kinds are never equal. Object references compare by identity, except
// that interned strings with equal characters are the same reference.
func (v Value) Equals(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case ValNil:
		return true
	case ValBool:
		return v.Data == other.Data
	case ValNumber:
		return v.AsNumber() == other.AsNumber()
	case ValObj:
		return v.Obj == other.Obj
	default:
		return false
	}
}

// String renders a value the way `print` does.
func (v Value) String() string {
	switch v.Type {
	case ValNil:
		return "nil"
	case ValBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case ValNumber:
		return formatNumber(v.AsNumber())
	case ValObj:
		if v.Obj == nil {
			return "nil"
		}
		return v.Obj.String()
	default:
		return "<unknown>"
	}
}

func formatNumber(n float64) string {
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%g", n)
}

// TypeName names the value's runtime kind for error messages.
func (v Value) TypeName() string {
	switch v.Type {
	case ValNil:
		return "nil"
	case ValBool:
		return "boolean"
	case ValNumber:
		return "number"
	case ValObj:
		if v.Obj == nil {
			return "nil"
		}
		return v.Obj.TypeName()
	default:
		return "unknown"
	}
}

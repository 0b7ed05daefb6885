package vm

// StringPool interns character sequences so that two ObjStrings with equal
// characters are always the same pointer: string equality reduces to
// pointer equality for every interned string. Strings live for the process
// lifetime once interned.
type StringPool struct {
	table Table
}

func NewStringPool() *StringPool {
	return &StringPool{}
}

// Intern returns the canonical *ObjString for chars, allocating one only
// if no equal string has been interned yet.
func (p *StringPool) Intern(chars string) *ObjString {
	hash := hashFNV1a(chars)
	if existing := p.table.findString(chars, hash); existing != nil {
		return existing
	}
	s := &ObjString{Chars: chars, Hash: hash}
	p.table.Set(s, BoolVal(true)) // presence set; value is unused
	return s
}

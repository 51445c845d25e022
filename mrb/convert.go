package mrb

import "unsafe"

// Inbound converters. Every converter re-checks the discriminant before
// touching the payload and fails with a *CastError naming the expected
// variant when it does not match.

// ToBool recovers a bool from a True or False value. Nil is not a
// boolean and fails the cast.
func (v Value) ToBool() (bool, error) {
	switch v.Type() {
	case TypeFalse:
		return false, nil
	case TypeTrue:
		return true, nil
	}
	return false, castError("TrueClass or FalseClass")
}

// ToInt32 recovers a 32-bit integer from a Fixnum value. The runtime's
// fixnum is 64 bits wide; narrowing truncates silently, matching
// runtime convention. Known lossy edge for out-of-range fixnums.
func (v Value) ToInt32() (int32, error) {
	if v.Type() != TypeFixnum {
		return 0, castError("Fixnum")
	}
	return int32(v.fixnum()), nil
}

// ToFloat64 recovers a float from a Float value.
func (v Value) ToFloat64() (float64, error) {
	if v.Type() != TypeFloat {
		return 0, castError("Float")
	}
	return v.float(), nil
}

// ToString recovers text from a String or Symbol value (symbols via
// name lookup). The result is a view into the instance's storage: it is
// valid while s is open and must not be assumed to survive a call that
// can trigger collection.
func (v Value) ToString(s *State) (string, error) {
	switch v.Type() {
	case TypeString:
		return s.stringContent(v), nil
	case TypeSymbol:
		return s.SymbolName(v.symbolID()), nil
	}
	return "", castError("String")
}

// ToObject recovers the shared cell embedded in a Data value carrying
// descriptor typ. The returned cell holds one additional reference:
// the caller now shares ownership with the runtime-side wrapper. The
// wrapper's own reference is never touched by retrieval.
func (v Value) ToObject(s *State, typ *DataType) (*Cell, error) {
	if v.Type() != TypeData {
		return nil, castError("Data(" + typ.name + ")")
	}
	cell, err := s.dataGet(v, typ)
	if err != nil {
		return nil, err
	}
	return cell.Retain(), nil
}

// ToSlice recovers the elements of an Array value in index order.
// Length and contents are read at call time, so runtime-side mutation
// between allocation and inspection is reflected.
func (v Value) ToSlice(s *State) ([]Value, error) {
	if v.Type() != TypeArray {
		return nil, castError("Array")
	}
	n, err := s.AryLen(v)
	if err != nil {
		return nil, err
	}
	out := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		elem, err := s.AryRef(v, i)
		if err != nil {
			return nil, err
		}
		out = append(out, elem)
	}
	return out, nil
}

// ToClass recovers the class handle from a Class value.
func (v Value) ToClass(s *State) (*Class, error) {
	if v.Type() != TypeClass {
		return nil, castError("Class")
	}
	return s.classPtr(v), nil
}

// ToModule recovers the module handle from a Module value.
func (v Value) ToModule(s *State) (*Class, error) {
	if v.Type() != TypeModule {
		return nil, castError("Module")
	}
	return s.classPtr(v), nil
}

// ToPtr recovers the raw address from a CPtr value.
func (v Value) ToPtr() (unsafe.Pointer, error) {
	if v.Type() != TypeCPtr {
		return nil, castError("Pointer")
	}
	return v.cptr(), nil
}

package mrb

import (
	"math"
	"unsafe"
)

// Outbound constructors. Nil, Bool and Fixnum are pure bit-pattern
// encodings and need no instance; everything else allocates on the
// instance's heap and is infallible from the caller's perspective
// (allocation exhaustion is the runtime's fatal concern, not a
// recoverable error here).

// Nil returns the nil value.
func Nil() Value {
	return makeValue(TypeNil, 0)
}

// Bool returns the true or false value.
func Bool(b bool) Value {
	if b {
		return makeValue(TypeTrue, 0)
	}
	return makeValue(TypeFalse, 0)
}

// Fixnum encodes a 32-bit signed integer. The runtime's fixnum payload
// is 64 bits wide; the widening here is lossless.
func Fixnum(i int32) Value {
	return makeValue(TypeFixnum, uint64(int64(i)))
}

// Float boxes a 64-bit float on the instance.
func (s *State) Float(f float64) Value {
	s.mustOpen()
	return makeValue(TypeFloat, math.Float64bits(f))
}

// String copies str into a runtime-managed string object. The caller's
// backing storage is not referenced after the call returns.
func (s *State) String(str string) Value {
	s.mustOpen()
	s.nextString++
	id := s.nextString
	s.strings[id] = str
	return makeValue(TypeString, uint64(id))
}

// Symbol interns str and returns its symbol value. Equal text always
// yields equal values with a stable canonical ID.
func (s *State) Symbol(str string) Value {
	return makeValue(TypeSymbol, uint64(s.Intern(str)))
}

// Array allocates an array with capacity for all items, then sets each
// slot by index, preserving input order exactly.
func (s *State) Array(items []Value) Value {
	v := s.aryNewCapa(len(items))
	for i, item := range items {
		// v is an array by construction; ArySet cannot fail here.
		_ = s.ArySet(v, i, item)
	}
	return v
}

// DataObject embeds a host value in the runtime's value space: payload
// goes into a fresh reference-counted Cell, and a new Data object tagged
// with typ holds that cell's single initial reference. typ's
// deallocation callback must release exactly one reference of the same
// cell; use one descriptor per concrete host type.
func (s *State) DataObject(class *Class, payload any, typ *DataType) Value {
	return s.dataAlloc(class, NewCell(payload), typ)
}

// Ptr wraps a raw address as an opaque capability value. No ownership
// is implied; the pointee is never freed by this layer.
func (s *State) Ptr(p unsafe.Pointer) Value {
	s.mustOpen()
	return makeValue(TypeCPtr, uint64(uintptr(p)))
}

// ClassValue returns the value form of a class handle.
func (s *State) ClassValue(c *Class) Value {
	s.mustOpen()
	return makeValue(TypeClass, uint64(s.classIDs[c]))
}

// ModuleValue returns the value form of a module handle.
func (s *State) ModuleValue(c *Class) Value {
	s.mustOpen()
	return makeValue(TypeModule, uint64(s.classIDs[c]))
}

package mrb

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Value represents a single runtime value as a fixed-size opaque buffer
// plus a discriminant. The bit layout is private to this package: bytes
// 0-7 hold the variant payload, byte 8 holds the tag. Values are safe
// to copy bitwise and never run a destructor; the runtime's collector,
// not the Value, owns heap payloads.
//
// The zero Value is Nil.
type Value struct {
	raw [16]byte
}

// Type is the variant discriminant of a Value. The set is closed; only
// a subset has converters, the rest are opaque pass-through values.
type Type uint8

const (
	TypeNil Type = iota
	TypeFalse
	TypeTrue
	TypeFloat
	TypeFixnum
	TypeSymbol
	TypeCPtr
	TypeFree
	TypeObject
	TypeClass
	TypeModule
	TypeIClass
	TypeSClass
	TypeProc
	TypeArray
	TypeHash
	TypeString
	TypeRange
	TypeException
	TypeEnv
	TypeData
	TypeFiber
	TypeIStruct
	TypeBreak

	typeMax
)

var typeNames = [typeMax]string{
	TypeNil:       "Nil",
	TypeFalse:     "False",
	TypeTrue:      "True",
	TypeFloat:     "Float",
	TypeFixnum:    "Fixnum",
	TypeSymbol:    "Symbol",
	TypeCPtr:      "CPtr",
	TypeFree:      "Free",
	TypeObject:    "Object",
	TypeClass:     "Class",
	TypeModule:    "Module",
	TypeIClass:    "IClass",
	TypeSClass:    "SClass",
	TypeProc:      "Proc",
	TypeArray:     "Array",
	TypeHash:      "Hash",
	TypeString:    "String",
	TypeRange:     "Range",
	TypeException: "Exception",
	TypeEnv:       "Env",
	TypeData:      "Data",
	TypeFiber:     "Fiber",
	TypeIStruct:   "IStruct",
	TypeBreak:     "Break",
}

func (t Type) String() string {
	if t < typeMax {
		return typeNames[t]
	}
	return "Unknown"
}

// tagOffset is where the discriminant lives inside the buffer.
const tagOffset = 8

func makeValue(t Type, payload uint64) Value {
	var v Value
	binary.LittleEndian.PutUint64(v.raw[:tagOffset], payload)
	v.raw[tagOffset] = byte(t)
	return v
}

// Type returns the discriminant stored in v. Every converter re-checks
// this before interpreting the payload; runtime convention, not static
// typing, determines which variant a value holds at any call site.
func (v Value) Type() Type {
	t := Type(v.raw[tagOffset])
	if t >= typeMax {
		return TypeFree
	}
	return t
}

func (v Value) payload() uint64 {
	return binary.LittleEndian.Uint64(v.raw[:tagOffset])
}

func (v Value) fixnum() int64 {
	return int64(v.payload())
}

func (v Value) float() float64 {
	return math.Float64frombits(v.payload())
}

func (v Value) symbolID() uint32 {
	return uint32(v.payload())
}

func (v Value) objectID() uint32 {
	return uint32(v.payload())
}

func (v Value) cptr() unsafe.Pointer {
	return unsafe.Pointer(uintptr(v.payload()))
}

// IsNil returns true if v is the nil value.
func (v Value) IsNil() bool {
	return v.Type() == TypeNil
}

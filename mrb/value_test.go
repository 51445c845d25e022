package mrb

import "testing"

func TestZeroValueIsNil(t *testing.T) {
	var v Value
	if v.Type() != TypeNil {
		t.Errorf("zero Value type = %v, want Nil", v.Type())
	}
	if !v.IsNil() {
		t.Error("zero Value IsNil() = false, want true")
	}
	if v != Nil() {
		t.Error("zero Value != Nil()")
	}
}

func TestDiscriminantAgreesWithConstructor(t *testing.T) {
	s := New()
	defer s.Close()

	tests := []struct {
		name string
		v    Value
		want Type
	}{
		{"nil", Nil(), TypeNil},
		{"false", Bool(false), TypeFalse},
		{"true", Bool(true), TypeTrue},
		{"fixnum", Fixnum(42), TypeFixnum},
		{"float", s.Float(3.14), TypeFloat},
		{"string", s.String("hi"), TypeString},
		{"symbol", s.Symbol("hi"), TypeSymbol},
		{"array", s.Array(nil), TypeArray},
		{"class", s.ClassValue(s.ObjectClass), TypeClass},
		{"module", s.ModuleValue(s.DefineModule("Kernel")), TypeModule},
	}
	for _, tt := range tests {
		if got := tt.v.Type(); got != tt.want {
			t.Errorf("%s: Type() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{TypeNil, "Nil"},
		{TypeFalse, "False"},
		{TypeTrue, "True"},
		{TypeFixnum, "Fixnum"},
		{TypeFloat, "Float"},
		{TypeSymbol, "Symbol"},
		{TypeCPtr, "CPtr"},
		{TypeArray, "Array"},
		{TypeString, "String"},
		{TypeData, "Data"},
		{TypeBreak, "Break"},
		{Type(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestValueIsComparable(t *testing.T) {
	s := New()
	defer s.Close()

	if Fixnum(7) != Fixnum(7) {
		t.Error("equal fixnums compare unequal")
	}
	if Fixnum(7) == Fixnum(8) {
		t.Error("distinct fixnums compare equal")
	}
	if Bool(true) == Bool(false) {
		t.Error("true == false")
	}
	// Two separate string allocations are distinct heap objects even
	// with equal contents.
	if s.String("a") == s.String("a") {
		t.Error("separate string allocations compare equal")
	}
}

func TestOutOfRangeTagIsFree(t *testing.T) {
	v := makeValue(Type(250), 0)
	if got := v.Type(); got != TypeFree {
		t.Errorf("corrupt tag Type() = %v, want Free", got)
	}
}

package rite

import (
	"errors"
	"testing"

	"github.com/wordijp/mrusty/mrb"
)

func sampleChunk() *Chunk {
	c := NewChunk("sample")
	c.Consts = []Const{
		{Kind: KindNil},
		{Kind: KindTrue},
		{Kind: KindFixnum, Int: 42},
		{Kind: KindFloat, Float: 2.5},
		{Kind: KindString, Str: "hello"},
		{Kind: KindSymbol, Str: "run"},
		{Kind: KindArray, Elems: []Const{
			{Kind: KindFixnum, Int: 1},
			{Kind: KindString, Str: "a"},
			{Kind: KindTrue},
		}},
	}
	return c
}

func TestWireRoundTrip(t *testing.T) {
	c := sampleChunk()
	data, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Name != c.Name {
		t.Errorf("Name = %q, want %q", got.Name, c.Name)
	}
	if len(got.Consts) != len(c.Consts) {
		t.Fatalf("Consts len = %d, want %d", len(got.Consts), len(c.Consts))
	}
	if got.Consts[2].Int != 42 || got.Consts[4].Str != "hello" {
		t.Error("constants did not survive the wire")
	}
	if len(got.Consts[6].Elems) != 3 {
		t.Errorf("nested elems len = %d, want 3", len(got.Consts[6].Elems))
	}
}

func TestUnmarshalRejectsBadHeader(t *testing.T) {
	data, err := cborEncMode.Marshal(&Chunk{Magic: "NOPE", Version: Version})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := Unmarshal(data); !errors.Is(err, ErrBadHeader) {
		t.Errorf("bad magic error = %v, want ErrBadHeader", err)
	}

	data, err = cborEncMode.Marshal(&Chunk{Magic: Magic, Version: Version + 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := Unmarshal(data); !errors.Is(err, ErrBadHeader) {
		t.Errorf("bad version error = %v, want ErrBadHeader", err)
	}

	if _, err := Unmarshal([]byte{0xff, 0x00}); err == nil {
		t.Error("garbage bytes unmarshaled without error")
	}
}

func TestHashIsStableAndContentSensitive(t *testing.T) {
	a, err := HashHex(sampleChunk())
	if err != nil {
		t.Fatalf("HashHex: %v", err)
	}
	b, err := HashHex(sampleChunk())
	if err != nil {
		t.Fatalf("HashHex: %v", err)
	}
	if a != b {
		t.Error("equal chunks hash differently")
	}

	other := sampleChunk()
	other.Consts[2].Int = 43
	c, err := HashHex(other)
	if err != nil {
		t.Fatalf("HashHex: %v", err)
	}
	if a == c {
		t.Error("different chunks share a hash")
	}
}

func TestLoadConstructsValues(t *testing.T) {
	s := mrb.New()
	defer s.Close()

	vals, err := Load(s, sampleChunk())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(vals) != 7 {
		t.Fatalf("len = %d, want 7", len(vals))
	}
	if !vals[0].IsNil() {
		t.Error("const 0 not nil")
	}
	if b, err := vals[1].ToBool(); err != nil || !b {
		t.Errorf("const 1 = %v, %v, want true", b, err)
	}
	if i, err := vals[2].ToInt32(); err != nil || i != 42 {
		t.Errorf("const 2 = %d, %v, want 42", i, err)
	}
	if f, err := vals[3].ToFloat64(); err != nil || f != 2.5 {
		t.Errorf("const 3 = %v, %v, want 2.5", f, err)
	}
	if str, err := vals[4].ToString(s); err != nil || str != "hello" {
		t.Errorf("const 4 = %q, %v", str, err)
	}
	if vals[5] != s.Symbol("run") {
		t.Error("const 5 did not intern to the canonical symbol")
	}
	elems, err := vals[6].ToSlice(s)
	if err != nil || len(elems) != 3 {
		t.Fatalf("const 6 ToSlice = %d elems, %v", len(elems), err)
	}
	if str, err := elems[1].ToString(s); err != nil || str != "a" {
		t.Errorf("nested elem = %q, %v", str, err)
	}
}

func TestBuildSnapshotsValues(t *testing.T) {
	s := mrb.New()
	defer s.Close()

	vals := []mrb.Value{
		mrb.Fixnum(7),
		s.String("x"),
		s.Array([]mrb.Value{mrb.Bool(false), s.Symbol("tag")}),
	}
	c, err := Build(s, "snap", vals)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c.Consts) != 3 {
		t.Fatalf("Consts len = %d, want 3", len(c.Consts))
	}
	if c.Consts[0].Kind != KindFixnum || c.Consts[0].Int != 7 {
		t.Errorf("const 0 = %+v", c.Consts[0])
	}
	if c.Consts[2].Kind != KindArray || len(c.Consts[2].Elems) != 2 {
		t.Errorf("const 2 = %+v", c.Consts[2])
	}

	// Build then Load round-trips value for value.
	reloaded, err := Load(s, c)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if i, err := reloaded[0].ToInt32(); err != nil || i != 7 {
		t.Errorf("reloaded[0] = %d, %v", i, err)
	}
	if str, err := reloaded[1].ToString(s); err != nil || str != "x" {
		t.Errorf("reloaded[1] = %q, %v", str, err)
	}
}

func TestBuildRejectsRuntimeBoundVariants(t *testing.T) {
	s := mrb.New()
	defer s.Close()

	typ := mrb.NewDataType("Session")
	v := s.DataObject(s.ObjectClass, struct{}{}, typ)
	if _, err := Build(s, "bad", []mrb.Value{v}); err == nil {
		t.Error("Build accepted a Data value")
	}
	if _, err := Build(s, "bad", []mrb.Value{s.ClassValue(s.ObjectClass)}); err == nil {
		t.Error("Build accepted a Class value")
	}
}

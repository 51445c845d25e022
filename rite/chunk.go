// Package rite implements the portable constant-pool format: named,
// versioned pools of literal values that travel as canonical CBOR, are
// content-addressed by their encoding, and load into an interpreter
// instance through the value boundary.
package rite

import (
	"fmt"

	"github.com/wordijp/mrusty/mrb"
)

// Format magic and current version.
const (
	Magic   = "RITE"
	Version = 1
)

// Kind discriminates chunk constants. Only variants with a portable
// literal form are representable; runtime-bound variants (Data, Class,
// CPtr) do not travel.
type Kind uint8

const (
	KindNil Kind = iota
	KindFalse
	KindTrue
	KindFixnum
	KindFloat
	KindString
	KindSymbol
	KindArray
)

// Const is one literal in a chunk's pool. Arrays nest.
type Const struct {
	Kind  Kind    `cbor:"k"`
	Int   int32   `cbor:"i,omitempty"`
	Float float64 `cbor:"f,omitempty"`
	Str   string  `cbor:"s,omitempty"`
	Elems []Const `cbor:"e,omitempty"`
}

// Chunk is a named pool of literal constants.
type Chunk struct {
	Magic   string  `cbor:"magic"`
	Version uint32  `cbor:"version"`
	Name    string  `cbor:"name"`
	Consts  []Const `cbor:"consts"`
}

// NewChunk creates an empty chunk with the current format header.
func NewChunk(name string) *Chunk {
	return &Chunk{Magic: Magic, Version: Version, Name: name}
}

// Load constructs every constant of the chunk on the given instance,
// in pool order.
func Load(s *mrb.State, c *Chunk) ([]mrb.Value, error) {
	out := make([]mrb.Value, 0, len(c.Consts))
	for i, k := range c.Consts {
		v, err := loadConst(s, k)
		if err != nil {
			return nil, fmt.Errorf("rite: chunk %q const %d: %w", c.Name, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func loadConst(s *mrb.State, k Const) (mrb.Value, error) {
	switch k.Kind {
	case KindNil:
		return mrb.Nil(), nil
	case KindFalse:
		return mrb.Bool(false), nil
	case KindTrue:
		return mrb.Bool(true), nil
	case KindFixnum:
		return mrb.Fixnum(k.Int), nil
	case KindFloat:
		return s.Float(k.Float), nil
	case KindString:
		return s.String(k.Str), nil
	case KindSymbol:
		return s.Symbol(k.Str), nil
	case KindArray:
		elems := make([]mrb.Value, 0, len(k.Elems))
		for _, e := range k.Elems {
			v, err := loadConst(s, e)
			if err != nil {
				return mrb.Nil(), err
			}
			elems = append(elems, v)
		}
		return s.Array(elems), nil
	}
	return mrb.Nil(), fmt.Errorf("unknown constant kind %d", k.Kind)
}

// Build snapshots values into a chunk through the inbound converters.
// Values whose variant has no portable literal form are rejected.
func Build(s *mrb.State, name string, vals []mrb.Value) (*Chunk, error) {
	c := NewChunk(name)
	for i, v := range vals {
		k, err := buildConst(s, v)
		if err != nil {
			return nil, fmt.Errorf("rite: chunk %q value %d: %w", name, i, err)
		}
		c.Consts = append(c.Consts, k)
	}
	return c, nil
}

func buildConst(s *mrb.State, v mrb.Value) (Const, error) {
	switch v.Type() {
	case mrb.TypeNil:
		return Const{Kind: KindNil}, nil
	case mrb.TypeFalse:
		return Const{Kind: KindFalse}, nil
	case mrb.TypeTrue:
		return Const{Kind: KindTrue}, nil
	case mrb.TypeFixnum:
		i, err := v.ToInt32()
		if err != nil {
			return Const{}, err
		}
		return Const{Kind: KindFixnum, Int: i}, nil
	case mrb.TypeFloat:
		f, err := v.ToFloat64()
		if err != nil {
			return Const{}, err
		}
		return Const{Kind: KindFloat, Float: f}, nil
	case mrb.TypeString:
		str, err := v.ToString(s)
		if err != nil {
			return Const{}, err
		}
		return Const{Kind: KindString, Str: str}, nil
	case mrb.TypeSymbol:
		str, err := v.ToString(s)
		if err != nil {
			return Const{}, err
		}
		return Const{Kind: KindSymbol, Str: str}, nil
	case mrb.TypeArray:
		elems, err := v.ToSlice(s)
		if err != nil {
			return Const{}, err
		}
		k := Const{Kind: KindArray}
		for _, e := range elems {
			ek, err := buildConst(s, e)
			if err != nil {
				return Const{}, err
			}
			k.Elems = append(k.Elems, ek)
		}
		return k, nil
	}
	return Const{}, fmt.Errorf("variant %s has no portable form", v.Type())
}

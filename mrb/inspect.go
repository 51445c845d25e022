package mrb

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxDepth is the default recursion depth for Inspect.
const DefaultMaxDepth = 3

// Inspect renders a value for diagnostics. Arrays recurse up to the
// default depth; past it, nested arrays collapse to a summary.
func (s *State) Inspect(v Value) string {
	return s.InspectDepth(v, DefaultMaxDepth)
}

// InspectDepth renders a value, recursing into arrays at most depth
// levels.
func (s *State) InspectDepth(v Value, depth int) string {
	switch v.Type() {
	case TypeNil:
		return "nil"
	case TypeTrue:
		return "true"
	case TypeFalse:
		return "false"
	case TypeFixnum:
		return strconv.FormatInt(v.fixnum(), 10)
	case TypeFloat:
		return strconv.FormatFloat(v.float(), 'g', -1, 64)
	case TypeSymbol:
		return ":" + s.SymbolName(v.symbolID())
	case TypeString:
		return strconv.Quote(s.stringContent(v))
	case TypeArray:
		if depth <= 0 {
			n, _ := s.AryLen(v)
			return fmt.Sprintf("[... %d elements]", n)
		}
		elems, err := v.ToSlice(s)
		if err != nil {
			return "[?]"
		}
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = s.InspectDepth(e, depth-1)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeClass, TypeModule:
		if c := s.classPtr(v); c != nil {
			return c.name
		}
		return v.Type().String()
	case TypeData:
		if c := s.DataClass(v); c != nil {
			return "#<" + c.name + ">"
		}
		return "#<Data>"
	case TypeCPtr:
		return fmt.Sprintf("#<CPtr 0x%x>", v.payload())
	default:
		return "#<" + v.Type().String() + ">"
	}
}

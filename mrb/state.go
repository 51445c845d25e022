package mrb

import (
	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

// State is one interpreter instance: the owner of the symbol table, the
// heap registries, the class table, and every Data descriptor used with
// it. A State is driven from one goroutine at a time and provides no
// internal locking; reentrant calls from host functions back into the
// boundary are fine.
type State struct {
	id  string
	log commonlog.Logger

	symbols *SymbolTable

	strings map[uint32]string
	arrays  map[uint32]*arrayObject
	datas   map[uint32]*dataObject
	classes map[uint32]*Class

	nextString uint32
	nextArray  uint32
	nextData   uint32
	nextClass  uint32

	classIDs map[*Class]uint32
	byName   map[string]*Class

	// ObjectClass is the root class every DefineClass chains to by
	// default.
	ObjectClass *Class

	ud     any
	closed bool
}

// Option configures a State at creation time.
type Option func(*State)

// WithLogger overrides the default "mrb" logger.
func WithLogger(log commonlog.Logger) Option {
	return func(s *State) { s.log = log }
}

// New opens a fresh interpreter instance.
func New(opts ...Option) *State {
	s := &State{
		id:       uuid.NewString(),
		log:      commonlog.GetLogger("mrb"),
		symbols:  NewSymbolTable(),
		strings:  make(map[uint32]string),
		arrays:   make(map[uint32]*arrayObject),
		datas:    make(map[uint32]*dataObject),
		classes:  make(map[uint32]*Class),
		classIDs: make(map[*Class]uint32),
		byName:   make(map[string]*Class),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ObjectClass = s.DefineClass("Object", nil)
	s.log.Debugf("state %s: open", s.id)
	return s
}

// ID returns the instance's unique identifier.
func (s *State) ID() string {
	return s.id
}

// Close frees every Data object still registered, invoking each
// descriptor's deallocation callback exactly once, then poisons the
// instance. Closing twice is a no-op.
func (s *State) Close() {
	if s.closed {
		return
	}
	freed := 0
	for id, d := range s.datas {
		delete(s.datas, id)
		d.typ.free(s, d.cell)
		freed++
	}
	s.strings = nil
	s.arrays = nil
	s.classes = nil
	s.classIDs = nil
	s.byName = nil
	s.closed = true
	s.log.Debugf("state %s: close, freed %d data objects", s.id, freed)
}

// Closed reports whether the instance has been closed.
func (s *State) Closed() bool {
	return s.closed
}

func (s *State) mustOpen() {
	if s.closed {
		panic("mrb: use of closed State")
	}
}

// SetUserData stashes an arbitrary host value on the instance, usually
// the embedding host's own wrapper around this State.
func (s *State) SetUserData(v any) {
	s.ud = v
}

// UserData returns the value stored with SetUserData, or nil.
func (s *State) UserData() any {
	return s.ud
}

// Intern returns the canonical symbol ID for name, interning it if new.
func (s *State) Intern(name string) uint32 {
	s.mustOpen()
	return s.symbols.Intern(name)
}

// SymbolName returns the name behind a symbol ID, or "".
func (s *State) SymbolName(id uint32) string {
	return s.symbols.Name(id)
}

// Symbols exposes the instance's symbol table.
func (s *State) Symbols() *SymbolTable {
	return s.symbols
}

func (s *State) stringContent(v Value) string {
	return s.strings[v.objectID()]
}

// ---------------------------------------------------------------------------
// Arrays
// ---------------------------------------------------------------------------

type arrayObject struct {
	elems []Value
}

func (s *State) aryNewCapa(n int) Value {
	s.mustOpen()
	s.nextArray++
	id := s.nextArray
	s.arrays[id] = &arrayObject{elems: make([]Value, 0, n)}
	return makeValue(TypeArray, uint64(id))
}

func (s *State) aryObject(v Value) (*arrayObject, error) {
	if v.Type() != TypeArray {
		return nil, castError("Array")
	}
	a := s.arrays[v.objectID()]
	if a == nil {
		return nil, castError("Array")
	}
	return a, nil
}

// AryLen returns the current length of an array value. Length is read
// at call time, never cached: the runtime may mutate the array between
// calls.
func (s *State) AryLen(v Value) (int, error) {
	a, err := s.aryObject(v)
	if err != nil {
		return 0, err
	}
	return len(a.elems), nil
}

// AryRef returns the element at index i. Out-of-range reads yield Nil,
// matching runtime convention, not an error.
func (s *State) AryRef(v Value, i int) (Value, error) {
	a, err := s.aryObject(v)
	if err != nil {
		return Nil(), err
	}
	if i < 0 || i >= len(a.elems) {
		return Nil(), nil
	}
	return a.elems[i], nil
}

// ArySet stores elem at index i, extending the array with Nil slots if
// i is past the current end.
func (s *State) ArySet(v Value, i int, elem Value) error {
	a, err := s.aryObject(v)
	if err != nil {
		return err
	}
	if i < 0 {
		return nil
	}
	for len(a.elems) <= i {
		a.elems = append(a.elems, Nil())
	}
	a.elems[i] = elem
	return nil
}

// ---------------------------------------------------------------------------
// Classes and modules
// ---------------------------------------------------------------------------

// Class is the opaque handle to a class or module defined on a State.
type Class struct {
	name   string
	super  *Class
	module bool
	consts map[string]Value
}

// Name returns the class or module name.
func (c *Class) Name() string {
	return c.name
}

// Super returns the superclass handle, or nil.
func (c *Class) Super() *Class {
	return c.super
}

// IsModule reports whether the handle names a module.
func (c *Class) IsModule() bool {
	return c.module
}

func (s *State) registerClass(c *Class) {
	s.nextClass++
	s.classes[s.nextClass] = c
	s.classIDs[c] = s.nextClass
	s.byName[c.name] = c
}

// DefineClass defines a class under the given superclass (ObjectClass
// when super is nil) and returns its handle. Redefining a name returns
// the existing handle.
func (s *State) DefineClass(name string, super *Class) *Class {
	s.mustOpen()
	if c, ok := s.byName[name]; ok && !c.module {
		return c
	}
	if super == nil {
		super = s.ObjectClass
	}
	c := &Class{name: name, super: super, consts: make(map[string]Value)}
	s.registerClass(c)
	return c
}

// DefineModule defines a module and returns its handle. Redefining a
// name returns the existing handle.
func (s *State) DefineModule(name string) *Class {
	s.mustOpen()
	if c, ok := s.byName[name]; ok && c.module {
		return c
	}
	c := &Class{name: name, module: true, consts: make(map[string]Value)}
	s.registerClass(c)
	return c
}

// ClassDefined reports whether a class or module of that name exists.
func (s *State) ClassDefined(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// ClassGet returns the class of that name, or nil.
func (s *State) ClassGet(name string) *Class {
	c := s.byName[name]
	if c == nil || c.module {
		return nil
	}
	return c
}

// ModuleGet returns the module of that name, or nil.
func (s *State) ModuleGet(name string) *Class {
	c := s.byName[name]
	if c == nil || !c.module {
		return nil
	}
	return c
}

// DefineConst binds a constant on a class or module.
func (s *State) DefineConst(c *Class, name string, v Value) {
	s.mustOpen()
	c.consts[name] = v
}

// ConstGet reads a constant from a class or module.
func (s *State) ConstGet(c *Class, name string) (Value, bool) {
	v, ok := c.consts[name]
	return v, ok
}

func (s *State) classPtr(v Value) *Class {
	return s.classes[v.objectID()]
}

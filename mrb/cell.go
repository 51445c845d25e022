package mrb

// Cell is the shared ownership token around a host value embedded in
// the runtime. It pairs an explicit reference count with dynamically
// checked interior mutability: at most one exclusive access, or any
// number of concurrent shared accesses, verified at access time.
//
// Embedding a value (State.DataObject) creates a Cell with one
// reference held by the runtime-side Data object. Each retrieval
// (Value.ToObject) retains one more. The storage frees exactly once,
// when the last reference anywhere drops.
type Cell struct {
	value   any
	refs    int
	borrows int // >0: active shared views; -1: active exclusive update
	freed   bool
}

// NewCell wraps v in a cell holding one reference.
func NewCell(v any) *Cell {
	return &Cell{value: v, refs: 1}
}

// RefCount returns the current number of live references.
func (c *Cell) RefCount() int {
	return c.refs
}

// Freed returns true once the cell's storage has been released.
func (c *Cell) Freed() bool {
	return c.freed
}

// Retain adds one reference and returns the cell for chaining.
func (c *Cell) Retain() *Cell {
	if c.freed {
		panic("mrb: Retain on freed cell")
	}
	c.refs++
	return c
}

// Release drops one reference. When the count reaches zero the stored
// value is discarded and the cell becomes unusable; releasing past zero
// or after free panics rather than double-freeing.
func (c *Cell) Release() {
	if c.freed {
		panic("mrb: Release on freed cell")
	}
	if c.refs <= 0 {
		panic("mrb: cell refcount underflow")
	}
	if c.refs == 1 && c.borrows != 0 {
		panic("mrb: cell freed while borrowed")
	}
	c.refs--
	if c.refs == 0 {
		c.value = nil
		c.freed = true
	}
}

// View runs f with shared access to the stored value. Shared views may
// nest; an active exclusive Update makes View panic.
func (c *Cell) View(f func(v any)) {
	if c.freed {
		panic("mrb: View on freed cell")
	}
	if c.borrows < 0 {
		panic("mrb: cell already mutably borrowed")
	}
	c.borrows++
	defer func() { c.borrows-- }()
	f(c.value)
}

// Update runs f with exclusive access and replaces the stored value
// with f's result. Any active borrow, shared or exclusive, makes
// Update panic instead of silently corrupting.
func (c *Cell) Update(f func(v any) any) {
	if c.freed {
		panic("mrb: Update on freed cell")
	}
	if c.borrows != 0 {
		panic("mrb: cell already borrowed")
	}
	c.borrows = -1
	defer func() { c.borrows = 0 }()
	c.value = f(c.value)
}

// Get returns a snapshot of the stored value under a shared borrow.
func (c *Cell) Get() any {
	var out any
	c.View(func(v any) { out = v })
	return out
}

// Set replaces the stored value under an exclusive borrow.
func (c *Cell) Set(v any) {
	c.Update(func(any) any { return v })
}

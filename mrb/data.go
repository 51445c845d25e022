package mrb

// DataType is the descriptor pairing a host type's name with its
// deallocation callback. One descriptor is required per distinct host
// type embedded as Data, and it must stay valid for the whole lifetime
// of the State it is used with. Create descriptors once, at instance
// initialization, never per value.
type DataType struct {
	name string
	free func(s *State, cell *Cell)
}

// NewDataType creates a descriptor whose deallocation callback drops
// exactly one reference of the stored cell. This is the right callback
// for every type that needs no cleanup beyond releasing storage.
func NewDataType(name string) *DataType {
	return &DataType{
		name: name,
		free: func(_ *State, c *Cell) { c.Release() },
	}
}

// NewDataTypeWithFree creates a descriptor that runs hook on the stored
// value before dropping the reference. Use it for host types holding
// external resources (files, connections) that must close when the
// collector proves the wrapping Data object unreachable.
func NewDataTypeWithFree(name string, hook func(v any)) *DataType {
	dt := &DataType{name: name}
	dt.free = func(_ *State, c *Cell) {
		if hook != nil {
			c.View(hook)
		}
		c.Release()
	}
	return dt
}

// Name returns the descriptor's type name.
func (t *DataType) Name() string {
	return t.name
}

// dataObject is the runtime-side wrapper of an embedded host value:
// the class it presents as, the shared cell holding the host value
// (one reference belongs to this wrapper), and the descriptor that
// knows how to release that reference.
type dataObject struct {
	class *Class
	cell  *Cell
	typ   *DataType
}

func (s *State) dataAlloc(class *Class, cell *Cell, typ *DataType) Value {
	s.mustOpen()
	s.nextData++
	id := s.nextData
	s.datas[id] = &dataObject{class: class, cell: cell, typ: typ}
	s.log.Debugf("state %s: data alloc id=%d type=%s", s.id, id, typ.name)
	return makeValue(TypeData, uint64(id))
}

// dataGet recovers the shared cell stored in a Data value, verifying
// the descriptor matches the one the value was embedded with. It never
// touches the reference count; retrieval-side retains happen in
// ToObject.
func (s *State) dataGet(v Value, typ *DataType) (*Cell, error) {
	d := s.datas[v.objectID()]
	if d == nil || d.typ != typ {
		return nil, castError("Data(" + typ.name + ")")
	}
	return d.cell, nil
}

// DataClass returns the class a Data value was embedded with, or nil
// if v is not a live Data value on this State.
func (s *State) DataClass(v Value) *Class {
	if v.Type() != TypeData {
		return nil
	}
	d := s.datas[v.objectID()]
	if d == nil {
		return nil
	}
	return d.class
}

// CollectData simulates the collector proving a single Data object
// unreachable: the registered deallocation callback runs once with the
// stored cell, releasing the one reference the runtime held, and the
// object leaves the registry. Host-side references retained through
// ToObject keep the value alive past this point.
func (s *State) CollectData(v Value) error {
	s.mustOpen()
	if v.Type() != TypeData {
		return castError("Data")
	}
	id := v.objectID()
	d := s.datas[id]
	if d == nil {
		return castError("Data")
	}
	delete(s.datas, id)
	d.typ.free(s, d.cell)
	s.log.Debugf("state %s: data free id=%d type=%s", s.id, id, d.typ.name)
	return nil
}

// LiveDataCount returns the number of Data objects the runtime still
// considers reachable.
func (s *State) LiveDataCount() int {
	return len(s.datas)
}

// Package mrb implements the value boundary of an embedded Ruby-like
// runtime: a fixed-size tagged Value, outbound constructors from native
// Go data, fallible inbound converters back to native data, and the
// reference-counted bridge that shares host objects with the runtime's
// collector.
//
// A State is the interpreter instance. It owns the symbol table, the
// object registries, and every descriptor registered on it. Values are
// only meaningful on the State that allocated them. A State is
// single-threaded: it must be driven from one goroutine at a time and
// provides no internal locking. Reentrant use (a registered host
// function calling back into constructors or converters) is safe.
//
// Values are plain 16-byte buffers, copyable and comparable. They carry
// no ownership: the State's registries, not the Value, keep heap
// payloads alive. The only shared mutable resource is the Cell wrapped
// around an embedded host object, whose borrow discipline is checked
// dynamically and fails fast on violation.
package mrb

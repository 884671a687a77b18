package hemesh

import (
	"sync/atomic"
)

// Key identifies a mesh element. Keys are handed out by a single process-wide
// counter, so they are unique across every mesh in the process and are never
// reused. They only carry identity: do not derive ordering semantics from them
// beyond creation order.
type Key uint64

// NilKey is the null handle. No element ever has this key.
const NilKey Key = 0

// NoLabel is the value of both label slots of a freshly created element.
const NoLabel int32 = -1

var lastKey atomic.Uint64

// NewKey returns a key strictly greater than every key issued before it.
func NewKey() Key {
	return Key(lastKey.Add(1))
}

// Labeled is implemented by everything that carries the two label slots.
type Labeled interface {
	InternalLabel() int32
	Label() int32
}

// Element holds the identity and labels shared by vertices, half-edges and
// faces. The internal label is reserved for operator bookkeeping, the
// external label is free for user annotation.
type Element struct {
	key      Key
	internal int32
	label    int32
}

func newElement() Element {
	return Element{key: NewKey(), internal: NoLabel, label: NoLabel}
}

// Key returns the element's unique key.
func (e *Element) Key() Key {
	return e.key
}

// InternalLabel returns the bookkeeping label.
func (e *Element) InternalLabel() int32 {
	return e.internal
}

// SetInternalLabel sets the bookkeeping label without touching the user label.
func (e *Element) SetInternalLabel(label int32) {
	e.internal = label
}

// Label returns the user label.
func (e *Element) Label() int32 {
	return e.label
}

// SetLabel sets the user label without touching the bookkeeping label.
func (e *Element) SetLabel(label int32) {
	e.label = label
}

// CopyProperties overwrites both label slots from src. The key is kept.
func (e *Element) CopyProperties(src Labeled) {
	e.internal = src.InternalLabel()
	e.label = src.Label()
}

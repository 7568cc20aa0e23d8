package syncutil

import (
	"sync/atomic"
)

// Atomic is a typed wrapper around atomic.Value. The zero value loads as
// the zero value of T.
type Atomic[T any] struct {
	value atomic.Value
}

// NewAtomic creates a new Atomic instance initialized with the given value.
func NewAtomic[T any](initial T) *Atomic[T] {
	a := &Atomic[T]{}
	a.Store(initial)
	return a
}

// Load returns the last stored value.
func (a *Atomic[T]) Load() T {
	v, ok := a.value.Load().(T)
	if !ok {
		var zero T
		return zero
	}
	return v
}

// Store sets the value of the Atomic instance.
func (a *Atomic[T]) Store(value T) {
	a.value.Store(value)
}

// Swap stores value and returns the previous one.
func (a *Atomic[T]) Swap(value T) T {
	old, _ := a.value.Swap(value).(T)
	return old
}

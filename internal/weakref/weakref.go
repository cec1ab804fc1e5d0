// Package weakref implements the "observe-then-check" handle spec.md §9
// calls for in place of the teacher's raw pointer aliasing: the Server's
// active-output pointer, the cursor's grabbed view, and the seat's focused
// surfaces are each held in a Ref, which reports "absent" once cleared
// instead of handing back the last value it held.
package weakref

// Ref is a clearable reference to a value of type T. Once Clear has been
// called, Get reports ok=false instead of returning the last value it
// held. It does not observe the referent itself: it only becomes invalid
// through an explicit Clear.
type Ref[T any] struct {
	value T
	valid bool
}

// Set points the ref at value.
func (r *Ref[T]) Set(value T) {
	r.value = value
	r.valid = true
}

// Clear drops the reference.
func (r *Ref[T]) Clear() {
	var zero T
	r.value = zero
	r.valid = false
}

// Get upgrades the reference. ok is false if the reference was never set or
// has been cleared since.
func (r *Ref[T]) Get() (value T, ok bool) {
	if !r.valid {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Is reports whether the reference currently points at a value equal to
// candidate under the supplied equality function.
func (r *Ref[T]) Is(candidate T, eq func(a, b T) bool) bool {
	v, ok := r.Get()
	return ok && eq(v, candidate)
}

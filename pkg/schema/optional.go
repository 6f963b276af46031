package schema

// Optional distinguishes an absent value from a present one.
// The zero value is unset.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an unset Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr converts a nil-able pointer into an Optional.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Optional[T]) IsSet() bool { return o.set }

// Get returns the held value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

package reactive

type subscription[T comparable] struct {
	id uint64
	fn func(T)
}

// Value holds a value and notifies subscribers whenever a write changes it.
// A Value is not safe for concurrent use; it belongs to the Loop that writes it.
type Value[T comparable] struct {
	v      T
	nextID uint64
	subs   []subscription[T]
}

func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

func (v *Value[T]) Get() T {
	return v.v
}

// Set stores x and reports whether it differed from the previous value.
// Subscribers run in subscription order, only on change.
func (v *Value[T]) Set(x T) bool {
	if v.v == x {
		return false
	}
	v.v = x

	subs := make([]subscription[T], len(v.subs))
	copy(subs, v.subs)
	for _, s := range subs {
		s.fn(x)
	}
	return true
}

func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscription[T]{id: id, fn: fn})

	return func() {
		for i, s := range v.subs {
			if s.id == id {
				v.subs = append(v.subs[:i], v.subs[i+1:]...)
				return
			}
		}
	}
}

func (v *Value[T]) Subscribers() int {
	return len(v.subs)
}

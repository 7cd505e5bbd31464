package observe

import "sync"

// Mode controls what a late subscriber sees on registration.
type Mode int

const (
	// ForwardOnly delivers only values set after subscription.
	ForwardOnly Mode = iota
	// ReplayLast immediately delivers the current value, if any, to a new
	// subscriber. Used for one-shot signals a late listener must not miss.
	ReplayLast
)

// Value is a multi-subscriber observable holding the latest value. Setting
// an equal value is a no-op so subscribers only see changes.
type Value[T comparable] struct {
	mu        sync.Mutex
	mode      Mode
	has       bool
	current   T
	listeners []func(T)
}

func NewValue[T comparable](mode Mode) *Value[T] {
	return &Value[T]{mode: mode}
}

// Get returns the current value and whether one has been set.
func (v *Value[T]) Get() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current, v.has
}

// Set stores val and notifies subscribers when it differs from the current
// value. Listeners run synchronously on the caller's goroutine. Reports
// whether the value was published.
func (v *Value[T]) Set(val T) bool {
	v.mu.Lock()
	if v.has && v.current == val {
		v.mu.Unlock()
		return false
	}
	v.has = true
	v.current = val
	listeners := make([]func(T), len(v.listeners))
	copy(listeners, v.listeners)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(val)
	}
	return true
}

// Subscribe registers fn for future changes. In ReplayLast mode fn is
// invoked immediately with the current value when one exists.
func (v *Value[T]) Subscribe(fn func(T)) {
	v.mu.Lock()
	v.listeners = append(v.listeners, fn)
	replay := v.mode == ReplayLast && v.has
	current := v.current
	v.mu.Unlock()

	if replay {
		fn(current)
	}
}

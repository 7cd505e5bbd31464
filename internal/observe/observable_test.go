package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueForwardOnly(t *testing.T) {
	t.Run("delivers changes to subscribers", func(t *testing.T) {
		v := NewValue[int](ForwardOnly)
		var got []int
		v.Subscribe(func(n int) { got = append(got, n) })

		v.Set(1)
		v.Set(2)
		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("setting an equal value is a no-op", func(t *testing.T) {
		v := NewValue[int](ForwardOnly)
		var calls int
		v.Subscribe(func(int) { calls++ })

		assert.True(t, v.Set(1))
		assert.False(t, v.Set(1))
		assert.Equal(t, 1, calls)
	})

	t.Run("no replay for late subscribers", func(t *testing.T) {
		v := NewValue[int](ForwardOnly)
		v.Set(1)

		var got []int
		v.Subscribe(func(n int) { got = append(got, n) })
		assert.Empty(t, got)

		v.Set(2)
		assert.Equal(t, []int{2}, got)
	})
}

func TestValueReplayLast(t *testing.T) {
	t.Run("replays the current value on subscription", func(t *testing.T) {
		v := NewValue[bool](ReplayLast)
		v.Set(true)

		var got []bool
		v.Subscribe(func(b bool) { got = append(got, b) })
		assert.Equal(t, []bool{true}, got)
	})

	t.Run("no replay before the first set", func(t *testing.T) {
		v := NewValue[bool](ReplayLast)
		var calls int
		v.Subscribe(func(bool) { calls++ })
		assert.Zero(t, calls)
	})
}

func TestValueGet(t *testing.T) {
	v := NewValue[string](ForwardOnly)

	_, ok := v.Get()
	assert.False(t, ok)

	v.Set("running")
	got, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, "running", got)
}

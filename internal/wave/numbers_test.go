package wave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestAllNumbers(t *testing.T) {
	ctx := context.Background()

	t.Run("formats every field", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(testStart.Add(5566 * time.Second))
		w := newTestWave(clock, unitSquareStub())

		n := AllNumbers(ctx, w)
		assert.Equal(t, "10.0 m/s", n.Speed)
		assert.Equal(t, "2026-03-14 12:00:00", n.StartTime)
		assert.Equal(t, "2026-03-14 16:00:00", n.EndTime)
		assert.Equal(t, "3h05m19s", n.TotalTime)
		assert.Equal(t, "UTC", n.Timezone)
		assert.Contains(t, n.Progression, "%")
	})

	t.Run("degrades only the failing field", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(testStart.Add(-time.Hour))
		w := newTestWave(clock, &areaStub{err: errors.New("load failed")})

		n := AllNumbers(ctx, w)
		assert.Equal(t, errorPlaceholder, n.TotalTime)
		assert.Equal(t, "10.0 m/s", n.Speed)
		assert.Equal(t, "0.0%", n.Progression)
	})

	t.Run("unset instants and timezone", func(t *testing.T) {
		event := testEvent()
		event.EndTime = time.Time{}
		event.Timezone = ""
		clock := clockwork.NewFakeClockAt(testStart)
		w := NewLinear(event, unitSquareStub(), clock, testLogger())

		n := AllNumbers(ctx, w)
		assert.Equal(t, errorPlaceholder, n.EndTime)
		assert.Equal(t, errorPlaceholder, n.Timezone)
		assert.NotEqual(t, errorPlaceholder, n.StartTime)
	})
}

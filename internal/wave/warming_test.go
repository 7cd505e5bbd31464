package wave

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldwidewaves/wave-engine/internal/geo"
)

func TestWarming(t *testing.T) {
	ctx := context.Background()
	pos := geo.Position{Lat: 0.5, Lng: 0.5}

	t.Run("fixed duration", func(t *testing.T) {
		warming := NewWarming(newTestWave(clockwork.NewFakeClockAt(testStart), unitSquareStub()), clockwork.NewFakeClockAt(testStart))
		assert.Equal(t, 30*time.Second, warming.Duration())
	})

	t.Run("starts before the predicted hit", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(testStart)
		wave := newTestWave(clock, unitSquareStub())
		warming := NewWarming(wave, clock)

		hit, ok := wave.UserHitTime(ctx, pos)
		require.True(t, ok)

		start, ok := warming.UserWarmingStart(ctx, pos)
		require.True(t, ok)
		assert.Equal(t, hit.Add(-35*time.Second), start)
	})

	t.Run("absent without a hit prediction", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(testStart)
		wave := newTestWave(clock, &areaStub{})
		warming := NewWarming(wave, clock)

		_, ok := warming.UserWarmingStart(ctx, pos)
		assert.False(t, ok)
		assert.False(t, warming.IsUserWarmingStarted(ctx, pos))
	})

	t.Run("opens exactly at the window boundary", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(testStart)
		wave := newTestWave(clock, unitSquareStub())
		warming := NewWarming(wave, clock)

		start, ok := warming.UserWarmingStart(ctx, pos)
		require.True(t, ok)

		clock.Advance(start.Sub(clock.Now()) - time.Millisecond)
		assert.False(t, warming.IsUserWarmingStarted(ctx, pos))

		clock.Advance(time.Millisecond)
		assert.True(t, warming.IsUserWarmingStarted(ctx, pos))
	})
}

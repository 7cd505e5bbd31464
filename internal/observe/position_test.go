package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldwidewaves/wave-engine/internal/geo"
)

func TestPositionValue(t *testing.T) {
	t.Run("absent before first update", func(t *testing.T) {
		p := NewPositionValue()
		_, ok := p.Current()
		assert.False(t, ok)
	})

	t.Run("current reflects latest update", func(t *testing.T) {
		p := NewPositionValue()
		p.Update(geo.Position{Lat: 1, Lng: 2})
		p.Update(geo.Position{Lat: 3, Lng: 4})

		pos, ok := p.Current()
		require.True(t, ok)
		assert.Equal(t, geo.Position{Lat: 3, Lng: 4}, pos)
	})

	t.Run("latest wins on the change channel", func(t *testing.T) {
		p := NewPositionValue()
		p.Update(geo.Position{Lat: 1, Lng: 1})
		p.Update(geo.Position{Lat: 2, Lng: 2})

		select {
		case pos := <-p.Changes():
			assert.Equal(t, geo.Position{Lat: 2, Lng: 2}, pos)
		default:
			t.Fatal("expected a pending change")
		}

		select {
		case <-p.Changes():
			t.Fatal("expected a single coalesced change")
		default:
		}
	})
}

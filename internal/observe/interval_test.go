package observe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollInterval(t *testing.T) {
	tests := []struct {
		name       string
		untilStart time.Duration
		untilHit   time.Duration
		hitKnown   bool
		running    bool
		want       time.Duration
	}{
		{"two hours before start", 2 * time.Hour, 0, false, false, time.Hour},
		{"just over the hour boundary", 66 * time.Minute, 0, false, false, time.Hour},
		{"half an hour before start", 30 * time.Minute, 0, false, false, 5 * time.Minute},
		{"four minutes before start", 4 * time.Minute, 0, false, false, time.Second},
		{"one minute before start", time.Minute, 0, false, false, time.Second},
		{"twenty seconds before start", 20 * time.Second, 0, false, false, 500 * time.Millisecond},
		{"at start", 0, 0, false, false, 500 * time.Millisecond},
		{"running without a hit prediction", -time.Minute, 0, false, true, 500 * time.Millisecond},
		{"running with hit half a second away", -time.Minute, 500 * time.Millisecond, true, true, 50 * time.Millisecond},
		{"running with hit three seconds away", -time.Minute, 3 * time.Second, true, true, 200 * time.Millisecond},
		{"running with hit a minute away", -time.Minute, time.Minute, true, true, 500 * time.Millisecond},
		{"hit already past", -time.Minute, -time.Second, true, true, PollStop},
		{"not running and nothing pending", -time.Minute, 0, false, false, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pollInterval(tt.untilStart, tt.untilHit, tt.hitKnown, tt.running)
			assert.Equal(t, tt.want, got)
		})
	}
}

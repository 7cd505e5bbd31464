package observe

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/worldwidewaves/wave-engine/internal/observability"
	"github.com/worldwidewaves/wave-engine/internal/wave"
)

// Snapshot is one published evaluation of the wave, suitable for transport
// adapters (Kafka, WebSocket). Optional fields are nil while the underlying
// value is not yet known.
type Snapshot struct {
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Progression float64   `json:"progression"`

	UserInArea        *bool      `json:"user_in_area,omitempty"`
	PositionRatio     *float64   `json:"position_ratio,omitempty"`
	TimeBeforeHitMS   *int64     `json:"time_before_hit_ms,omitempty"`
	HitTime           *time.Time `json:"hit_time,omitempty"`
	WarmingInProgress bool       `json:"warming_in_progress"`
	GoingToBeHit      bool       `json:"going_to_be_hit"`
	HasBeenHit        bool       `json:"has_been_hit"`
}

// Engine runs the observation loop for one event. It merges periodic ticks,
// observer-position changes, and simulation signals, evaluates the wave once
// per combined event, and feeds the throttled observables.
type Engine struct {
	wave     wave.Wave
	warming  *wave.Warming
	position PositionSource
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics

	simulation chan struct{}

	status            *Value[wave.Status]
	progression       *Value[float64]
	timeBeforeHit     *Value[time.Duration]
	hitTime           *Value[time.Time]
	userIsInArea      *Value[bool]
	positionRatio     *Value[float64]
	warmingInProgress *Value[bool]
	goingToBeHit      *Value[bool]
	hasBeenHit        *Value[bool]

	mu                sync.Mutex
	running           bool
	cancel            context.CancelFunc
	done              chan struct{}
	snapshotListeners []func(Snapshot)

	ready atomic.Bool

	// Loop-local state. Touched only by the loop goroutine; the done-channel
	// join on Stop orders accesses across restarts.
	throttle           throttle
	lastStatus         wave.Status
	lastProgression    float64
	hasLastProgression bool
	inArea             bool
	inAreaKnown        bool
}

// NewEngine wires the observation loop for one event. The loop does not run
// until Start, or until the first listener registration.
func NewEngine(w wave.Wave, warming *wave.Warming, position PositionSource, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		wave:       w,
		warming:    warming,
		position:   position,
		clock:      clock,
		logger:     logger,
		metrics:    metrics,
		simulation: make(chan struct{}, 1),

		status:            NewValue[wave.Status](ForwardOnly),
		progression:       NewValue[float64](ForwardOnly),
		timeBeforeHit:     NewValue[time.Duration](ForwardOnly),
		hitTime:           NewValue[time.Time](ForwardOnly),
		userIsInArea:      NewValue[bool](ForwardOnly),
		positionRatio:     NewValue[float64](ForwardOnly),
		warmingInProgress: NewValue[bool](ForwardOnly),

		// One-shot signals replay to late subscribers.
		goingToBeHit: NewValue[bool](ReplayLast),
		hasBeenHit:   NewValue[bool](ReplayLast),
	}
}

// Start launches the background loop. Starting while already running is a
// no-op. Restart after Stop is supported; the wave's caches persist.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	e.running = true
	e.metrics.ObserverRunning.Set(1)

	go e.run(ctx, e.done)
}

// Stop cancels the loop and waits for it to fully unwind. No update fires
// after Stop returns.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	cancel, done := e.cancel, e.done
	e.mu.Unlock()

	cancel()
	<-done

	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
	e.metrics.ObserverRunning.Set(0)
}

// NotifySimulationChanged triggers a re-evaluation outside the normal
// polling cadence. Coalesces when the loop has not yet consumed a prior
// signal.
func (e *Engine) NotifySimulationChanged() {
	select {
	case e.simulation <- struct{}{}:
	default:
	}
}

func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	e.logger.Info("observation started", "event_id", e.wave.Event().ID)

	for {
		interval := e.tick(ctx)

		var tickCh <-chan time.Time
		if interval != PollStop {
			tickCh = e.clock.After(interval)
		}

		select {
		case <-ctx.Done():
			e.logger.Info("observation stopping", "event_id", e.wave.Event().ID)
			return
		case <-tickCh:
		case <-e.position.Changes():
			e.metrics.PositionUpdates.Inc()
		case <-e.simulation:
			e.logger.Debug("simulation parameters changed")
		}
	}
}

// tick evaluates the wave once and returns the next polling interval. A
// panic during evaluation is recovered here; previous values stay in place
// and polling continues at the fallback cadence.
func (e *Engine) tick(ctx context.Context) (interval time.Duration) {
	start := time.Now()
	e.metrics.TicksTotal.Inc()
	interval = 30 * time.Second

	defer func() {
		e.metrics.TickDuration.Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			e.metrics.TickErrors.Inc()
			e.logger.Error("observation tick failed", "panic", r)
		}
	}()

	now := e.clock.Now()
	changed := false

	status := e.wave.Status()
	progression := e.wave.Progression(ctx)
	e.validate(status, progression)

	e.mark("status", e.status.Set(status), &changed)
	e.metrics.WaveProgression.Set(progression)
	if e.throttle.progressionChanged(progression) {
		e.mark("progression", e.progression.Set(progression), &changed)
	}

	pos, hasPos := e.position.Current()
	if hasPos {
		in, err := e.wave.UserIsInArea(ctx, pos)
		switch {
		case errors.Is(err, wave.ErrAreaNotLoaded):
			// Keep the previous answer until polygon data loads.
		case err != nil:
			e.logger.Warn("area check failed", "error", err)
			e.inArea, e.inAreaKnown = false, true
		default:
			e.inArea, e.inAreaKnown = in, true
		}
		if e.inAreaKnown {
			e.mark("user_is_in_area", e.userIsInArea.Set(e.inArea), &changed)
		}
	}

	hitKnown := false
	var untilHit time.Duration
	if hasPos && e.inAreaKnown && e.inArea {
		if hit, ok := e.wave.UserHitTime(ctx, pos); ok {
			hitKnown = true
			untilHit = hit.Sub(now)

			e.mark("hit_time", e.hitTime.Set(hit), &changed)
			if e.throttle.timeBeforeHitChanged(untilHit) {
				e.mark("time_before_hit", e.timeBeforeHit.Set(untilHit), &changed)
			}
			e.mark("going_to_be_hit", e.goingToBeHit.Set(untilHit > 0), &changed)
			e.mark("has_been_hit", e.hasBeenHit.Set(untilHit <= 0), &changed)
			e.mark("warming_in_progress",
				e.warmingInProgress.Set(untilHit > 0 && e.warming.IsUserWarmingStarted(ctx, pos)), &changed)
		}
		if ratio, ok := e.wave.UserPositionToWaveRatio(ctx, pos); ok && e.throttle.ratioChanged(ratio) {
			e.mark("position_ratio", e.positionRatio.Set(ratio), &changed)
		}
	}

	e.ready.Store(true)
	if changed {
		e.notifySnapshot(e.snapshot(now))
	}

	untilStart := e.wave.Event().StartTime.Sub(now)
	return pollInterval(untilStart, untilHit, hitKnown, status == wave.StatusRunning)
}

// validate logs transition anomalies without rejecting them; the wave model
// owns the state, the engine only observes it.
func (e *Engine) validate(status wave.Status, progression float64) {
	if status < e.lastStatus {
		e.logger.Warn("status moved backward", "from", e.lastStatus.String(), "to", status.String())
	}
	if e.hasLastProgression && progression < e.lastProgression && status != wave.StatusDone {
		e.logger.Warn("progression decreased", "from", e.lastProgression, "to", progression)
	}
	if status == wave.StatusDone && progression < 100 {
		e.logger.Warn("done with incomplete progression", "progression", progression)
	}
	if status == wave.StatusRunning && progression <= 0 {
		e.logger.Warn("running with zero progression")
	}

	e.lastStatus = status
	e.lastProgression = progression
	e.hasLastProgression = true
}

func (e *Engine) mark(observable string, published bool, changed *bool) {
	if published {
		e.metrics.UpdatesPublished.WithLabelValues(observable).Inc()
		*changed = true
	}
}

func (e *Engine) snapshot(now time.Time) Snapshot {
	status, _ := e.status.Get()
	progression, _ := e.progression.Get()

	snap := Snapshot{
		EventID:     e.wave.Event().ID,
		Timestamp:   now,
		Status:      status.String(),
		Progression: progression,
	}

	if in, ok := e.userIsInArea.Get(); ok {
		snap.UserInArea = &in
	}
	if ratio, ok := e.positionRatio.Get(); ok {
		snap.PositionRatio = &ratio
	}
	if tbh, ok := e.timeBeforeHit.Get(); ok {
		ms := tbh.Milliseconds()
		snap.TimeBeforeHitMS = &ms
	}
	if hit, ok := e.hitTime.Get(); ok {
		snap.HitTime = &hit
	}
	if v, ok := e.warmingInProgress.Get(); ok {
		snap.WarmingInProgress = v
	}
	if v, ok := e.goingToBeHit.Get(); ok {
		snap.GoingToBeHit = v
	}
	if v, ok := e.hasBeenHit.Get(); ok {
		snap.HasBeenHit = v
	}
	return snap
}

func (e *Engine) notifySnapshot(snap Snapshot) {
	e.mu.Lock()
	listeners := make([]func(Snapshot), len(e.snapshotListeners))
	copy(listeners, e.snapshotListeners)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// CheckReadiness returns nil once the loop has completed at least one
// evaluation, or an error describing why the service is not yet ready.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if !e.ready.Load() {
		return errors.New("observation loop has not evaluated yet")
	}
	return nil
}

// Listener registration. Each method registers the callback, implicitly
// starts the loop, and returns the engine for chaining.

func (e *Engine) OnStatusChanged(fn func(wave.Status)) *Engine {
	e.status.Subscribe(fn)
	e.Start()
	return e
}

func (e *Engine) OnProgressionChanged(fn func(float64)) *Engine {
	e.progression.Subscribe(fn)
	e.Start()
	return e
}

// OnWarmingEnded fires when the warming window closes after having been open.
func (e *Engine) OnWarmingEnded(fn func()) *Engine {
	var wasWarming bool
	e.warmingInProgress.Subscribe(func(v bool) {
		if wasWarming && !v {
			fn()
		}
		wasWarming = v
	})
	e.Start()
	return e
}

// OnAboutToBeHit fires when a hit becomes imminent. Replays to a late
// subscriber if the signal already fired.
func (e *Engine) OnAboutToBeHit(fn func()) *Engine {
	e.goingToBeHit.Subscribe(func(v bool) {
		if v {
			fn()
		}
	})
	e.Start()
	return e
}

// OnHasBeenHit fires once the front has passed the observer. Replays to a
// late subscriber.
func (e *Engine) OnHasBeenHit(fn func()) *Engine {
	e.hasBeenHit.Subscribe(func(v bool) {
		if v {
			fn()
		}
	})
	e.Start()
	return e
}

// OnSnapshot registers a transport sink invoked after every tick that
// published at least one observable update.
func (e *Engine) OnSnapshot(fn func(Snapshot)) *Engine {
	e.mu.Lock()
	e.snapshotListeners = append(e.snapshotListeners, fn)
	e.mu.Unlock()
	e.Start()
	return e
}

// Query surface for the HTTP and WebSocket adapters.

func (e *Engine) Status() (wave.Status, bool)           { return e.status.Get() }
func (e *Engine) Progression() (float64, bool)          { return e.progression.Get() }
func (e *Engine) UserIsInArea() (bool, bool)            { return e.userIsInArea.Get() }
func (e *Engine) TimeBeforeHit() (time.Duration, bool)  { return e.timeBeforeHit.Get() }
func (e *Engine) PredictedHitTime() (time.Time, bool)   { return e.hitTime.Get() }
func (e *Engine) PositionRatio() (float64, bool)        { return e.positionRatio.Get() }
func (e *Engine) IsUserWarmingInProgress() (bool, bool) { return e.warmingInProgress.Get() }

// WavePolygons returns the current traversed/remaining split, or nil while
// the wave is not running.
func (e *Engine) WavePolygons(ctx context.Context) *wave.WavePolygons {
	return e.wave.WavePolygons(ctx)
}

// AllNumbers returns the formatted display strings for the event.
func (e *Engine) AllNumbers(ctx context.Context) wave.Numbers {
	return wave.AllNumbers(ctx, e.wave)
}

// HasUserBeenHitInCurrentPosition reports whether the front has already
// passed the observer's current position. False without a position.
func (e *Engine) HasUserBeenHitInCurrentPosition(ctx context.Context) bool {
	pos, ok := e.position.Current()
	return ok && e.wave.HasUserBeenHit(ctx, pos)
}

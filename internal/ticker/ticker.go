package ticker

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Noise yields uniform values in [0, 1). Injected so tests can drive
// exact sequences.
type Noise func() float64

// Options tune the synthesizer.
type Options struct {
	Interval   time.Duration
	Volatility float64 // per-tick jitter bound as a fraction of the anchor
	Drift      float64 // fraction of the residual gap closed per tick
}

// Synthesizer produces a cosmetically continuous price motion between
// confirmed snapshots. The displayed value follows a mean-reverting
// walk around the anchor: bounded jitter plus geometric decay of the
// gap, so it never diverges.
type Synthesizer struct {
	opts       Options
	noise      Noise
	logger     zerolog.Logger
	volatility decimal.Decimal
	drift      decimal.Decimal

	mu        sync.Mutex
	live      bool
	anchored  bool
	anchor    decimal.Decimal
	displayed decimal.Decimal
}

// New constructs a synthesizer. A nil noise source gets a time-seeded
// generator.
func New(opts Options, noise Noise, logger zerolog.Logger) *Synthesizer {
	if opts.Interval <= 0 {
		opts.Interval = 1500 * time.Millisecond
	}
	if opts.Volatility <= 0 {
		opts.Volatility = 0.0002
	}
	if opts.Drift <= 0 || opts.Drift > 1 {
		opts.Drift = 0.1
	}
	if noise == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		noise = rng.Float64
	}

	return &Synthesizer{
		opts:       opts,
		noise:      noise,
		logger:     logger.With().Str("component", "ticker").Logger(),
		volatility: decimal.NewFromFloat(opts.Volatility),
		drift:      decimal.NewFromFloat(opts.Drift),
		live:       true,
	}
}

// Start runs the animation loop until the context is cancelled.
func (s *Synthesizer) Start(ctx context.Context) {
	go func() {
		tick := time.NewTicker(s.opts.Interval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				s.Step()
			}
		}
	}()
}

// Reanchor hard-resets the displayed value to the given anchor. Called
// on every new snapshot and on currency or unit change; there is never
// partial convergence from the old value.
func (s *Synthesizer) Reanchor(value decimal.Decimal) {
	s.mu.Lock()
	s.anchor = value
	s.displayed = value
	s.anchored = true
	s.mu.Unlock()

	s.logger.Debug().Str("anchor", value.String()).Msg("re-anchored")
}

// Clear drops the anchor, freezing the animation until the next
// Reanchor.
func (s *Synthesizer) Clear() {
	s.mu.Lock()
	s.anchored = false
	s.mu.Unlock()
}

// SetLive gates the animation; while false, Step is a no-op.
func (s *Synthesizer) SetLive(live bool) {
	s.mu.Lock()
	s.live = live
	s.mu.Unlock()
}

// Displayed returns the current animated value and whether an anchor
// exists.
func (s *Synthesizer) Displayed() (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayed, s.anchored
}

// Anchor returns the authoritative value the animation reverts toward.
func (s *Synthesizer) Anchor() (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchor, s.anchored
}

// Step advances the animation by one frame:
//
//	displayed += anchor*volatility*uniform(-0.5,0.5) + (anchor-displayed)*drift
func (s *Synthesizer) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.live || !s.anchored {
		return
	}

	centered := decimal.NewFromFloat(s.noise() - 0.5)
	jitter := s.anchor.Mul(s.volatility).Mul(centered)
	pull := s.anchor.Sub(s.displayed).Mul(s.drift)
	s.displayed = s.displayed.Add(jitter).Add(pull)
}

package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"spotwatch/internal/fetcher"
	"spotwatch/internal/model"
)

// Options tune poller behaviour.
type Options struct {
	Interval       time.Duration
	RequestTimeout time.Duration
}

// Poller owns the Live/Paused lifecycle of snapshot acquisition. While
// Live it acquires immediately and then on a fixed interval; restarting
// always tears down the previous timer first so there is never more
// than one. In-flight requests are never cancelled; the most recently
// completed response wins.
type Poller struct {
	fetcher    fetcher.SnapshotFetcher
	currencies []model.Currency
	opts       Options
	logger     zerolog.Logger

	mu         sync.Mutex
	base       context.Context
	cancelLoop context.CancelFunc
	live       bool
	source     model.Source
	snapshot   model.PriceSnapshot
	fetchedAt  time.Time
	connecting bool
	generation uint64
	onSnapshot func(model.PriceSnapshot)
}

// New constructs a poller. It stays idle until Start.
func New(f fetcher.SnapshotFetcher, source model.Source, currencies []model.Currency, opts Options, logger zerolog.Logger) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = 60 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}

	return &Poller{
		fetcher:    f,
		currencies: currencies,
		opts:       opts,
		logger:     logger.With().Str("component", "poller").Logger(),
		source:     source,
		connecting: true,
	}
}

// OnSnapshot registers a hook invoked after every successful
// acquisition with the freshly applied snapshot. Must be set before
// Start.
func (p *Poller) OnSnapshot(fn func(model.PriceSnapshot)) {
	p.mu.Lock()
	p.onSnapshot = fn
	p.mu.Unlock()
}

// Start enters the Live state. The context bounds the poller's whole
// lifetime; cancelling it stops the recurring timer.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	p.base = ctx
	p.live = true
	p.restartLocked()
	p.mu.Unlock()
}

// SetLive toggles between Live and Paused. Resuming acquires
// immediately and restarts the timer; pausing cancels the timer but
// not any request already in flight.
func (p *Poller) SetLive(live bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if live == p.live {
		return
	}
	p.live = live

	if !live {
		p.stopLoopLocked()
		p.logger.Info().Msg("paused")
		return
	}
	p.logger.Info().Msg("resumed")
	p.restartLocked()
}

// SetSource switches the asset pool. While Live this acquires
// immediately and restarts the timer; a stale in-flight response for
// the old source may still land afterwards.
func (p *Poller) SetSource(source model.Source) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if source.ID == p.source.ID {
		return
	}
	p.source = source
	p.logger.Info().Str("source", source.ID).Msg("source changed")

	if p.live {
		p.restartLocked()
	}
}

// Live reports whether the poller is in the Live state.
func (p *Poller) Live() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// Source returns the currently selected source.
func (p *Poller) Source() model.Source {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// Snapshot returns the last applied snapshot, if any.
func (p *Poller) Snapshot() (model.PriceSnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot, p.snapshot != nil
}

// FetchedAt returns the acquisition time of the current snapshot.
func (p *Poller) FetchedAt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetchedAt
}

// Connecting reports the soft status shown before the first snapshot
// has ever been obtained. Once any snapshot exists, failures are
// swallowed and the stale snapshot is kept instead.
func (p *Poller) Connecting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connecting
}

// restartLocked tears down any running timer loop and starts a fresh
// one that acquires immediately. Callers hold p.mu.
func (p *Poller) restartLocked() {
	p.stopLoopLocked()

	base := p.base
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithCancel(base)
	p.cancelLoop = cancel
	p.generation++

	go p.loop(ctx, p.generation)
}

func (p *Poller) stopLoopLocked() {
	if p.cancelLoop != nil {
		p.cancelLoop()
		p.cancelLoop = nil
	}
}

func (p *Poller) loop(ctx context.Context, gen uint64) {
	go p.acquire(gen)

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.acquire(gen)
		}
	}
}

// acquire runs one acquisition. It deliberately derives its context
// from Background rather than the loop context: pausing or retuning
// the poller must not cancel a request already in flight.
func (p *Poller) acquire(gen uint64) {
	p.mu.Lock()
	source := p.source
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), p.opts.RequestTimeout)
	defer cancel()

	snapshot, err := p.fetcher.FetchSnapshot(ctx, source, p.currencies)
	if err != nil {
		p.applyFailure(gen, source, err)
		return
	}
	p.applySnapshot(gen, snapshot)
}

func (p *Poller) applySnapshot(gen uint64, snapshot model.PriceSnapshot) {
	p.mu.Lock()
	p.snapshot = snapshot
	p.fetchedAt = time.Now().UTC()
	p.connecting = false
	hook := p.onSnapshot
	p.mu.Unlock()

	p.logger.Debug().Uint64("generation", gen).Int("currencies", len(snapshot)).Msg("snapshot applied")

	if hook != nil {
		hook(snapshot)
	}
}

func (p *Poller) applyFailure(gen uint64, source model.Source, err error) {
	p.mu.Lock()
	hasSnapshot := p.snapshot != nil
	if !hasSnapshot {
		p.connecting = true
	}
	p.mu.Unlock()

	if errors.Is(err, fetcher.ErrMissingKey) {
		p.logger.Warn().Uint64("generation", gen).Str("source", source.ID).Err(err).Msg("snapshot had no usable keys, keeping previous")
		return
	}
	if hasSnapshot {
		// Anti-flicker: once any snapshot exists, failures keep the
		// stale data without surfacing an error.
		p.logger.Debug().Uint64("generation", gen).Err(err).Msg("acquisition failed, retaining stale snapshot")
		return
	}
	p.logger.Warn().Uint64("generation", gen).Err(err).Msg("acquisition failed before first snapshot")
}

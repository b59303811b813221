package history

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"spotwatch/internal/fetcher"
	"spotwatch/internal/model"
)

// Fetcher resolves a range label into a provider query window plus a
// local post-filter, and holds the last good series. Fetch failures
// are logged and the previous series (empty on first load) is kept;
// chart failures are never surfaced to the user.
type Fetcher struct {
	provider fetcher.HistoryFetcher
	logger   zerolog.Logger
	now      func() time.Time

	mu     sync.Mutex
	series model.ChartHistory
}

// New constructs a history fetcher.
func New(provider fetcher.HistoryFetcher, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		provider: provider,
		logger:   logger.With().Str("component", "history").Logger(),
		now:      time.Now,
	}
}

// Refresh fetches the selector's request window, applies its slice
// mode, and replaces the held series wholesale. On failure the
// previous series is returned unchanged.
func (f *Fetcher) Refresh(ctx context.Context, source model.Source, currency model.Currency, sel model.RangeSelector) model.ChartHistory {
	raw, err := f.provider.FetchHistory(ctx, source, currency, sel.RequestWindowDays)
	if err != nil {
		f.logger.Warn().Err(err).
			Str("source", source.ID).
			Str("currency", currency.Code).
			Str("range", sel.Label).
			Msg("history fetch failed, keeping previous series")
		return f.Series()
	}

	filtered := applySlice(raw, sel.SliceMode, f.now())

	f.mu.Lock()
	f.series = filtered
	f.mu.Unlock()

	f.logger.Debug().
		Str("range", sel.Label).
		Int("raw", len(raw)).
		Int("kept", len(filtered)).
		Msg("history refreshed")

	return filtered
}

// Series returns the last successfully resolved series.
func (f *Fetcher) Series() model.ChartHistory {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.series
}

func applySlice(raw model.ChartHistory, mode model.SliceMode, now time.Time) model.ChartHistory {
	var cutoff time.Duration
	switch mode {
	case model.SliceLastHour:
		cutoff = time.Hour
	case model.SliceLast8Hours:
		cutoff = 8 * time.Hour
	default:
		// SliceNone and Slice24H keep the full fetched window.
		return raw
	}

	floor := now.Add(-cutoff).UnixMilli()
	kept := make(model.ChartHistory, 0, len(raw))
	for _, pt := range raw {
		if pt.TimestampMs >= floor {
			kept = append(kept, pt)
		}
	}
	return kept
}

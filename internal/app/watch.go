package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spotwatch/internal/display"
	"spotwatch/internal/history"
	"spotwatch/internal/model"
	"spotwatch/internal/poller"
	"spotwatch/internal/ticker"
	"spotwatch/internal/transport"
)

// Watch runs the live price loop until interrupted. Each animation
// frame prints the synthesized display value; every poll re-anchors it
// to the confirmed price.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sel := a.resolveSelection(opts.Source, opts.Currency, opts.Unit, opts.Range)
	resolver := a.newResolver()
	provider := a.newProvider(resolver)

	synth := ticker.New(ticker.Options{
		Interval:   a.Config.Ticker.Interval,
		Volatility: a.Config.Ticker.Volatility,
		Drift:      a.Config.Ticker.Drift,
	}, nil, a.Logger)

	poll := poller.New(provider, sel.Source, model.Currencies, poller.Options{
		Interval:       a.Config.Poll.Interval,
		RequestTimeout: a.Config.Provider.RequestTimeout,
	}, a.Logger)

	poll.OnSnapshot(func(snap model.PriceSnapshot) {
		quote, ok := snap.Quote(sel.Currency)
		if !ok {
			return
		}
		synth.Reanchor(model.Convert(quote.Price, sel.Unit))
	})

	hist := history.New(provider, a.Logger)
	go func() {
		series := hist.Refresh(ctx, sel.Source, sel.Currency, sel.Range)
		a.Logger.Info().Str("range", sel.Range.Label).Int("points", len(series)).Msg("chart series resolved")
	}()

	a.Logger.Info().
		Str("source", sel.Source.ID).
		Str("currency", sel.Currency.Code).
		Str("unit", sel.Unit.Code).
		Msg("starting watch")

	poll.Start(ctx)
	synth.Start(ctx)
	if opts.StartPaused {
		poll.SetLive(false)
		synth.SetLive(false)
	}

	frames := time.NewTicker(a.Config.Ticker.Interval)
	defer frames.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stdout)
			a.Logger.Info().Msg("watch stopped")
			return nil
		case <-frames.C:
			a.printFrame(poll, synth, resolver, sel)
		}
	}
}

func (a *App) printFrame(poll *poller.Poller, synth *ticker.Synthesizer, resolver *transport.Resolver, sel selection) {
	value, anchored := synth.Displayed()
	if !anchored {
		if poll.Connecting() {
			fmt.Fprintf(os.Stdout, "\r%s %s/%s: connecting...        ", sel.Source.Symbol, sel.Currency.Code, sel.Unit.Code)
		}
		return
	}

	badge := ""
	if snap, ok := poll.Snapshot(); ok {
		if quote, ok := snap.Quote(sel.Currency); ok {
			badge = display.ChangeBadge(quote.Change24h)
		}
	}

	status := "live"
	if !poll.Live() {
		status = "paused"
	}
	if resolver.UsedRelay() {
		status += ", relay"
	}

	fmt.Fprintf(os.Stdout, "\r%s %s/%s  %s  %s  [%s]   ",
		sel.Source.Symbol,
		sel.Currency.Code,
		sel.Unit.Code,
		display.Price(sel.Currency, value),
		badge,
		status,
	)
}

package app

import (
	"time"

	"github.com/rs/zerolog"

	"spotwatch/internal/config"
	"spotwatch/internal/fetcher"
	"spotwatch/internal/model"
	"spotwatch/internal/transport"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newResolver() *transport.Resolver {
	return transport.New(transport.Options{
		RelayURL:  a.Config.Provider.RelayURL,
		Timeout:   a.Config.Provider.RequestTimeout,
		UserAgent: a.Config.Provider.UserAgent,
	}, a.Logger)
}

func (a *App) newProvider(resolver *transport.Resolver) *fetcher.Provider {
	return fetcher.NewProvider(fetcher.ProviderOptions{
		BaseURL: a.Config.Provider.BaseURL,
	}, resolver, a.Logger)
}

// selection resolves the session's configured choices, applying each
// table's first-entry fallback for unrecognized values.
type selection struct {
	Source   model.Source
	Currency model.Currency
	Unit     model.Unit
	Range    model.RangeSelector
}

func (a *App) resolveSelection(source, currency, unit, rng string) selection {
	d := a.Config.Defaults
	if source == "" {
		source = d.Source
	}
	if currency == "" {
		currency = d.Currency
	}
	if unit == "" {
		unit = d.Unit
	}
	if rng == "" {
		rng = d.Range
	}
	return selection{
		Source:   model.SourceByID(source),
		Currency: model.CurrencyByCode(currency),
		Unit:     model.UnitByCode(unit),
		Range:    model.RangeByLabel(rng),
	}
}

// WatchOptions configure the live watch loop.
type WatchOptions struct {
	Source      string
	Currency    string
	Unit        string
	Range       string
	StartPaused bool
}

// SnapshotOptions configure the one-shot snapshot command.
type SnapshotOptions struct {
	Source string
}

// ChartOptions hold parameters for exporting a history chart.
type ChartOptions struct {
	Source    string
	Currency  string
	Range     string
	PNGPath   string
	CSVPath   string
	MaxPoints int
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

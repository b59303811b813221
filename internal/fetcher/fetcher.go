package fetcher

import (
	"context"
	"errors"

	"spotwatch/internal/model"
)

// ErrMissingKey indicates the provider response lacked the expected
// source or currency key. Callers treat it as "no update".
var ErrMissingKey = errors.New("provider response missing expected key")

// SnapshotFetcher retrieves the current price snapshot for a source
// across a set of currencies.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, source model.Source, currencies []model.Currency) (model.PriceSnapshot, error)
}

// HistoryFetcher retrieves raw price history for a source/currency pair.
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, source model.Source, currency model.Currency, days int) (model.ChartHistory, error)
}

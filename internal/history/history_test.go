package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"spotwatch/internal/model"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

type fakeHistory struct {
	series model.ChartHistory
	err    error
	days   int
}

func (f *fakeHistory) FetchHistory(ctx context.Context, source model.Source, currency model.Currency, days int) (model.ChartHistory, error) {
	f.days = days
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

func pointAt(now time.Time, age time.Duration) model.ChartPoint {
	return model.ChartPoint{
		TimestampMs: now.Add(-age).UnixMilli(),
		Price:       decimal.NewFromInt(2000),
	}
}

func TestRefreshLastHourFilter(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	fake := &fakeHistory{series: model.ChartHistory{
		pointAt(now, 23*time.Hour),
		pointAt(now, 5*time.Hour),
		pointAt(now, 50*time.Minute),
		pointAt(now, 10*time.Minute),
	}}

	f := New(fake, noopLogger())
	f.now = func() time.Time { return now }

	got := f.Refresh(context.Background(), model.SourceByID("pax-gold"), model.CurrencyByCode("usd"), model.RangeByLabel("1H"))
	if fake.days != 1 {
		t.Fatalf("1H must request a 1-day window, got %d", fake.days)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 points within the last hour, got %d", len(got))
	}
	floor := now.Add(-time.Hour).UnixMilli()
	for _, pt := range got {
		if pt.TimestampMs < floor {
			t.Fatalf("point %d older than one hour", pt.TimestampMs)
		}
	}
}

func TestRefreshLast8HoursFilter(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	fake := &fakeHistory{series: model.ChartHistory{
		pointAt(now, 23*time.Hour),
		pointAt(now, 9*time.Hour),
		pointAt(now, 7*time.Hour),
		pointAt(now, time.Hour),
	}}

	f := New(fake, noopLogger())
	f.now = func() time.Time { return now }

	got := f.Refresh(context.Background(), model.SourceByID("pax-gold"), model.CurrencyByCode("usd"), model.RangeByLabel("8H"))
	if len(got) != 2 {
		t.Fatalf("expected 2 points within the last 8 hours, got %d", len(got))
	}
}

func TestRefreshUnfilteredRanges(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	series := model.ChartHistory{
		pointAt(now, 29*24*time.Hour),
		pointAt(now, 23*time.Hour),
		pointAt(now, time.Minute),
	}

	cases := map[string]int{"24H": 1, "7D": 7, "1M": 30}
	for label, wantDays := range cases {
		fake := &fakeHistory{series: series}
		f := New(fake, noopLogger())
		f.now = func() time.Time { return now }

		got := f.Refresh(context.Background(), model.SourceByID("pax-gold"), model.CurrencyByCode("usd"), model.RangeByLabel(label))
		if fake.days != wantDays {
			t.Fatalf("%s: requested %d-day window, want %d", label, fake.days, wantDays)
		}
		if len(got) != len(series) {
			t.Fatalf("%s must return the raw window unfiltered: got %d of %d points", label, len(got), len(series))
		}
	}
}

func TestRefreshFailureRetainsPrevious(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	fake := &fakeHistory{series: model.ChartHistory{pointAt(now, time.Hour)}}

	f := New(fake, noopLogger())
	f.now = func() time.Time { return now }

	first := f.Refresh(context.Background(), model.SourceByID("pax-gold"), model.CurrencyByCode("usd"), model.RangeByLabel("7D"))
	if len(first) != 1 {
		t.Fatalf("seed refresh failed: %d points", len(first))
	}

	fake.err = errors.New("provider unreachable")
	got := f.Refresh(context.Background(), model.SourceByID("pax-gold"), model.CurrencyByCode("usd"), model.RangeByLabel("7D"))
	if len(got) != 1 {
		t.Fatalf("failed refresh must keep the previous series, got %d points", len(got))
	}
	if len(f.Series()) != 1 {
		t.Fatal("held series must be unchanged after a failed refresh")
	}
}

func TestRefreshFailureFirstLoadIsEmpty(t *testing.T) {
	fake := &fakeHistory{err: errors.New("provider unreachable")}
	f := New(fake, noopLogger())

	got := f.Refresh(context.Background(), model.SourceByID("pax-gold"), model.CurrencyByCode("usd"), model.RangeByLabel("1M"))
	if len(got) != 0 {
		t.Fatalf("first-load failure must yield an empty series, got %d", len(got))
	}
}

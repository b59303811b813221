package display

import (
	"testing"

	"github.com/shopspring/decimal"

	"spotwatch/internal/model"
)

func TestPriceFormatting(t *testing.T) {
	usd := model.CurrencyByCode("usd")
	hkd := model.CurrencyByCode("hkd")

	cases := []struct {
		currency model.Currency
		value    float64
		want     string
	}{
		{usd, 2000, "$2,000.00"},
		{usd, 2406.74, "$2,406.74"},
		{usd, 0.5, "$0.50"},
		{usd, 1234567.891, "$1,234,567.89"},
		{hkd, 15600.5, "HK$15,600.50"},
		{usd, -12.3, "-$12.30"},
	}
	for _, tc := range cases {
		got := Price(tc.currency, decimal.NewFromFloat(tc.value))
		if got != tc.want {
			t.Fatalf("Price(%v): got %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestChangeBadge(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{1.5, "+1.50% ▲"},
		{-0.3, "-0.30% ▼"},
		{0, "0.00%"},
	}
	for _, tc := range cases {
		got := ChangeBadge(decimal.NewFromFloat(tc.pct))
		if got != tc.want {
			t.Fatalf("ChangeBadge(%v): got %q, want %q", tc.pct, got, tc.want)
		}
	}
}

func TestTaelAnchorExample(t *testing.T) {
	base := decimal.NewFromFloat(2000.00)
	anchor := model.Convert(base, model.UnitByCode("tael"))
	if got := Price(model.CurrencyByCode("usd"), anchor); got != "$2,406.74" {
		t.Fatalf("tael anchor display: got %q", got)
	}
}

func TestVolume(t *testing.T) {
	if got := Volume(decimal.NewFromFloat(12345678.9)); got != "12,345,679" {
		t.Fatalf("Volume: got %q", got)
	}
}

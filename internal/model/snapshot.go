package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the provider's view of one source in one currency.
type Quote struct {
	Price         decimal.Decimal
	Change24h     decimal.Decimal
	Volume24h     decimal.Decimal
	LastUpdatedAt time.Time
}

// PriceSnapshot maps lowercase currency codes to quotes. A snapshot is
// replaced wholesale on every successful poll, never merged.
type PriceSnapshot map[string]Quote

// Quote looks up the quote for a currency, falling back through
// CurrencyByCode so an unrecognized code lands on the first table entry.
func (s PriceSnapshot) Quote(currency Currency) (Quote, bool) {
	q, ok := s[currency.Code]
	if ok {
		return q, true
	}
	q, ok = s[Currencies[0].Code]
	return q, ok
}

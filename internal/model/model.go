package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Source identifies which underlying asset pool prices are drawn from.
type Source struct {
	ID          string
	DisplayName string
	Symbol      string
}

// Currency is a fiat denomination. Code is the key into provider
// responses and is lowercase on the wire.
type Currency struct {
	Code   string
	Symbol string
}

// Unit is a weight unit expressed relative to one troy ounce.
type Unit struct {
	Code       string
	Multiplier decimal.Decimal
}

var gramsPerTroyOunce = decimal.NewFromFloat(31.1034768)

// Sources lists the supported asset pools. The first entry is the
// fallback for unrecognized ids.
var Sources = []Source{
	{ID: "pax-gold", DisplayName: "PAX Gold", Symbol: "PAXG"},
	{ID: "tether-gold", DisplayName: "Tether Gold", Symbol: "XAUT"},
}

// Currencies lists the supported fiat denominations.
var Currencies = []Currency{
	{Code: "usd", Symbol: "$"},
	{Code: "eur", Symbol: "€"},
	{Code: "gbp", Symbol: "£"},
	{Code: "hkd", Symbol: "HK$"},
	{Code: "cny", Symbol: "¥"},
}

// Units lists the supported weight units. Tael and mace are the
// traditional Hong Kong units; 1 tael = 10 mace.
var Units = []Unit{
	{Code: "oz", Multiplier: decimal.NewFromInt(1)},
	{Code: "g", Multiplier: decimal.NewFromInt(1).Div(gramsPerTroyOunce)},
	{Code: "kg", Multiplier: decimal.NewFromInt(1000).Div(gramsPerTroyOunce)},
	{Code: "mace", Multiplier: decimal.NewFromFloat(0.120337)},
	{Code: "tael", Multiplier: decimal.NewFromFloat(1.20337)},
}

// SourceByID resolves a source id, falling back to the first table
// entry rather than failing.
func SourceByID(id string) Source {
	for _, s := range Sources {
		if s.ID == id {
			return s
		}
	}
	return Sources[0]
}

// CurrencyByCode resolves a currency code case-insensitively, falling
// back to the first table entry.
func CurrencyByCode(code string) Currency {
	code = strings.ToLower(code)
	for _, c := range Currencies {
		if c.Code == code {
			return c
		}
	}
	return Currencies[0]
}

// UnitByCode resolves a unit code, falling back to the first table
// entry (troy ounce).
func UnitByCode(code string) Unit {
	code = strings.ToLower(code)
	for _, u := range Units {
		if u.Code == code {
			return u
		}
	}
	return Units[0]
}

// Convert converts a price quoted per troy ounce into the given unit.
func Convert(basePerOunce decimal.Decimal, unit Unit) decimal.Decimal {
	return basePerOunce.Mul(unit.Multiplier)
}

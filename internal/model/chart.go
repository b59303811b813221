package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ChartPoint is one historical price observation.
type ChartPoint struct {
	TimestampMs int64
	Price       decimal.Decimal
}

// ChartHistory is a time-ordered series, ascending by timestamp.
// Replaced wholesale per fetch, never merged across fetches.
type ChartHistory []ChartPoint

// SliceMode narrows a raw history window to a shorter visible range
// after fetching.
type SliceMode string

const (
	SliceNone       SliceMode = "none"
	SliceLastHour   SliceMode = "last_hour"
	SliceLast8Hours SliceMode = "last_8_hours"
	// Slice24H spans the full one-day request window, so no local
	// filter is applied; it behaves exactly like SliceNone.
	Slice24H SliceMode = "24h"
)

// RangeSelector maps a human-chosen range label to a provider query
// window and a local post-filter.
type RangeSelector struct {
	Label             string
	RequestWindowDays int
	SliceMode         SliceMode
}

// Ranges is the fixed, ordered table of selectable chart ranges.
var Ranges = []RangeSelector{
	{Label: "1H", RequestWindowDays: 1, SliceMode: SliceLastHour},
	{Label: "8H", RequestWindowDays: 1, SliceMode: SliceLast8Hours},
	{Label: "24H", RequestWindowDays: 1, SliceMode: Slice24H},
	{Label: "7D", RequestWindowDays: 7, SliceMode: SliceNone},
	{Label: "1M", RequestWindowDays: 30, SliceMode: SliceNone},
}

// RangeByLabel resolves a range label case-insensitively, falling back
// to the first table entry.
func RangeByLabel(label string) RangeSelector {
	label = strings.ToUpper(label)
	for _, r := range Ranges {
		if r.Label == label {
			return r
		}
	}
	return Ranges[0]
}

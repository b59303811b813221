package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"spotwatch/internal/model"
)

// Price renders a value with the currency symbol and comma-grouped
// digits, always to two decimal places: "$2,000.00".
func Price(currency model.Currency, value decimal.Decimal) string {
	fixed := value.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, _ := strings.Cut(fixed, ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = humanize.Comma(n)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return sign + currency.Symbol + whole + "." + frac
}

// ChangeBadge renders a 24h change percentage with a direction
// indicator: "+1.50% ▲", "-0.30% ▼", "0.00%".
func ChangeBadge(pct decimal.Decimal) string {
	switch pct.Sign() {
	case 1:
		return fmt.Sprintf("+%s%% ▲", pct.StringFixed(2))
	case -1:
		return fmt.Sprintf("%s%% ▼", pct.StringFixed(2))
	default:
		return "0.00%"
	}
}

// Volume renders a 24h volume with comma grouping and no fraction.
func Volume(value decimal.Decimal) string {
	return humanize.Comma(value.Round(0).IntPart())
}

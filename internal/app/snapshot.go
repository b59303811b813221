package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"spotwatch/internal/display"
	"spotwatch/internal/model"
)

// Snapshot performs a single acquisition and prints the quotes for
// every supported currency.
func (a *App) Snapshot(ctx context.Context, opts SnapshotOptions) error {
	sel := a.resolveSelection(opts.Source, "", "", "")
	resolver := a.newResolver()
	provider := a.newProvider(resolver)

	snap, err := provider.FetchSnapshot(ctx, sel.Source, model.Currencies)
	if err != nil {
		return fmt.Errorf("fetch snapshot for %s: %w", sel.Source.ID, err)
	}

	if resolver.UsedRelay() {
		a.Logger.Info().Msg("snapshot served via relay endpoint")
	}

	fmt.Fprintf(os.Stdout, "%s (%s)\n\n", sel.Source.DisplayName, sel.Source.Symbol)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Currency\tPrice/oz\t24h Change\t24h Volume\tUpdated (UTC)")

	for _, currency := range model.Currencies {
		quote, ok := snap[currency.Code]
		if !ok {
			continue
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			currency.Code,
			display.Price(currency, quote.Price),
			display.ChangeBadge(quote.Change24h),
			display.Volume(quote.Volume24h),
			formatTimestamp(quote.LastUpdatedAt),
		)
	}

	return writer.Flush()
}

package cli

import (
	"github.com/spf13/cobra"

	"spotwatch/internal/app"
)

var (
	watchSource   string
	watchCurrency string
	watchUnit     string
	watchRange    string
	watchPaused   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the live price watch loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.WatchOptions{
			Source:      watchSource,
			Currency:    watchCurrency,
			Unit:        watchUnit,
			Range:       watchRange,
			StartPaused: watchPaused,
		}
		return getApp().Watch(cmd.Context(), opts)
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchSource, "source", "", "Asset pool id (defaults to config)")
	watchCmd.Flags().StringVar(&watchCurrency, "currency", "", "Currency code (defaults to config)")
	watchCmd.Flags().StringVar(&watchUnit, "unit", "", "Weight unit (defaults to config)")
	watchCmd.Flags().StringVar(&watchRange, "range", "", "Chart range label (defaults to config)")
	watchCmd.Flags().BoolVar(&watchPaused, "paused", false, "Start in the paused state")
}

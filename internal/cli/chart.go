package cli

import (
	"github.com/spf13/cobra"

	"spotwatch/internal/app"
)

var (
	chartSource    string
	chartCurrency  string
	chartRange     string
	chartPNGPath   string
	chartCSVPath   string
	chartMaxPoints int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Export the price history for a range as CSV and/or PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ChartOptions{
			Source:    chartSource,
			Currency:  chartCurrency,
			Range:     chartRange,
			PNGPath:   chartPNGPath,
			CSVPath:   chartCSVPath,
			MaxPoints: chartMaxPoints,
		}
		return getApp().Chart(cmd.Context(), opts)
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartSource, "source", "", "Asset pool id (defaults to config)")
	chartCmd.Flags().StringVar(&chartCurrency, "currency", "", "Currency code (defaults to config)")
	chartCmd.Flags().StringVar(&chartRange, "range", "", "Range label: 1H, 8H, 24H, 7D, 1M (defaults to config)")
	chartCmd.Flags().StringVar(&chartPNGPath, "png", "", "Path to write PNG chart")
	chartCmd.Flags().StringVar(&chartCSVPath, "csv", "", "Path to write CSV data")
	chartCmd.Flags().IntVar(&chartMaxPoints, "max-points", 0, "Maximum data points to export (defaults to config)")
}

package app

import (
	"context"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"spotwatch/internal/history"
	"spotwatch/internal/model"
)

// Chart resolves the selected range and writes the series as CSV
// and/or a PNG chart.
func (a *App) Chart(ctx context.Context, opts ChartOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	opts.MaxPoints = a.Config.ResolveMaxPoints(opts.MaxPoints)

	sel := a.resolveSelection(opts.Source, opts.Currency, "", opts.Range)
	provider := a.newProvider(a.newResolver())

	hist := history.New(provider, a.Logger)
	series := hist.Refresh(ctx, sel.Source, sel.Currency, sel.Range)
	if len(series) == 0 {
		a.Logger.Info().Str("range", sel.Range.Label).Msg("no chart points resolved")
		return nil
	}

	downsampled := downsampleSeries(series, opts.MaxPoints)
	a.Logger.Info().
		Str("range", sel.Range.Label).
		Int("total", len(series)).
		Int("exported", len(downsampled)).
		Msg("exporting chart series")

	if opts.CSVPath != "" {
		if err := writeSeriesCSV(opts.CSVPath, downsampled); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := a.writeSeriesPNG(opts.PNGPath, sel, downsampled); err != nil {
			return err
		}
	}

	return nil
}

func downsampleSeries(series model.ChartHistory, max int) model.ChartHistory {
	if max <= 0 || len(series) <= max {
		return series
	}

	result := make(model.ChartHistory, 0, max)
	step := float64(len(series)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(series) {
			idx = len(series) - 1
		}
		result = append(result, series[idx])
	}
	return result
}

func writeSeriesCSV(path string, series model.ChartHistory) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"timestamp", "price"}); err != nil {
		return err
	}

	for _, pt := range series {
		record := []string{
			time.UnixMilli(pt.TimestampMs).UTC().Format(time.RFC3339),
			pt.Price.String(),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func (a *App) writeSeriesPNG(path string, sel selection, series model.ChartHistory) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]time.Time, len(series))
	y := make([]float64, len(series))
	for i, pt := range series {
		x[i] = time.UnixMilli(pt.TimestampMs).UTC()
		y[i] = pt.Price.InexactFloat64()
	}

	priceFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.2f")
	}
	graph := chart.Chart{
		Width:  a.Config.Chart.Width,
		Height: a.Config.Chart.Height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Price (" + sel.Currency.Code + "/oz)",
			ValueFormatter: priceFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    sel.Source.Symbol + " " + sel.Range.Label,
				XValues: x,
				YValues: y,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

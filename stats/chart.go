package stats

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PlotSkipReasons renders a bar chart of skip-reason counts alongside
// the matched record count, adapted from the teacher's
// heatmap chart wiring (same go-echarts components.Page render-to-file
// shape, different series data).
func PlotSkipReasons(s ProcessingStats, filename string) error {
	reasons := sortedReasonKeys(s.SkipReasons)

	labels := make([]string, 0, len(reasons)+1)
	values := make([]opts.BarData, 0, len(reasons)+1)
	for _, reason := range reasons {
		labels = append(labels, reason)
		values = append(values, opts.BarData{Value: s.SkipReasons[reason]})
	}
	labels = append(labels, "matched")
	values = append(values, opts.BarData{Value: s.RecordsMatched})

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Skip Reasons",
			Theme:           types.ThemeVintage,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Files skipped by reason, vs. matched records",
			Left:  "center",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Reason", Type: "category", Data: labels}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count", Type: "value"}),
	)
	bar.SetXAxis(labels).AddSeries("count", values)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(bar)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create skip-reason chart file %s: %w", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering skip-reason chart: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteSweepChart renders a dephasing-strength sweep to an HTML line
// chart: the unmitigated ground-state probability of the circuit against
// the value obtained with each catalog rule's decoupling sequences
// inserted. One x-axis point per theta value.
func WriteSweepChart(path string, c *Circuit, cat *Catalog, thetas []float64) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Dynamical decoupling under idle dephasing",
			Subtitle: "ground-state probability vs dephasing angle per idle moment",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "theta (rad)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "P(|0...0⟩)"}),
	)

	labels := make([]string, len(thetas))
	for i, theta := range thetas {
		labels[i] = fmt.Sprintf("%.3f", theta)
	}
	line.SetXAxis(labels)

	raw := make([]opts.LineData, len(thetas))
	for i, theta := range thetas {
		value, err := DephasingExecutor(theta)(c)
		if err != nil {
			return err
		}
		raw[i] = opts.LineData{Value: value}
	}
	line.AddSeries("unmitigated", raw)

	for _, name := range cat.Names() {
		rule, err := cat.Lookup(name)
		if err != nil {
			return err
		}
		series := make([]opts.LineData, len(thetas))
		for i, theta := range thetas {
			value, err := ExecuteWithDDD(c, DephasingExecutor(theta), rule, 1)
			if err != nil {
				return err
			}
			series[i] = opts.LineData{Value: value}
		}
		line.AddSeries("ddd "+name, series)
	}

	page := components.NewPage().SetPageTitle("DDD sweep")
	page.AddCharts(line)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

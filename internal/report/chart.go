package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart sizes in pixels.
const (
	ChartWidth  = 640
	ChartHeight = 400
)

// WriteChart renders the EXP-by-module bar chart as PNG.
func (r *Report) WriteChart(w io.Writer) error {
	if len(r.expByModule) == 0 {
		return fmt.Errorf("render chart: no modules")
	}

	maxValue := 1.0
	bars := make([]chart.Value, len(r.expByModule))
	for i, s := range r.expByModule {
		maxValue = max(maxValue, float64(s.Value))
		color := chartColor(s.Color)
		bars[i] = chart.Value{
			Label: s.Name,
			Value: float64(s.Value),
			Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		}
	}

	graph := chart.BarChart{
		Title:      "EXP by module",
		Width:      ChartWidth,
		Height:     ChartHeight,
		BarWidth:   90,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		// An all-zero chart (a new profile) still needs a non-empty range.
		YAxis: chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1}},
		Bars:  bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func chartColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 && len(hex) != 3 {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(hex)
}

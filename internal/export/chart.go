package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hellora/rentbook/internal/domain"
	"github.com/hellora/rentbook/internal/log"
	"github.com/hellora/rentbook/internal/query"
	"github.com/samber/lo"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	TypeChart Type = "chart"

	chartMinWidth  = 1024
	chartHeight    = 400
	chartBarWidth  = 40
	chartBarSpace  = 20
	chartSidePad   = 200
	chartHeadroom  = 1.1
	chartBarColour = "8884d8"
)

func init() {
	Register(TypeChart, func(opts Options) (Exporter, error) {
		return &ChartExporter{title: opts.Title}, nil
	})
}

var _ Exporter = (*ChartExporter)(nil)

// ChartExporter renders daily revenue of the view as a PNG bar chart, one bar per date in
// first-seen order.
type ChartExporter struct {
	title string
}

func (c *ChartExporter) Type() Type {
	return TypeChart
}

func (c *ChartExporter) Extension() string {
	return ".png"
}

func (c *ChartExporter) Export(ctx context.Context, w io.Writer, view []domain.Record) error {
	aggregates := query.DailyAggregates(view)
	if len(aggregates) == 0 {
		return ErrEmptyView
	}

	colour := drawing.ColorFromHex(chartBarColour)
	bars := lo.Map(aggregates, func(a domain.DailyAggregate, _ int) chart.Value {
		return chart.Value{
			Label: a.Date,
			Value: float64(a.Total),
			Style: chart.Style{
				FillColor:   colour,
				StrokeColor: colour,
			},
		}
	})

	highest := lo.MaxBy(aggregates, func(a, b domain.DailyAggregate) bool { return a.Total > b.Total }).Total
	top := float64(max(highest, 1)) * chartHeadroom

	graph := chart.BarChart{
		Title:  c.title,
		Width:  max(chartMinWidth, len(bars)*(chartBarWidth+chartBarSpace)+chartSidePad),
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		BarWidth:   chartBarWidth,
		BarSpacing: chartBarSpace,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}

	log.FromContext(ctx).DebugContext(ctx, "rendering chart",
		slog.Int("chart.bars", len(bars)),
		slog.Int64("chart.max", highest),
	)

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}

package playerservice

import (
	"bytes"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
)

// ratingHistoryChart renders a PNG line chart of a player's rating snapshots
// over time. Rows arrive newest first; unrated snapshots (the early rounds
// before the minimum sample size) are skipped since the sentinel would dwarf
// the real range.
func ratingHistoryChart(rows []playerdb.ScoreRow) ([]byte, error) {
	var xValues []time.Time
	var yValues []float64
	for i := len(rows) - 1; i >= 0; i-- {
		if !rows[i].Rating.IsRated() {
			continue
		}
		xValues = append(xValues, time.Unix(rows[i].Timestamp, 0))
		yValues = append(yValues, float64(rows[i].Rating))
	}

	// go-chart needs at least two points to draw a line.
	if len(xValues) < 2 {
		return renderNoDataPlaceholder()
	}

	mainSeries := chart.TimeSeries{
		Name:    "Rating",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    chart.ColorAlternateBlue,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis: chart.YAxis{
			Name: "Rating",
			// Lower ratings are better in golf, put them on top.
			Range: &chart.ContinuousRange{Descending: true},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "Not enough rated rounds yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(drawing.ColorBlack)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

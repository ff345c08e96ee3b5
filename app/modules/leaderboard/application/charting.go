package leaderboardservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	tableRowHeight = 24
	tableWidth     = 420
	tablePadding   = 16
)

// renderRankingTable draws the ranking as a PNG text table. go-chart has no
// table primitive, so rows are laid out with raw renderables.
func renderRankingTable(ranking []RankedPlayer) ([]byte, error) {
	lines := make([]string, 0, len(ranking)+1)
	lines = append(lines, "Rank  Rating  Player")
	for _, entry := range ranking {
		lines = append(lines, fmt.Sprintf("%4d  %+.3f  %s", entry.Rank, float64(entry.Rating), entry.PlayerName))
	}
	if len(ranking) == 0 {
		lines = append(lines, "No rated players yet")
	}

	height := tablePadding*2 + tableRowHeight*len(lines)
	graph := chart.Chart{
		Width:  tableWidth,
		Height: height,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(drawing.ColorBlack)
				r.SetFontSize(12.0)
				for i, line := range lines {
					r.Text(line, cb.Left+tablePadding, cb.Top+tablePadding+tableRowHeight*(i+1))
				}
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

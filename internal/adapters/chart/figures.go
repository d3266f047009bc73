// Package chart composes per-team figures and renders them as images.
package chart

import (
	"github.com/okian/eplhistory/internal/domain/aggregate"
	"github.com/okian/eplhistory/internal/domain/model"
	"github.com/okian/eplhistory/internal/domain/palette"
)

// Line widths and opacity used by the comparison panel.
const (
	otherLineWidth    = 2
	selectedLineWidth = 4
	otherOpacity      = 0.5
	summaryHole       = 0.3
)

// LineSeries is one team's wins per season, aligned with ComparisonFigure.Years.
// Nil entries are seasons the team did not win a match in.
type LineSeries struct {
	Team      string  `json:"team"`
	Color     string  `json:"color"`
	Hex       string  `json:"hex"`
	Width     float64 `json:"width"`
	Opacity   float64 `json:"opacity"`
	Highlight bool    `json:"highlight"`
	Wins      []*int  `json:"wins"`
}

// BarSeries is one stacked component (wins, draws or losses) per season.
type BarSeries struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Hex    string `json:"hex"`
	Years  []int  `json:"years"`
	Values []int  `json:"values"`
}

// ComparisonFigure is the two-panel season view of one team against the league.
type ComparisonFigure struct {
	Title      string       `json:"title"`
	Team       string       `json:"team"`
	LinesTitle string       `json:"lines_title"`
	BarsTitle  string       `json:"bars_title"`
	Years      []int        `json:"years"`
	Lines      []LineSeries `json:"lines"`
	Bars       []BarSeries  `json:"bars"`
}

// Slice is one donut segment.
type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
	Hex   string `json:"hex"`
}

// SummaryFigure is the all-time wins/draws/losses donut of one team.
type SummaryFigure struct {
	Title  string  `json:"title"`
	Team   string  `json:"team"`
	Hole   float64 `json:"hole"`
	Slices []Slice `json:"slices"`
}

// Comparison builds the comparison figure. Other teams are drawn faint grey
// and the selected team last so it sits on top.
func Comparison(m aggregate.WinsMatrix, stats []model.SeasonStats, team, color string) ComparisonFigure {
	fig := ComparisonFigure{
		Title:      team + " in the league by season",
		Team:       team,
		LinesTitle: "Wins compared with other teams",
		BarsTitle:  "Results by season",
		Years:      append([]int{}, m.Years...),
		Lines:      make([]LineSeries, 0, len(m.Teams)),
	}

	var selected *LineSeries
	for _, t := range m.Teams {
		col, _ := m.Column(t)
		if t == team {
			selected = &LineSeries{
				Team: t, Color: color, Hex: palette.Hex(color),
				Width: selectedLineWidth, Opacity: 1, Highlight: true, Wins: col,
			}
			continue
		}
		fig.Lines = append(fig.Lines, LineSeries{
			Team: t, Color: palette.Others, Hex: palette.Hex(palette.Others),
			Width: otherLineWidth, Opacity: otherOpacity, Wins: col,
		})
	}
	if selected != nil {
		fig.Lines = append(fig.Lines, *selected)
	}

	years := make([]int, len(stats))
	wins := make([]int, len(stats))
	draws := make([]int, len(stats))
	losses := make([]int, len(stats))
	for i, s := range stats {
		years[i], wins[i], draws[i], losses[i] = s.Year, s.Wins, s.Draws, s.Losses
	}
	fig.Bars = []BarSeries{
		{Name: "Wins", Color: color, Hex: palette.Hex(color), Years: years, Values: wins},
		{Name: "Draws", Color: palette.Draws, Hex: palette.Hex(palette.Draws), Years: years, Values: draws},
		{Name: "Losses", Color: palette.Losses, Hex: palette.Hex(palette.Losses), Years: years, Values: losses},
	}
	return fig
}

// Summary builds the donut figure of a team's all-time totals.
func Summary(t model.Totals, team, color string) SummaryFigure {
	return SummaryFigure{
		Title: team + " in the league overall",
		Team:  team,
		Hole:  summaryHole,
		Slices: []Slice{
			{Label: "Wins", Value: t.Wins, Color: color, Hex: palette.Hex(color)},
			{Label: "Draws", Value: t.Draws, Color: palette.Draws, Hex: palette.Hex(palette.Draws)},
			{Label: "Losses", Value: t.Losses, Color: palette.Losses, Hex: palette.Hex(palette.Losses)},
		},
	}
}

// Selected returns the highlighted series, if the team appears in the matrix.
func (f ComparisonFigure) Selected() (LineSeries, bool) {
	for _, l := range f.Lines {
		if l.Highlight {
			return l, true
		}
	}
	return LineSeries{}, false
}

// Empty reports whether the team has no season of results to draw.
func (f ComparisonFigure) Empty() bool {
	return len(f.Bars) == 0 || len(f.Bars[0].Years) == 0
}

// Empty reports whether every slice is zero.
func (f SummaryFigure) Empty() bool {
	for _, s := range f.Slices {
		if s.Value > 0 {
			return false
		}
	}
	return true
}

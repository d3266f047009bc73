package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/eplhistory/pkg/metrics"
)

// Kind names a renderable chart.
type Kind string

// Chart kinds.
const (
	KindWins    Kind = "wins"
	KindSeasons Kind = "seasons"
	KindSummary Kind = "summary"
)

// ParseKind validates a chart kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindWins, KindSeasons, KindSummary:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Format is an image encoding.
type Format string

// Image formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates an image format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the HTTP media type of f.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatPNG {
		return gochart.PNG
	}
	return gochart.SVG
}

const (
	defaultWidth  = 1024
	defaultHeight = 480
	maxYearTicks  = 12
	barTickPad    = 0.5
	otherAlpha    = 128
	dotWidth      = 5
)

// Renderer draws figures with go-chart.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a Renderer; the default size is 1024x480.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the figure matching kind.
func (r *Renderer) Render(w io.Writer, kind Kind, cmp ComparisonFigure, sum SummaryFigure, f Format) error {
	switch kind {
	case KindWins:
		return r.RenderComparisonLines(w, cmp, f)
	case KindSeasons:
		return r.RenderSeasonBars(w, cmp, f)
	case KindSummary:
		return r.RenderSummary(w, sum, f)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// RenderComparisonLines draws wins per season for every team with the
// selected team highlighted. Seasons without wins break a line.
func (r *Renderer) RenderComparisonLines(w io.Writer, fig ComparisonFigure, f Format) error {
	if len(fig.Years) == 0 || len(fig.Lines) == 0 {
		return ErrNoData
	}
	defer observe(KindWins, f, time.Now())

	maxWins := 1
	series := make([]gochart.Series, 0, len(fig.Lines))
	for _, l := range fig.Lines {
		for _, seg := range segments(fig.Years, l.Wins) {
			for _, y := range seg.y {
				if int(y) > maxWins {
					maxWins = int(y)
				}
			}
			series = append(series, gochart.ContinuousSeries{
				Name:    l.Team,
				XValues: seg.x,
				YValues: seg.y,
				Style:   lineStyle(l, len(seg.x)),
			})
		}
	}

	if len(series) == 0 {
		return ErrNoData
	}

	// go-chart takes the x range from the ticks, so they span every year.
	ticks := yearTicks(fig.Years, 0)
	ch := gochart.Chart{
		Title:  fig.Title,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:           "Season",
			Range:          &gochart.ContinuousRange{Min: ticks[0].Value, Max: ticks[len(ticks)-1].Value},
			ValueFormatter: yearFormatter,
			Ticks:          ticks,
		},
		YAxis: gochart.YAxis{
			Name:  "Wins",
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxWins) + 1},
		},
		Series: series,
	}
	return renderErr(ch.Render(f.provider(), w))
}

// RenderSeasonBars draws one bar per season stacking wins, draws and
// losses as absolute counts.
func (r *Renderer) RenderSeasonBars(w io.Writer, fig ComparisonFigure, f Format) error {
	if fig.Empty() {
		return ErrNoData
	}
	defer observe(KindSeasons, f, time.Now())

	layers, tallest := stackLayers(fig.Bars)
	series := make([]gochart.Series, len(layers))
	for i, l := range layers {
		series[i] = l
	}

	ticks := yearTicks(fig.Bars[0].Years, barTickPad)
	ch := gochart.Chart{
		Title:  fig.Team + ": " + fig.BarsTitle,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:           "Season",
			Range:          &gochart.ContinuousRange{Min: ticks[0].Value, Max: ticks[len(ticks)-1].Value},
			ValueFormatter: yearFormatter,
			Ticks:          ticks,
		},
		YAxis: gochart.YAxis{
			Name:  "Matches",
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(tallest) + 1},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return renderErr(ch.Render(f.provider(), w))
}

// RenderSummary draws the all-time donut.
func (r *Renderer) RenderSummary(w io.Writer, fig SummaryFigure, f Format) error {
	if fig.Empty() {
		return ErrNoData
	}
	defer observe(KindSummary, f, time.Now())

	values := make([]gochart.Value, 0, len(fig.Slices))
	for _, s := range fig.Slices {
		if s.Value == 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s %d", s.Label, s.Value),
			Value: float64(s.Value),
			Style: gochart.Style{FillColor: colorOf(s.Hex), StrokeColor: gochart.ColorWhite},
		})
	}

	size := r.height
	if r.width < size {
		size = r.width
	}
	ch := gochart.DonutChart{
		Title:  fig.Title,
		Width:  size,
		Height: size,
		Values: values,
	}
	return renderErr(ch.Render(f.provider(), w))
}

type segment struct {
	x, y []float64
}

// segments splits an aligned series at nil cells.
func segments(years []int, wins []*int) []segment {
	var (
		out []segment
		cur segment
	)
	for i, y := range years {
		if i >= len(wins) || wins[i] == nil {
			if len(cur.x) > 0 {
				out = append(out, cur)
				cur = segment{}
			}
			continue
		}
		cur.x = append(cur.x, float64(y))
		cur.y = append(cur.y, float64(*wins[i]))
	}
	if len(cur.x) > 0 {
		out = append(out, cur)
	}
	return out
}

func labelStep(n int) int {
	step := (n + maxYearTicks - 1) / maxYearTicks
	if step < 1 {
		step = 1
	}
	return step
}

// yearTicks labels every step-th year and always the last one. pad widens
// the axis on both sides with unlabelled ticks; a single year is padded by
// one so the axis never collapses.
func yearTicks(years []int, pad float64) []gochart.Tick {
	if len(years) == 0 {
		return nil
	}
	first, last := years[0], years[len(years)-1]
	if first == last && pad == 0 {
		pad = 1
	}

	step := labelStep(len(years))
	ticks := make([]gochart.Tick, 0, len(years)/step+4)
	if pad > 0 {
		ticks = append(ticks, gochart.Tick{Value: float64(first) - pad})
	}
	for i := 0; i < len(years); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(years[i]), Label: strconv.Itoa(years[i])})
	}
	if ticks[len(ticks)-1].Value != float64(last) {
		ticks = append(ticks, gochart.Tick{Value: float64(last), Label: strconv.Itoa(last)})
	}
	if pad > 0 {
		ticks = append(ticks, gochart.Tick{Value: float64(last) + pad})
	}
	return ticks
}

// lineStyle highlights the selected team. Single-season segments always get
// a dot since a lone point has no line to stroke.
func lineStyle(l LineSeries, points int) gochart.Style {
	c := colorOf(l.Hex)
	if !l.Highlight {
		c = c.WithAlpha(otherAlpha)
	}
	style := gochart.Style{StrokeColor: c, StrokeWidth: l.Width}
	if l.Highlight || points == 1 {
		style.DotColor = c
		style.DotWidth = dotWidth
	}
	return style
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(f))
	}
	return ""
}

func colorOf(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func observe(kind Kind, f Format, start time.Time) {
	metrics.RecordChartRender(string(kind), string(f))
	metrics.RecordChartRenderLatency(string(kind), float64(time.Since(start).Microseconds())/1000)
}

func renderErr(err error) error {
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

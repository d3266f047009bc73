package chart

import (
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// barFill is the share of a season's width a bar covers.
const barFill = 0.7

// barLayer is one result category of a stacked season bar chart. It draws
// absolute counts on top of base, so layers stack without being scaled.
type barLayer struct {
	name   string
	style  gochart.Style
	years  []int
	base   []int
	values []int
}

var _ gochart.Series = barLayer{}

func (b barLayer) GetName() string { return b.name }
func (b barLayer) GetYAxis() gochart.YAxisType { return gochart.YAxisPrimary }
func (b barLayer) GetStyle() gochart.Style { return b.style }

func (b barLayer) Validate() error {
	if len(b.years) != len(b.values) || len(b.years) != len(b.base) {
		return fmt.Errorf("%w: layer %s has %d years, %d values, %d bases",
			ErrRender, b.name, len(b.years), len(b.values), len(b.base))
	}
	return nil
}

// Render draws one box per season with a non-zero count.
func (b barLayer) Render(r gochart.Renderer, canvas gochart.Box, xrange, yrange gochart.Range, _ gochart.Style) {
	half := barFill / 2
	for i, y := range b.years {
		if b.values[i] == 0 {
			continue
		}
		x := float64(y)
		box := gochart.Box{
			Left:   canvas.Left + xrange.Translate(x-half),
			Right:  canvas.Left + xrange.Translate(x+half),
			Top:    canvas.Bottom - yrange.Translate(float64(b.base[i]+b.values[i])),
			Bottom: canvas.Bottom - yrange.Translate(float64(b.base[i])),
		}
		gochart.Draw.Box(r, box, b.style)
	}
}

// stackLayers turns the figure's bar series into layers stacked in order,
// and returns the tallest stack.
func stackLayers(bars []BarSeries) ([]barLayer, int) {
	if len(bars) == 0 {
		return nil, 0
	}
	years := bars[0].Years
	running := make([]int, len(years))
	layers := make([]barLayer, 0, len(bars))
	for _, s := range bars {
		base := append([]int(nil), running...)
		values := make([]int, len(years))
		for i := range years {
			if i < len(s.Values) {
				values[i] = s.Values[i]
			}
			running[i] += values[i]
		}
		c := colorOf(s.Hex)
		layers = append(layers, barLayer{
			name:   s.Name,
			style:  gochart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1},
			years:  years,
			base:   base,
			values: values,
		})
	}

	tallest := 0
	for _, v := range running {
		if v > tallest {
			tallest = v
		}
	}
	return layers, tallest
}

package chart

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/eplhistory/internal/domain/aggregate"
	"github.com/okian/eplhistory/internal/domain/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderer(t *testing.T) {
	Convey("Given figures for Arsenal", t, func() {
		tbl := fixtureTable()
		m := aggregate.BuildWinsMatrix(tbl, []string{"Arsenal", "Chelsea", "Everton"})
		stats := aggregate.StatsBySeason(tbl, "Arsenal")
		cmpFig := Comparison(m, stats, "Arsenal", "Crimson")
		sumFig := Summary(aggregate.Totals(stats), "Arsenal", "Crimson")
		r := NewRenderer(WithSize(640, 360))

		for _, kind := range []Kind{KindWins, KindSeasons, KindSummary} {
			Convey("When rendering "+string(kind)+" as SVG", func() {
				var buf bytes.Buffer
				err := r.Render(&buf, kind, cmpFig, sumFig, FormatSVG)

				Convey("Then an SVG document is written", func() {
					So(err, ShouldBeNil)
					So(buf.String(), ShouldContainSubstring, "<svg")
				})
			})

			Convey("When rendering "+string(kind)+" as PNG", func() {
				var buf bytes.Buffer
				err := r.Render(&buf, kind, cmpFig, sumFig, FormatPNG)

				Convey("Then a PNG image is written", func() {
					So(err, ShouldBeNil)
					So(bytes.HasPrefix(buf.Bytes(), pngMagic), ShouldBeTrue)
				})
			})
		}

		Convey("When a single season is charted", func() {
			one := aggregate.Table{{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Result: model.ResultHome, SeasonEndYear: 2020}}
			fig := Comparison(aggregate.BuildWinsMatrix(one, []string{"Arsenal", "Chelsea"}),
				aggregate.StatsBySeason(one, "Arsenal"), "Arsenal", "Crimson")

			Convey("Then the line chart still renders", func() {
				var buf bytes.Buffer
				So(r.RenderComparisonLines(&buf, fig, FormatSVG), ShouldBeNil)
			})
		})
	})

	Convey("Given empty figures", t, func() {
		r := NewRenderer()
		var buf bytes.Buffer

		Convey("Then every renderer reports ErrNoData", func() {
			empty := Comparison(aggregate.WinsMatrix{}, nil, "Leeds", "MediumSeaGreen")
			So(errors.Is(r.RenderComparisonLines(&buf, empty, FormatSVG), ErrNoData), ShouldBeTrue)
			So(errors.Is(r.RenderSeasonBars(&buf, empty, FormatSVG), ErrNoData), ShouldBeTrue)
			So(errors.Is(r.RenderSummary(&buf, Summary(model.Totals{}, "Leeds", "MediumSeaGreen"), FormatPNG), ErrNoData), ShouldBeTrue)
			So(buf.Len(), ShouldEqual, 0)
		})
	})
}

// longTable has Arsenal winning one home match in every season from 1993 to
// 2022, and Blackpool winning only in 2011.
func longTable() aggregate.Table {
	var tbl aggregate.Table
	for y := 1993; y <= 2022; y++ {
		tbl = append(tbl, model.Match{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Result: model.ResultHome, SeasonEndYear: y})
	}
	return append(tbl, model.Match{HomeTeam: "Blackpool", AwayTeam: "Chelsea", Result: model.ResultHome, SeasonEndYear: 2011})
}

func TestRendererAcrossManySeasons(t *testing.T) {
	Convey("Given thirty seasons and a club that won once", t, func() {
		tbl := longTable()
		m := aggregate.BuildWinsMatrix(tbl, []string{"Arsenal", "Blackpool", "Chelsea"})
		fig := Comparison(m, aggregate.StatsBySeason(tbl, "Arsenal"), "Arsenal", "Crimson")
		r := NewRenderer()

		Convey("Then the axis ticks span the first and the final season", func() {
			ticks := yearTicks(fig.Years, 0)
			So(ticks[0].Value, ShouldEqual, 1993)
			So(ticks[len(ticks)-1].Value, ShouldEqual, 2022)
			So(ticks[len(ticks)-1].Label, ShouldEqual, "2022")
		})

		Convey("Then the lone Blackpool season is drawn as a dot", func() {
			segs := segments(fig.Years, m.Wins["Blackpool"])
			So(segs, ShouldHaveLength, 1)
			So(segs[0].x, ShouldHaveLength, 1)
			style := lineStyle(fig.Lines[0], len(segs[0].x))
			So(style.DotWidth, ShouldBeGreaterThan, 0)
		})

		Convey("Then every chart renders and labels the final season", func() {
			var lines, bars bytes.Buffer
			So(r.RenderComparisonLines(&lines, fig, FormatSVG), ShouldBeNil)
			So(lines.String(), ShouldContainSubstring, "2022")
			So(r.RenderSeasonBars(&bars, fig, FormatSVG), ShouldBeNil)
			So(bars.String(), ShouldContainSubstring, "2022")
		})
	})

	Convey("Given a single season", t, func() {
		Convey("Then the line axis is padded by a year on each side", func() {
			ticks := yearTicks([]int{2020}, 0)
			So(ticks, ShouldHaveLength, 3)
			So(ticks[0].Value, ShouldEqual, 2019)
			So(ticks[1].Label, ShouldEqual, "2020")
			So(ticks[2].Value, ShouldEqual, 2021)
		})

		Convey("Then the bar axis keeps half a season of room", func() {
			ticks := yearTicks([]int{2020}, barTickPad)
			So(ticks[0].Value, ShouldEqual, 2019.5)
			So(ticks[len(ticks)-1].Value, ShouldEqual, 2020.5)
		})
	})
}

func TestStackLayers(t *testing.T) {
	Convey("Given wins, draws and losses for three seasons", t, func() {
		years := []int{2020, 2021, 2022}
		layers, tallest := stackLayers([]BarSeries{
			{Name: "Wins", Hex: "#DC143C", Years: years, Values: []int{1, 1, 0}},
			{Name: "Draws", Hex: "#708090", Years: years, Values: []int{0, 1, 0}},
			{Name: "Losses", Hex: "#FA8072", Years: years, Values: []int{1, 0, 1}},
		})

		Convey("Then each layer sits on the sum of the layers below", func() {
			So(layers, ShouldHaveLength, 3)
			So(layers[0].base, ShouldResemble, []int{0, 0, 0})
			So(layers[1].base, ShouldResemble, []int{1, 1, 0})
			So(layers[2].base, ShouldResemble, []int{1, 2, 0})
			So(layers[2].values, ShouldResemble, []int{1, 0, 1})
		})

		Convey("Then the counts are kept absolute", func() {
			So(tallest, ShouldEqual, 2)
			for _, l := range layers {
				So(l.Validate(), ShouldBeNil)
			}
		})
	})

	Convey("Given no bars", t, func() {
		layers, tallest := stackLayers(nil)
		So(layers, ShouldBeEmpty)
		So(tallest, ShouldEqual, 0)
	})
}

func TestSegments(t *testing.T) {
	Convey("Given a series with gaps", t, func() {
		one, two := 1, 2
		segs := segments([]int{2019, 2020, 2021, 2022}, []*int{&one, nil, &two, &one})

		Convey("Then it splits at nil cells", func() {
			So(segs, ShouldHaveLength, 2)
			So(segs[0].x, ShouldResemble, []float64{2019})
			So(segs[1].x, ShouldResemble, []float64{2021, 2022})
			So(segs[1].y, ShouldResemble, []float64{2, 1})
		})
	})

	Convey("Given an all-nil series", t, func() {
		So(segments([]int{2019}, []*int{nil}), ShouldBeEmpty)
	})
}

func TestParse(t *testing.T) {
	Convey("Given kind and format names", t, func() {
		k, err := ParseKind("Seasons")
		So(err, ShouldBeNil)
		So(k, ShouldEqual, KindSeasons)

		_, err = ParseKind("pie")
		So(errors.Is(err, ErrUnknownKind), ShouldBeTrue)

		f, err := ParseFormat("PNG")
		So(err, ShouldBeNil)
		So(f.ContentType(), ShouldEqual, "image/png")
		So(FormatSVG.ContentType(), ShouldEqual, "image/svg+xml")

		_, err = ParseFormat("gif")
		So(errors.Is(err, ErrUnknownFormat), ShouldBeTrue)
	})
}

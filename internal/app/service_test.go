package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/okian/eplhistory/internal/adapters/chart"
	"github.com/okian/eplhistory/internal/adapters/repository"
	service "github.com/okian/eplhistory/internal/app"
	"github.com/okian/eplhistory/internal/domain/model"
	"github.com/okian/eplhistory/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// Leeds only ever plays away.
func fixtureStore() *repository.Store {
	return repository.NewStore([]model.Match{
		{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Result: model.ResultHome, SeasonEndYear: 2020},
		{HomeTeam: "Chelsea", AwayTeam: "Arsenal", Result: model.ResultDraw, SeasonEndYear: 2020},
		{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Result: model.ResultAway, SeasonEndYear: 2021},
		{HomeTeam: "Chelsea", AwayTeam: "Leeds", Result: model.ResultAway, SeasonEndYear: 2021},
	}, repository.WithSourceName("fixture"))
}

type failingLoader struct{ err error }

func (f failingLoader) Load(context.Context) (*repository.Store, repository.LoadReport, error) {
	return nil, repository.LoadReport{
		Source:  "broken",
		Skipped: []repository.RowError{{Line: 2, Err: model.ErrInvalidResult}},
	}, f.err
}

func TestService_New(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("Then queries fail with ErrNotStarted", func() {
			_, err := svc.Teams(context.Background())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.StatsBySeason(context.Background(), "Arsenal")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
			So(svc.DefaultTeam(context.Background()), ShouldEqual, "")
		})

		Convey("Then Start without a loader fails", func() {
			So(svc.Start(context.Background()), ShouldEqual, service.ErrNoLoader)
		})

		Convey("Then Stop is a no-op", func() {
			So(func() { svc.Stop() }, ShouldNotPanic)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a loader that fails", t, func() {
		boom := errors.New("boom")
		svc := service.New(service.WithLoader(failingLoader{err: boom}))

		Convey("Then Start returns the load error and stays stopped", func() {
			So(errors.Is(svc.Start(context.Background()), boom), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})
}

func TestService_Queries(t *testing.T) {
	Convey("Given a started service over the fixture store", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithStore(fixtureStore()),
			service.WithUniverse(repository.UniverseHome),
			service.WithDefaultTeam("Chelsea"),
			service.WithCacheSize(1),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When listing teams", func() {
			teams, err := svc.Teams(ctx)

			Convey("Then away-only clubs are excluded from the home universe", func() {
				So(err, ShouldBeNil)
				So(teams, ShouldResemble, []string{"Arsenal", "Chelsea"})
				So(svc.DefaultTeam(ctx), ShouldEqual, "Chelsea")
			})
		})

		Convey("When asking for Arsenal", func() {
			wins, err := svc.WinsBySeason(ctx, "Arsenal")
			So(err, ShouldBeNil)
			stats, err := svc.StatsBySeason(ctx, "Arsenal")
			So(err, ShouldBeNil)
			totals, err := svc.Totals(ctx, "Arsenal")
			So(err, ShouldBeNil)

			Convey("Then every view agrees", func() {
				So(wins, ShouldResemble, []model.SeasonWins{{Year: 2020, Wins: 1}})
				So(stats, ShouldResemble, []model.SeasonStats{
					{Year: 2020, Wins: 1, Draws: 1, Losses: 0},
					{Year: 2021, Wins: 0, Draws: 0, Losses: 1},
				})
				So(totals, ShouldResemble, model.Totals{Wins: 1, Draws: 1, Losses: 1})
				So(svc.Color(ctx, "Arsenal"), ShouldEqual, "Crimson")
			})

			Convey("And mutating a result does not leak into the cache", func() {
				stats[0].Wins = 99
				again, _ := svc.StatsBySeason(ctx, "Arsenal")
				So(again[0].Wins, ShouldEqual, 1)
			})
		})

		Convey("When asking for an unknown team", func() {
			wins, err := svc.WinsBySeason(ctx, "Nowhere FC")

			Convey("Then the answer is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(wins, ShouldNotBeNil)
				So(wins, ShouldBeEmpty)
				So(svc.Color(ctx, "Nowhere FC"), ShouldEqual, "MediumSeaGreen")
			})

			Convey("And its charts report no data", func() {
				var buf bytes.Buffer
				err := svc.RenderChart(ctx, &buf, "Nowhere FC", chart.KindWins, chart.FormatSVG)
				So(errors.Is(err, chart.ErrNoData), ShouldBeTrue)
			})
		})

		Convey("When building the matrix twice", func() {
			m1, err := svc.WinsMatrix(ctx)
			So(err, ShouldBeNil)
			m2, _ := svc.WinsMatrix(ctx)

			Convey("Then it covers the universe with nil cells for winless seasons", func() {
				So(m1.Years, ShouldResemble, []int{2020, 2021})
				So(m1.Teams, ShouldResemble, []string{"Arsenal", "Chelsea"})
				col, _ := m1.Column("Chelsea")
				So(col[0], ShouldBeNil)
				So(*col[1], ShouldEqual, 1)
				So(m2.Years, ShouldResemble, m1.Years)
			})
		})

		Convey("When composing Arsenal's figures", func() {
			cmp, sum, err := svc.Figures(ctx, "Arsenal")

			Convey("Then both figures use the team colour", func() {
				So(err, ShouldBeNil)
				sel, ok := cmp.Selected()
				So(ok, ShouldBeTrue)
				So(sel.Color, ShouldEqual, "Crimson")
				So(sum.Slices[0].Value, ShouldEqual, 1)
			})
		})

		Convey("When rendering a chart", func() {
			var buf bytes.Buffer
			err := svc.RenderChart(ctx, &buf, "Arsenal", chart.KindSummary, chart.FormatSVG)

			Convey("Then an image is written", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "<svg")
			})
		})

		Convey("When reading stats", func() {
			_, _ = svc.StatsBySeason(ctx, "Arsenal")
			stats := svc.GetStats()

			Convey("Then the store and cache are described", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["source"], ShouldEqual, "fixture")
				So(stats["matches"], ShouldEqual, 4)
				So(stats["teams"], ShouldEqual, 2)
				So(stats["rows_skipped"], ShouldEqual, 0)
				So(stats["cache"], ShouldNotBeNil)
				So(stats["warmup"], ShouldBeNil)
			})
		})
	})
}

func TestService_UnknownTeamsAreNotCached(t *testing.T) {
	Convey("Given a service with unbounded caches", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStore(fixtureStore()), service.WithCacheSize(0))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When many unknown team names are requested", func() {
			for i := 0; i < 50; i++ {
				name := "Nobody " + string(rune('A'+i%26)) + string(rune('a'+i/26))
				stats, err := svc.StatsBySeason(ctx, name)
				So(err, ShouldBeNil)
				So(stats, ShouldBeEmpty)
				wins, err := svc.WinsBySeason(ctx, name)
				So(err, ShouldBeNil)
				So(wins, ShouldNotBeNil)
				So(wins, ShouldBeEmpty)
			}
			_, _ = svc.StatsBySeason(ctx, "Leeds")

			Convey("Then only teams present in the store are cached", func() {
				cache := svc.GetStats()["cache"].(map[string]interface{})
				So(cache["statsEntries"], ShouldEqual, 1)
				So(cache["winsEntries"], ShouldEqual, 0)
			})
		})
	})
}

package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/okian/eplhistory/internal/adapters/repository"
	"github.com/okian/eplhistory/internal/domain/aggregate"
	"github.com/okian/eplhistory/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const schema = `
CREATE TABLE matches (
	home TEXT,
	away TEXT,
	ftr TEXT,
	season_end_year INTEGER
);
INSERT INTO matches VALUES ('Arsenal', 'Chelsea', 'H', 2020);
INSERT INTO matches VALUES ('Chelsea', 'Arsenal', 'D', 2020);
INSERT INTO matches VALUES ('Arsenal', 'Chelsea', 'A', 2021);
INSERT INTO matches VALUES ('Arsenal', 'Chelsea', 'Z', 2021);
INSERT INTO matches VALUES ('Arsenal', 'Chelsea', 'H', NULL);
`

func openMemoryDB(ctx context.Context) *sql.DB {
	db, err := repository.OpenSQL(ctx, repository.DriverSQLite, ":memory:")
	if err != nil {
		panic(err)
	}
	// every pooled connection would otherwise see its own empty database
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		panic(err)
	}
	return db
}

func TestSQLSource_Load(t *testing.T) {
	Convey("Given a sqlite table of matches", t, func() {
		ctx := context.Background()
		db := openMemoryDB(ctx)
		defer func() { _ = db.Close() }()

		Convey("When loading it", func() {
			store, report, err := repository.NewSQLSource(db, "matches").Load(ctx)

			Convey("Then valid rows become the store", func() {
				So(err, ShouldBeNil)
				So(store.Len(), ShouldEqual, 3)
				So(store.Source(), ShouldEqual, "sql:matches")
				So(aggregate.StatsBySeason(store, "Arsenal"), ShouldResemble, []model.SeasonStats{
					{Year: 2020, Wins: 1, Draws: 1, Losses: 0},
					{Year: 2021, Wins: 0, Draws: 0, Losses: 1},
				})
			})

			Convey("And rows with bad codes or NULL years are skipped", func() {
				So(report.Skipped, ShouldHaveLength, 2)
				So(errors.Is(report.Skipped[0], model.ErrInvalidResult), ShouldBeTrue)
				So(errors.Is(report.Skipped[1], repository.ErrInvalidYear), ShouldBeTrue)
				So(store.Skipped(), ShouldEqual, 2)
			})
		})

		Convey("When the table name is not an identifier", func() {
			_, _, err := repository.NewSQLSource(db, "matches; DROP TABLE matches").Load(ctx)

			Convey("Then it is rejected before querying", func() {
				So(errors.Is(err, repository.ErrInvalidTable), ShouldBeTrue)
			})
		})

		Convey("When the table does not exist", func() {
			_, _, err := repository.NewSQLSource(db, "fixtures").Load(ctx)

			Convey("Then the query error is returned", func() {
				So(errors.Is(err, repository.ErrQuery), ShouldBeTrue)
			})
		})
	})
}

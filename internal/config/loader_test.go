package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/eplhistory/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("EPL_ADDR", ":9090")
			_ = os.Setenv("EPL_DATA_FILE", "/data/matches.csv")
			_ = os.Setenv("EPL_TEAM_UNIVERSE", "home")
			_ = os.Setenv("EPL_WARM_WORKERS", "0")
			_ = os.Setenv("EPL_CACHE_SIZE", "16")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataFile, convey.ShouldEqual, "/data/matches.csv")
				convey.So(cfg.TeamUniverse, convey.ShouldEqual, "home")
				convey.So(cfg.WarmWorkers, convey.ShouldEqual, 0)
				convey.So(cfg.CacheSize, convey.ShouldEqual, 16)
			})
		})

		convey.Convey("When enumerated settings use mixed case", func() {
			_ = os.Setenv("EPL_DATA_SOURCE", " SQL ")
			_ = os.Setenv("EPL_SQL_DRIVER", "SQLite")
			_ = os.Setenv("EPL_SQL_DSN", "file:epl.db")
			_ = os.Setenv("EPL_TEAM_UNIVERSE", "Home")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then they are stored in canonical form", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataSource, convey.ShouldEqual, config.SourceSQL)
				convey.So(cfg.SQLDriver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.TeamUniverse, convey.ShouldEqual, "home")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile(`
# sql-backed deployment
data_source: sql
sql_driver: sqlite
sql_dsn: "file:epl.db"
sql_table: results
log_format: json
chart_width: 800
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EPL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values are merged over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataSource, convey.ShouldEqual, config.SourceSQL)
				convey.So(cfg.SQLDriver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.SQLTable, convey.ShouldEqual, "results")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.ChartWidth, convey.ShouldEqual, 800)
				convey.So(cfg.ChartHeight, convey.ShouldEqual, 480)
			})
		})

		convey.Convey("When both file and environment set a key", func() {
			tmpFile := createTempConfigFile("addr: \":7000\"\ndefault_team: Chelsea\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EPL_CONFIG", tmpFile)
			_ = os.Setenv("EPL_ADDR", ":7001")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the environment wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7001")
				convey.So(cfg.DefaultTeam, convey.ShouldEqual, "Chelsea")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("EPL_CONFIG", "/nonexistent/epl.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file is not valid YAML", func() {
			tmpFile := createTempConfigFile("addr: [unclosed\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EPL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a numeric variable is not a number", func() {
			_ = os.Setenv("EPL_CACHE_SIZE", "lots")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the data source is unknown", func() {
			_ = os.Setenv("EPL_DATA_SOURCE", "excel")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"EPL_CONFIG",
		"EPL_ADDR",
		"EPL_DATA_FILE",
		"EPL_DATA_SOURCE",
		"EPL_SQL_DRIVER",
		"EPL_SQL_DSN",
		"EPL_TEAM_UNIVERSE",
		"EPL_WARM_WORKERS",
		"EPL_CACHE_SIZE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "epl-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}

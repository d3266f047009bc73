// Package config defines service configuration and its defaults.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataSource selects the match loader: csv or sql.
	DataSource string `koanf:"data_source"`

	// DataFile is the CSV match file read when DataSource is csv.
	DataFile string `koanf:"data_file"`

	// SQLDriver is postgres or sqlite.
	SQLDriver string `koanf:"sql_driver"`
	SQLDSN    string `koanf:"sql_dsn"`
	SQLTable  string `koanf:"sql_table"`

	// TeamUniverse is home (teams with a home match) or all.
	TeamUniverse string `koanf:"team_universe"`

	// DefaultTeam is preselected by the dashboard when present in the universe.
	DefaultTeam string `koanf:"default_team"`

	// CacheSize bounds each per-team memo cache; <= 0 means unbounded.
	CacheSize int `koanf:"cache_size"`

	// WarmWorkers precompute per-team aggregates on start; 0 disables warm-up.
	WarmWorkers int `koanf:"warm_workers"`

	// WarmQueueSize bounds the warm-up job queue.
	WarmQueueSize int `koanf:"warm_queue_size"`

	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

// Data source names.
const (
	SourceCSV = "csv"
	SourceSQL = "sql"
)

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":8080",
		DataSource:    SourceCSV,
		DataFile:      "data/premier-league-matches.csv",
		SQLDriver:     "postgres",
		SQLTable:      "matches",
		TeamUniverse:  "all",
		DefaultTeam:   "Arsenal",
		CacheSize:     256,
		WarmWorkers:   4,
		WarmQueueSize: 128,
		ChartWidth:    1024,
		ChartHeight:   480,
	}
}

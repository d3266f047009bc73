package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/okian/eplhistory/internal/domain/model"
	"github.com/okian/eplhistory/pkg/metrics"
)

// Loader builds a Store from an external source.
type Loader interface {
	Load(ctx context.Context) (*Store, LoadReport, error)
}

// LoadReport summarizes a load.
type LoadReport struct {
	Source   string
	Rows     int
	Skipped  []RowError
	Duration time.Duration
}

// parseRow validates raw column values into a Match.
func parseRow(home, away, ftr, year string) (model.Match, error) {
	home = strings.TrimSpace(home)
	away = strings.TrimSpace(away)
	if home == "" || away == "" {
		return model.Match{}, ErrEmptyTeam
	}
	result, err := model.ParseResult(ftr)
	if err != nil {
		return model.Match{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y <= 0 {
		return model.Match{}, fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	return model.Match{HomeTeam: home, AwayTeam: away, Result: result, SeasonEndYear: y}, nil
}

// finish builds the store and records load metrics shared by all sources.
func finish(source string, matches []model.Match, skipped []RowError, start time.Time) (*Store, LoadReport, error) {
	report := LoadReport{
		Source:   source,
		Rows:     len(matches) + len(skipped),
		Skipped:  skipped,
		Duration: time.Since(start),
	}
	metrics.RecordRowsLoaded(source, len(matches))
	metrics.RecordRowsSkipped(source, len(skipped))
	metrics.RecordStoreLoadDuration(float64(report.Duration.Milliseconds()))

	if len(matches) == 0 {
		metrics.RecordErrorByComponent("repository", "empty_table")
		return nil, report, fmt.Errorf("%s: %w", source, ErrEmptyTable)
	}

	s := NewStore(matches, WithSkipped(len(skipped)), WithSourceName(source))
	metrics.UpdateStoreMatches(s.Len())
	metrics.UpdateStoreTeams(len(s.all))
	metrics.UpdateStoreSeasons(len(s.seasons))
	return s, report, nil
}

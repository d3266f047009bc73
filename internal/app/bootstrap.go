package service

import (
	"context"
	"fmt"

	"github.com/okian/eplhistory/internal/adapters/repository"
	"github.com/okian/eplhistory/internal/config"
)

// OptionsFromConfig translates cfg into service options. The returned
// release func closes any database handle opened for the loader and is safe
// to call once Start has returned.
func OptionsFromConfig(ctx context.Context, cfg *config.Config) ([]Option, func() error, error) {
	release := func() error { return nil }

	universe, err := repository.ParseUniverse(cfg.TeamUniverse)
	if err != nil {
		return nil, release, err
	}

	var loader repository.Loader
	switch cfg.DataSource {
	case config.SourceCSV, "":
		loader = repository.NewCSVSource(cfg.DataFile)
	case config.SourceSQL:
		db, err := repository.OpenSQL(ctx, cfg.SQLDriver, cfg.SQLDSN)
		if err != nil {
			return nil, release, err
		}
		release = db.Close
		loader = repository.NewSQLSource(db, cfg.SQLTable)
	default:
		return nil, release, fmt.Errorf("%w: %q", ErrBadSource, cfg.DataSource)
	}

	return []Option{
		WithLoader(loader),
		WithUniverse(universe),
		WithCacheSize(cfg.CacheSize),
		WithWarmUp(cfg.WarmWorkers, cfg.WarmQueueSize),
		WithDefaultTeam(cfg.DefaultTeam),
		WithChartSize(cfg.ChartWidth, cfg.ChartHeight),
	}, release, nil
}

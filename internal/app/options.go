package service

import (
	"github.com/okian/eplhistory/internal/adapters/repository"
	"github.com/okian/eplhistory/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLoader sets the source the match table is loaded from on Start.
func WithLoader(l repository.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithStore uses an already loaded store; Start then skips loading.
func WithStore(st *repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithUniverse selects which teams are listed.
func WithUniverse(u repository.Universe) Option {
	return func(s *Service) {
		if u != "" {
			s.universe = u
		}
	}
}

// WithCacheSize bounds each memo cache; <= 0 means unbounded.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		s.cacheSize = size
	}
}

// WithWarmUp runs workers goroutines on Start that precompute every team
// from a queue of queueSize jobs. workers == 0 disables warm-up.
func WithWarmUp(workers, queueSize int) Option {
	return func(s *Service) {
		if workers >= 0 {
			s.warmWorkers = workers
		}
		if queueSize > 0 {
			s.warmQueueSize = queueSize
		}
	}
}

// WithDefaultTeam sets the team preselected by the dashboard.
func WithDefaultTeam(team string) Option {
	return func(s *Service) {
		s.defaultTeam = team
	}
}

// WithChartSize sets the rendered image size.
func WithChartSize(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.chartWidth, s.chartHeight = width, height
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

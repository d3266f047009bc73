// Package service owns the loaded match table and answers every per-team
// question the HTTP API and the CLI ask of it.
package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/okian/eplhistory/internal/adapters/chart"
	warmqueue "github.com/okian/eplhistory/internal/adapters/mq/queue"
	workerpool "github.com/okian/eplhistory/internal/adapters/mq/worker"
	"github.com/okian/eplhistory/internal/adapters/repository"
	"github.com/okian/eplhistory/internal/domain/aggregate"
	"github.com/okian/eplhistory/internal/domain/memo"
	"github.com/okian/eplhistory/internal/domain/model"
	"github.com/okian/eplhistory/internal/domain/palette"
	"github.com/okian/eplhistory/pkg/logger"
	"github.com/okian/eplhistory/pkg/metrics"
)

const (
	defaultWarmQueueSize = 128
	shutdownTimeout      = 5 * time.Second
	maxSkippedLogged     = 20

	cacheStats = "stats"
	cacheWins  = "wins"
)

// Service implements the API dependencies for the club history dashboard.
type Service struct {
	mu sync.RWMutex

	// Configuration
	loader        repository.Loader
	universe      repository.Universe
	cacheSize     int
	warmWorkers   int
	warmQueueSize int
	defaultTeam   string
	chartWidth    int
	chartHeight   int

	// State built on Start
	store    *repository.Store
	report   repository.LoadReport
	teams    []string
	stats    *memo.Cache[[]model.SeasonStats]
	wins     *memo.Cache[[]model.SeasonWins]
	renderer *chart.Renderer

	matrixOnce sync.Once
	matrix     aggregate.WinsMatrix

	queue      *warmqueue.InMemoryQueue
	pool       *workerpool.Pool
	cancelWarm context.CancelFunc

	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a Service. Nothing is loaded until Start.
func New(opts ...Option) *Service {
	s := &Service{
		universe:      repository.UniverseAll,
		cacheSize:     256,
		warmQueueSize: defaultWarmQueueSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the match table, builds the caches and launches warm-up.
// A load failure is returned and leaves the service stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	if s.store == nil {
		if s.loader == nil {
			return ErrNoLoader
		}
		s.logger.Info(ctx, "loading match table...")
		store, report, err := s.loader.Load(ctx)
		s.logSkipped(ctx, report)
		if err != nil {
			metrics.RecordErrorByComponent("service", "load_failed")
			return err
		}
		s.store, s.report = store, report
	} else {
		s.report = repository.LoadReport{Source: s.store.Source(), Rows: s.store.Len() + s.store.Skipped()}
	}

	s.teams = s.store.Teams(s.universe)
	s.stats = memo.New[[]model.SeasonStats](memo.WithMaxSize(s.cacheSize))
	s.wins = memo.New[[]model.SeasonWins](memo.WithMaxSize(s.cacheSize))

	var ropts []chart.Option
	if s.chartWidth > 0 {
		ropts = append(ropts, chart.WithSize(s.chartWidth, s.chartHeight))
	}
	s.renderer = chart.NewRenderer(ropts...)

	if s.warmWorkers > 0 {
		s.startWarmUp(ctx)
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "club history service started",
		logger.String("source", s.store.Source()),
		logger.Int("matches", s.store.Len()),
		logger.Int("teams", len(s.teams)),
		logger.Int("seasons", len(s.store.Seasons())),
		logger.Int("rowsSkipped", s.store.Skipped()),
		logger.String("universe", string(s.universe)),
		logger.Int("warmWorkers", s.warmWorkers),
	)
	return nil
}

func (s *Service) logSkipped(ctx context.Context, report repository.LoadReport) {
	for i, rowErr := range report.Skipped {
		if i == maxSkippedLogged {
			s.logger.Warn(ctx, "further malformed rows not logged",
				logger.Int("remaining", len(report.Skipped)-maxSkippedLogged))
			return
		}
		s.logger.Warn(ctx, "skipped malformed row",
			logger.String("source", report.Source),
			logger.Int("line", rowErr.Line),
			logger.Error(rowErr.Err),
		)
	}
}

// startWarmUp must be called with s.mu held.
func (s *Service) startWarmUp(ctx context.Context) {
	// the pool outlives the Start call, so it gets its own context
	warmCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancelWarm = cancel
	s.queue = warmqueue.NewInMemoryQueue(warmqueue.WithCapacity(s.warmQueueSize))
	s.pool = workerpool.NewPool(s.warmWorkers, s.queue, s,
		workerpool.WithLogger(s.logger.Named("warmup")))
	s.pool.Start(warmCtx)

	if err := s.queue.EnqueueAll(warmCtx, s.teams); err != nil {
		s.logger.Warn(ctx, "warm-up queue did not take every team", logger.Error(err))
	}
	// no more jobs: workers exit once the queue drains
	_ = s.queue.Close()
}

// Stop drains the warm-up workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping club history service...")
	if s.pool != nil {
		if err := s.pool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "warm-up did not drain", logger.Error(err))
		}
	}
	if s.cancelWarm != nil {
		s.cancelWarm()
	}
	s.started = false
	s.logger.Info(ctx, "club history service stopped")
}

// WaitWarm blocks until the warm-up pool has drained or ctx is done.
func (s *Service) WaitWarm(ctx context.Context) error {
	s.mu.RLock()
	pool := s.pool
	s.mu.RUnlock()
	if pool == nil {
		return nil
	}
	return pool.Wait(ctx)
}

// Warm computes and caches every per-team aggregate.
func (s *Service) Warm(ctx context.Context, team string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.stats == nil {
		return ErrNotStarted
	}
	s.winsFor(team)
	return nil
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// statsFor and winsFor only cache teams present in the store, so arbitrary
// names from request paths never grow the caches.
func (s *Service) statsFor(team string) []model.SeasonStats {
	if !s.store.HasTeam(team) {
		return []model.SeasonStats{}
	}
	v, hit := s.stats.GetOrCompute(team, func() []model.SeasonStats {
		start := time.Now()
		out := aggregate.StatsBySeason(s.store, team)
		metrics.RecordAggregationLatency("stats_by_season", float64(time.Since(start).Microseconds())/1000)
		return out
	})
	recordCache(cacheStats, hit, s.stats.Len())
	return v
}

func (s *Service) winsFor(team string) []model.SeasonWins {
	if !s.store.HasTeam(team) {
		return []model.SeasonWins{}
	}
	v, hit := s.wins.GetOrCompute(team, func() []model.SeasonWins {
		return aggregate.WinsFromStats(s.statsFor(team))
	})
	recordCache(cacheWins, hit, s.wins.Len())
	return v
}

func recordCache(name string, hit bool, size int) {
	if hit {
		metrics.RecordCacheHit(name)
		return
	}
	metrics.RecordCacheMiss(name)
	metrics.UpdateCacheSize(name, size)
}

// Teams returns the sorted team universe.
func (s *Service) Teams(_ context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return append([]string(nil), s.teams...), nil
}

// DefaultTeam returns the configured team when it is in the universe,
// otherwise the first team, or "" when there are none.
func (s *Service) DefaultTeam(_ context.Context) string {
	if s.ready() != nil {
		return ""
	}
	for _, t := range s.teams {
		if t == s.defaultTeam {
			return t
		}
	}
	if len(s.teams) > 0 {
		return s.teams[0]
	}
	return ""
}

// WinsBySeason returns the seasons in which team won, ascending.
// Unknown teams yield an empty, non-nil slice.
func (s *Service) WinsBySeason(_ context.Context, team string) ([]model.SeasonWins, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return append([]model.SeasonWins{}, s.winsFor(team)...), nil
}

// StatsBySeason returns zero-filled per-season results of team, ascending.
func (s *Service) StatsBySeason(_ context.Context, team string) ([]model.SeasonStats, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return append([]model.SeasonStats{}, s.statsFor(team)...), nil
}

// Totals returns the all-time results of team.
func (s *Service) Totals(_ context.Context, team string) (model.Totals, error) {
	if err := s.ready(); err != nil {
		return model.Totals{}, err
	}
	return aggregate.Totals(s.statsFor(team)), nil
}

// Color returns the colour name of team.
func (s *Service) Color(_ context.Context, team string) string {
	return palette.ColorFor(team)
}

// WinsMatrix returns the season-by-team wins matrix of the universe.
// It is built once; the store never changes after Start.
func (s *Service) WinsMatrix(_ context.Context) (aggregate.WinsMatrix, error) {
	if err := s.ready(); err != nil {
		return aggregate.WinsMatrix{}, err
	}
	s.matrixOnce.Do(func() {
		start := time.Now()
		series := make(map[string][]model.SeasonWins, len(s.teams))
		for _, t := range s.teams {
			series[t] = s.winsFor(t)
		}
		s.matrix = aggregate.BuildWinsMatrixFrom(s.teams, series)
		metrics.RecordAggregationLatency("wins_matrix", float64(time.Since(start).Microseconds())/1000)
	})
	return s.matrix, nil
}

// Figures composes the comparison and summary figures of team.
func (s *Service) Figures(ctx context.Context, team string) (chart.ComparisonFigure, chart.SummaryFigure, error) {
	m, err := s.WinsMatrix(ctx)
	if err != nil {
		return chart.ComparisonFigure{}, chart.SummaryFigure{}, err
	}
	stats := s.statsFor(team)
	color := palette.ColorFor(team)
	return chart.Comparison(m, stats, team, color), chart.Summary(aggregate.Totals(stats), team, color), nil
}

// RenderChart draws one chart of team to w. Teams without matches give
// chart.ErrNoData.
func (s *Service) RenderChart(ctx context.Context, w io.Writer, team string, kind chart.Kind, format chart.Format) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !s.store.HasTeam(team) {
		return chart.ErrNoData
	}
	cmp, sum, err := s.Figures(ctx, team)
	if err != nil {
		return err
	}
	return s.renderer.Render(w, kind, cmp, sum, format)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"universe":    string(s.universe),
		"warmWorkers": s.warmWorkers,
		"cacheSize":   s.cacheSize,
	}
	if !s.started {
		return stats
	}

	stats["source"] = s.store.Source()
	stats["matches"] = s.store.Len()
	stats["teams"] = len(s.teams)
	stats["seasons"] = len(s.store.Seasons())
	stats["rows_skipped"] = s.store.Skipped()
	stats["loadDurationMs"] = s.report.Duration.Milliseconds()
	stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	stats["cache"] = map[string]interface{}{
		"statsEntries": s.stats.Len(),
		"winsEntries":  s.wins.Len(),
		"hits":         s.stats.Hits() + s.wins.Hits(),
		"misses":       s.stats.Misses() + s.wins.Misses(),
	}
	if s.pool != nil {
		stats["warmup"] = map[string]interface{}{
			"workers":   s.pool.Size(),
			"processed": s.pool.Processed(),
			"failed":    s.pool.Failed(),
			"queued":    s.queue.Len(),
		}
	}

	metrics.UpdateStoreMatches(s.store.Len())
	metrics.UpdateStoreTeams(len(s.teams))
	metrics.UpdateStoreSeasons(len(s.store.Seasons()))
	return stats
}

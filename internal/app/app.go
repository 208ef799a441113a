package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/football-scout/internal/config"
	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/prediction"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
	"github.com/riskibarqy/football-scout/internal/domain/team"
	cacherepo "github.com/riskibarqy/football-scout/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-scout/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-scout/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-scout/internal/interfaces/httpapi"
	"github.com/riskibarqy/football-scout/internal/observability"
	"github.com/riskibarqy/football-scout/internal/platform/cache"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
	"github.com/riskibarqy/football-scout/internal/platform/resilience"
	"github.com/riskibarqy/football-scout/internal/usecase"
)

const redisKeyPrefix = "football-scout"

// Components is the assembled service graph shared by every binary.
type Components struct {
	Engine      *usecase.RankingEngine
	TeamStats   *usecase.TeamStatsService
	PlayerStats *usecase.PlayerStatsService
	Referees    *usecase.RefereeService
	Predictions *usecase.PredictionService
	Importer    *usecase.ImportService
	// Metrics is nil when METRICS_ENABLED=false.
	Metrics *observability.Metrics

	closers []func() error
}

// Close releases the database and Redis connections in reverse order.
func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	return errors.Join(errs...)
}

type repositories struct {
	leagues     league.Repository
	teams       team.Repository
	players     player.Repository
	referees    referee.Repository
	matches     match.Repository
	appearances appearance.Repository
	events      event.Repository
	writer      usecase.ImportWriter
	// seeder is set for postgres only.
	seeder seedChecker
}

func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Components, error) {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Components{}

	var cacheObserver cache.Observer
	engineOpts := []usecase.RankingEngineOption{
		usecase.WithRankingWorkers(cfg.RankingWorkers),
		usecase.WithRankingLogger(logger),
	}
	var predictionObserver usecase.PredictionObserver
	if cfg.MetricsEnabled {
		c.Metrics = observability.NewMetrics()
		cacheObserver = c.Metrics
		predictionObserver = c.Metrics
		engineOpts = append(engineOpts, usecase.WithRankingObserver(c.Metrics))
	}

	repos, err := c.openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	lookups := cache.NewNamedStore("repository", cfg.CacheTTL, cacheObserver)
	leagues := cacherepo.NewLeagueRepository(repos.leagues, lookups)
	teams := cacherepo.NewTeamRepository(repos.teams, lookups)
	players := cacherepo.NewPlayerRepository(repos.players, lookups)
	referees := cacherepo.NewRefereeRepository(repos.referees, lookups)
	matches := cacherepo.NewMatchRepository(repos.matches, lookups)

	if shared := c.openBoardCache(ctx, cfg, logger); shared != nil {
		engineOpts = append(engineOpts, usecase.WithSharedBoardCache(shared))
	}
	c.Engine = usecase.NewRankingEngine(
		matches,
		repos.appearances,
		repos.events,
		cache.NewNamedStore("boards", cfg.CacheTTL, cacheObserver),
		engineOpts...,
	)

	weights := prediction.Weights{
		Attack:  cfg.PredictionWeightAttack,
		Defense: cfg.PredictionWeightDefense,
		Referee: cfg.PredictionWeightReferee,
	}
	c.Predictions, err = usecase.NewPredictionService(matches, c.Engine, weights, predictionObserver, logger)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("build prediction service: %w", err)
	}
	c.TeamStats = usecase.NewTeamStatsService(teams, matches, c.Engine)
	c.PlayerStats = usecase.NewPlayerStatsService(leagues, teams, players, matches, repos.appearances, repos.events, c.Engine)
	c.Referees = usecase.NewRefereeService(leagues, referees, c.Engine)
	c.Importer = usecase.NewImportService(repos.writer, c.Engine, cfg.ImportBatchSize, 0, logger)

	if cfg.DBBootstrapSeed && repos.seeder != nil {
		if err := bootstrapSeed(ctx, repos.seeder, c.Importer, logger); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	return c, nil
}

func (c *Components) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DataBackend != config.BackendPostgres {
		db := memory.NewDBFromDataset(memory.SeedDataset())
		logger.Info("using in-memory data backend", "league_id", memory.LeagueIDArgentina)
		return repositories{
			leagues:     memory.NewLeagueRepository(db),
			teams:       memory.NewTeamRepository(db),
			players:     memory.NewPlayerRepository(db),
			referees:    memory.NewRefereeRepository(db),
			matches:     memory.NewMatchRepository(db),
			appearances: memory.NewAppearanceRepository(db),
			events:      memory.NewEventRepository(db),
			writer:      db,
		}, nil
	}

	db, err := OpenPostgres(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	writer := postgres.NewImportRepository(db)
	c.closers = append(c.closers, db.Close)
	logger.Info("using postgres data backend", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		leagues:     postgres.NewLeagueRepository(db),
		teams:       postgres.NewTeamRepository(db),
		players:     postgres.NewPlayerRepository(db),
		referees:    postgres.NewRefereeRepository(db),
		matches:     postgres.NewMatchRepository(db),
		appearances: postgres.NewAppearanceRepository(db),
		events:      postgres.NewEventRepository(db),
		writer:      writer,
		seeder:      writer,
	}, nil
}

// openBoardCache returns nil when REDIS_ADDR is unset. An unreachable Redis
// is logged and still used: the breaker keeps it off the hot path.
func (c *Components) openBoardCache(ctx context.Context, cfg config.Config, logger *logging.Logger) *cache.RedisStore {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		logger.Info("shared board cache disabled", "reason", "REDIS_ADDR empty")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		DialTimeout: cfg.RedisDialTimeout,
	})
	c.closers = append(c.closers, client.Close)

	if err := cache.Ping(ctx, client); err != nil {
		logger.WarnContext(ctx, "redis unreachable at startup", "addr", cfg.RedisAddr, "error", err)
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.RedisCircuit())
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("redis circuit state changed", "from", string(from), "to", string(to))
	})
	return cache.NewRedisStore(client, redisKeyPrefix, cfg.CacheTTL, breaker)
}

// OpenPostgres opens a traced connection pool and checks it.
func OpenPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := PostgresURL(cfg)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", usecase.ErrDependencyUnavailable, err)
	}
	return db, nil
}

func NewHTTPServer(cfg config.Config, c *Components, logger *logging.Logger) (*http.Server, error) {
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(c.TeamStats, c.PlayerStats, c.Referees, c.Predictions, logger)
	routerCfg := httpapi.RouterConfig{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		DocsEnabled:        cfg.DocsEnabled,
	}
	if c.Metrics != nil {
		routerCfg.Metrics = c.Metrics
	}

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

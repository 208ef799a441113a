package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/dataset"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/league"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/player"
	"github.com/riskibarqy/football-scout/internal/domain/referee"
	"github.com/riskibarqy/football-scout/internal/domain/team"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
)

const (
	defaultImportBatchSize = 500
	defaultImportWorkers   = 4
)

// ImportSource yields a complete league extract.
type ImportSource interface {
	Read(ctx context.Context) (dataset.Dataset, dataset.Skipped, error)
}

// ImportWriter stores an extract. Upserts must be idempotent so a rerun of
// the same source is harmless.
type ImportWriter interface {
	UpsertLeague(ctx context.Context, l league.League) error
	UpsertTeams(ctx context.Context, items []team.Team) error
	UpsertPlayers(ctx context.Context, items []player.Player) error
	UpsertReferees(ctx context.Context, items []referee.Referee) error
	UpsertMatches(ctx context.Context, items []match.Match) error
	UpsertAppearances(ctx context.Context, items []appearance.Appearance) error
	UpsertShots(ctx context.Context, items []event.Shot) error
	UpsertCards(ctx context.Context, items []event.Card) error
}

type ImportInput struct {
	DryRun bool
}

type ImportReport struct {
	LeagueID   string          `json:"league_id"`
	DryRun     bool            `json:"dry_run"`
	Counts     dataset.Counts  `json:"counts"`
	Skipped    dataset.Skipped `json:"skipped"`
	DurationMs int64           `json:"duration_ms"`
}

type ImportService struct {
	writer    ImportWriter
	engine    *RankingEngine
	batchSize int
	workers   int
	logger    *logging.Logger
}

func NewImportService(writer ImportWriter, engine *RankingEngine, batchSize, workers int, logger *logging.Logger) *ImportService {
	if batchSize <= 0 {
		batchSize = defaultImportBatchSize
	}
	if workers <= 0 {
		workers = defaultImportWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportService{
		writer:    writer,
		engine:    engine,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
	}
}

// Run reads src and writes it in foreign key order: league, then teams,
// players, referees and matches, then match detail rows in parallel chunks.
func (s *ImportService) Run(ctx context.Context, src ImportSource, input ImportInput) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Run")
	defer span.End()

	start := time.Now()
	ds, skipped, err := src.Read(ctx)
	if err != nil {
		return ImportReport{}, fmt.Errorf("read import source: %w", err)
	}
	if err := ds.League.Validate(); err != nil {
		return ImportReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, t := range ds.Teams {
		if err := t.Validate(ds.League.ID); err != nil {
			return ImportReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	report := ImportReport{
		LeagueID: ds.League.ID,
		DryRun:   input.DryRun,
		Counts:   ds.Counts(),
		Skipped:  skipped,
	}
	if skipped.Total() > 0 {
		s.logger.WarnContext(ctx, "import skipped source rows",
			"league_id", ds.League.ID,
			"matches", skipped.Matches,
			"appearances", skipped.Appearances,
			"shots", skipped.Shots,
			"cards", skipped.Cards,
		)
	}
	if input.DryRun {
		report.DurationMs = time.Since(start).Milliseconds()
		return report, nil
	}

	if err := s.writer.UpsertLeague(ctx, ds.League); err != nil {
		return ImportReport{}, fmt.Errorf("upsert league: %w", err)
	}
	parents := []func() error{
		func() error { return writeChunks(ctx, "teams", ds.Teams, s.batchSize, s.writer.UpsertTeams) },
		func() error { return writeChunks(ctx, "players", ds.Players, s.batchSize, s.writer.UpsertPlayers) },
		func() error { return writeChunks(ctx, "referees", ds.Referees, s.batchSize, s.writer.UpsertReferees) },
		func() error { return writeChunks(ctx, "matches", ds.Matches, s.batchSize, s.writer.UpsertMatches) },
	}
	for _, write := range parents {
		if err := write(); err != nil {
			return ImportReport{}, err
		}
	}

	if err := s.writeDetails(ctx, ds); err != nil {
		return ImportReport{}, err
	}

	if s.engine != nil {
		s.engine.Invalidate(ctx, ds.League.ID)
	}
	report.DurationMs = time.Since(start).Milliseconds()
	s.logger.InfoContext(ctx, "import finished",
		"league_id", ds.League.ID,
		"matches", report.Counts.Matches,
		"appearances", report.Counts.Appearances,
		"shots", report.Counts.Shots,
		"cards", report.Counts.Cards,
		"duration_ms", report.DurationMs,
	)
	return report, nil
}

func (s *ImportService) writeDetails(ctx context.Context, ds dataset.Dataset) error {
	var tasks []func() error
	tasks = append(tasks, chunkTasks(ctx, "appearances", ds.Appearances, s.batchSize, s.writer.UpsertAppearances)...)
	tasks = append(tasks, chunkTasks(ctx, "shots", ds.Shots, s.batchSize, s.writer.UpsertShots)...)
	tasks = append(tasks, chunkTasks(ctx, "cards", ds.Cards, s.batchSize, s.writer.UpsertCards)...)
	if len(tasks) == 0 {
		return nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers sync.WaitGroup
		mu      sync.Mutex
		errs    []error
	)
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if err := task(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit import task to worker pool: %w", err)
		}
	}
	workers.Wait()

	return errors.Join(errs...)
}

func writeChunks[T any](ctx context.Context, name string, items []T, size int, write func(context.Context, []T) error) error {
	for _, task := range chunkTasks(ctx, name, items, size, write) {
		if err := task(); err != nil {
			return err
		}
	}
	return nil
}

func chunkTasks[T any](ctx context.Context, name string, items []T, size int, write func(context.Context, []T) error) []func() error {
	var tasks []func() error
	for offset := 0; offset < len(items); offset += size {
		chunk := items[offset:min(offset+size, len(items))]
		tasks = append(tasks, func() error {
			if err := write(ctx, chunk); err != nil {
				return fmt.Errorf("upsert %s [%d:%d]: %w", name, offset, offset+len(chunk), err)
			}
			return nil
		})
	}
	return tasks
}

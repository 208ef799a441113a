package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/riskibarqy/football-scout/internal/domain/appearance"
	"github.com/riskibarqy/football-scout/internal/domain/event"
	"github.com/riskibarqy/football-scout/internal/domain/match"
	"github.com/riskibarqy/football-scout/internal/domain/ranking"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
	"github.com/riskibarqy/football-scout/internal/platform/cache"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
)

const (
	defaultRankingWorkers = 8
	snapshotReadLimit     = 3
)

// TeamAxis selects which team sample stream a board ranks.
type TeamAxis string

const (
	TeamAxisAttack  TeamAxis = "attack"
	TeamAxisDefense TeamAxis = "defense"
)

// BoardCache is a cache shared between instances. Errors are not fatal.
type BoardCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
}

// RankingObserver receives board build timings.
type RankingObserver interface {
	ObserveBoardBuild(kind string, d time.Duration)
}

// LeagueSnapshot is every sample a ranking pass needs for one league,
// loaded with a fixed number of set-oriented reads.
type LeagueSnapshot struct {
	LeagueID string
	Matches  []match.Match
	Players  map[string][]stats.Sample
	Teams    map[string]stats.TeamSamples
	Referees map[string]ranking.RefereeWindow
}

type RankingEngine struct {
	matchRepo      match.Repository
	appearanceRepo appearance.Repository
	eventRepo      event.Repository
	memo           *cache.Store
	shared         BoardCache
	observer       RankingObserver
	workers        int
	logger         *logging.Logger
}

type RankingEngineOption func(*RankingEngine)

func WithSharedBoardCache(c BoardCache) RankingEngineOption {
	return func(e *RankingEngine) { e.shared = c }
}

func WithRankingObserver(o RankingObserver) RankingEngineOption {
	return func(e *RankingEngine) { e.observer = o }
}

func WithRankingWorkers(n int) RankingEngineOption {
	return func(e *RankingEngine) {
		if n > 0 {
			e.workers = n
		}
	}
}

func WithRankingLogger(l *logging.Logger) RankingEngineOption {
	return func(e *RankingEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewRankingEngine(
	matchRepo match.Repository,
	appearanceRepo appearance.Repository,
	eventRepo event.Repository,
	memo *cache.Store,
	opts ...RankingEngineOption,
) *RankingEngine {
	e := &RankingEngine{
		matchRepo:      matchRepo,
		appearanceRepo: appearanceRepo,
		eventRepo:      eventRepo,
		memo:           memo,
		workers:        defaultRankingWorkers,
		logger:         logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns the memoized league snapshot, loading it on a miss.
func (e *RankingEngine) Snapshot(ctx context.Context, leagueID string) (*LeagueSnapshot, error) {
	return cache.Load(ctx, e.memo, cache.Key("snapshot", leagueID), func(ctx context.Context) (*LeagueSnapshot, error) {
		return e.loadSnapshot(ctx, leagueID)
	})
}

func (e *RankingEngine) loadSnapshot(ctx context.Context, leagueID string) (*LeagueSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingEngine.loadSnapshot")
	defer span.End()

	matches, err := e.matchRepo.ListFinishedByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list finished matches: %w", err)
	}
	matchIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		matchIDs = append(matchIDs, m.ID)
	}

	var (
		apps  []appearance.Appearance
		shots []event.Shot
		cards []event.Card
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotReadLimit)
	g.Go(func() error {
		var err error
		if apps, err = e.appearanceRepo.ListByLeague(gctx, leagueID); err != nil {
			return fmt.Errorf("list appearances: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if shots, err = e.eventRepo.ListShotsByMatches(gctx, matchIDs); err != nil {
			return fmt.Errorf("list shots: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if cards, err = e.eventRepo.ListCardsByMatches(gctx, matchIDs); err != nil {
			return fmt.Errorf("list cards: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	teams := stats.BuildTeamSamples(matches, apps, shots, cards)
	return &LeagueSnapshot{
		LeagueID: leagueID,
		Matches:  matches,
		Players:  stats.PlayerSamples(apps, shots, cards),
		Teams:    teams,
		Referees: ranking.BuildRefereeWindows(matches, teams),
	}, nil
}

// PlayerBoard ranks every player of the league in rctx. The board is not
// truncated; player-facing callers apply ranking.PlayerLimit.
func (e *RankingEngine) PlayerBoard(ctx context.Context, leagueID string, scope stats.Scope, metric stats.Metric, rctx ranking.Context) (ranking.Board, error) {
	key := cache.Key("board", leagueID, "player", scope.String(), metric.String(), rctx.String())
	return e.board(ctx, key, "player", func(ctx context.Context) (ranking.Board, error) {
		snap, err := e.Snapshot(ctx, leagueID)
		if err != nil {
			return ranking.Board{}, err
		}
		windows, err := e.buildWindows(snap.Players, scope, rctx.Apply)
		if err != nil {
			return ranking.Board{}, err
		}
		return ranking.Rank(scope, windows, metric, ranking.Options{})
	})
}

// TeamBoard ranks the league's teams on one axis. Attack ranks what a team
// produced, highest first. Defense ranks what it conceded, lowest first.
func (e *RankingEngine) TeamBoard(ctx context.Context, leagueID string, scope stats.Scope, metric stats.Metric, axis TeamAxis) (ranking.Board, error) {
	order := ranking.OrderDesc
	switch axis {
	case TeamAxisAttack:
	case TeamAxisDefense:
		order = ranking.OrderAsc
	default:
		return ranking.Board{}, fmt.Errorf("%w: unsupported team axis %q", ErrInvalidInput, axis)
	}

	key := cache.Key("board", leagueID, "team", string(axis), scope.String(), metric.String())
	return e.board(ctx, key, "team", func(ctx context.Context) (ranking.Board, error) {
		snap, err := e.Snapshot(ctx, leagueID)
		if err != nil {
			return ranking.Board{}, err
		}
		streams := make(map[string][]stats.Sample, len(snap.Teams))
		for teamID, ts := range snap.Teams {
			if axis == TeamAxisAttack {
				streams[teamID] = ts.For
			} else {
				streams[teamID] = ts.Against
			}
		}
		windows, err := e.buildWindows(streams, scope, nil)
		if err != nil {
			return ranking.Board{}, err
		}
		return ranking.Rank(scope, windows, metric, ranking.Options{Order: order})
	})
}

// RefereeBoard ranks the league's referees by per-match average of metric.
func (e *RankingEngine) RefereeBoard(ctx context.Context, leagueID string, metric stats.Metric) (ranking.Board, error) {
	key := cache.Key("board", leagueID, "referee", metric.String())
	return e.board(ctx, key, "referee", func(ctx context.Context) (ranking.Board, error) {
		snap, err := e.Snapshot(ctx, leagueID)
		if err != nil {
			return ranking.Board{}, err
		}
		windows := make([]ranking.RefereeWindow, 0, len(snap.Referees))
		for _, w := range snap.Referees {
			windows = append(windows, w)
		}
		return ranking.RankReferees(windows, metric, ranking.Options{})
	})
}

// Invalidate drops memoized snapshots and boards of a league, locally and in
// the shared cache when it supports prefix deletes.
func (e *RankingEngine) Invalidate(ctx context.Context, leagueID string) {
	e.memo.Delete(ctx, cache.Key("snapshot", leagueID))
	e.memo.DeletePrefix(ctx, cache.Key("board", leagueID)+":")
	if d, ok := e.shared.(interface {
		DeletePrefix(context.Context, string) error
	}); ok {
		if err := d.DeletePrefix(ctx, cache.Key("board", leagueID)+":"); err != nil {
			e.logger.WarnContext(ctx, "invalidate shared boards failed", "league_id", leagueID, "error", err)
		}
	}
}

func (e *RankingEngine) board(ctx context.Context, key, kind string, build func(context.Context) (ranking.Board, error)) (ranking.Board, error) {
	return cache.Load(ctx, e.memo, key, func(ctx context.Context) (ranking.Board, error) {
		if e.shared != nil {
			var data ranking.BoardData
			found, err := e.shared.GetJSON(ctx, key, &data)
			if err != nil {
				e.logger.WarnContext(ctx, "read shared board failed", "key", key, "error", err)
			}
			if found {
				return data.Board(), nil
			}
		}

		ctx, span := startUsecaseSpan(ctx, "usecase.RankingEngine.build."+kind)
		defer span.End()

		gen := e.memo.Generation()
		start := time.Now()
		b, err := build(ctx)
		if err != nil {
			return ranking.Board{}, err
		}
		if e.observer != nil {
			e.observer.ObserveBoardBuild(kind, time.Since(start))
		}

		// A board built across an Invalidate is served but not shared.
		if e.shared != nil && e.memo.Generation() == gen {
			if err := e.shared.SetJSON(ctx, key, b.Data()); err != nil {
				e.logger.WarnContext(ctx, "write shared board failed", "key", key, "error", err)
			}
		}
		return b, nil
	})
}

// buildWindows aggregates one window per entity on a worker pool. Each task
// writes only its own slot.
func (e *RankingEngine) buildWindows(samplesByID map[string][]stats.Sample, scope stats.Scope, restrict func([]stats.Sample) ([]stats.Sample, bool)) ([]stats.Window, error) {
	ids := make([]string, 0, len(samplesByID))
	for id := range samplesByID {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, strings.Compare)

	windows := make([]stats.Window, len(ids))
	kept := make([]bool, len(ids))

	pool, err := ants.NewPool(e.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, id := range ids {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			samples := samplesByID[id]
			if restrict != nil {
				var ok bool
				if samples, ok = restrict(samples); !ok {
					return
				}
			}
			windows[i] = stats.Build(id, scope, samples, "")
			kept[i] = true
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit window task: %w", err)
		}
	}
	workers.Wait()

	out := make([]stats.Window, 0, len(ids))
	for i, w := range windows {
		if kept[i] {
			out = append(out, w)
		}
	}
	return out, nil
}

package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-scout/internal/domain/dataset"
	"github.com/riskibarqy/football-scout/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-scout/internal/platform/logging"
	"github.com/riskibarqy/football-scout/internal/usecase"
)

type seedChecker interface {
	HasLeagues(ctx context.Context) (bool, error)
}

type datasetSource struct {
	ds dataset.Dataset
}

func (s datasetSource) Read(context.Context) (dataset.Dataset, dataset.Skipped, error) {
	return s.ds, dataset.Skipped{}, nil
}

// bootstrapSeed loads the demo league into an empty database.
func bootstrapSeed(ctx context.Context, checker seedChecker, importer *usecase.ImportService, logger *logging.Logger) error {
	exists, err := checker.HasLeagues(ctx)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("bootstrap seed skipped", "reason", "leagues present")
		return nil
	}

	report, err := importer.Run(ctx, datasetSource{ds: memory.SeedDataset()}, usecase.ImportInput{})
	if err != nil {
		return fmt.Errorf("bootstrap seed: %w", err)
	}
	logger.Info("bootstrap seed applied", "league_id", report.LeagueID, "matches", report.Counts.Matches)
	return nil
}

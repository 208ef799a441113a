package usecase

import (
	"errors"

	"github.com/riskibarqy/football-scout/internal/domain/ranking"
	"github.com/riskibarqy/football-scout/internal/domain/stats"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrInvalidScope     = stats.ErrInvalidScope
	ErrInsufficientData = ranking.ErrInsufficientData
)

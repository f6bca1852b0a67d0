package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/cricket-scoring-service/internal/engine"
	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/repository"
	"github.com/maxviazov/cricket-scoring-service/internal/stats"
)

type statsService struct {
	stats *stats.Manager
	log   zerolog.Logger
}

func NewStatsService(st *stats.Manager, logger zerolog.Logger) StatsService {
	l := logger.With().Str("module", "service").Str("component", "stats").Logger()
	return &statsService{stats: st, log: l}
}

func (s *statsService) PlayerStats(ctx context.Context, playerID string) (model.PlayerStats, error) {
	if strings.TrimSpace(playerID) == "" {
		return model.PlayerStats{}, model.NewInvalidInputError([]model.FieldError{{Field: "id", Message: "must be set"}})
	}
	return s.stats.PlayerStats(playerID)
}

func (s *statsService) ListPlayers(ctx context.Context, page repository.Page) (repository.PageResult[model.PlayerStats], error) {
	return repository.Paginate(s.stats.Players(), page), nil
}

func (s *statsService) HighestWicketTaker(ctx context.Context) (model.PlayerLeader, error) {
	return s.stats.HighestWicketTaker()
}

func (s *statsService) HighestCenturyScorer(ctx context.Context, format string) (model.PlayerLeader, error) {
	f, err := engine.ParseFormat(format)
	if err != nil {
		s.log.Debug().Str("format", format).Msg("unknown format in century leader query")
		return model.PlayerLeader{}, model.NewInvalidInputError([]model.FieldError{{Field: "format", Message: "must be one of T20|ODI|TEST"}})
	}
	return s.stats.HighestCenturyScorer(f)
}

func (s *statsService) TeamStats(ctx context.Context, teamID string) (model.TeamStats, error) {
	if strings.TrimSpace(teamID) == "" {
		return model.TeamStats{}, model.NewInvalidInputError([]model.FieldError{{Field: "id", Message: "must be set"}})
	}
	return s.stats.TeamStats(teamID)
}

func (s *statsService) ListTeams(ctx context.Context, page repository.Page) (repository.PageResult[model.TeamStats], error) {
	return repository.Paginate(s.stats.Teams(), page), nil
}

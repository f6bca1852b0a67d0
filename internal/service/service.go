// Package service coordinates the match engine, the delivery journal and the shared
// statistics. Handlers and the CLI talk to matches only through it.
package service

import (
	"context"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/repository"
)

// CreateMatchInput describes a match to set up. An empty Format falls back to the
// configured default.
type CreateMatchInput struct {
	Format  string         `json:"format"`
	Team1   model.Team     `json:"team1"`
	Team2   model.Team     `json:"team2"`
	Umpires []model.Umpire `json:"umpires"`
	Stadium model.Stadium  `json:"stadium"`
}

// BallInput is one delivery as submitted by a scorer. Players are referenced by id;
// when omitted the striker at the crease and the bowler of the over are used.
// Over and ball numbers are assigned by the service.
type BallInput struct {
	Type       model.BallType   `json:"type"`
	RunsOffBat int              `json:"runs_off_bat"`
	ExtraRuns  int              `json:"extra_runs"`
	IsWicket   bool             `json:"is_wicket"`
	WicketKind model.WicketKind `json:"wicket_kind,omitempty"`
	BowlerID   string           `json:"bowler_id,omitempty"`
	StrikerID  string           `json:"striker_id,omitempty"`
}

// MatchService defines match lifecycle and scoring use cases.
type MatchService interface {
	CreateMatch(ctx context.Context, in CreateMatchInput) (model.MatchSummary, error)
	StartMatch(ctx context.Context, id string) (model.MatchSummary, error)
	AddBall(ctx context.Context, id string, in BallInput) (model.MatchSummary, error)
	EndMatch(ctx context.Context, id string) (model.MatchSummary, error)
	AbandonMatch(ctx context.Context, id string) (model.MatchSummary, error)
	AdvanceDay(ctx context.Context, id string) (model.MatchSummary, error)
	GetMatch(ctx context.Context, id string) (model.MatchSummary, error)
	ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.MatchSummary], error)
	Deliveries(ctx context.Context, id string) ([]model.DeliveryRecord, error)
	Commentary(ctx context.Context, id string) ([]string, error)
}

// StatsService defines read-only statistics use cases over every match the service has seen.
type StatsService interface {
	PlayerStats(ctx context.Context, playerID string) (model.PlayerStats, error)
	ListPlayers(ctx context.Context, page repository.Page) (repository.PageResult[model.PlayerStats], error)
	HighestWicketTaker(ctx context.Context) (model.PlayerLeader, error)
	HighestCenturyScorer(ctx context.Context, format string) (model.PlayerLeader, error)
	TeamStats(ctx context.Context, teamID string) (model.TeamStats, error)
	ListTeams(ctx context.Context, page repository.Page) (repository.PageResult[model.TeamStats], error)
}

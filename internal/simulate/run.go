package simulate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/repository"
	"github.com/maxviazov/cricket-scoring-service/internal/service"
)

// Report is what a finished simulation produced.
type Report struct {
	Match      model.MatchSummary
	Players    []model.PlayerStats
	Commentary []string
	// Ignored counts scripted balls left over once the match had finished.
	Ignored int
}

// Runner feeds scripts through a match service.
type Runner struct {
	matches service.MatchService
	stats   service.StatsService
	log     zerolog.Logger
}

func NewRunner(matches service.MatchService, stats service.StatsService, logger zerolog.Logger) *Runner {
	return &Runner{
		matches: matches,
		stats:   stats,
		log:     logger.With().Str("module", "simulate").Logger(),
	}
}

// Run plays the script. A rejected ball stops the run with an error naming its position.
func (r *Runner) Run(ctx context.Context, s Script) (Report, error) {
	m, err := r.matches.CreateMatch(ctx, s.Setup())
	if err != nil {
		return Report{}, fmt.Errorf("create match: %w", err)
	}
	if m, err = r.matches.StartMatch(ctx, m.ID); err != nil {
		return Report{}, fmt.Errorf("start match: %w", err)
	}
	r.log.Info().Str("match_id", m.ID).Str("format", string(m.Format)).Msg("simulation started")

	var rep Report
	n := 0
	for i, b := range s.Balls {
		for k := 0; k < b.times(); k++ {
			n++
			if m.State != model.MatchInProgress {
				rep.Ignored++
				continue
			}
			if m, err = r.matches.AddBall(ctx, m.ID, b.Input()); err != nil {
				return Report{}, fmt.Errorf("ball %d (script entry %d): %w", n, i+1, err)
			}
		}
		if b.EndOfDay && m.State == model.MatchInProgress {
			if m, err = r.matches.AdvanceDay(ctx, m.ID); err != nil {
				return Report{}, fmt.Errorf("end of day after entry %d: %w", i+1, err)
			}
		}
	}
	if rep.Ignored > 0 {
		r.log.Warn().Int("ignored", rep.Ignored).Msg("balls scripted after the match finished")
	}

	if m.State == model.MatchInProgress {
		switch s.Finish {
		case "end":
			m, err = r.matches.EndMatch(ctx, m.ID)
		case "abandon":
			m, err = r.matches.AbandonMatch(ctx, m.ID)
		}
		if err != nil {
			return Report{}, fmt.Errorf("finish match: %w", err)
		}
	}

	rep.Match = m
	if rep.Commentary, err = r.matches.Commentary(ctx, m.ID); err != nil {
		return Report{}, err
	}
	players, err := r.stats.ListPlayers(ctx, repository.Page{Limit: 1000})
	if err != nil {
		return Report{}, err
	}
	rep.Players = players.Items
	return rep, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maxviazov/cricket-scoring-service/internal/commentary"
	"github.com/maxviazov/cricket-scoring-service/internal/engine"
	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/repository"
	"github.com/maxviazov/cricket-scoring-service/internal/stats"
)

// MatchConfig carries the knobs of the match service.
type MatchConfig struct {
	DefaultFormat  model.Format
	CommentaryKeep int
	// Observers are registered on every match after the shared stats manager.
	Observers []engine.Observer
}

// matchEntry is one live match. mu serializes every call into the engine, which
// is not safe for concurrent use.
type matchEntry struct {
	mu          sync.Mutex
	match       *engine.Match
	commentator *commentary.Commentator
	seq         int
	createdAt   time.Time
}

type matchService struct {
	mu      sync.RWMutex
	matches map[string]*matchEntry
	order   []string

	deliveries repository.DeliveryRepository
	tx         repository.TxManager
	stats      *stats.Manager
	cfg        MatchConfig
	now        func() time.Time
	log        zerolog.Logger
}

func NewMatchService(deliveries repository.DeliveryRepository, tx repository.TxManager, st *stats.Manager, cfg MatchConfig, logger zerolog.Logger) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = model.FormatT20
	}
	return &matchService{
		matches:    make(map[string]*matchEntry),
		deliveries: deliveries,
		tx:         tx,
		stats:      st,
		cfg:        cfg,
		now:        time.Now,
		log:        l,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, in CreateMatchInput) (model.MatchSummary, error) {
	format := s.cfg.DefaultFormat
	if strings.TrimSpace(in.Format) != "" {
		f, err := engine.ParseFormat(in.Format)
		if err != nil {
			return model.MatchSummary{}, model.NewInvalidInputError([]model.FieldError{{Field: "format", Message: "must be one of T20|ODI|TEST"}})
		}
		format = f
	}

	id := uuid.NewString()
	cm := commentary.New(id, s.cfg.CommentaryKeep)
	observers := make([]engine.Observer, 0, len(s.cfg.Observers)+2)
	if s.stats != nil {
		observers = append(observers, s.stats)
	}
	observers = append(observers, s.cfg.Observers...)
	observers = append(observers, cm)

	m, err := engine.CreateMatch(format, in.Team1, in.Team2, in.Umpires, in.Stadium, engine.WithID(id), engine.WithObservers(observers...))
	if err != nil {
		s.log.Debug().Err(err).Str("format", string(format)).Msg("match setup rejected")
		return model.MatchSummary{}, err
	}

	e := &matchEntry{match: m, commentator: cm, createdAt: s.now().UTC()}
	s.mu.Lock()
	s.matches[id] = e
	s.order = append(s.order, id)
	s.mu.Unlock()

	s.log.Info().Str("match_id", id).Str("format", string(format)).
		Str("team1", in.Team1.ID).Str("team2", in.Team2.ID).Msg("match created")
	return summarize(e), nil
}

func (s *matchService) StartMatch(ctx context.Context, id string) (model.MatchSummary, error) {
	return s.transition(id, "start", (*engine.Match).StartMatch)
}

func (s *matchService) EndMatch(ctx context.Context, id string) (model.MatchSummary, error) {
	return s.transition(id, "end", (*engine.Match).EndMatch)
}

func (s *matchService) AbandonMatch(ctx context.Context, id string) (model.MatchSummary, error) {
	return s.transition(id, "abandon", (*engine.Match).Abandon)
}

func (s *matchService) AdvanceDay(ctx context.Context, id string) (model.MatchSummary, error) {
	return s.transition(id, "advance_day", (*engine.Match).AdvanceDay)
}

func (s *matchService) transition(id, action string, fn func(*engine.Match) error) (model.MatchSummary, error) {
	e, err := s.entry(id)
	if err != nil {
		return model.MatchSummary{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.match); err != nil {
		s.log.Debug().Err(err).Str("match_id", id).Str("action", action).Msg("match transition rejected")
		return model.MatchSummary{}, err
	}
	s.log.Info().Str("match_id", id).Str("action", action).Str("state", string(e.match.State())).Msg("match transition")
	return summarize(e), nil
}

// AddBall journals the delivery and feeds it to the engine inside one transaction,
// so a delivery the engine rejects is never kept.
func (s *matchService) AddBall(ctx context.Context, id string, in BallInput) (model.MatchSummary, error) {
	e, err := s.entry(id)
	if err != nil {
		return model.MatchSummary{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	d, inningsNo, err := buildDelivery(e.match, in)
	if err != nil {
		return model.MatchSummary{}, err
	}

	applied := false
	rec := model.DeliveryRecord{MatchID: id, Seq: e.seq + 1, Innings: inningsNo, Delivery: d, RecordedAt: s.now().UTC()}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.deliveries.Append(ctx, rec); err != nil {
			return err
		}
		if err := e.match.AddBall(d); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if applied {
		// the engine cannot take a delivery back, so the in-memory match wins
		e.seq = rec.Seq
	}
	if err != nil {
		if applied {
			s.log.Error().Err(err).Str("match_id", id).Int("seq", rec.Seq).Msg("delivery applied but journal commit failed")
			return summarize(e), nil
		}
		s.log.Debug().Err(err).Str("match_id", id).Msg("delivery rejected")
		return model.MatchSummary{}, err
	}

	s.log.Debug().Str("match_id", id).Int("seq", rec.Seq).Str("score", e.match.CurrentScore().String()).Msg("delivery recorded")
	if e.match.State() != model.MatchInProgress {
		s.log.Info().Str("match_id", id).Str("state", string(e.match.State())).Msg("match finished")
	}
	return summarize(e), nil
}

func (s *matchService) GetMatch(ctx context.Context, id string) (model.MatchSummary, error) {
	e, err := s.entry(id)
	if err != nil {
		return model.MatchSummary{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return summarize(e), nil
}

func (s *matchService) ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.MatchSummary], error) {
	s.mu.RLock()
	entries := make([]*matchEntry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.matches[id])
	}
	s.mu.RUnlock()

	out := make([]model.MatchSummary, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, summarize(e))
		e.mu.Unlock()
	}
	return repository.Paginate(out, page), nil
}

func (s *matchService) Deliveries(ctx context.Context, id string) ([]model.DeliveryRecord, error) {
	if _, err := s.entry(id); err != nil {
		return nil, err
	}
	recs, err := s.deliveries.ListByMatch(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("match_id", id).Msg("list deliveries failed")
		return nil, err
	}
	return recs, nil
}

func (s *matchService) Commentary(ctx context.Context, id string) ([]string, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	return e.commentator.Lines(), nil
}

func (s *matchService) entry(id string) (*matchEntry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.NewInvalidInputError([]model.FieldError{{Field: "id", Message: "must be set"}})
	}
	s.mu.RLock()
	e, ok := s.matches[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: match %s", repository.ErrNotFound, id)
	}
	return e, nil
}

// buildDelivery resolves players and numbers the ball against the live innings.
func buildDelivery(m *engine.Match, in BallInput) (model.Delivery, int, error) {
	if m.State() != model.MatchInProgress {
		return model.Delivery{}, 0, fmt.Errorf("%w: state is %s", engine.ErrMatchNotInProgress, m.State())
	}
	inn, ok := m.CurrentInnings()
	if !ok {
		return model.Delivery{}, 0, engine.ErrNoActiveInnings
	}

	var ferrs []model.FieldError
	striker, ok := resolveStriker(inn, in.StrikerID)
	if !ok {
		ferrs = append(ferrs, model.FieldError{Field: "striker_id", Message: "must be one of the two batters at the crease"})
	}
	bowler, ok := resolveBowler(inn, in.BowlerID)
	if !ok {
		ferrs = append(ferrs, model.FieldError{Field: "bowler_id", Message: "must be a player of the bowling side"})
	}
	if err := model.NewInvalidInputError(ferrs); err != nil {
		return model.Delivery{}, 0, err
	}

	ballType := in.Type
	if ballType == "" {
		ballType = model.BallNormal
		if in.IsWicket {
			ballType = model.BallWicket
		}
	}
	over, ball := nextBall(inn)
	d, err := model.NewDelivery(model.Delivery{
		Over:       over,
		Ball:       ball,
		Type:       ballType,
		RunsOffBat: in.RunsOffBat,
		ExtraRuns:  in.ExtraRuns,
		IsWicket:   in.IsWicket,
		WicketKind: in.WicketKind,
		Bowler:     bowler,
		Striker:    striker,
	})
	return d, inn.Number(), err
}

func resolveStriker(inn *engine.Innings, id string) (model.Player, bool) {
	if id == "" {
		batters := inn.CurrentBatters()
		if len(batters) == 0 {
			return model.Player{}, false
		}
		return batters[0], true
	}
	for _, p := range inn.CurrentBatters() {
		if p.ID == id && !inn.IsOut(id) {
			return p, true
		}
	}
	return model.Player{}, false
}

func resolveBowler(inn *engine.Innings, id string) (model.Player, bool) {
	if id == "" {
		return inn.NextBowler()
	}
	return findPlayer(inn.BowlingTeam(), id)
}

func findPlayer(t model.Team, id string) (model.Player, bool) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, true
		}
	}
	return model.Player{}, false
}

// nextBall numbers the coming delivery: zero-based over, ball 1..6 within it.
func nextBall(inn *engine.Innings) (over, ball int) {
	cur := inn.CurrentOver()
	if cur.IsComplete() {
		return cur.Number() + 1, 1
	}
	return cur.Number(), cur.Len() + 1
}

func summarize(e *matchEntry) model.MatchSummary {
	m := e.match
	out := model.MatchSummary{
		ID:           m.ID(),
		Format:       m.Format(),
		State:        m.State(),
		Team1:        m.Team1().ID,
		Team2:        m.Team2().ID,
		Stadium:      m.Stadium().Name,
		Day:          m.Day(),
		CurrentScore: m.CurrentScore(),
		Innings:      m.Totals(),
		CreatedAt:    e.createdAt,
	}
	if inn, ok := m.CurrentInnings(); ok {
		out.CurrentInnings = inn.Number()
		if t, ok := inn.Target(); ok {
			out.Target = t
		}
		if m.State() == model.MatchInProgress && !inn.IsComplete() {
			batters := inn.CurrentBatters()
			if len(batters) > 0 {
				out.Striker = batters[0].ID
			}
			if len(batters) > 1 {
				out.NonStriker = batters[1].ID
			}
			if p, ok := inn.NextBowler(); ok {
				out.Bowler = p.ID
			}
		}
	}
	if r, ok := m.Result(); ok {
		out.Result = &r
	}
	return out
}

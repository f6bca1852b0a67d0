package engine

import (
	"fmt"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/stats"
)

// Match orchestrates innings and fans each accepted delivery out to its observers.
//
// State machine: NOT_STARTED -> IN_PROGRESS -> COMPLETED | ABANDONED.
// Team1 always bats first; innings alternate after that.
type Match struct {
	id      string
	rules   FormatRules
	team1   model.Team
	team2   model.Team
	umpires []model.Umpire
	stadium model.Stadium

	state   model.MatchState
	innings []*Innings
	current *Innings
	score   model.Score
	day     int
	result  *model.MatchResult

	stats     *stats.Manager
	observers []Observer
	notifying bool
}

func newMatch(rules FormatRules, team1, team2 model.Team, umpires []model.Umpire, stadium model.Stadium, opts ...Option) *Match {
	m := &Match{
		rules:   rules,
		team1:   team1,
		team2:   team2,
		umpires: append([]model.Umpire(nil), umpires...),
		stadium: stadium,
		state:   model.MatchNotStarted,
		stats:   stats.NewManager(),
	}
	m.observers = []Observer{m.stats}
	for _, opt := range opts {
		opt(m)
	}
	if rules.MaxDays > 0 {
		m.day = 1
	}
	return m
}

// RegisterObserver appends o to the fan-out list. The match does not own o.
func (m *Match) RegisterObserver(o Observer) {
	m.observers = append(m.observers, o)
}

// StartMatch moves the match to IN_PROGRESS and opens the first innings.
func (m *Match) StartMatch() error {
	if m.state != model.MatchNotStarted {
		return fmt.Errorf("%w: state is %s", ErrMatchAlreadyStarted, m.state)
	}
	m.state = model.MatchInProgress
	m.openInnings()
	return nil
}

// AddBall submits one delivery. On success the delivery has been folded into the
// current innings, every observer has seen it, and the match has moved on to the
// next innings or to COMPLETED if that delivery closed things out.
func (m *Match) AddBall(d model.Delivery) error {
	if m.notifying {
		return ErrReentrantDelivery
	}
	if m.state != model.MatchInProgress {
		return fmt.Errorf("%w: state is %s", ErrMatchNotInProgress, m.state)
	}
	if m.current == nil {
		return ErrNoActiveInnings
	}
	if m.current.IsComplete() {
		return fmt.Errorf("%w: innings %d", ErrInningsClosed, m.current.Number())
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if !m.current.AtCrease(d.Striker.ID) {
		return fmt.Errorf("%w: %s", ErrStrikerNotAtCrease, d.Striker.ID)
	}

	inn := m.current
	if !inn.AddDelivery(d) {
		return fmt.Errorf("%w: innings %d", ErrInningsClosed, inn.Number())
	}
	m.score = inn.Score()

	m.notifying = true
	defer func() { m.notifying = false }()

	info := m.infoFor(inn)
	for _, o := range m.observers {
		o.OnDelivery(info, d)
	}

	m.advance()
	return nil
}

// EndMatch closes a match that is in progress without a decision (recorded as a draw).
func (m *Match) EndMatch() error {
	if m.state != model.MatchInProgress {
		return fmt.Errorf("%w: state is %s", ErrMatchNotInProgress, m.state)
	}
	m.finish(model.MatchCompleted, m.undecided(model.OutcomeDraw))
	return nil
}

// Abandon is the administrative stop (weather, umpires) of a match in progress.
func (m *Match) Abandon() error {
	switch m.state {
	case model.MatchCompleted, model.MatchAbandoned:
		return fmt.Errorf("%w: state is %s", ErrMatchFinished, m.state)
	case model.MatchNotStarted:
		return fmt.Errorf("%w: state is %s", ErrMatchNotInProgress, m.state)
	}
	m.finish(model.MatchAbandoned, m.undecided(model.OutcomeNoResult))
	return nil
}

// AdvanceDay moves a multi-day match to its next day. Advancing past the last
// day completes the match as a draw.
func (m *Match) AdvanceDay() error {
	if m.rules.MaxDays == 0 {
		return fmt.Errorf("%w: %s", ErrNoDayLimit, m.rules.Format)
	}
	if m.state != model.MatchInProgress {
		return fmt.Errorf("%w: state is %s", ErrMatchNotInProgress, m.state)
	}
	if m.day < m.rules.MaxDays {
		m.day++
		return nil
	}
	m.finish(model.MatchCompleted, m.undecided(model.OutcomeDraw))
	return nil
}

// ValidateFormatRules checks the match against the fixed policy of its format.
func (m *Match) ValidateFormatRules() error {
	want, err := RulesFor(m.rules.Format)
	if err != nil {
		return err
	}
	if m.rules.MaxOvers != want.MaxOvers {
		return fmt.Errorf("%w: %s allows %d overs, match has %d", ErrFormatRules, want.Format, want.MaxOvers, m.rules.MaxOvers)
	}
	for _, inn := range m.innings {
		if inn.MaxOvers() != want.MaxOvers {
			return fmt.Errorf("%w: innings %d limited to %d overs", ErrFormatRules, inn.Number(), inn.MaxOvers())
		}
	}
	if len(m.innings) > want.Innings {
		return fmt.Errorf("%w: %d innings played, %s allows %d", ErrFormatRules, len(m.innings), want.Format, want.Innings)
	}
	if want.MaxDays > 0 && m.day > want.MaxDays {
		return fmt.Errorf("%w: day %d beyond the %d-day limit", ErrFormatRules, m.day, want.MaxDays)
	}
	return nil
}

func (m *Match) openInnings() {
	n := len(m.innings)
	batting, bowling := m.team1, m.team2
	if n%2 == 1 {
		batting, bowling = m.team2, m.team1
	}
	target := 0
	if n > 0 && n == m.rules.Innings-1 {
		target = m.runsFor(bowling.ID) - m.runsFor(batting.ID) + 1
	}
	m.current = NewInnings(n+1, batting, bowling, m.rules.MaxOvers, target)
	m.innings = append(m.innings, m.current)
}

func (m *Match) advance() {
	if !m.current.IsComplete() {
		return
	}
	played := len(m.innings)
	if played >= m.rules.Innings {
		m.finish(model.MatchCompleted, m.decide())
		return
	}

	// before the last innings: the side yet to bat again may already lead by an innings
	if played > 1 && played == m.rules.Innings-1 {
		last, other := m.team2, m.team1
		if played%2 == 0 {
			last, other = m.team1, m.team2
		}
		lead := m.runsFor(last.ID) - m.runsFor(other.ID)
		if lead > 0 {
			r := m.undecided(model.OutcomeWin)
			r.WinnerTeamID, r.LoserTeamID = last.ID, other.ID
			r.Margin, r.MarginUnit = lead, model.MarginInningsAndRuns
			m.finish(model.MatchCompleted, r)
			return
		}
	}
	m.openInnings()
}

func (m *Match) decide() model.MatchResult {
	r := m.undecided(model.OutcomeTie)
	chasing, defending := m.current.BattingTeam(), m.current.BowlingTeam()
	chaseRuns, defendRuns := m.runsFor(chasing.ID), m.runsFor(defending.ID)
	switch {
	case chaseRuns > defendRuns:
		r.Outcome = model.OutcomeWin
		r.WinnerTeamID, r.LoserTeamID = chasing.ID, defending.ID
		r.Margin, r.MarginUnit = model.MaxWickets-m.current.Score().Wickets, model.MarginWickets
	case chaseRuns < defendRuns:
		r.Outcome = model.OutcomeWin
		r.WinnerTeamID, r.LoserTeamID = defending.ID, chasing.ID
		r.Margin, r.MarginUnit = defendRuns-chaseRuns, model.MarginRuns
	}
	return r
}

func (m *Match) undecided(o model.Outcome) model.MatchResult {
	return model.MatchResult{Outcome: o, Innings: m.Totals()}
}

func (m *Match) finish(state model.MatchState, r model.MatchResult) {
	m.state = state
	m.result = &r

	prev := m.notifying
	m.notifying = true
	defer func() { m.notifying = prev }()
	for _, o := range m.observers {
		if ro, ok := o.(ResultObserver); ok {
			ro.OnMatchEnd(m.id, m.rules.Format, r)
		}
	}
}

func (m *Match) runsFor(teamID string) int {
	runs := 0
	for _, inn := range m.innings {
		if inn.BattingTeam().ID == teamID {
			runs += inn.Score().Runs
		}
	}
	return runs
}

func (m *Match) infoFor(inn *Innings) model.MatchInfo {
	return model.MatchInfo{
		MatchID:       m.id,
		Format:        m.rules.Format,
		Innings:       inn.Number(),
		BattingTeamID: inn.BattingTeam().ID,
		BowlingTeamID: inn.BowlingTeam().ID,
	}
}

// Totals lists the score of every innings opened so far.
func (m *Match) Totals() []model.InningsTotal {
	out := make([]model.InningsTotal, 0, len(m.innings))
	for _, inn := range m.innings {
		out = append(out, model.InningsTotal{Number: inn.Number(), BattingTeamID: inn.BattingTeam().ID, Score: inn.Score()})
	}
	return out
}

func (m *Match) ID() string                { return m.id }
func (m *Match) Format() model.Format      { return m.rules.Format }
func (m *Match) Rules() FormatRules        { return m.rules }
func (m *Match) State() model.MatchState   { return m.state }
func (m *Match) Team1() model.Team         { return m.team1 }
func (m *Match) Team2() model.Team         { return m.team2 }
func (m *Match) Stadium() model.Stadium    { return m.stadium }
func (m *Match) Day() int                  { return m.day }
func (m *Match) Stats() *stats.Manager     { return m.stats }
func (m *Match) Umpires() []model.Umpire   { return append([]model.Umpire(nil), m.umpires...) }
func (m *Match) Innings() []*Innings       { return append([]*Innings(nil), m.innings...) }

// CurrentScore mirrors the score of the innings that accepted the latest delivery.
func (m *Match) CurrentScore() model.Score { return m.score }

// CurrentInnings is the innings being played, or the last one once the match has finished.
func (m *Match) CurrentInnings() (*Innings, bool) { return m.current, m.current != nil }

// Result is available once the match is COMPLETED or ABANDONED.
func (m *Match) Result() (model.MatchResult, bool) {
	if m.result == nil {
		return model.MatchResult{}, false
	}
	return *m.result, true
}

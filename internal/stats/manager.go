// Package stats folds the delivery stream into per-player and per-team aggregates
// and answers leaderboard queries over them.
package stats

import (
	"errors"
	"fmt"
	"sync"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
)

var (
	ErrNoPlayersTracked = errors.New("no players tracked")
	ErrNoCenturyScorer  = errors.New("no century scorer")
	ErrPlayerNotTracked = errors.New("player not tracked")
	ErrTeamNotTracked   = errors.New("team not tracked")
)

const (
	centuryMark     = 100
	halfCenturyMark = 50
)

type inningsKey struct {
	matchID  string
	innings  int
	playerID string
}

type appearanceKey struct {
	matchID  string
	playerID string
}

// Manager is an observer of match deliveries and a query service over what it saw.
// Counters only grow; there is no way to retract a delivery.
//
// One Manager may observe many matches at once, so it guards its state with a mutex.
type Manager struct {
	mu          sync.RWMutex
	order       []string
	players     map[string]*model.PlayerStats
	innings     map[inningsKey]int
	appearances map[appearanceKey]struct{}
	teamOrder   []string
	teams       map[string]*model.TeamStats
}

func NewManager() *Manager {
	return &Manager{
		players:     make(map[string]*model.PlayerStats),
		innings:     make(map[inningsKey]int),
		appearances: make(map[appearanceKey]struct{}),
		teams:       make(map[string]*model.TeamStats),
	}
}

// OnDelivery credits the striker's runs and the bowler's wicket.
func (m *Manager) OnDelivery(info model.MatchInfo, d model.Delivery) {
	m.mu.Lock()
	defer m.mu.Unlock()

	striker := m.getOrCreate(d.Striker)
	bowler := m.getOrCreate(d.Bowler)
	m.appear(info, striker)
	m.appear(info, bowler)

	runs := d.BatterRuns()
	key := inningsKey{matchID: info.MatchID, innings: info.Innings, playerID: d.Striker.ID}
	prev := m.innings[key]
	next := prev + runs
	m.innings[key] = next

	fs := striker.ByFormat[info.Format]
	striker.TotalRuns += runs
	fs.Runs += runs
	centuries, halves := milestoneDelta(prev, next)
	striker.Centuries += centuries
	striker.HalfCenturies += halves
	fs.Centuries += centuries
	fs.HalfCenturies += halves
	striker.ByFormat[info.Format] = fs

	if d.IsWicket {
		bfs := bowler.ByFormat[info.Format]
		bowler.TotalWickets++
		bfs.Wickets++
		bowler.ByFormat[info.Format] = bfs
	}
}

// OnMatchEnd records the result against both teams.
func (m *Manager) OnMatchEnd(_ string, _ model.Format, r model.MatchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	for _, it := range r.Innings {
		ts := m.team(it.BattingTeamID)
		ts.TotalRuns += it.Score.Runs
		ts.WicketsLost += it.Score.Wickets
		seen[it.BattingTeamID] = true
	}
	for id := range seen {
		ts := m.team(id)
		ts.Played++
		switch {
		case r.Outcome == model.OutcomeWin && r.WinnerTeamID == id:
			ts.Won++
		case r.Outcome == model.OutcomeWin:
			ts.Lost++
		case r.Outcome == model.OutcomeTie:
			ts.Tied++
		case r.Outcome == model.OutcomeDraw:
			ts.Drawn++
		default:
			ts.NoResult++
		}
	}
}

// PlayerStats returns a copy of the aggregates for playerID.
func (m *Manager) PlayerStats(playerID string) (model.PlayerStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ps, ok := m.players[playerID]
	if !ok {
		return model.PlayerStats{}, fmt.Errorf("%w: %s", ErrPlayerNotTracked, playerID)
	}
	return clonePlayerStats(ps), nil
}

// TeamStats returns a copy of the results for teamID.
func (m *Manager) TeamStats(teamID string) (model.TeamStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ts, ok := m.teams[teamID]
	if !ok {
		return model.TeamStats{}, fmt.Errorf("%w: %s", ErrTeamNotTracked, teamID)
	}
	return *ts, nil
}

// Players lists the aggregates of every tracked player in the order they were first seen.
func (m *Manager) Players() []model.PlayerStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.PlayerStats, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, clonePlayerStats(m.players[id]))
	}
	return out
}

// Teams lists the results of every team with a finished match.
func (m *Manager) Teams() []model.TeamStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.TeamStats, 0, len(m.teamOrder))
	for _, id := range m.teamOrder {
		out = append(out, *m.teams[id])
	}
	return out
}

// HighestWicketTaker scans every tracked player. Ties go to whoever was tracked first.
// A leader with zero wickets is still a leader; only an empty manager fails.
func (m *Manager) HighestWicketTaker() (model.PlayerLeader, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.order) == 0 {
		return model.PlayerLeader{}, ErrNoPlayersTracked
	}
	best := m.players[m.order[0]]
	for _, id := range m.order[1:] {
		if ps := m.players[id]; ps.TotalWickets > best.TotalWickets {
			best = ps
		}
	}
	return model.PlayerLeader{Player: best.Player, Value: best.TotalWickets}, nil
}

// HighestCenturyScorer returns the player with the most centuries in format.
func (m *Manager) HighestCenturyScorer(format model.Format) (model.PlayerLeader, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.order) == 0 {
		return model.PlayerLeader{}, ErrNoPlayersTracked
	}
	var best *model.PlayerStats
	for _, id := range m.order {
		ps := m.players[id]
		if ps.ByFormat[format].Centuries == 0 {
			continue
		}
		if best == nil || ps.ByFormat[format].Centuries > best.ByFormat[format].Centuries {
			best = ps
		}
	}
	if best == nil {
		return model.PlayerLeader{}, fmt.Errorf("%w in %s", ErrNoCenturyScorer, format)
	}
	return model.PlayerLeader{Player: best.Player, Value: best.ByFormat[format].Centuries}, nil
}

func (m *Manager) getOrCreate(p model.Player) *model.PlayerStats {
	ps, ok := m.players[p.ID]
	if !ok {
		ps = &model.PlayerStats{Player: p, ByFormat: make(map[model.Format]model.FormatStats)}
		m.players[p.ID] = ps
		m.order = append(m.order, p.ID)
	}
	return ps
}

func (m *Manager) appear(info model.MatchInfo, ps *model.PlayerStats) {
	key := appearanceKey{matchID: info.MatchID, playerID: ps.Player.ID}
	if _, ok := m.appearances[key]; ok {
		return
	}
	m.appearances[key] = struct{}{}
	ps.Matches++
	fs := ps.ByFormat[info.Format]
	fs.Matches++
	ps.ByFormat[info.Format] = fs
}

func (m *Manager) team(id string) *model.TeamStats {
	ts, ok := m.teams[id]
	if !ok {
		ts = &model.TeamStats{TeamID: id}
		m.teams[id] = ts
		m.teamOrder = append(m.teamOrder, id)
	}
	return ts
}

// milestoneDelta classifies the innings tally before and after a delivery. Crossing
// 100 from a fifty turns that fifty into a century.
func milestoneDelta(prev, next int) (centuries, halves int) {
	before, after := milestone(prev), milestone(next)
	if before == after {
		return 0, 0
	}
	switch before {
	case halfCenturyMark:
		halves--
	case centuryMark:
		centuries--
	}
	switch after {
	case halfCenturyMark:
		halves++
	case centuryMark:
		centuries++
	}
	return centuries, halves
}

func milestone(runs int) int {
	switch {
	case runs >= centuryMark:
		return centuryMark
	case runs >= halfCenturyMark:
		return halfCenturyMark
	default:
		return 0
	}
}

func clonePlayerStats(ps *model.PlayerStats) model.PlayerStats {
	out := *ps
	out.ByFormat = make(map[model.Format]model.FormatStats, len(ps.ByFormat))
	for f, s := range ps.ByFormat {
		out.ByFormat[f] = s
	}
	return out
}

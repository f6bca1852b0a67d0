package engine_test

import (
	"fmt"
	"testing"

	"github.com/maxviazov/cricket-scoring-service/internal/engine"
	"github.com/maxviazov/cricket-scoring-service/internal/model"
)

func squad(id string, n int) model.Team {
	t := model.Team{ID: id, Name: id}
	for i := 1; i <= n; i++ {
		t.Players = append(t.Players, model.Player{ID: fmt.Sprintf("%s-%d", id, i), BowlingStyle: "medium"})
	}
	return t
}

func newMatch(t *testing.T, f model.Format, opts ...engine.Option) *engine.Match {
	t.Helper()
	m, err := engine.CreateMatch(f, squad("ind", 11), squad("aus", 11), nil, model.Stadium{Name: "Eden Gardens"}, opts...)
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if err := m.StartMatch(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return m
}

// play bowls d with the striker at the crease and the bowler due.
func play(t *testing.T, m *engine.Match, d model.Delivery) {
	t.Helper()
	inn, ok := m.CurrentInnings()
	if !ok {
		t.Fatalf("no innings")
	}
	d.Striker = inn.CurrentBatters()[0]
	d.Bowler, _ = inn.NextBowler()
	if d.Type == "" {
		d.Type = model.BallNormal
	}
	if err := m.AddBall(d); err != nil {
		t.Fatalf("add ball: %v", err)
	}
}

func singles(t *testing.T, m *engine.Match, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		play(t, m, model.Delivery{RunsOffBat: 1})
	}
}

func wickets(t *testing.T, m *engine.Match, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		play(t, m, model.Delivery{Type: model.BallWicket, IsWicket: true, WicketKind: model.WicketBowled})
	}
}

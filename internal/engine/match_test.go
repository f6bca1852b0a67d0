package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/cricket-scoring-service/internal/engine"
	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/stats"
)

type resultSpy struct {
	calls  int
	result model.MatchResult
}

func (r *resultSpy) OnDelivery(model.MatchInfo, model.Delivery) {}
func (r *resultSpy) OnMatchEnd(_ string, _ model.Format, res model.MatchResult) {
	r.calls++
	r.result = res
}

func TestCreateMatch_Validation(t *testing.T) {
	_, err := engine.CreateMatch("HUNDRED", squad("a", 2), squad("b", 2), nil, model.Stadium{})
	assert.ErrorIs(t, err, engine.ErrUnknownFormat)

	cases := map[string][2]model.Team{
		"same team":     {squad("a", 2), squad("a", 2)},
		"missing id":    {squad("", 2), squad("b", 2)},
		"short roster":  {squad("a", 1), squad("b", 2)},
		"shared player": {squad("a", 2), {ID: "b", Players: []model.Player{{ID: "a-1"}, {ID: "b-2"}}}},
		"blank player":  {squad("a", 2), {ID: "b", Players: []model.Player{{ID: ""}, {ID: "b-2"}}}},
	}
	for name, teams := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := engine.CreateMatch(model.FormatT20, teams[0], teams[1], nil, model.Stadium{})
			assert.ErrorIs(t, err, engine.ErrInvalidTeams)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]model.Format{"t20": model.FormatT20, " Odi ": model.FormatODI, "TEST": model.FormatTest} {
		got, err := engine.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := engine.ParseFormat("")
	assert.ErrorIs(t, err, engine.ErrUnknownFormat)
}

func TestMatch_StatePreconditions(t *testing.T) {
	m, err := engine.CreateMatch(model.FormatT20, squad("ind", 11), squad("aus", 11), nil, model.Stadium{})
	require.NoError(t, err)
	assert.Equal(t, model.MatchNotStarted, m.State())

	d := model.Delivery{Type: model.BallNormal, Bowler: model.Player{ID: "aus-1"}, Striker: model.Player{ID: "ind-1"}}
	assert.ErrorIs(t, m.AddBall(d), engine.ErrMatchNotInProgress)
	assert.ErrorIs(t, m.EndMatch(), engine.ErrMatchNotInProgress)

	require.NoError(t, m.StartMatch())
	assert.ErrorIs(t, m.StartMatch(), engine.ErrMatchAlreadyStarted)

	bad := d
	bad.Type = model.BallWide
	bad.RunsOffBat = 4
	assert.ErrorIs(t, m.AddBall(bad), model.ErrInvalidInput)
	assert.Equal(t, model.Score{}, m.CurrentScore(), "rejected delivery must not change the score")

	require.NoError(t, m.Abandon())
	assert.Equal(t, model.MatchAbandoned, m.State())
	assert.ErrorIs(t, m.Abandon(), engine.ErrMatchFinished)
	assert.ErrorIs(t, m.AddBall(d), engine.ErrMatchNotInProgress)

	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, model.OutcomeNoResult, res.Outcome)
}

func TestMatch_AbandonRequiresMatchInProgress(t *testing.T) {
	m, err := engine.CreateMatch(model.FormatODI, squad("ind", 2), squad("aus", 2), nil, model.Stadium{})
	require.NoError(t, err)
	assert.ErrorIs(t, m.Abandon(), engine.ErrMatchNotInProgress)
	assert.Equal(t, model.MatchNotStarted, m.State())
	_, finished := m.Result()
	assert.False(t, finished)
	assert.NoError(t, m.StartMatch())
}

func TestMatch_StrikerMustBeAtCrease(t *testing.T) {
	m := newMatch(t, model.FormatT20)
	d := model.Delivery{Type: model.BallWicket, IsWicket: true, WicketKind: model.WicketCaught,
		Bowler: model.Player{ID: "aus-1"}, Striker: model.Player{ID: "ind-7"}}
	assert.ErrorIs(t, m.AddBall(d), engine.ErrStrikerNotAtCrease)

	inn, _ := m.CurrentInnings()
	assert.Equal(t, model.Score{}, inn.Score())
	assert.False(t, inn.IsOut("ind-7"))
	_, err := m.Stats().PlayerStats("ind-7")
	assert.ErrorIs(t, err, stats.ErrPlayerNotTracked, "observers must not see a rejected delivery")
}

func TestMatch_T20FirstInnings(t *testing.T) {
	m := newMatch(t, model.FormatT20)
	singles(t, m, 120)

	innings := m.Innings()
	require.Len(t, innings, 2)
	first := innings[0]
	assert.Equal(t, model.Score{Runs: 120, Overs: 20}, first.Score())
	assert.Equal(t, model.InningsCompleted, first.State())
	assert.Equal(t, model.Score{Runs: 120, Overs: 20}, m.CurrentScore())

	second, ok := m.CurrentInnings()
	require.True(t, ok)
	assert.Equal(t, 2, second.Number())
	assert.Equal(t, "aus", second.BattingTeam().ID)
	target, ok := second.Target()
	require.True(t, ok)
	assert.Equal(t, 121, target)
	assert.Equal(t, model.MatchInProgress, m.State())
	assert.NoError(t, m.ValidateFormatRules())
}

func TestMatch_TenWicketsCloseInnings(t *testing.T) {
	m := newMatch(t, model.FormatODI)
	singles(t, m, 3)
	wickets(t, m, 10)

	first := m.Innings()[0]
	assert.True(t, first.IsComplete())
	assert.Equal(t, model.Score{Runs: 3, Wickets: 10, Overs: 2, Balls: 1}, first.Score())
	assert.Len(t, m.Innings(), 2)
}

func TestMatch_Results(t *testing.T) {
	t.Run("chasing side wins by wickets", func(t *testing.T) {
		spy := &resultSpy{}
		m := newMatch(t, model.FormatT20, engine.WithObservers(spy))
		singles(t, m, 5)
		wickets(t, m, 10)
		wickets(t, m, 2)
		singles(t, m, 6)
		require.Equal(t, model.MatchInProgress, m.State(), "scores level, target not yet exceeded")
		singles(t, m, 1)

		res, ok := m.Result()
		require.True(t, ok)
		assert.Equal(t, model.MatchCompleted, m.State())
		assert.Equal(t, model.OutcomeWin, res.Outcome)
		assert.Equal(t, "aus", res.WinnerTeamID)
		assert.Equal(t, "ind", res.LoserTeamID)
		assert.Equal(t, 8, res.Margin)
		assert.Equal(t, model.MarginWickets, res.MarginUnit)
		assert.Len(t, res.Innings, 2)
		assert.Equal(t, 1, spy.calls)
		assert.Equal(t, res, spy.result)
	})

	t.Run("defending side wins by runs", func(t *testing.T) {
		m := newMatch(t, model.FormatT20)
		singles(t, m, 120)
		singles(t, m, 20)
		wickets(t, m, 10)

		res, _ := m.Result()
		assert.Equal(t, "ind", res.WinnerTeamID)
		assert.Equal(t, 100, res.Margin)
		assert.Equal(t, model.MarginRuns, res.MarginUnit)
	})

	t.Run("tie", func(t *testing.T) {
		m := newMatch(t, model.FormatT20)
		singles(t, m, 5)
		wickets(t, m, 10)
		singles(t, m, 5)
		wickets(t, m, 10)

		res, _ := m.Result()
		assert.Equal(t, model.OutcomeTie, res.Outcome)
		assert.Empty(t, res.WinnerTeamID)
	})

	t.Run("end match is a draw", func(t *testing.T) {
		m := newMatch(t, model.FormatODI)
		singles(t, m, 7)
		require.NoError(t, m.EndMatch())
		res, _ := m.Result()
		assert.Equal(t, model.OutcomeDraw, res.Outcome)
		assert.Equal(t, 7, res.Innings[0].Score.Runs)
	})
}

func TestMatch_TestFormat(t *testing.T) {
	t.Run("innings victory before the fourth innings", func(t *testing.T) {
		m := newMatch(t, model.FormatTest)
		wickets(t, m, 10)
		singles(t, m, 30)
		wickets(t, m, 10)
		singles(t, m, 10)
		wickets(t, m, 10)

		res, ok := m.Result()
		require.True(t, ok)
		assert.Len(t, m.Innings(), 3)
		assert.Equal(t, "aus", res.WinnerTeamID)
		assert.Equal(t, 20, res.Margin)
		assert.Equal(t, model.MarginInningsAndRuns, res.MarginUnit)
	})

	t.Run("fourth innings chase", func(t *testing.T) {
		m := newMatch(t, model.FormatTest)
		singles(t, m, 40)
		wickets(t, m, 10)
		singles(t, m, 30)
		wickets(t, m, 10)
		singles(t, m, 5)
		wickets(t, m, 10)

		fourth, ok := m.CurrentInnings()
		require.True(t, ok)
		assert.Equal(t, 4, fourth.Number())
		assert.Equal(t, "aus", fourth.BattingTeam().ID)
		target, _ := fourth.Target()
		assert.Equal(t, 16, target)

		singles(t, m, 16)
		require.Equal(t, model.MatchInProgress, m.State(), "reaching the target keeps the chase open")
		singles(t, m, 1)
		res, _ := m.Result()
		assert.Equal(t, "aus", res.WinnerTeamID)
		assert.Equal(t, model.MarginWickets, res.MarginUnit)
		assert.Equal(t, 10, res.Margin)
	})

	t.Run("days run out", func(t *testing.T) {
		m := newMatch(t, model.FormatTest)
		assert.Equal(t, 1, m.Day())
		for day := 2; day <= 5; day++ {
			require.NoError(t, m.AdvanceDay())
			assert.Equal(t, day, m.Day())
		}
		require.NoError(t, m.AdvanceDay())
		assert.Equal(t, model.MatchCompleted, m.State())
		res, _ := m.Result()
		assert.Equal(t, model.OutcomeDraw, res.Outcome)
		assert.ErrorIs(t, m.AdvanceDay(), engine.ErrMatchNotInProgress)
	})

	t.Run("limited overs have no days", func(t *testing.T) {
		m := newMatch(t, model.FormatT20)
		assert.ErrorIs(t, m.AdvanceDay(), engine.ErrNoDayLimit)
		assert.Equal(t, 0, m.Day())
	})
}

func TestMatch_ObserversInOrder(t *testing.T) {
	var seen []string
	var infos []model.MatchInfo
	first := engine.ObserverFunc(func(info model.MatchInfo, d model.Delivery) {
		seen = append(seen, "first")
		infos = append(infos, info)
	})
	second := engine.ObserverFunc(func(model.MatchInfo, model.Delivery) { seen = append(seen, "second") })

	m := newMatch(t, model.FormatT20, engine.WithID("m-42"), engine.WithObservers(first))
	m.RegisterObserver(second)
	singles(t, m, 2)

	assert.Equal(t, []string{"first", "second", "first", "second"}, seen)
	require.Len(t, infos, 2)
	assert.Equal(t, model.MatchInfo{MatchID: "m-42", Format: model.FormatT20, Innings: 1, BattingTeamID: "ind", BowlingTeamID: "aus"}, infos[0])

	ps, err := m.Stats().PlayerStats("ind-1")
	require.NoError(t, err)
	assert.Equal(t, 1, ps.TotalRuns)
}

func TestMatch_ReentrantDeliveryRejected(t *testing.T) {
	var m *engine.Match
	var inner error
	calls := 0
	nested := engine.ObserverFunc(func(_ model.MatchInfo, d model.Delivery) {
		calls++
		inner = m.AddBall(d)
	})
	m = newMatch(t, model.FormatT20, engine.WithObservers(nested))
	singles(t, m, 1)

	assert.Equal(t, 1, calls)
	assert.True(t, errors.Is(inner, engine.ErrReentrantDelivery), "got %v", inner)
	assert.Equal(t, 1, m.CurrentScore().Runs)

	singles(t, m, 1)
	assert.Equal(t, 2, m.CurrentScore().Runs, "guard must be released after fan-out")
}

func TestRulesFor(t *testing.T) {
	r, err := engine.RulesFor(model.FormatTest)
	require.NoError(t, err)
	assert.Equal(t, engine.FormatRules{Format: model.FormatTest, Innings: 4, MaxDays: 5}, r)

	r, _ = engine.RulesFor(model.FormatODI)
	assert.Equal(t, 50, r.MaxOvers)
}

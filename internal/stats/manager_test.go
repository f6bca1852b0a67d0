package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/stats"
)

var (
	kohli   = model.Player{ID: "kohli", Name: "Kohli"}
	rohit   = model.Player{ID: "rohit", Name: "Rohit"}
	starc   = model.Player{ID: "starc", Name: "Starc"}
	cummins = model.Player{ID: "cummins", Name: "Cummins"}
)

func runs(n int, bowler, striker model.Player) model.Delivery {
	return model.Delivery{Type: model.BallNormal, RunsOffBat: n, Bowler: bowler, Striker: striker}
}

func wicket(bowler, striker model.Player) model.Delivery {
	return model.Delivery{Type: model.BallWicket, IsWicket: true, WicketKind: model.WicketCaught, Bowler: bowler, Striker: striker}
}

func info(matchID string, f model.Format, innings int) model.MatchInfo {
	return model.MatchInfo{MatchID: matchID, Format: f, Innings: innings, BattingTeamID: "ind", BowlingTeamID: "aus"}
}

func TestManager_Empty(t *testing.T) {
	m := stats.NewManager()

	_, err := m.HighestWicketTaker()
	assert.ErrorIs(t, err, stats.ErrNoPlayersTracked)
	_, err = m.HighestCenturyScorer(model.FormatODI)
	assert.ErrorIs(t, err, stats.ErrNoPlayersTracked)
	_, err = m.PlayerStats("kohli")
	assert.ErrorIs(t, err, stats.ErrPlayerNotTracked)
	_, err = m.TeamStats("ind")
	assert.ErrorIs(t, err, stats.ErrTeamNotTracked)
	assert.Empty(t, m.Players())
	assert.Empty(t, m.Teams())
}

func TestManager_CenturyCrossingFromNinetyNine(t *testing.T) {
	m := stats.NewManager()
	in := info("m-1", model.FormatODI, 1)
	for i := 0; i < 33; i++ {
		m.OnDelivery(in, runs(3, starc, kohli))
	}
	ps, err := m.PlayerStats("kohli")
	require.NoError(t, err)
	assert.Equal(t, 99, ps.TotalRuns)
	assert.Equal(t, 1, ps.HalfCenturies)
	assert.Equal(t, 0, ps.Centuries)

	m.OnDelivery(in, runs(4, starc, kohli))
	ps, _ = m.PlayerStats("kohli")
	assert.Equal(t, 103, ps.TotalRuns)
	assert.Equal(t, 1, ps.Centuries)
	assert.Equal(t, 0, ps.HalfCenturies, "a fifty that became a hundred is not also a fifty")
	assert.Equal(t, model.FormatStats{Runs: 103, Matches: 1, Centuries: 1}, ps.ByFormat[model.FormatODI])

	m.OnDelivery(in, runs(6, starc, kohli))
	ps, _ = m.PlayerStats("kohli")
	assert.Equal(t, 1, ps.Centuries, "one innings counts once")
}

func TestManager_MilestonesArePerInnings(t *testing.T) {
	m := stats.NewManager()
	for inn := 1; inn <= 2; inn++ {
		for i := 0; i < 9; i++ {
			m.OnDelivery(info("m-1", model.FormatTest, inn), runs(6, starc, kohli))
		}
	}
	ps, _ := m.PlayerStats("kohli")
	assert.Equal(t, 108, ps.TotalRuns)
	assert.Equal(t, 2, ps.HalfCenturies)
	assert.Equal(t, 0, ps.Centuries)
	assert.Equal(t, 1, ps.Matches)
}

func TestManager_ExtrasAndWickets(t *testing.T) {
	m := stats.NewManager()
	in := info("m-1", model.FormatT20, 1)
	m.OnDelivery(in, model.Delivery{Type: model.BallWide, ExtraRuns: 4, Bowler: starc, Striker: kohli})
	m.OnDelivery(in, model.Delivery{Type: model.BallNoBall, ExtraRuns: 1, Bowler: starc, Striker: kohli})
	m.OnDelivery(in, wicket(starc, kohli))

	ps, _ := m.PlayerStats("kohli")
	assert.Equal(t, 0, ps.TotalRuns, "wides and no-balls credit the batter nothing")
	bs, _ := m.PlayerStats("starc")
	assert.Equal(t, 1, bs.TotalWickets)
	assert.Equal(t, 1, bs.ByFormat[model.FormatT20].Wickets)
}

func TestManager_MatchesPlayed(t *testing.T) {
	m := stats.NewManager()
	m.OnDelivery(info("m-1", model.FormatT20, 1), runs(1, starc, kohli))
	m.OnDelivery(info("m-1", model.FormatT20, 2), runs(1, kohli, starc))
	m.OnDelivery(info("m-2", model.FormatODI, 1), runs(1, starc, kohli))

	ps, _ := m.PlayerStats("kohli")
	assert.Equal(t, 2, ps.Matches)
	assert.Equal(t, 1, ps.ByFormat[model.FormatT20].Matches)
	assert.Equal(t, 1, ps.ByFormat[model.FormatODI].Matches)
}

func TestManager_Leaders(t *testing.T) {
	m := stats.NewManager()
	in := info("m-1", model.FormatODI, 1)
	m.OnDelivery(in, runs(0, starc, kohli))
	m.OnDelivery(in, runs(0, cummins, rohit))

	leader, err := m.HighestWicketTaker()
	require.NoError(t, err)
	assert.Equal(t, "kohli", leader.Player.ID, "ties go to the first player tracked")
	assert.Equal(t, 0, leader.Value)

	m.OnDelivery(in, wicket(cummins, rohit))
	m.OnDelivery(in, wicket(cummins, kohli))
	m.OnDelivery(in, wicket(starc, rohit))
	leader, _ = m.HighestWicketTaker()
	assert.Equal(t, "cummins", leader.Player.ID)
	assert.Equal(t, 2, leader.Value)

	_, err = m.HighestCenturyScorer(model.FormatODI)
	assert.ErrorIs(t, err, stats.ErrNoCenturyScorer)

	odi2 := info("m-2", model.FormatODI, 1)
	for i := 0; i < 17; i++ {
		m.OnDelivery(odi2, runs(6, starc, rohit))
	}
	leader, err = m.HighestCenturyScorer(model.FormatODI)
	require.NoError(t, err)
	assert.Equal(t, "rohit", leader.Player.ID)
	assert.Equal(t, 1, leader.Value)

	_, err = m.HighestCenturyScorer(model.FormatT20)
	assert.ErrorIs(t, err, stats.ErrNoCenturyScorer)
}

func TestManager_PlayerStatsIsACopy(t *testing.T) {
	m := stats.NewManager()
	m.OnDelivery(info("m-1", model.FormatT20, 1), runs(4, starc, kohli))
	ps, _ := m.PlayerStats("kohli")
	ps.ByFormat[model.FormatT20] = model.FormatStats{Runs: 1000}
	again, _ := m.PlayerStats("kohli")
	assert.Equal(t, 4, again.ByFormat[model.FormatT20].Runs)
}

func TestManager_TeamResults(t *testing.T) {
	m := stats.NewManager()
	m.OnMatchEnd("m-1", model.FormatT20, model.MatchResult{
		Outcome: model.OutcomeWin, WinnerTeamID: "ind", LoserTeamID: "aus",
		Innings: []model.InningsTotal{
			{Number: 1, BattingTeamID: "ind", Score: model.Score{Runs: 180, Wickets: 6}},
			{Number: 2, BattingTeamID: "aus", Score: model.Score{Runs: 150, Wickets: 10}},
		},
	})
	m.OnMatchEnd("m-2", model.FormatODI, model.MatchResult{
		Outcome: model.OutcomeDraw,
		Innings: []model.InningsTotal{
			{Number: 1, BattingTeamID: "aus", Score: model.Score{Runs: 20, Wickets: 1}},
		},
	})

	ind, err := m.TeamStats("ind")
	require.NoError(t, err)
	assert.Equal(t, model.TeamStats{TeamID: "ind", Played: 1, Won: 1, TotalRuns: 180, WicketsLost: 6}, ind)

	aus, _ := m.TeamStats("aus")
	assert.Equal(t, model.TeamStats{TeamID: "aus", Played: 2, Lost: 1, Drawn: 1, TotalRuns: 170, WicketsLost: 11}, aus)
	assert.Len(t, m.Teams(), 2)
}

package simulate

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
)

// Render writes the innings totals, the player table and the result line.
// tail limits how many commentary lines are printed; 0 prints none.
func Render(w io.Writer, rep Report, tail int) {
	m := rep.Match
	fmt.Fprintf(w, "%s match %s", m.Format, m.ID)
	if m.Stadium != "" {
		fmt.Fprintf(w, " at %s", m.Stadium)
	}
	fmt.Fprintln(w)

	innings := table.NewWriter()
	innings.SetStyle(table.StyleLight)
	innings.AppendHeader(table.Row{"Innings", "Batting", "Score", "Overs"})
	for _, it := range m.Innings {
		innings.AppendRow(table.Row{it.Number, it.BattingTeamID, fmt.Sprintf("%d/%d", it.Score.Runs, it.Score.Wickets), fmt.Sprintf("%d.%d", it.Score.Overs, it.Score.Balls)})
	}
	if m.Target > 0 {
		innings.AppendFooter(table.Row{"", "", "Target", m.Target})
	}
	fmt.Fprintln(w, innings.Render())

	if len(rep.Players) > 0 {
		players := table.NewWriter()
		players.SetStyle(table.StyleLight)
		players.AppendHeader(table.Row{"Player", "Runs", "Wickets", "100s", "50s"})
		for _, ps := range rep.Players {
			players.AppendRow(table.Row{playerName(ps.Player), ps.TotalRuns, ps.TotalWickets, ps.Centuries, ps.HalfCenturies})
		}
		players.AppendFooter(table.Row{fmt.Sprintf("Total: %d players", len(rep.Players))})
		fmt.Fprintln(w, players.Render())
	}

	if tail > 0 && len(rep.Commentary) > 0 {
		lines := rep.Commentary
		if len(lines) > tail {
			lines = lines[len(lines)-tail:]
		}
		color.New(color.FgCyan).Fprintln(w, strings.Join(lines, "\n"))
	}

	renderResult(w, m)
	if rep.Ignored > 0 {
		color.New(color.FgYellow).Fprintf(w, "%d scripted balls ignored after the finish\n", rep.Ignored)
	}
}

func renderResult(w io.Writer, m model.MatchSummary) {
	if m.Result == nil {
		color.New(color.FgYellow).Fprintf(w, "Match %s, %s\n", strings.ToLower(strings.ReplaceAll(string(m.State), "_", " ")), m.CurrentScore)
		return
	}
	fmt.Fprintln(w, ResultLine(*m.Result))
}

// ResultLine describes a result in one sentence ("ind won by 5 wickets").
func ResultLine(r model.MatchResult) string {
	switch r.Outcome {
	case model.OutcomeWin:
		switch r.MarginUnit {
		case model.MarginInningsAndRuns:
			return color.GreenString("%s won by an innings and %d runs", r.WinnerTeamID, r.Margin)
		case model.MarginWickets:
			return color.GreenString("%s won by %d wickets", r.WinnerTeamID, r.Margin)
		default:
			return color.GreenString("%s won by %d runs", r.WinnerTeamID, r.Margin)
		}
	case model.OutcomeTie:
		return color.YellowString("Match tied")
	case model.OutcomeDraw:
		return color.YellowString("Match drawn")
	default:
		return color.RedString("No result")
	}
}

func playerName(p model.Player) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

package engine

import (
	"fmt"
	"strings"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
)

// FormatRules is the construction policy of one match format.
type FormatRules struct {
	Format   model.Format
	MaxOvers int // per innings, 0 for unlimited
	Innings  int // innings per match
	MaxDays  int // 0 when the format is not played over days
}

var formatRules = map[model.Format]FormatRules{
	model.FormatT20:  {Format: model.FormatT20, MaxOvers: 20, Innings: 2},
	model.FormatODI:  {Format: model.FormatODI, MaxOvers: 50, Innings: 2},
	model.FormatTest: {Format: model.FormatTest, Innings: 4, MaxDays: 5},
}

// RulesFor returns the policy for f or ErrUnknownFormat.
func RulesFor(f model.Format) (FormatRules, error) {
	r, ok := formatRules[f]
	if !ok {
		return FormatRules{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return r, nil
}

// ParseFormat accepts a format name in any case ("t20", "Odi", "test").
func ParseFormat(s string) (model.Format, error) {
	f := model.Format(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := RulesFor(f); err != nil {
		return "", err
	}
	return f, nil
}

// CreateMatch builds a match for the given format with team1 batting first.
func CreateMatch(format model.Format, team1, team2 model.Team, umpires []model.Umpire, stadium model.Stadium, opts ...Option) (*Match, error) {
	rules, err := RulesFor(format)
	if err != nil {
		return nil, err
	}
	if err := validateTeams(team1, team2); err != nil {
		return nil, err
	}
	return newMatch(rules, team1, team2, umpires, stadium, opts...), nil
}

func validateTeams(team1, team2 model.Team) error {
	switch {
	case team1.ID == "" || team2.ID == "":
		return fmt.Errorf("%w: team id is required", ErrInvalidTeams)
	case team1.ID == team2.ID:
		return fmt.Errorf("%w: teams must differ", ErrInvalidTeams)
	case len(team1.Players) < 2 || len(team2.Players) < 2:
		return fmt.Errorf("%w: each team needs at least two players", ErrInvalidTeams)
	}
	seen := make(map[string]string)
	for _, t := range []model.Team{team1, team2} {
		for _, p := range t.Players {
			if p.ID == "" {
				return fmt.Errorf("%w: player id is required in team %s", ErrInvalidTeams, t.ID)
			}
			if owner, dup := seen[p.ID]; dup {
				return fmt.Errorf("%w: player %s listed in %s and %s", ErrInvalidTeams, p.ID, owner, t.ID)
			}
			seen[p.ID] = t.ID
		}
	}
	return nil
}

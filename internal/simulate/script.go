// Package simulate replays a YAML-scripted match through the match service and
// renders the outcome as scorecard tables.
package simulate

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/service"
)

// Script is a whole match: the two sides and the balls bowled in order.
type Script struct {
	Format  string     `yaml:"format"`
	Stadium string     `yaml:"stadium"`
	Umpires []string   `yaml:"umpires"`
	Team1   TeamSpec   `yaml:"team1"`
	Team2   TeamSpec   `yaml:"team2"`
	Balls   []BallSpec `yaml:"balls" validate:"dive"`
	// Finish is applied after the last ball if the match is still live: "end" or "abandon".
	Finish string `yaml:"finish" validate:"omitempty,oneof=end abandon"`
}

type TeamSpec struct {
	ID      string       `yaml:"id" validate:"required"`
	Name    string       `yaml:"name"`
	Players []PlayerSpec `yaml:"players" validate:"min=2,dive"`
}

type PlayerSpec struct {
	ID           string `yaml:"id" validate:"required"`
	Name         string `yaml:"name"`
	BattingStyle string `yaml:"bats"`
	BowlingStyle string `yaml:"bowls"`
}

// BallSpec is one scripted delivery. Repeat bowls the same ball several times;
// an empty striker or bowler means whoever the match has in place.
type BallSpec struct {
	Type     string `yaml:"type" validate:"omitempty,oneof=NORMAL WIDE NO_BALL WICKET normal wide no_ball wicket"`
	Runs     int    `yaml:"runs" validate:"gte=0"`
	Extras   int    `yaml:"extras" validate:"gte=0"`
	Wicket   string `yaml:"wicket"`
	Bowler   string `yaml:"bowler"`
	Striker  string `yaml:"striker"`
	Repeat   int    `yaml:"repeat" validate:"gte=0"`
	EndOfDay bool   `yaml:"end_of_day"`
}

// Load reads and validates a script file. Unknown keys are rejected so typos surface.
func Load(path string) (Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	if err := validator.New().Struct(s); err != nil {
		return Script{}, fmt.Errorf("script validation error: %w", err)
	}
	return s, nil
}

// Setup converts the script header into a match creation request.
func (s Script) Setup() service.CreateMatchInput {
	in := service.CreateMatchInput{
		Format:  s.Format,
		Team1:   s.Team1.team(),
		Team2:   s.Team2.team(),
		Stadium: model.Stadium{Name: s.Stadium},
	}
	for _, u := range s.Umpires {
		in.Umpires = append(in.Umpires, model.Umpire{Name: u})
	}
	return in
}

func (t TeamSpec) team() model.Team {
	out := model.Team{ID: t.ID, Name: t.Name}
	for _, p := range t.Players {
		out.Players = append(out.Players, model.Player{
			ID:           p.ID,
			Name:         p.Name,
			Country:      t.Name,
			BattingStyle: p.BattingStyle,
			BowlingStyle: p.BowlingStyle,
		})
	}
	return out
}

// Input converts the scripted ball into a service request. A wicket kind implies
// a WICKET delivery unless the type says otherwise (a run out off a no-ball).
func (b BallSpec) Input() service.BallInput {
	in := service.BallInput{
		Type:       model.BallType(strings.ToUpper(b.Type)),
		RunsOffBat: b.Runs,
		ExtraRuns:  b.Extras,
		BowlerID:   b.Bowler,
		StrikerID:  b.Striker,
	}
	if b.Wicket != "" {
		in.IsWicket = true
		in.WicketKind = model.WicketKind(strings.ToUpper(b.Wicket))
	}
	return in
}

func (b BallSpec) times() int {
	if b.Repeat <= 0 {
		return 1
	}
	return b.Repeat
}

package model

import "fmt"

const (
	// BallsPerOver is the number of deliveries that make an over. Every submitted
	// delivery, extras included, takes one slot.
	BallsPerOver = 6
	// MaxWickets ends an innings.
	MaxWickets = 10
)

// Score is a running aggregate of an innings. Balls is always in [0, BallsPerOver-1].
type Score struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Overs   int `json:"overs"`
	Balls   int `json:"balls"`
}

// Apply folds one delivery into the score and returns the new value.
// It is pure: the receiver is not modified.
func (s Score) Apply(d Delivery) Score {
	s.Runs += d.TotalRuns()
	if d.IsWicket {
		s.Wickets++
	}
	s.Balls++
	if s.Balls == BallsPerOver {
		s.Overs++
		s.Balls = 0
	}
	return s
}

// ScoreOf folds a whole delivery sequence from an empty score.
func ScoreOf(ds []Delivery) Score {
	var s Score
	for _, d := range ds {
		s = s.Apply(d)
	}
	return s
}

// OversBowled is the fractional overs value for display only. Limits are
// compared on Overs and Balls, never on this.
func (s Score) OversBowled() float64 {
	return float64(s.Overs) + float64(s.Balls)/BallsPerOver
}

// String renders the score the way scorecards do, e.g. "142/3 (17.4)".
func (s Score) String() string {
	return fmt.Sprintf("%d/%d (%d.%d)", s.Runs, s.Wickets, s.Overs, s.Balls)
}

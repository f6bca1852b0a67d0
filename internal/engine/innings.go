package engine

import "github.com/maxviazov/cricket-scoring-service/internal/model"

// Innings is one team's turn at the crease. It owns its overs and moves from
// IN_PROGRESS to COMPLETED exactly once.
type Innings struct {
	number   int
	batting  model.Team
	bowling  model.Team
	maxOvers int // 0 means unlimited
	target   int // 0 means no target

	overs   []*Over
	current *Over
	score   model.Score
	state   model.InningsState

	battingOrder []model.Player
	batted       map[string]bool
	out          map[string]bool
	batters      []model.Player // [striker, non-striker]
	bowler       *model.Player
}

// NewInnings opens an innings. The first two players of the batting roster open,
// and the first player of the bowling roster with a bowling style takes the ball.
// maxOvers and target are ignored when zero.
func NewInnings(number int, batting, bowling model.Team, maxOvers, target int) *Innings {
	in := &Innings{
		number:   number,
		batting:  batting,
		bowling:  bowling,
		maxOvers: maxOvers,
		target:   target,
		current:  NewOver(0),
		state:    model.InningsInProgress,
		batted:   make(map[string]bool),
		out:      make(map[string]bool),
	}
	for _, p := range batting.Players {
		if len(in.batters) == 2 {
			break
		}
		in.batters = append(in.batters, p)
		in.markBatted(p)
	}
	in.rotateBowler()
	return in
}

// AddDelivery records d. It reports false, and changes nothing, once the innings
// is closed or when d's striker is not one of the two batters at the crease.
func (in *Innings) AddDelivery(d model.Delivery) bool {
	if in.state == model.InningsCompleted || !in.AtCrease(d.Striker.ID) {
		return false
	}

	if in.current.IsComplete() {
		in.overs = append(in.overs, in.current)
		in.current = NewOver(len(in.overs))
		in.rotateBowler()
	}

	if !in.current.TryAddDelivery(d) {
		return false
	}

	in.score = in.score.Apply(d)
	if !in.batted[d.Striker.ID] {
		in.markBatted(d.Striker)
	}

	// a dismissal brings in a new batter; it never doubles as a strike swap
	if d.IsWicket {
		in.replaceDismissed(d.Striker)
	} else if d.BatterRuns()%2 == 1 {
		in.swapStrike()
	}

	in.evaluate()
	return true
}

func (in *Innings) markBatted(p model.Player) {
	in.batted[p.ID] = true
	in.battingOrder = append(in.battingOrder, p)
}

func (in *Innings) replaceDismissed(dismissed model.Player) {
	in.out[dismissed.ID] = true
	if in.score.Wickets >= model.MaxWickets {
		return
	}

	slot := in.creaseSlot(dismissed.ID)
	if slot < 0 {
		return
	}

	for _, p := range in.batting.Players {
		if in.batted[p.ID] || in.out[p.ID] {
			continue
		}
		in.batters[slot] = p
		in.markBatted(p)
		return
	}
}

func (in *Innings) creaseSlot(playerID string) int {
	for i, b := range in.batters {
		if b.ID == playerID {
			return i
		}
	}
	return -1
}

func (in *Innings) swapStrike() {
	if len(in.batters) == 2 {
		in.batters[0], in.batters[1] = in.batters[1], in.batters[0]
	}
}

// rotateBowler hands the ball to the first capable bowler who did not bowl the
// previous over. With nobody eligible the current bowler carries on.
func (in *Innings) rotateBowler() {
	if next, ok := in.pickBowler(); ok {
		in.bowler = &next
	}
}

func (in *Innings) pickBowler() (model.Player, bool) {
	for _, p := range in.bowling.Players {
		if p.BowlingStyle == "" {
			continue
		}
		if in.bowler != nil && in.bowler.ID == p.ID {
			continue
		}
		return p, true
	}
	return model.Player{}, false
}

func (in *Innings) evaluate() {
	switch {
	case in.score.Wickets >= model.MaxWickets:
	case in.maxOvers > 0 && in.score.Overs >= in.maxOvers:
	// the chase closes only once the target is exceeded
	case in.target > 0 && in.score.Runs > in.target:
	default:
		return
	}
	in.state = model.InningsCompleted
}

func (in *Innings) Number() int               { return in.number }
func (in *Innings) Score() model.Score        { return in.score }
func (in *Innings) State() model.InningsState { return in.state }
func (in *Innings) IsComplete() bool          { return in.state == model.InningsCompleted }
func (in *Innings) BattingTeam() model.Team   { return in.batting }
func (in *Innings) BowlingTeam() model.Team   { return in.bowling }
func (in *Innings) MaxOvers() int             { return in.maxOvers }

// Target is the total the batting side must reach, if it is chasing.
func (in *Innings) Target() (int, bool) { return in.target, in.target > 0 }

// CurrentOver is the over in progress, which may be full until the next delivery rolls it.
func (in *Innings) CurrentOver() *Over { return in.current }

// Overs returns the archived overs followed by the current one when it holds any delivery.
func (in *Innings) Overs() []*Over {
	out := make([]*Over, 0, len(in.overs)+1)
	out = append(out, in.overs...)
	if in.current.Len() > 0 {
		out = append(out, in.current)
	}
	return out
}

// BattingOrder lists batters in the order they came to the crease.
func (in *Innings) BattingOrder() []model.Player {
	out := make([]model.Player, len(in.battingOrder))
	copy(out, in.battingOrder)
	return out
}

// CurrentBatters returns the pair at the crease, striker first.
func (in *Innings) CurrentBatters() []model.Player {
	out := make([]model.Player, len(in.batters))
	copy(out, in.batters)
	return out
}

// CurrentBowler is the bowler of the current over. It is false when the bowling
// roster has no capable bowler.
func (in *Innings) CurrentBowler() (model.Player, bool) {
	if in.bowler == nil {
		return model.Player{}, false
	}
	return *in.bowler, true
}

// NextBowler is who bowls the next delivery: the current bowler, or the next one
// in rotation when the current over is full.
func (in *Innings) NextBowler() (model.Player, bool) {
	if in.current.IsComplete() {
		if p, ok := in.pickBowler(); ok {
			return p, true
		}
	}
	return in.CurrentBowler()
}

// AtCrease reports whether the player is one of the two batters currently in.
func (in *Innings) AtCrease(playerID string) bool { return in.creaseSlot(playerID) >= 0 }

// IsOut reports whether the player has been dismissed in this innings.
func (in *Innings) IsOut(playerID string) bool { return in.out[playerID] }

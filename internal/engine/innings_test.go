package engine_test

import (
	"testing"

	"github.com/maxviazov/cricket-scoring-service/internal/engine"
	"github.com/maxviazov/cricket-scoring-service/internal/model"
)

func deliver(t *testing.T, in *engine.Innings, d model.Delivery) bool {
	t.Helper()
	batters := in.CurrentBatters()
	if d.Striker.ID == "" && len(batters) > 0 {
		d.Striker = batters[0]
	}
	if d.Bowler.ID == "" {
		d.Bowler, _ = in.NextBowler()
	}
	if d.Type == "" {
		d.Type = model.BallNormal
	}
	return in.AddDelivery(d)
}

func ids(ps []model.Player) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestInnings_OpenersAndBowler(t *testing.T) {
	in := engine.NewInnings(1, squad("ind", 11), squad("aus", 11), 20, 0)
	if got := ids(in.CurrentBatters()); got[0] != "ind-1" || got[1] != "ind-2" {
		t.Fatalf("openers = %v", got)
	}
	if b, ok := in.CurrentBowler(); !ok || b.ID != "aus-1" {
		t.Fatalf("opening bowler = %v, %v", b.ID, ok)
	}
	if _, ok := in.Target(); ok {
		t.Fatalf("first innings has no target")
	}
	if len(in.Overs()) != 0 {
		t.Fatalf("no overs before the first ball")
	}
}

func TestInnings_StrikeRotation(t *testing.T) {
	in := engine.NewInnings(1, squad("ind", 11), squad("aus", 11), 20, 0)

	deliver(t, in, model.Delivery{RunsOffBat: 1})
	if got := ids(in.CurrentBatters()); got[0] != "ind-2" {
		t.Fatalf("odd runs should swap strike, got %v", got)
	}
	deliver(t, in, model.Delivery{RunsOffBat: 4})
	if got := ids(in.CurrentBatters()); got[0] != "ind-2" {
		t.Fatalf("even runs keep strike, got %v", got)
	}
	deliver(t, in, model.Delivery{Type: model.BallWide, ExtraRuns: 1})
	if got := ids(in.CurrentBatters()); got[0] != "ind-2" {
		t.Fatalf("a wide credits the batter nothing and keeps strike, got %v", got)
	}
}

func TestInnings_WicketBeatsOddRunSwap(t *testing.T) {
	in := engine.NewInnings(1, squad("ind", 11), squad("aus", 11), 20, 0)
	deliver(t, in, model.Delivery{Type: model.BallWicket, RunsOffBat: 1, IsWicket: true, WicketKind: model.WicketRunOut})

	got := ids(in.CurrentBatters())
	if got[0] != "ind-3" || got[1] != "ind-2" {
		t.Fatalf("new batter should take the striker's end without a swap, got %v", got)
	}
	if !in.IsOut("ind-1") {
		t.Fatalf("ind-1 should be out")
	}
	if order := ids(in.BattingOrder()); len(order) != 3 || order[2] != "ind-3" {
		t.Fatalf("batting order = %v", order)
	}
}

func TestInnings_RejectsStrikerNotAtCrease(t *testing.T) {
	in := engine.NewInnings(1, squad("ind", 11), squad("aus", 11), 20, 0)
	outsider := model.Player{ID: "ind-7"}

	if deliver(t, in, model.Delivery{Type: model.BallWicket, IsWicket: true, WicketKind: model.WicketCaught, Striker: outsider}) {
		t.Fatalf("delivery to a batter who is not in was accepted")
	}
	if got := ids(in.CurrentBatters()); got[0] != "ind-1" || got[1] != "ind-2" {
		t.Fatalf("batters changed: %v", got)
	}
	if in.IsOut("ind-7") || in.IsOut("ind-1") {
		t.Fatalf("nobody should be out")
	}
	if in.Score() != (model.Score{}) || len(in.BattingOrder()) != 2 {
		t.Fatalf("score %+v, batting order %v", in.Score(), ids(in.BattingOrder()))
	}
	if in.AtCrease("ind-7") || !in.AtCrease("ind-2") {
		t.Fatalf("AtCrease disagrees with the batters in")
	}
}

func TestInnings_BowlerRotatesWithTheOver(t *testing.T) {
	in := engine.NewInnings(1, squad("ind", 11), squad("aus", 11), 20, 0)
	for i := 0; i < model.BallsPerOver; i++ {
		deliver(t, in, model.Delivery{})
	}
	if b, _ := in.CurrentBowler(); b.ID != "aus-1" {
		t.Fatalf("over not rolled until the next ball, bowler %s", b.ID)
	}
	if b, _ := in.NextBowler(); b.ID != "aus-2" {
		t.Fatalf("next bowler = %s, want aus-2", b.ID)
	}

	deliver(t, in, model.Delivery{})
	if b, _ := in.CurrentBowler(); b.ID != "aus-2" {
		t.Fatalf("bowler after the over = %s", b.ID)
	}
	if in.CurrentOver().Number() != 1 || len(in.Overs()) != 2 {
		t.Fatalf("over %d, %d overs", in.CurrentOver().Number(), len(in.Overs()))
	}

	for i := 0; i < model.BallsPerOver; i++ {
		deliver(t, in, model.Delivery{})
	}
	if b, _ := in.CurrentBowler(); b.ID != "aus-1" {
		t.Fatalf("third over should go back to aus-1, got %s", b.ID)
	}
}

func TestInnings_AllOutRejectsFurtherBalls(t *testing.T) {
	in := engine.NewInnings(1, squad("ind", 11), squad("aus", 11), 0, 0)
	for i := 0; i < model.MaxWickets; i++ {
		if !deliver(t, in, model.Delivery{Type: model.BallWicket, IsWicket: true, WicketKind: model.WicketCaught}) {
			t.Fatalf("wicket %d rejected", i+1)
		}
	}
	if !in.IsComplete() || in.State() != model.InningsCompleted {
		t.Fatalf("innings should be complete after ten wickets")
	}
	before := in.Score()
	if deliver(t, in, model.Delivery{Type: model.BallWicket, IsWicket: true, WicketKind: model.WicketCaught}) {
		t.Fatalf("eleventh dismissal accepted")
	}
	if in.Score() != before || before.Wickets != model.MaxWickets {
		t.Fatalf("score changed after completion: %+v -> %+v", before, in.Score())
	}
}

func TestInnings_NoReplacementLeft(t *testing.T) {
	in := engine.NewInnings(1, squad("ind", 2), squad("aus", 2), 0, 0)
	deliver(t, in, model.Delivery{Type: model.BallWicket, IsWicket: true, WicketKind: model.WicketStumped})

	if got := ids(in.CurrentBatters()); len(got) != 2 || got[0] != "ind-1" {
		t.Fatalf("batters should be left as they were, got %v", got)
	}
	if !in.IsOut("ind-1") || in.IsComplete() {
		t.Fatalf("out=%v complete=%v", in.IsOut("ind-1"), in.IsComplete())
	}
}

func TestInnings_Completion(t *testing.T) {
	t.Run("over limit", func(t *testing.T) {
		in := engine.NewInnings(1, squad("ind", 11), squad("aus", 11), 1, 0)
		for i := 0; i < model.BallsPerOver; i++ {
			deliver(t, in, model.Delivery{})
		}
		if !in.IsComplete() {
			t.Fatalf("one-over innings should close after six balls")
		}
	})
	t.Run("target exceeded", func(t *testing.T) {
		in := engine.NewInnings(2, squad("ind", 11), squad("aus", 11), 20, 10)
		deliver(t, in, model.Delivery{RunsOffBat: 6})
		deliver(t, in, model.Delivery{RunsOffBat: 4})
		if in.IsComplete() {
			t.Fatalf("chase closed on reaching the target, runs %d", in.Score().Runs)
		}
		deliver(t, in, model.Delivery{RunsOffBat: 1})
		if !in.IsComplete() {
			t.Fatalf("target exceeded but innings open, runs %d", in.Score().Runs)
		}
		if target, ok := in.Target(); !ok || target != 10 {
			t.Fatalf("target = %d, %v", target, ok)
		}
	})
}

package engine_test

import (
	"testing"

	"github.com/maxviazov/cricket-scoring-service/internal/engine"
	"github.com/maxviazov/cricket-scoring-service/internal/model"
)

func TestOver_Capacity(t *testing.T) {
	o := engine.NewOver(3)
	for i := 0; i < model.BallsPerOver; i++ {
		if o.IsComplete() {
			t.Fatalf("complete after %d balls", i)
		}
		if !o.TryAddDelivery(model.Delivery{Type: model.BallNormal, RunsOffBat: 2}) {
			t.Fatalf("ball %d rejected", i+1)
		}
	}
	if !o.IsComplete() {
		t.Fatalf("over should be complete")
	}
	if o.TryAddDelivery(model.Delivery{Type: model.BallNormal}) {
		t.Fatalf("seventh ball accepted")
	}
	if o.Len() != model.BallsPerOver || o.Number() != 3 {
		t.Fatalf("len=%d number=%d", o.Len(), o.Number())
	}
}

func TestOver_Tallies(t *testing.T) {
	o := engine.NewOver(0)
	o.TryAddDelivery(model.Delivery{Type: model.BallNormal, RunsOffBat: 4})
	o.TryAddDelivery(model.Delivery{Type: model.BallWide, ExtraRuns: 1})
	o.TryAddDelivery(model.Delivery{Type: model.BallWicket, IsWicket: true, WicketKind: model.WicketCaught})
	o.TryAddDelivery(model.Delivery{Type: model.BallNoBall, ExtraRuns: 1, IsWicket: true, WicketKind: model.WicketRunOut})

	if got := o.RunsInOver(); got != 6 {
		t.Fatalf("RunsInOver = %d, want 6", got)
	}
	if got := o.WicketsInOver(); got != 2 {
		t.Fatalf("WicketsInOver = %d, want 2", got)
	}

	ds := o.Deliveries()
	ds[0].RunsOffBat = 99
	if o.RunsInOver() != 6 {
		t.Fatalf("Deliveries must return a copy")
	}
}

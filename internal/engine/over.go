package engine

import "github.com/maxviazov/cricket-scoring-service/internal/model"

// Over is a bounded run of at most model.BallsPerOver deliveries. Once full it
// accepts nothing more.
type Over struct {
	number     int
	deliveries []model.Delivery
}

// NewOver returns an empty over with a zero-based number.
func NewOver(number int) *Over {
	return &Over{number: number, deliveries: make([]model.Delivery, 0, model.BallsPerOver)}
}

// TryAddDelivery appends d unless the over is already complete.
func (o *Over) TryAddDelivery(d model.Delivery) bool {
	if o.IsComplete() {
		return false
	}
	o.deliveries = append(o.deliveries, d)
	return true
}

func (o *Over) IsComplete() bool { return len(o.deliveries) == model.BallsPerOver }
func (o *Over) Number() int      { return o.number }
func (o *Over) Len() int         { return len(o.deliveries) }

// Deliveries returns a copy of the deliveries in bowling order.
func (o *Over) Deliveries() []model.Delivery {
	out := make([]model.Delivery, len(o.deliveries))
	copy(out, o.deliveries)
	return out
}

func (o *Over) RunsInOver() int {
	runs := 0
	for _, d := range o.deliveries {
		runs += d.TotalRuns()
	}
	return runs
}

func (o *Over) WicketsInOver() int {
	n := 0
	for _, d := range o.deliveries {
		if d.IsWicket {
			n++
		}
	}
	return n
}

package model

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Delivery is one ball's outcome. It is a value: once built it is never mutated.
//
// Runs on a WIDE or NO_BALL are carried in ExtraRuns only; such deliveries never
// add to the striker's individual tally.
type Delivery struct {
	Over       int        `json:"over" validate:"gte=0"`
	Ball       int        `json:"ball" validate:"gte=0"`
	Type       BallType   `json:"type" validate:"oneof=NORMAL WIDE NO_BALL WICKET"`
	RunsOffBat int        `json:"runs_off_bat" validate:"gte=0"`
	ExtraRuns  int        `json:"extra_runs" validate:"gte=0"`
	IsWicket   bool       `json:"is_wicket"`
	WicketKind WicketKind `json:"wicket_kind,omitempty" validate:"omitempty,oneof=CAUGHT BOWLED LBW RUN_OUT STUMPED"`
	Bowler     Player     `json:"bowler"`
	Striker    Player     `json:"striker"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func deliveryValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// NewDelivery validates d and returns it. An invalid delivery is never returned.
func NewDelivery(d Delivery) (Delivery, error) {
	if err := d.Validate(); err != nil {
		return Delivery{}, err
	}
	return d, nil
}

// Validate checks the structural invariants of a delivery and aggregates every
// violation into a single ErrInvalidInput error.
func (d Delivery) Validate() error {
	var ferrs []FieldError
	if err := deliveryValidator().Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			ferrs = append(ferrs, FieldError{Field: fieldPath(fe.Namespace()), Message: "failed " + fe.Tag() + " check"})
		}
	}

	if d.IsWicket && d.WicketKind == "" {
		ferrs = append(ferrs, FieldError{Field: "wicket_kind", Message: "required when is_wicket is set"})
	}
	if !d.IsWicket && d.WicketKind != "" {
		ferrs = append(ferrs, FieldError{Field: "wicket_kind", Message: "only allowed on a wicket"})
	}
	if d.Type == BallWicket && !d.IsWicket {
		ferrs = append(ferrs, FieldError{Field: "is_wicket", Message: "must be set for a WICKET delivery"})
	}
	if (d.Type == BallWide || d.Type == BallNoBall) && d.RunsOffBat > 0 {
		ferrs = append(ferrs, FieldError{Field: "runs_off_bat", Message: "must be 0 on a wide or no-ball; use extra_runs"})
	}
	if d.Bowler.ID != "" && d.Bowler.ID == d.Striker.ID {
		ferrs = append(ferrs, FieldError{Field: "bowler.id", Message: "bowler and striker must differ"})
	}
	return NewInvalidInputError(ferrs)
}

// TotalRuns is everything the delivery adds to the team total.
func (d Delivery) TotalRuns() int { return d.RunsOffBat + d.ExtraRuns }

// BatterRuns is what the delivery adds to the striker's individual tally.
// Wides and no-balls credit the batter with nothing.
func (d Delivery) BatterRuns() int {
	if d.Type == BallWide || d.Type == BallNoBall {
		return 0
	}
	return d.RunsOffBat + d.ExtraRuns
}

// fieldPath drops the root struct name from a validator namespace ("Delivery.bowler.id" -> "bowler.id").
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

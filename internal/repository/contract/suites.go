// Package contract holds behaviour suites every journal backend must pass.
package contract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/repository"
)

// StoreFactory returns a fresh, migrated store and its cleanup.
type StoreFactory func(t *testing.T) (repository.Store, func())

func record(matchID string, seq int, d model.Delivery) model.DeliveryRecord {
	return model.DeliveryRecord{MatchID: matchID, Seq: seq, Innings: 1, Delivery: d, RecordedAt: time.Date(2026, 3, 1, 10, 0, seq, 0, time.UTC)}
}

func sampleDelivery(ball int, runs int) model.Delivery {
	return model.Delivery{
		Over:       0,
		Ball:       ball,
		Type:       model.BallNormal,
		RunsOffBat: runs,
		Bowler:     model.Player{ID: "bowl-1", Name: "Starc"},
		Striker:    model.Player{ID: "bat-1", Name: "Rahul"},
	}
}

func RunDeliveryRepositoryContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("append_and_list_in_seq_order", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		repo := store.Deliveries()

		// appended out of order on purpose
		for _, seq := range []int{2, 1, 3} {
			if err := repo.Append(ctx, record("m-1", seq, sampleDelivery(seq, seq))); err != nil {
				t.Fatalf("append %d: %v", seq, err)
			}
		}
		if err := repo.Append(ctx, record("m-2", 1, sampleDelivery(1, 4))); err != nil {
			t.Fatalf("append other match: %v", err)
		}

		got, err := repo.ListByMatch(ctx, "m-1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 records, got %d", len(got))
		}
		for i, rec := range got {
			if rec.Seq != i+1 {
				t.Fatalf("record %d has seq %d", i, rec.Seq)
			}
			if rec.Delivery.RunsOffBat != rec.Seq || rec.Delivery.Striker.Name != "Rahul" || rec.Delivery.Type != model.BallNormal {
				t.Fatalf("round trip mismatch: %+v", rec)
			}
			if !rec.RecordedAt.Equal(time.Date(2026, 3, 1, 10, 0, rec.Seq, 0, time.UTC)) {
				t.Fatalf("recorded_at mismatch: %v", rec.RecordedAt)
			}
		}
	})

	t.Run("wicket_fields_round_trip", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		d := sampleDelivery(1, 0)
		d.Type, d.IsWicket, d.WicketKind = model.BallWicket, true, model.WicketLBW
		if err := store.Deliveries().Append(ctx, record("m-w", 1, d)); err != nil {
			t.Fatalf("append: %v", err)
		}
		got, err := store.Deliveries().ListByMatch(ctx, "m-w")
		if err != nil || len(got) != 1 {
			t.Fatalf("list: %v (%d)", err, len(got))
		}
		if !got[0].Delivery.IsWicket || got[0].Delivery.WicketKind != model.WicketLBW {
			t.Fatalf("wicket lost: %+v", got[0].Delivery)
		}
	})

	t.Run("duplicate_seq_already_exists", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := store.Deliveries().Append(ctx, record("m-d", 1, sampleDelivery(1, 1))); err != nil {
			t.Fatalf("seed: %v", err)
		}
		err := store.Deliveries().Append(ctx, record("m-d", 1, sampleDelivery(1, 2)))
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("unknown_match_is_empty", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		got, err := store.Deliveries().ListByMatch(context.Background(), "nope")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty journal, got %d", len(got))
		}
		n, err := store.Deliveries().CountByMatch(context.Background(), "nope")
		if err != nil || n != 0 {
			t.Fatalf("count: %d, %v", n, err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeStore StoreFactory) {
	t.Helper()

	t.Run("rollback_on_error", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		boom := errors.New("boom")
		err := store.Tx().WithinTx(ctx, func(ctx context.Context) error {
			if err := store.Deliveries().Append(ctx, record("m-tx", 1, sampleDelivery(1, 1))); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		n, err := store.Deliveries().CountByMatch(ctx, "m-tx")
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 0 {
			t.Fatalf("expected rollback, found %d rows", n)
		}
	})

	t.Run("commit_on_success", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		err := store.Tx().WithinTx(ctx, func(ctx context.Context) error {
			for seq := 1; seq <= 2; seq++ {
				if err := store.Deliveries().Append(ctx, record("m-ok", seq, sampleDelivery(seq, 1))); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("tx: %v", err)
		}
		n, err := store.Deliveries().CountByMatch(ctx, "m-ok")
		if err != nil || n != 2 {
			t.Fatalf("expected 2 committed rows, got %d (%v)", n, err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		if err := store.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}

package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/repository"
)

type deliveryRepository struct{ pool *pgxpool.Pool }

const deliveryColumns = `match_id, seq, innings, over_no, ball_no, ball_type, runs_off_bat, extra_runs,
	is_wicket, wicket_kind, bowler_id, bowler_name, striker_id, striker_name, recorded_at`

func (r *deliveryRepository) Append(ctx context.Context, rec model.DeliveryRecord) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	d := rec.Delivery
	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	_, err := getQ(ctx, r.pool).Exec(ctx,
		`INSERT INTO deliveries (`+deliveryColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.MatchID, rec.Seq, rec.Innings, d.Over, d.Ball, string(d.Type), d.RunsOffBat, d.ExtraRuns,
		d.IsWicket, string(d.WicketKind), d.Bowler.ID, d.Bowler.Name, d.Striker.ID, d.Striker.Name, recordedAt,
	)
	return repository.MapPgError(err)
}

func (r *deliveryRepository) ListByMatch(ctx context.Context, matchID string) ([]model.DeliveryRecord, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE match_id = $1 ORDER BY seq`, matchID)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.DeliveryRecord, 0)
	for rows.Next() {
		var (
			rec      model.DeliveryRecord
			ballType string
			kind     string
		)
		d := &rec.Delivery
		if err := rows.Scan(&rec.MatchID, &rec.Seq, &rec.Innings, &d.Over, &d.Ball, &ballType, &d.RunsOffBat, &d.ExtraRuns,
			&d.IsWicket, &kind, &d.Bowler.ID, &d.Bowler.Name, &d.Striker.ID, &d.Striker.Name, &rec.RecordedAt); err != nil {
			return nil, repository.MapPgError(err)
		}
		d.Type = model.BallType(ballType)
		d.WicketKind = model.WicketKind(kind)
		out = append(out, rec)
	}
	return out, repository.MapPgError(rows.Err())
}

func (r *deliveryRepository) CountByMatch(ctx context.Context, matchID string) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var n int
	err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM deliveries WHERE match_id = $1`, matchID).Scan(&n)
	if err != nil {
		return 0, repository.MapPgError(err)
	}
	return n, nil
}

var _ repository.DeliveryRepository = (*deliveryRepository)(nil)

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/repository"
)

type deliveryRepository struct{ db *sql.DB }

const deliveryColumns = `match_id, seq, innings, over_no, ball_no, ball_type, runs_off_bat, extra_runs,
	is_wicket, wicket_kind, bowler_id, bowler_name, striker_id, striker_name, recorded_at`

func (r *deliveryRepository) Append(ctx context.Context, rec model.DeliveryRecord) error {
	d := rec.Delivery
	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	_, err := getQ(ctx, r.db).ExecContext(ctx,
		`INSERT INTO deliveries (`+deliveryColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID, rec.Seq, rec.Innings, d.Over, d.Ball, string(d.Type), d.RunsOffBat, d.ExtraRuns,
		d.IsWicket, string(d.WicketKind), d.Bowler.ID, d.Bowler.Name, d.Striker.ID, d.Striker.Name,
		recordedAt.UTC().Format(time.RFC3339Nano),
	)
	return mapError(err)
}

func (r *deliveryRepository) ListByMatch(ctx context.Context, matchID string) ([]model.DeliveryRecord, error) {
	rows, err := getQ(ctx, r.db).QueryContext(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE match_id = ? ORDER BY seq`, matchID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]model.DeliveryRecord, 0)
	for rows.Next() {
		var (
			rec        model.DeliveryRecord
			ballType   string
			kind       string
			recordedAt string
		)
		d := &rec.Delivery
		if err := rows.Scan(&rec.MatchID, &rec.Seq, &rec.Innings, &d.Over, &d.Ball, &ballType, &d.RunsOffBat, &d.ExtraRuns,
			&d.IsWicket, &kind, &d.Bowler.ID, &d.Bowler.Name, &d.Striker.ID, &d.Striker.Name, &recordedAt); err != nil {
			return nil, mapError(err)
		}
		d.Type = model.BallType(ballType)
		d.WicketKind = model.WicketKind(kind)
		if rec.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
		}
		out = append(out, rec)
	}
	return out, mapError(rows.Err())
}

func (r *deliveryRepository) CountByMatch(ctx context.Context, matchID string) (int, error) {
	var n int
	err := getQ(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM deliveries WHERE match_id = ?`, matchID).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

var _ repository.DeliveryRepository = (*deliveryRepository)(nil)

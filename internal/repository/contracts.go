package repository

import (
	"context"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
)

// Pinger is the readiness probe of a journal backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc runs inside a transaction. Repositories called with its ctx join that transaction.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// DeliveryRepository is the append-only journal of accepted deliveries.
// (match_id, seq) is unique; appending it twice yields ErrAlreadyExists.
type DeliveryRepository interface {
	Append(ctx context.Context, rec model.DeliveryRecord) error
	// ListByMatch returns the journal of one match ordered by seq, empty when nothing was recorded.
	ListByMatch(ctx context.Context, matchID string) ([]model.DeliveryRecord, error)
	// CountByMatch returns how many deliveries were recorded for the match.
	CountByMatch(ctx context.Context, matchID string) (int, error)
}

// Store bundles a journal backend with its transaction manager and readiness probe.
type Store interface {
	Pinger
	Deliveries() DeliveryRepository
	Tx() TxManager
	Close() error
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/blazern/recipe-calculator-server-sub000/internal/pairing"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/database"
)

// PairingConnection is the production implementation of pairing.Connection:
// it runs the engine's closure inside one serializable transaction and
// binds the range/taken-code stores to that transaction for the closure's
// duration, per spec's cross-process exclusion requirement.
type PairingConnection struct {
	txManager *database.TxManager
	queries   *Queries
}

func NewPairingConnection(txManager *database.TxManager, queries *Queries) *PairingConnection {
	return &PairingConnection{txManager: txManager, queries: queries}
}

var _ pairing.Connection = (*PairingConnection)(nil)

func (c *PairingConnection) Transact(ctx context.Context, fn func(ctx context.Context, store pairing.Store) error) error {
	return c.txManager.WithSerializableTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		q := c.queries.WithTx(tx)
		store := pairing.Store{
			Ranges: NewRangeRepository(q),
			Codes:  NewTakenCodeRepository(q),
		}
		return fn(ctx, store)
	})
}

package repository

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/database"
)

// RepositoryContainer holds all repository instances used by the service
// layer, plus the pairing-code engine's own transactional handle.
type RepositoryContainer struct {
	pool            *pgxpool.Pool
	queries         *Queries
	txManager       *database.TxManager
	Users           *UserRepositoryImpl
	PairingRequests *PairingRequestRepositoryImpl
	DirectMessages  *DirectMessageRepositoryImpl
	Ranges          *RangeRepositoryImpl
	TakenCodes      *TakenCodeRepositoryImpl
	PairingConn     *PairingConnection
}

// NewRepositoryContainer creates all repository instances.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	queries := New(pool)
	txManager := database.NewTxManager(pool)

	return &RepositoryContainer{
		pool:            pool,
		queries:         queries,
		txManager:       txManager,
		Users:           NewUserRepository(queries),
		PairingRequests: NewPairingRequestRepository(queries),
		DirectMessages:  NewDirectMessageRepository(queries),
		Ranges:          NewRangeRepository(queries),
		TakenCodes:      NewTakenCodeRepository(queries),
		PairingConn:     NewPairingConnection(txManager, queries),
	}
}

// WithTx returns queries bound to a transaction.
func (rc *RepositoryContainer) WithTx(tx pgx.Tx) *Queries {
	return rc.queries.WithTx(tx)
}

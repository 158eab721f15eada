package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pairing"
)

// ==================== Error Mapping ====================

// mapError translates a driver error for the collaborator tables
// (users, pairing requests, direct messages) into a domain sentinel.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	return err
}

// mapPairingError translates a driver error from the pairing-code tables
// into the pairing package's taxonomy, preserving the underlying kind the
// way StorageError requires.
func mapPairingError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return pairing.NewStorageError("unique_violation", err)
		case "40001":
			return pairing.NewStorageError("serialization_failure", err)
		case "23514":
			return pairing.NewStorageError("check_violation", err)
		}
		return pairing.NewStorageError(pgErr.Code, err)
	}

	return pairing.NewStorageError("unknown", err)
}

// ==================== UUID Converters ====================

func uuidToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgtypeToUUID(id pgtype.UUID) uuid.UUID {
	if !id.Valid {
		return uuid.Nil
	}
	return id.Bytes
}

// ==================== Time Converters ====================

func timeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pgtypeToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func pgtypeToTimePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func timePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func unixToPgtype(secs int64) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Unix(secs, 0).UTC(), Valid: true}
}

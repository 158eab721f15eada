package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// PairingCodeRange mirrors one row of the pairing_code_range table.
type PairingCodeRange struct {
	ID    int64
	Left  int32
	Right int32
	Family string
}

type InsertPairingCodeRangeParams struct {
	Left   int32
	Right  int32
	Family string
}

func (q *Queries) InsertPairingCodeRange(ctx context.Context, arg InsertPairingCodeRangeParams) (PairingCodeRange, error) {
	const query = `
		INSERT INTO pairing_code_range (left_code, right_code, family)
		VALUES ($1, $2, $3)
		RETURNING id, left_code, right_code, family`
	var row PairingCodeRange
	err := q.db.QueryRow(ctx, query, arg.Left, arg.Right, arg.Family).
		Scan(&row.ID, &row.Left, &row.Right, &row.Family)
	return row, err
}

func (q *Queries) GetPairingCodeRangeByID(ctx context.Context, id int64) (PairingCodeRange, error) {
	const query = `SELECT id, left_code, right_code, family FROM pairing_code_range WHERE id = $1`
	var row PairingCodeRange
	err := q.db.QueryRow(ctx, query, id).Scan(&row.ID, &row.Left, &row.Right, &row.Family)
	return row, err
}

func (q *Queries) ListPairingCodeRangesByFamily(ctx context.Context, family string) ([]PairingCodeRange, error) {
	const query = `
		SELECT id, left_code, right_code, family FROM pairing_code_range
		WHERE family = $1
		ORDER BY right_code DESC, left_code ASC`
	rows, err := q.db.Query(ctx, query, family)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PairingCodeRange
	for rows.Next() {
		var row PairingCodeRange
		if err := rows.Scan(&row.ID, &row.Left, &row.Right, &row.Family); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (q *Queries) DeletePairingCodeRangeByID(ctx context.Context, id int64) error {
	const query = `DELETE FROM pairing_code_range WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id)
	return err
}

func (q *Queries) DeletePairingCodeRangesByFamily(ctx context.Context, family string) error {
	const query = `DELETE FROM pairing_code_range WHERE family = $1`
	_, err := q.db.Exec(ctx, query, family)
	return err
}

func (q *Queries) GetFirstPairingCodeRangeToTheLeftOf(ctx context.Context, v int32, family string) (PairingCodeRange, error) {
	const query = `
		SELECT id, left_code, right_code, family FROM pairing_code_range
		WHERE family = $1 AND right_code < $2
		ORDER BY right_code DESC
		LIMIT 1`
	var row PairingCodeRange
	err := q.db.QueryRow(ctx, query, family, v).Scan(&row.ID, &row.Left, &row.Right, &row.Family)
	return row, err
}

func (q *Queries) GetFirstPairingCodeRangeToTheRightOf(ctx context.Context, v int32, family string) (PairingCodeRange, error) {
	const query = `
		SELECT id, left_code, right_code, family FROM pairing_code_range
		WHERE family = $1 AND left_code > $2
		ORDER BY left_code ASC
		LIMIT 1`
	var row PairingCodeRange
	err := q.db.QueryRow(ctx, query, family, v).Scan(&row.ID, &row.Left, &row.Right, &row.Family)
	return row, err
}

func (q *Queries) GetFirstPairingCodeRangeContaining(ctx context.Context, v int32, family string) (PairingCodeRange, error) {
	const query = `
		SELECT id, left_code, right_code, family FROM pairing_code_range
		WHERE family = $1 AND left_code <= $2 AND right_code >= $2
		LIMIT 1`
	var row PairingCodeRange
	err := q.db.QueryRow(ctx, query, family, v).Scan(&row.ID, &row.Left, &row.Right, &row.Family)
	return row, err
}

// noRows reports whether err is pgx.ErrNoRows, the error an optional
// lookup on this table returns when no row matches.
func noRows(err error) bool {
	return err == pgx.ErrNoRows
}

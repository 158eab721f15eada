package repository

import "context"

// TakenPairingCode mirrors one row of the taken_pairing_code table.
type TakenPairingCode struct {
	ID           int64
	AppUserID    int64
	Val          int32
	CreationTime int64
	Family       string
}

type InsertTakenPairingCodeParams struct {
	AppUserID    int64
	Val          int32
	CreationTime int64
	Family       string
}

func (q *Queries) InsertTakenPairingCode(ctx context.Context, arg InsertTakenPairingCodeParams) (TakenPairingCode, error) {
	const query = `
		INSERT INTO taken_pairing_code (app_user_id, val, creation_time, family)
		VALUES ($1, $2, $3, $4)
		RETURNING id, app_user_id, val, creation_time, family`
	var row TakenPairingCode
	err := q.db.QueryRow(ctx, query, arg.AppUserID, arg.Val, arg.CreationTime, arg.Family).
		Scan(&row.ID, &row.AppUserID, &row.Val, &row.CreationTime, &row.Family)
	return row, err
}

func (q *Queries) GetTakenPairingCodeByID(ctx context.Context, id int64) (TakenPairingCode, error) {
	const query = `SELECT id, app_user_id, val, creation_time, family FROM taken_pairing_code WHERE id = $1`
	var row TakenPairingCode
	err := q.db.QueryRow(ctx, query, id).Scan(&row.ID, &row.AppUserID, &row.Val, &row.CreationTime, &row.Family)
	return row, err
}

func (q *Queries) GetTakenPairingCodeByAppUser(ctx context.Context, appUserID int64, family string) (TakenPairingCode, error) {
	const query = `
		SELECT id, app_user_id, val, creation_time, family FROM taken_pairing_code
		WHERE app_user_id = $1 AND family = $2`
	var row TakenPairingCode
	err := q.db.QueryRow(ctx, query, appUserID, family).
		Scan(&row.ID, &row.AppUserID, &row.Val, &row.CreationTime, &row.Family)
	return row, err
}

func (q *Queries) GetTakenPairingCodeByValue(ctx context.Context, val int32, family string) (TakenPairingCode, error) {
	const query = `
		SELECT id, app_user_id, val, creation_time, family FROM taken_pairing_code
		WHERE val = $1 AND family = $2`
	var row TakenPairingCode
	err := q.db.QueryRow(ctx, query, val, family).
		Scan(&row.ID, &row.AppUserID, &row.Val, &row.CreationTime, &row.Family)
	return row, err
}

func (q *Queries) GetAnyTakenPairingCode(ctx context.Context, family string) (TakenPairingCode, error) {
	const query = `
		SELECT id, app_user_id, val, creation_time, family FROM taken_pairing_code
		WHERE family = $1
		LIMIT 1`
	var row TakenPairingCode
	err := q.db.QueryRow(ctx, query, family).
		Scan(&row.ID, &row.AppUserID, &row.Val, &row.CreationTime, &row.Family)
	return row, err
}

func (q *Queries) GetFirstTakenPairingCodeNewerThan(ctx context.Context, t int64, family string) (TakenPairingCode, error) {
	const query = `
		SELECT id, app_user_id, val, creation_time, family FROM taken_pairing_code
		WHERE family = $1 AND creation_time > $2
		LIMIT 1`
	var row TakenPairingCode
	err := q.db.QueryRow(ctx, query, family, t).
		Scan(&row.ID, &row.AppUserID, &row.Val, &row.CreationTime, &row.Family)
	return row, err
}

func (q *Queries) DeleteTakenPairingCodeByID(ctx context.Context, id int64) error {
	const query = `DELETE FROM taken_pairing_code WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id)
	return err
}

func (q *Queries) DeleteTakenPairingCodesByFamily(ctx context.Context, family string) error {
	const query = `DELETE FROM taken_pairing_code WHERE family = $1`
	_, err := q.db.Exec(ctx, query, family)
	return err
}

// DeleteTakenPairingCodesOlderThan returns the rows it deleted — the
// engine needs their payloads to reclaim the values back into free ranges.
func (q *Queries) DeleteTakenPairingCodesOlderThan(ctx context.Context, t int64, family string) ([]TakenPairingCode, error) {
	const query = `
		DELETE FROM taken_pairing_code
		WHERE family = $1 AND creation_time <= $2
		RETURNING id, app_user_id, val, creation_time, family`
	rows, err := q.db.Query(ctx, query, family, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TakenPairingCode
	for rows.Next() {
		var row TakenPairingCode
		if err := rows.Scan(&row.ID, &row.AppUserID, &row.Val, &row.CreationTime, &row.Family); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

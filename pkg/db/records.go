package db

import (
	"context"
	"errors"

	"uptime-monitor/pkg/apperror"
	"uptime-monitor/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	data       JSONB       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, key)
)`

const (
	insertRecord = `INSERT INTO records (collection, key, data) VALUES ($1, $2, $3)`
	selectRecord = `SELECT data FROM records WHERE collection = $1 AND key = $2`
	updateRecord = `UPDATE records SET data = $3, updated_at = now() WHERE collection = $1 AND key = $2`
	deleteRecord = `DELETE FROM records WHERE collection = $1 AND key = $2`
	listRecords  = `SELECT key FROM records WHERE collection = $1 ORDER BY key`
)

// RecordStore keeps every collection in one JSONB table.
type RecordStore struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewRecordStore(pool *pgxpool.Pool, logger *zerolog.Logger) *RecordStore {
	return &RecordStore{pool: pool, logger: logger}
}

// Migrate creates the records table when it does not exist yet.
func (r *RecordStore) Migrate(ctx context.Context) error {
	const op string = "repo.records.migrate"

	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	return nil
}

func (r *RecordStore) Create(ctx context.Context, collection, key string, data []byte) error {
	const op string = "repo.records.create"

	_, err := r.pool.Exec(ctx, insertRecord, collection, key, data)
	if err == nil {
		return nil
	}

	// Unique constraint → already exists
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &apperror.Error{
			Kind:    apperror.AlreadyExists,
			Op:      op,
			Message: "record already exists",
		}
	}

	return utils.WrapRepoError(op, err, false, r.logger)
}

func (r *RecordStore) Read(ctx context.Context, collection, key string) ([]byte, error) {
	const op string = "repo.records.read"

	var data []byte
	err := r.pool.QueryRow(ctx, selectRecord, collection, key).Scan(&data)
	if err == nil {
		return data, nil
	}

	return nil, utils.WrapRepoError(op, err, true, r.logger)
}

func (r *RecordStore) Update(ctx context.Context, collection, key string, data []byte) error {
	const op string = "repo.records.update"

	tag, err := r.pool.Exec(ctx, updateRecord, collection, key, data)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return &apperror.Error{
			Kind:    apperror.NotFound,
			Op:      op,
			Message: "record not found",
		}
	}
	return nil
}

func (r *RecordStore) Delete(ctx context.Context, collection, key string) error {
	const op string = "repo.records.delete"

	tag, err := r.pool.Exec(ctx, deleteRecord, collection, key)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return &apperror.Error{
			Kind:    apperror.NotFound,
			Op:      op,
			Message: "record not found",
		}
	}
	return nil
}

func (r *RecordStore) List(ctx context.Context, collection string) ([]string, error) {
	const op string = "repo.records.list"

	rows, err := r.pool.Query(ctx, listRecords, collection)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

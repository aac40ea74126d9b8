package postgres

import (
	"context"
	"time"

	"github.com/dayanaadylkhanova/slot-refresh/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store — журнал отправок в Postgres. Само ядро состояния не персистит:
// журнал нужен только для наблюдаемости рефрешей.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Init(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS dispatch_log (
	id    BIGSERIAL   PRIMARY KEY,
	scope TEXT        NOT NULL,
	slots TEXT[]      NOT NULL DEFAULT '{}',
	ts    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dispatch_log_ts ON dispatch_log (ts);
`
	_, err := s.pool.Exec(ctx, ddl)
	return err
}

// RecordDispatch implements dispatch.JournalWriter
func (s *Store) RecordDispatch(ctx context.Context, rec entity.DispatchRecord) error {
	const q = `INSERT INTO dispatch_log (scope, slots, ts) VALUES ($1, $2, $3)`
	slots := rec.Slots
	if slots == nil {
		slots = []string{}
	}
	_, err := s.pool.Exec(ctx, q, rec.Scope, slots, rec.TS)
	return err
}

// QueryRange implements http_server.JournalReader
func (s *Store) QueryRange(ctx context.Context, from, to time.Time) ([]entity.DispatchRecord, error) {
	const q = `SELECT scope, slots, ts FROM dispatch_log WHERE ts >= $1 AND ts < $2 ORDER BY ts, id`
	rows, err := s.pool.Query(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.DispatchRecord
	for rows.Next() {
		var rec entity.DispatchRecord
		if err := rows.Scan(&rec.Scope, &rec.Slots, &rec.TS); err != nil {
			return nil, err
		}
		rec.TS = rec.TS.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Close() { s.pool.Close() }

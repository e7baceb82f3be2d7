package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/practice-dashboard/internal/db"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS records (
	seq          BIGSERIAL,
	ecosystem_id TEXT NOT NULL,
	kind         TEXT NOT NULL,
	id           TEXT NOT NULL,
	data         JSONB NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (ecosystem_id, kind, id)
);

CREATE INDEX IF NOT EXISTS idx_records_eco_kind_seq ON records(ecosystem_id, kind, seq);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, ecosystemID string, kind Kind) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data, updated_at FROM records WHERE ecosystem_id = $1 AND kind = $2 ORDER BY seq`,
		ecosystemID, string(kind),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list %s", kind)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var data []byte
		if err := rows.Scan(&r.ID, &data, &r.UpdatedAt); err != nil {
			return nil, eris.Wrapf(err, "postgres: scan %s", kind)
		}
		r.Data = data
		out = append(out, r)
	}
	return out, eris.Wrapf(rows.Err(), "postgres: iterate %s", kind)
}

func (s *PostgresStore) PutRecords(ctx context.Context, ecosystemID string, kind Kind, records []Record) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			return 0, eris.Errorf("postgres: %s record without id", kind)
		}
		rows = append(rows, []any{ecosystemID, string(kind), r.ID, string(r.Data), now})
	}
	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "records",
		Columns:      []string{"ecosystem_id", "kind", "id", "data", "updated_at"},
		ConflictKeys: []string{"ecosystem_id", "kind", "id"},
	}, rows)
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: put %s", kind)
	}
	return n, nil
}

func (s *PostgresStore) CountRecords(ctx context.Context, ecosystemID string) (map[Kind]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT kind, count(*) FROM records WHERE ecosystem_id = $1 GROUP BY kind`,
		ecosystemID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: count records")
	}
	defer rows.Close()

	counts := make(map[Kind]int)
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan count")
		}
		counts[Kind(kind)] = int(n)
	}
	return counts, eris.Wrap(rows.Err(), "postgres: iterate counts")
}

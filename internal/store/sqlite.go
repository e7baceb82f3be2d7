package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS records (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	ecosystem_id TEXT NOT NULL,
	kind         TEXT NOT NULL,
	id           TEXT NOT NULL,
	data         TEXT NOT NULL,
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (ecosystem_id, kind, id)
);

CREATE INDEX IF NOT EXISTS idx_records_eco_kind ON records(ecosystem_id, kind);
`

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListRecords(ctx context.Context, ecosystemID string, kind Kind) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data, updated_at FROM records WHERE ecosystem_id = ? AND kind = ? ORDER BY seq`,
		ecosystemID, string(kind),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list %s", kind)
	}
	defer rows.Close() //nolint:errcheck

	var out []Record
	for rows.Next() {
		var r Record
		var data string
		if err := rows.Scan(&r.ID, &data, &r.UpdatedAt); err != nil {
			return nil, eris.Wrapf(err, "sqlite: scan %s", kind)
		}
		r.Data = []byte(data)
		out = append(out, r)
	}
	return out, eris.Wrapf(rows.Err(), "sqlite: iterate %s", kind)
}

func (s *SQLiteStore) PutRecords(ctx context.Context, ecosystemID string, kind Kind, records []Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (ecosystem_id, kind, id, data, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (ecosystem_id, kind, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare upsert")
	}
	defer stmt.Close() //nolint:errcheck

	now := time.Now().UTC()
	var n int64
	for _, r := range records {
		if r.ID == "" {
			return 0, eris.Errorf("sqlite: %s record without id", kind)
		}
		if _, err := stmt.ExecContext(ctx, ecosystemID, string(kind), r.ID, string(r.Data), now); err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert %s %s", kind, r.ID)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return n, nil
}

func (s *SQLiteStore) CountRecords(ctx context.Context, ecosystemID string) (map[Kind]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, count(*) FROM records WHERE ecosystem_id = ? GROUP BY kind`,
		ecosystemID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: count records")
	}
	defer rows.Close() //nolint:errcheck

	counts := make(map[Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan count")
		}
		counts[Kind(kind)] = n
	}
	return counts, eris.Wrap(rows.Err(), "sqlite: iterate counts")
}

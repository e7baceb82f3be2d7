package db

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// UpsertConfig describes a keyed merge into Table.
type UpsertConfig struct {
	Table        string   // target table, optionally schema-qualified
	Columns      []string // column order of every row
	ConflictKeys []string // unique key columns, a subset of Columns
	UpdateCols   []string // columns overwritten on conflict; nil means every non-key column
}

// upsertPlan is an UpsertConfig checked against its rows: key positions
// resolved and both statements rendered.
type upsertPlan struct {
	table    pgx.Identifier
	stage    pgx.Identifier
	columns  []string
	keyIdx   []int
	stageSQL string
	mergeSQL string
}

func newUpsertPlan(cfg UpsertConfig) (*upsertPlan, error) {
	if len(cfg.Columns) == 0 {
		return nil, eris.Errorf("db: upsert %s: empty column list", cfg.Table)
	}
	if len(cfg.ConflictKeys) == 0 {
		return nil, eris.Errorf("db: upsert %s: empty conflict key", cfg.Table)
	}

	p := &upsertPlan{
		table:   pgx.Identifier(strings.SplitN(cfg.Table, ".", 2)),
		stage:   pgx.Identifier{"_stage_" + strings.ReplaceAll(cfg.Table, ".", "_")},
		columns: cfg.Columns,
	}
	for _, k := range cfg.ConflictKeys {
		i := slices.Index(cfg.Columns, k)
		if i < 0 {
			return nil, eris.Errorf("db: upsert %s: conflict key %q not among columns", cfg.Table, k)
		}
		p.keyIdx = append(p.keyIdx, i)
	}

	update := cfg.UpdateCols
	if update == nil {
		for _, c := range cfg.Columns {
			if !slices.Contains(cfg.ConflictKeys, c) {
				update = append(update, c)
			}
		}
	}
	set := make([]string, len(update))
	for i, c := range update {
		q := pgx.Identifier{c}.Sanitize()
		set[i] = q + " = EXCLUDED." + q
	}
	action := "DO NOTHING"
	if len(set) > 0 {
		action = "DO UPDATE SET " + strings.Join(set, ", ")
	}

	cols := identList(cfg.Columns)
	p.stageSQL = fmt.Sprintf("CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP",
		p.stage.Sanitize(), p.table.Sanitize())
	p.mergeSQL = fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) %s",
		p.table.Sanitize(), cols, cols, p.stage.Sanitize(), identList(cfg.ConflictKeys), action)
	return p, nil
}

// collapse folds rows sharing a conflict key into one. The surviving row
// sits where the key first appeared and carries the last row's values, the
// same outcome as applying the rows one statement at a time.
func (p *upsertPlan) collapse(rows [][]any) ([][]any, error) {
	pos := make(map[string]int, len(rows))
	out := make([][]any, 0, len(rows))
	for n, row := range rows {
		if len(row) != len(p.columns) {
			return nil, eris.Errorf("db: upsert: row %d has %d values, want %d", n, len(row), len(p.columns))
		}
		parts := make([]string, len(p.keyIdx))
		for i, k := range p.keyIdx {
			parts[i] = fmt.Sprint(row[k])
		}
		key := strings.Join(parts, "\x00")
		if i, ok := pos[key]; ok {
			out[i] = row
			continue
		}
		pos[key] = len(out)
		out = append(out, row)
	}
	return out, nil
}

// BulkUpsert merges rows into cfg.Table in one transaction: the rows are
// copied into a temp table shaped like the target, then inserted with ON
// CONFLICT. Repeated keys within rows collapse to the last occurrence first,
// since Postgres rejects a statement that updates one row twice. It
// returns the number of rows merged.
func BulkUpsert(ctx context.Context, pool Pool, cfg UpsertConfig, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	plan, err := newUpsertPlan(cfg)
	if err != nil {
		return 0, err
	}
	rows, err = plan.collapse(rows)
	if err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s", cfg.Table)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s: begin", cfg.Table)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, plan.stageSQL); err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s: stage table", cfg.Table)
	}
	if _, err := tx.CopyFrom(ctx, plan.stage, plan.columns, pgx.CopyFromRows(rows)); err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s: copy %d rows", cfg.Table, len(rows))
	}
	tag, err := tx.Exec(ctx, plan.mergeSQL)
	if err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s: merge", cfg.Table)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrapf(err, "db: upsert %s: commit", cfg.Table)
	}
	return tag.RowsAffected(), nil
}

func identList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}

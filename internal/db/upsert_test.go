package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsConfig() UpsertConfig {
	return UpsertConfig{
		Table:        "records",
		Columns:      []string{"ecosystem_id", "kind", "id", "data"},
		ConflictKeys: []string{"ecosystem_id", "kind", "id"},
	}
}

func TestBulkUpsert_EmptyRows(t *testing.T) {
	n, err := BulkUpsert(context.Background(), nil, recordsConfig(), nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBulkUpsert_NoColumns(t *testing.T) {
	_, err := BulkUpsert(context.Background(), nil, UpsertConfig{
		Table:        "records",
		ConflictKeys: []string{"id"},
	}, [][]any{{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty column list")
}

func TestBulkUpsert_NoConflictKeys(t *testing.T) {
	_, err := BulkUpsert(context.Background(), nil, UpsertConfig{
		Table:   "records",
		Columns: []string{"id"},
	}, [][]any{{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty conflict key")
}

func TestBulkUpsert_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE "_stage_records" \(LIKE "records" INCLUDING DEFAULTS\) ON COMMIT DROP`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_stage_records"}, []string{"ecosystem_id", "kind", "id", "data"}).
		WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO "records" .* ON CONFLICT \("ecosystem_id", "kind", "id"\) DO UPDATE SET "data" = EXCLUDED."data"`).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	rows := [][]any{
		{"eco", "organization", "o1", `{"id":"o1"}`},
		{"eco", "organization", "o2", `{"id":"o2"}`},
	}
	n, err := BulkUpsert(context.Background(), mock, recordsConfig(), rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsert_CopyError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_stage_records"}, []string{"ecosystem_id", "kind", "id", "data"}).
		WillReturnError(errors.New("copy failed"))
	mock.ExpectRollback()

	_, err = BulkUpsert(context.Background(), mock, recordsConfig(), [][]any{{"eco", "k", "1", "{}"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db: upsert records: copy 1 rows")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsert_KeyNotInColumns(t *testing.T) {
	_, err := BulkUpsert(context.Background(), nil, UpsertConfig{
		Table:        "records",
		Columns:      []string{"id", "data"},
		ConflictKeys: []string{"kind"},
	}, [][]any{{"a", "{}"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `conflict key "kind" not among columns`)
}

func TestBulkUpsert_RowWidthMismatch(t *testing.T) {
	_, err := BulkUpsert(context.Background(), nil, recordsConfig(), [][]any{{"eco", "organization", "o1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0 has 3 values, want 4")
}

func TestBulkUpsert_RepeatedKeysMergeOnce(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE "_stage_records"`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_stage_records"}, []string{"ecosystem_id", "kind", "id", "data"}).
		WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO "records" .* ON CONFLICT`).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	rows := [][]any{
		{"eco", "organization", "o1", `{"name":"first"}`},
		{"eco", "organization", "o2", `{"name":"other"}`},
		{"eco", "organization", "o1", `{"name":"second"}`},
	}
	n, err := BulkUpsert(context.Background(), mock, recordsConfig(), rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollapse_LastValuesFirstPosition(t *testing.T) {
	plan, err := newUpsertPlan(recordsConfig())
	require.NoError(t, err)

	got, err := plan.collapse([][]any{
		{"eco", "organization", "o1", "a"},
		{"eco", "investment", "o1", "b"},
		{"eco", "organization", "o2", "c"},
		{"eco", "organization", "o1", "d"},
		{"other", "organization", "o1", "e"},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{"eco", "organization", "o1", "d"},
		{"eco", "investment", "o1", "b"},
		{"eco", "organization", "o2", "c"},
		{"other", "organization", "o1", "e"},
	}, got)
}

func TestNewUpsertPlan_Statements(t *testing.T) {
	plan, err := newUpsertPlan(UpsertConfig{
		Table:        "dash.records",
		Columns:      []string{"id", "data"},
		ConflictKeys: []string{"id"},
	})
	require.NoError(t, err)
	assert.Equal(t, `CREATE TEMP TABLE "_stage_dash_records" (LIKE "dash"."records" INCLUDING DEFAULTS) ON COMMIT DROP`, plan.stageSQL)
	assert.Equal(t, `INSERT INTO "dash"."records" ("id", "data") SELECT "id", "data" FROM "_stage_dash_records" ON CONFLICT ("id") DO UPDATE SET "data" = EXCLUDED."data"`, plan.mergeSQL)

	keysOnly, err := newUpsertPlan(UpsertConfig{Table: "tags", Columns: []string{"id"}, ConflictKeys: []string{"id"}})
	require.NoError(t, err)
	assert.Contains(t, keysOnly.mergeSQL, "ON CONFLICT (\"id\") DO NOTHING")
}

func TestIdentList(t *testing.T) {
	assert.Equal(t, `"id", "kind"`, identList([]string{"id", "kind"}))
}

package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSQLStore_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	store := NewSQLStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	rec := Record{
		ID:             "eval-1",
		SystemID:       "sys-alpha",
		CatalogVersion: "2024.1689.1",
		EngineVersion:  "1.2.0",
		ResultHash:     "abc123",
		CreatedAt:      now,
		Result:         []byte(`{"system_id":"sys-alpha"}`),
	}

	mock.ExpectExec("INSERT INTO evaluations").
		WithArgs(rec.ID, rec.SystemID, rec.CatalogVersion, rec.EngineVersion,
			rec.ResultHash, rec.CreatedAt, string(rec.Result)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Append(ctx, rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	store := NewSQLStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	cols := []string{"id", "system_id", "catalog_version", "engine_version", "result_hash", "created_at", "result"}
	mock.ExpectQuery("SELECT .+ FROM evaluations WHERE id").
		WithArgs("eval-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("eval-1", "sys-alpha", "2024.1689.1", "1.2.0", "abc123", now, `{"system_id":"sys-alpha"}`))

	rec, err := store.Get(ctx, "eval-1")
	require.NoError(t, err)
	require.Equal(t, "sys-alpha", rec.SystemID)
	require.Equal(t, "abc123", rec.ResultHash)
	require.JSONEq(t, `{"system_id":"sys-alpha"}`, string(rec.Result))
}

func TestSQLStore_GetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	store := NewSQLStore(db)

	cols := []string{"id", "system_id", "catalog_version", "engine_version", "result_hash", "created_at", "result"}
	mock.ExpectQuery("SELECT .+ FROM evaluations WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(cols))

	_, err = store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStore_ListBySystem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	store := NewSQLStore(db)
	now := time.Now().UTC()

	cols := []string{"id", "system_id", "catalog_version", "engine_version", "result_hash", "created_at", "result"}
	mock.ExpectQuery("SELECT .+ FROM evaluations WHERE system_id").
		WithArgs("sys-alpha").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("eval-2", "sys-alpha", "2024.1689.1", "1.2.0", "def456", now, `{}`).
			AddRow("eval-1", "sys-alpha", "2024.1689.1", "1.2.0", "abc123", now.Add(-time.Hour), `{}`))

	list, err := store.ListBySystem(context.Background(), "sys-alpha")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "eval-2", list[0].ID)
}

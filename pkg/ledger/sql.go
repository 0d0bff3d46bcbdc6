package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"  // Postgres driver
	_ "modernc.org/sqlite" // SQLite driver (CGO-free)
)

// SQLStore implements Store using database/sql.
// It supports both Postgres and SQLite: $N placeholders are understood
// natively by both drivers.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// OpenSQLite opens (or creates) a SQLite-backed store at path and runs the
// schema migration.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite ledger: %w", err)
	}
	s := NewSQLStore(db)
	if err := s.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// OpenPostgres connects to a Postgres-backed store and runs the schema
// migration.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres ledger: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres ledger: %w", err)
	}
	s := NewSQLStore(db)
	if err := s.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id TEXT PRIMARY KEY,
	system_id TEXT NOT NULL,
	catalog_version TEXT NOT NULL,
	engine_version TEXT NOT NULL,
	result_hash TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	result TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_system ON evaluations (system_id, created_at);
`

func (s *SQLStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Append(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO evaluations (id, system_id, catalog_version, engine_version, result_hash, created_at, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.SystemID, rec.CatalogVersion, rec.EngineVersion,
		rec.ResultHash, rec.CreatedAt, string(rec.Result),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("append evaluation %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Record, error) {
	query := `SELECT id, system_id, catalog_version, engine_version, result_hash, created_at, result FROM evaluations WHERE id = $1`
	row := s.db.QueryRowContext(ctx, query, id)

	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

func (s *SQLStore) ListBySystem(ctx context.Context, systemID string) ([]Record, error) {
	query := `SELECT id, system_id, catalog_version, engine_version, result_hash, created_at, result FROM evaluations WHERE system_id = $1 ORDER BY created_at DESC`
	return s.list(ctx, query, systemID)
}

func (s *SQLStore) ListAll(ctx context.Context) ([]Record, error) {
	query := `SELECT id, system_id, catalog_version, engine_version, result_hash, created_at, result FROM evaluations ORDER BY created_at DESC`
	return s.list(ctx, query)
}

func (s *SQLStore) list(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanRecord(scan func(...any) error) (Record, error) {
	var rec Record
	var payload string
	err := scan(&rec.ID, &rec.SystemID, &rec.CatalogVersion, &rec.EngineVersion,
		&rec.ResultHash, &rec.CreatedAt, &payload)
	if err != nil {
		return Record{}, err
	}
	rec.Result = []byte(payload)
	return rec, nil
}

func isUniqueViolation(err error) bool {
	// lib/pq reports 23505, modernc sqlite reports "UNIQUE constraint failed".
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint")
}

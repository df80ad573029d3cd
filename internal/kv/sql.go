package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Dialect holds the statements one SQL engine needs to serve as a Store.
type Dialect struct {
	get         string
	put         string
	putIfAbsent string
}

// Postgres works against the kv table created by db.InitPostgres.
var Postgres = Dialect{
	get: `SELECT value FROM kv WHERE key = $1`,
	put: `INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
	putIfAbsent: `INSERT INTO kv (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`,
}

// SQLite works against the kv table created by db.InitSQLite.
var SQLite = Dialect{
	get: `SELECT value FROM kv WHERE key = ?`,
	put: `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	putIfAbsent: `INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO NOTHING`,
}

// SQLStore implements Store on a single two-column table.
type SQLStore struct {
	// DB is the database handle for executing queries.
	DB      *sql.DB
	dialect Dialect
}

// NewSQLStore creates a SQLStore speaking the given dialect.
// db must already contain the kv table.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{DB: db, dialect: dialect}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.DB.QueryRowContext(ctx, s.dialect.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.DB.ExecContext(ctx, s.dialect.put, key, value); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	res, err := s.DB.ExecContext(ctx, s.dialect.putIfAbsent, key, value)
	if err != nil {
		return false, fmt.Errorf("put %s: %w", key, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put %s: rows affected: %w", key, err)
	}
	return rows == 1, nil
}

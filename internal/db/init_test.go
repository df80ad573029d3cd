package db_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/atinyakov/readsync/internal/db"
)

func TestInitPostgres_ErrorPaths(t *testing.T) {
	cases := []struct {
		name       string
		dsn        string
		wantSubstr string
	}{
		{"invalid DSN", "some=random", "ping postgres"},
		{"empty DSN", "", "ping postgres"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := db.InitPostgres(tc.dsn)
			if err == nil {
				t.Fatalf("InitPostgres(%q) did not return error", tc.dsn)
			}
			if !strings.Contains(err.Error(), tc.wantSubstr) {
				t.Errorf("InitPostgres(%q) error = %q; want substring %q", tc.dsn, err.Error(), tc.wantSubstr)
			}
		})
	}
}

func TestInitSQLite_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.db")
	conn, err := db.InitSQLite(path)
	if err != nil {
		t.Fatalf("InitSQLite: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(`INSERT INTO kv (key, value) VALUES ('a', x'01')`); err != nil {
		t.Fatalf("kv table not usable: %v", err)
	}

	// Reopening must not fail on the existing table.
	again, err := db.InitSQLite(path)
	if err != nil {
		t.Fatalf("second InitSQLite: %v", err)
	}
	_ = again.Close()
}

func TestInitSQLite_EmptyDSN(t *testing.T) {
	if _, err := db.InitSQLite(""); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

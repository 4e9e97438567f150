// Package testutil holds helpers for tests that need a real Postgres.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"fedspeak/internal/db"
)

// DatabaseURLEnv points at a disposable database. Tests using TestDB are
// skipped when it is unset.
const DatabaseURLEnv = "TEST_DATABASE_URL"

// TestDB opens the test database with the schema migrated and the lookups
// table empty. The table is emptied again and the pool closed when the test
// ends.
func TestDB(t *testing.T) *db.DB {
	t.Helper()

	connString := os.Getenv(DatabaseURLEnv)
	if connString == "" {
		t.Skipf("%s not set", DatabaseURLEnv)
	}

	database, err := db.Open(context.Background(), connString, db.Options{
		MaxConns:       2,
		ConnectTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := resetLookups(database); err != nil {
		database.Close()
		t.Fatalf("failed to reset acronym_lookups: %v", err)
	}
	t.Cleanup(func() {
		if err := resetLookups(database); err != nil {
			t.Errorf("failed to reset acronym_lookups: %v", err)
		}
		database.Close()
	})

	return database
}

func resetLookups(database *db.DB) error {
	_, err := database.Pool.Exec(context.Background(), "TRUNCATE acronym_lookups")
	return err
}

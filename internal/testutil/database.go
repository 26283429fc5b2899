// Package testutil provides shared fixtures for tests: an isolated run
// history database and a fluent builder for input records.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/rplmatch/internal/model"
	"github.com/Veraticus/rplmatch/internal/storage"
)

// TestDB is a migrated in-memory run history bound to a test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database. Migrations run
// immediately and the database is closed when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	run := db.SeedRun(&model.Run{SourceFile: "customers.csv"}, results)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return &TestDB{Storage: store, t: t}
}

// SeedRun saves run with results, filling the selector fields when they
// are empty, and returns the stored copy.
func (db *TestDB) SeedRun(run *model.Run, results []model.MatchResult) *model.Run {
	db.t.Helper()
	ctx := context.Background()

	if run.CustomerField == "" {
		run.CustomerField = DefaultCustomerField
	}
	if run.ReferenceField == "" {
		run.ReferenceField = DefaultReferenceField
	}
	if run.RecordCount == 0 {
		run.RecordCount = len(results)
	}

	if err := db.Storage.SaveRun(ctx, run, results); err != nil {
		db.t.Fatalf("failed to seed run: %v", err)
	}

	stored, err := db.Storage.GetRun(ctx, run.ID)
	if err != nil {
		db.t.Fatalf("failed to reload seeded run %s: %v", run.ID, err)
	}
	return stored
}

// MustRuns returns every stored run, most recent first.
func (db *TestDB) MustRuns() []model.Run {
	db.t.Helper()

	runs, err := db.Storage.ListRuns(context.Background(), 0)
	if err != nil {
		db.t.Fatalf("failed to list runs: %v", err)
	}
	return runs
}

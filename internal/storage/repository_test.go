package storage_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"expenses/internal/core"
	"expenses/internal/storage"
	"expenses/internal/storage/storetest"
)

func newRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return newRepo(t)
	})
}

func TestSQLiteRepository_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "expenses.db")
	ctx := context.Background()

	repo, err := storage.NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	id, err := repo.Create(ctx, core.Expense{Date: "2024-01-01", Category: "Food", Description: "Dinner", Amount: 12})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Migrations must be re-runnable against an existing schema.
	repo, err = storage.NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Description != "Dinner" || got.Amount != 12 {
		t.Fatalf("unexpected record after reopen: %+v", got)
	}
}

func TestSQLiteRepository_AdoptsUnversionedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	// A database created without migrations, as older installs did.
	legacy, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open legacy: %v", err)
	}
	if _, err := legacy.Exec(`CREATE TABLE IF NOT EXISTS expenses (id INTEGER PRIMARY KEY, date TEXT, category TEXT, description TEXT, amount REAL)`); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if _, err := legacy.Exec(`INSERT INTO expenses (date, category, description, amount) VALUES ('2023-12-31', 'Gifts', 'Book', 15)`); err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}
	legacy.Close()

	repo, err := storage.NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open repository over legacy db: %v", err)
	}
	defer repo.Close()

	list, err := repo.ListOrdered(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Category != "Gifts" || list[0].Amount != 15 {
		t.Fatalf("legacy row not visible: %+v", list)
	}
}

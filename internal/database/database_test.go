package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/playperu/cardgame/internal/database"
)

func TestOpenMemory(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("reading foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cardgame.db")

	db, err := database.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatalf("creating table: %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := database.Open(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

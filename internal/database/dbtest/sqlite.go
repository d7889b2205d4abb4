// Package dbtest opens throwaway SQLite databases carrying the catalog schema.
package dbtest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/fekuna/marketplace-catalog-service/internal/database"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var seq atomic.Int64

// New returns an isolated in-memory database, closed when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	// Shared cache keeps every pooled connection on the same in-memory db.
	dsn := fmt.Sprintf("file:catalog_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq.Add(1))
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

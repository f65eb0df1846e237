// Package testdb provides isolated SurrealDB instances for integration tests.
//
// Tests are skipped unless TEST_DB_HOST points at a running SurrealDB, so the
// default `go test ./...` stays hermetic.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//
//	    repo := repository.NewSubmissionRepository(tdb.DB)
//	    ...
//	}
package testdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/wetee-dao/guildgate/internal/database"
)

// TestDB is a schema-migrated database in its own namespace
type TestDB struct {
	DB        database.Database
	Namespace string
	t         *testing.T
}

var (
	counterMu sync.Mutex
	counter   int64
)

// config returns database config from the environment; ok is false when no
// test database is configured.
func config() (cfg database.Config, ok bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return cfg, false
	}

	cfg = database.Config{
		Host:     host,
		Port:     getenv("TEST_DB_PORT", "8000"),
		User:     getenv("TEST_DB_USER", "root"),
		Password: getenv("TEST_DB_PASSWORD", "root"),
		Database: "test",
	}
	return cfg, true
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// uniqueNamespace generates a unique namespace for test isolation
func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

// New connects to the test database in a fresh namespace and applies the
// schema. The namespace is removed when the test ends.
func New(t *testing.T) *TestDB {
	t.Helper()

	cfg, ok := config()
	if !ok {
		t.Skip("testdb: TEST_DB_HOST not set")
	}
	cfg.Namespace = uniqueNamespace()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	tdb := &TestDB{DB: db, Namespace: cfg.Namespace, t: t}
	t.Cleanup(tdb.close)

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("testdb: schema failed: %v", err)
	}
	return tdb
}

func (tdb *TestDB) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = tdb.DB.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace), nil)
	_ = tdb.DB.Close()
}

// Ctx returns a context bounded by the test's lifetime
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	tdb.t.Cleanup(cancel)
	return ctx
}

// MustExec executes a query and fails the test on error.
func (tdb *TestDB) MustExec(query string, vars map[string]interface{}) {
	tdb.t.Helper()
	if err := tdb.DB.Execute(tdb.Ctx(), query, vars); err != nil {
		tdb.t.Fatalf("testdb: exec failed: %v\nQuery: %s", err, query)
	}
}

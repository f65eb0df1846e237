package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}

// Schema defines the tables and indexes guildgate writes to. Statements are
// idempotent so it is applied on every start.
const Schema = `
DEFINE TABLE IF NOT EXISTS keystore SCHEMAFULL;
DEFINE FIELD IF NOT EXISTS address ON keystore TYPE string;
DEFINE FIELD IF NOT EXISTS salt ON keystore TYPE string;
DEFINE FIELD IF NOT EXISTS nonce ON keystore TYPE string;
DEFINE FIELD IF NOT EXISTS cipher_text ON keystore TYPE string;
DEFINE FIELD IF NOT EXISTS created_on ON keystore TYPE datetime;
DEFINE INDEX IF NOT EXISTS keystore_address ON keystore FIELDS address UNIQUE;

DEFINE TABLE IF NOT EXISTS submission SCHEMALESS;
DEFINE INDEX IF NOT EXISTS submission_from ON submission FIELDS from_address, created_on;
`

// Migrate applies Schema
func Migrate(ctx context.Context, db Database) error {
	return db.Execute(ctx, Schema, nil)
}

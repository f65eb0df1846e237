// Package database provides SurrealDB connectivity for guildgate.
//
// The chain is the source of truth for guilds and members; the database only
// holds sealed signing keys and the submission ledger.
//
// # Database Interface
//
// The Database interface provides three query methods:
//   - Query: Returns multiple results (for SELECT queries returning lists)
//   - QueryOne: Returns a single result (for SELECT by ID)
//   - Execute: No return value (for CREATE/UPSERT mutations)
//
// # Error Types
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection failed
//   - ErrQuery: Query execution failed
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
//
// # Usage Example
//
//	db := database.NewSurrealDB(cfg)
//	if err := db.Connect(ctx); err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := database.Migrate(ctx, db); err != nil {
//	    return err
//	}
package database

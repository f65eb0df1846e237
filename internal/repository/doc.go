// Package repository implements the SurrealDB data access layer.
//
// Two tables are kept:
//
//   - keystore: sealed signing keys, one record per SS58 address
//   - submission: the ledger of guild writes and their outcome
//
// # Repository Pattern
//
//   - Constructor function (NewXxxRepository) accepts a database.Database
//   - Get methods return nil, nil when the record does not exist
//   - Parameterized SurrealQL with $variable syntax
//   - type::thing() record ids derived from the natural key
//
// # Example Usage
//
//	repo := NewSubmissionRepository(db)
//	sub, err := repo.GetByID(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sub == nil {
//	    // Handle not found
//	}
package repository

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB implements Database over a single websocket connection
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates a new SurrealDB instance
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{
		config: cfg,
	}
}

// endpoint accepts a bare host or a full ws:// / wss:// URL in Config.Host.
func (s *SurrealDB) endpoint() string {
	if strings.Contains(s.config.Host, "://") {
		return s.config.Host
	}
	return fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)
}

// Connect establishes a connection to SurrealDB
func (s *SurrealDB) Connect(ctx context.Context) error {
	db, err := surrealdb.FromEndpointURLString(ctx, s.endpoint())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if _, err := db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	}); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use %s/%s failed: %v", ErrConnection, s.config.Namespace, s.config.Database, err)
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SurrealDB) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close(context.Background())
	s.db = nil
	return err
}

// Ping checks the database connection
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query runs every statement in query and returns one
// {"status", "result"} map per statement. Any failed statement fails the call.
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for i, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: statement %d: %s", ErrQuery, i, r.Error.Message)
			}
			return nil, fmt.Errorf("%w: statement %d: status %s", ErrQuery, i, r.Status)
		}
		output = append(output, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return output, nil
}

// QueryOne returns the first record of the first statement, or ErrNotFound
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return results[0], nil
	}
	records, ok := resp["result"].([]interface{})
	if !ok {
		// Scalar result, e.g. count()
		return resp["result"], nil
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// Execute runs a query without returning results
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

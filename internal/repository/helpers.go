package repository

import (
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// parseTime parses time from various formats
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// extractQueryResults extracts the record list of the first statement
func extractQueryResults(result interface{}) ([]interface{}, bool) {
	results, ok := result.([]interface{})
	if !ok || len(results) == 0 {
		return nil, false
	}
	if first, ok := results[0].(map[string]interface{}); ok {
		if records, ok := first["result"].([]interface{}); ok {
			return records, true
		}
	}
	// Direct array format
	return results, true
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getUint64 extracts an unsigned integer from a map. CBOR decoding yields
// uint64 or int64 depending on sign, JSON yields float64.
func getUint64(m map[string]interface{}, key string) (uint64, bool) {
	switch v := m[key].(type) {
	case uint64:
		return v, true
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 {
			return uint64(v), true
		}
	}
	return 0, false
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

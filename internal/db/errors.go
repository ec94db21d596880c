package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound       = errors.New("db: key not found")
	ErrUnknownDriver     = errors.New("db: unknown driver")
	ErrVectorUnsupported = errors.New("db: vector search requires postgres with pgvector")
)

// Op constants name the failing operation for error context.
const (
	OpOpen      = "OPEN"
	OpMigrate   = "MIGRATE"
	OpPing      = "PING"
	OpGet       = "GET"
	OpSet       = "SET"
	OpSelect    = "SELECT"
	OpInsert    = "INSERT"
	OpDelete    = "DELETE"
	OpUpsert    = "UPSERT"
	OpSimilarTo = "search_similar_documents"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

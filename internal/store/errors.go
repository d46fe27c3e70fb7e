package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrWalletNotFound is returned when no wallet matches the lookup key.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrWalletAlreadyExists is returned when the (email, platform_id, network)
	// triple is already taken.
	ErrWalletAlreadyExists = errors.New("wallet already exists")

	// ErrStorage marks every other database failure. Low-level errors below
	// are always wrapped together with it.
	ErrStorage = errors.New("storage error")

	// ErrUnsupportedDSN is returned when the DSN names neither PostgreSQL nor SQLite.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingMetadata is returned when a metadata column cannot be
	// encoded or decoded.
	ErrEncodingMetadata = errors.New("failed to encode metadata")
)

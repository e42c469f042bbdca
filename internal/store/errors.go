package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoteNotFound is returned when a query or update targets a note that
	// does not exist in the database.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrNoteNotSaved is returned when an INSERT or UPDATE of a note
	// completes without error but the number of affected rows is zero,
	// indicating that no data was actually persisted.
	ErrNoteNotSaved = errors.New("note was not saved")

	// ErrDeviceAlreadyRegistered is returned when an attempt to register a
	// device fails because a device with the same identifier already exists.
	ErrDeviceAlreadyRegistered = errors.New("device already registered")

	// ErrDeviceNotFound is returned when a query expected to match at least
	// one device record produces an empty result set.
	ErrDeviceNotFound = errors.New("device was not found")

	// ErrMetadataNotFound is returned when a sync metadata key has never been
	// written. First sync on a fresh install hits this for the pull
	// watermark.
	ErrMetadataNotFound = errors.New("sync metadata key was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan note row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan note rows")

	// ErrEncodingColumn is returned when a JSON-encoded column (tags,
	// checklist, segments) cannot be marshaled before a write.
	ErrEncodingColumn = errors.New("failed to encode note column")

	// ErrDecodingColumn is returned when a JSON-encoded column cannot be
	// unmarshaled after a read.
	ErrDecodingColumn = errors.New("failed to decode note column")
)

// Package errors provides structured error handling for the arena service.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Match errors
	CodeMatchNotFound      Code = "MATCH_NOT_FOUND"
	CodeMatchStateConflict Code = "MATCH_STATE_CONFLICT"
	CodeMatchAlreadyExists Code = "MATCH_ALREADY_EXISTS"

	// Validation errors
	CodeValidation Code = "VALIDATION"

	// Catalog errors
	CodeCatalogConfiguration Code = "CATALOG_CONFIGURATION"

	// Snapshot errors
	CodeSnapshotVersionMismatch  Code = "SNAPSHOT_VERSION_MISMATCH"
	CodeSnapshotChecksumMismatch Code = "SNAPSHOT_CHECKSUM_MISMATCH"

	// Internal errors
	CodeInternal Code = "INTERNAL"
)

package cli

// Error codes for JSON output. These are stable identifiers that
// scripts and agents can match on.
const (
	// Configuration errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Input errors
	ErrFileNotFound    = "FILE_NOT_FOUND"
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// PGN errors
	ErrPGNParse  = "PGN_PARSE_ERROR"
	ErrPGNReplay = "PGN_REPLAY_ERROR"

	// Query errors
	ErrQueryInvalid = "QUERY_INVALID"

	// Lookup errors
	ErrGameNotFound = "GAME_NOT_FOUND"

	// Generic errors
	ErrInternal = "INTERNAL_ERROR"
)

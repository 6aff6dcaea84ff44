package logger

// Standard field names for consistent structured logging across opticgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Files and paths
	FieldFile     = "file"
	FieldPath     = "path"
	FieldManifest = "manifest"
	FieldOutput   = "output"

	// Counts and sizes
	FieldCount     = "count"
	FieldSize      = "size"
	FieldFileCount = "file_count"
	FieldNameCount = "name_count"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Scan specifics
	FieldMember = "member"
	FieldName   = "name"
	FieldRule   = "rule"
)

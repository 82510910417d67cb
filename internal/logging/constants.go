package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile        = "file_path"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldMethod      = "method"
	FieldModel       = "model"
	FieldBlock       = "block"
	FieldCount       = "count"
	FieldValue       = "value"
	FieldColumn      = "column"
	FieldCachePath   = "cache_path"
)

package logging

// Standardized field names for structured logging.
const (
	FieldFile      = "file_path"
	FieldURL       = "url"
	FieldTier      = "tier"
	FieldOutcome   = "outcome"
	FieldRegion    = "region"
	FieldRegionCol = "region_column"
	FieldWageCol   = "wage_column"
	FieldRow       = "row"
	FieldTable     = "table_index"
	FieldBackend   = "backend"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldReason    = "reason"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldCount     = "count"
	FieldRatio     = "ratio"
	FieldBand      = "band"
	FieldAddress   = "address"
)

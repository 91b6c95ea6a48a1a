package logging

// Standard field names, so log output stays filterable across components.
const (
	FieldFile       = "file_path"
	FieldRunID      = "run_id"
	FieldBranch     = "branch"
	FieldPeriod     = "period"
	FieldDepartment = "department"
	FieldProduct    = "product_id"
	FieldReport     = "report"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldFormat     = "format"
	FieldOutputFile = "output_file"
)

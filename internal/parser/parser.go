package parser

import "fjacquet/sales-consolidator/internal/models"

// TableReader loads one source file into a raw table: the first non-empty row
// becomes the header, every following row is data. Implementations return
// *parsererror.InvalidFormatError when the file has no usable content.
type TableReader interface {
	Read(path string) (*models.SourceTable, error)
}

// Validator is implemented by readers that can cheaply reject a file before
// reading it.
type Validator interface {
	ValidateFormat(path string) (bool, error)
}

// FullReader combines reading and validation.
type FullReader interface {
	TableReader
	Validator
}

package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnparseableIdentifierError(t *testing.T) {
	err := &UnparseableIdentifierError{Name: "malnombre.xlsx", Reason: "no month/year pattern"}

	assert.Equal(t, "cannot parse identifier 'malnombre.xlsx': no month/year pattern", err.Error())
	assert.True(t, errors.Is(err, ErrUnparseable))

	bare := &UnparseableIdentifierError{Name: "x"}
	assert.Equal(t, "cannot parse identifier 'x'", bare.Error())
}

func TestSourceError(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		name     string
		err      *SourceError
		expected string
	}{
		{
			name:     "with cause",
			err:      &SourceError{Path: "a.xlsx", Reason: "unreadable", Err: cause},
			expected: "source 'a.xlsx' skipped: unreadable: permission denied",
		},
		{
			name:     "without cause",
			err:      &SourceError{Path: "b.xlsx", Reason: "missing column Cantidad"},
			expected: "source 'b.xlsx' skipped: missing column Cantidad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}

	wrapped := fmt.Errorf("normalize: %w", &SourceError{Path: "a", Reason: "r", Err: cause})
	assert.True(t, IsSkippable(wrapped))
	assert.True(t, errors.Is(wrapped, cause))
	assert.False(t, IsSkippable(ErrNoValidData))
}

func TestParseError(t *testing.T) {
	cause := errors.New("not a number")
	err := &ParseError{Parser: "normalizer", Field: "Cantidad", Value: "abc", Err: cause}

	assert.Equal(t, "normalizer: failed to parse Cantidad='abc': not a number", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestValidationAndFormatErrors(t *testing.T) {
	v := &ValidationError{Subject: "descriptor", Reason: "year out of range"}
	assert.Equal(t, "validation failed for descriptor: year out of range", v.Error())

	f := &InvalidFormatError{FilePath: "a.txt", ExpectedFormat: ".xlsx or .csv", Msg: "unsupported extension"}
	assert.Equal(t, "invalid format in file 'a.txt': unsupported extension. Expected: .xlsx or .csv", f.Error())
}

func TestErrNoValidData_Wrapping(t *testing.T) {
	err := fmt.Errorf("consolidate: %w", ErrNoValidData)
	assert.True(t, errors.Is(err, ErrNoValidData))
}

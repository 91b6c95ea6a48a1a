// Package identifier derives the period and branch of a monthly export from
// its human-assigned file name, e.g. "3. MARZO 2025 CORRIENTES.xlsx".
package identifier

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"fjacquet/sales-consolidator/internal/models"
	"fjacquet/sales-consolidator/internal/parsererror"
	"fjacquet/sales-consolidator/internal/textutils"
)

// "<index>. <MONTH WORDS> <YEAR>", the index being optional. The year may be
// followed by anything but another digit.
// Example: 3. MARZO 2025_HIPER
var periodPattern = regexp.MustCompile(`(?:(\d{1,2})\s*\.?\s*)?([A-Z ]+?)\s+(\d{4})(?:\D|$)`)

// DefaultBranches is the branch vocabulary used when none is configured.
func DefaultBranches() []string {
	return []string{"HIPER", "CORRIENTES"}
}

// Parser extracts (month, year, branch) from file names. It is stateless
// after construction and safe for concurrent use.
type Parser struct {
	branches []string
}

// NewParser creates a Parser recognizing the given branch tokens. Tokens are
// matched by substring, in the order given.
func NewParser(branches []string) *Parser {
	folded := make([]string, 0, len(branches))
	for _, b := range branches {
		if f := textutils.Fold(b); f != "" {
			folded = append(folded, f)
		}
	}
	return &Parser{branches: folded}
}

// Branches returns the recognized branch tokens in match order.
func (p *Parser) Branches() []string {
	return append([]string(nil), p.branches...)
}

// Parse returns a descriptor for the named file, or an
// *parsererror.UnparseableIdentifierError.
func (p *Parser) Parse(name string) (models.SourceDescriptor, error) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	text := textutils.Fold(base)

	branch := ""
	for _, b := range p.branches {
		if strings.Contains(text, b) {
			branch = b
			text = textutils.CollapseSpaces(strings.ReplaceAll(text, b, ""))
			break
		}
	}

	m := periodPattern.FindStringSubmatch(text)
	if m == nil {
		return models.SourceDescriptor{}, &parsererror.UnparseableIdentifierError{
			Name:   name,
			Reason: "no month/year pattern",
		}
	}

	month, ok := NormalizeMonth(m[2])
	if !ok {
		return models.SourceDescriptor{}, &parsererror.UnparseableIdentifierError{
			Name:   name,
			Reason: "no month name in '" + strings.TrimSpace(m[2]) + "'",
		}
	}

	year, err := strconv.Atoi(m[3])
	if err != nil {
		return models.SourceDescriptor{}, &parsererror.UnparseableIdentifierError{Name: name, Reason: err.Error()}
	}

	return models.SourceDescriptor{
		Path:   name,
		Month:  month,
		Year:   year,
		Branch: branch,
	}, nil
}

// NormalizeMonth returns the first canonical month name, in calendar order,
// contained in text.
func NormalizeMonth(text string) (string, bool) {
	folded := textutils.Fold(text)
	for _, name := range models.MonthNames {
		if strings.Contains(folded, name) {
			return name, true
		}
	}
	return "", false
}

package batch

import (
	"slices"
	"strings"

	"fjacquet/sales-consolidator/internal/fileutils"
	"fjacquet/sales-consolidator/internal/identifier"
	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"
)

// SupportedExtensions lists the source file extensions picked up from a
// directory.
var SupportedExtensions = []string{".xlsx", ".xlsm", ".csv"}

// DescribeFiles derives a descriptor from each file name. Names the parser
// cannot interpret are returned separately and logged; they never fail the
// call. Descriptors keep the input order.
func DescribeFiles(p *identifier.Parser, paths []string, logger logging.Logger) ([]models.SourceDescriptor, []string) {
	var descriptors []models.SourceDescriptor
	var unparseable []string
	for _, path := range paths {
		d, err := p.Parse(path)
		if err != nil {
			logger.Warn("Skipping file with unparseable name",
				logging.Field{Key: logging.FieldFile, Value: path},
				logging.Field{Key: logging.FieldReason, Value: err.Error()})
			unparseable = append(unparseable, path)
			continue
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, unparseable
}

// DiscoverSources lists the spreadsheets of dir and describes them, oldest
// period first, then by branch and path. Resolution ties are broken by this
// order, so it must not depend on directory listing order.
func DiscoverSources(p *identifier.Parser, dir string, recursive bool, logger logging.Logger) ([]models.SourceDescriptor, []string, error) {
	files, err := fileutils.ListFilesWithExtensions(dir, recursive, SupportedExtensions...)
	if err != nil {
		return nil, nil, err
	}

	descriptors, unparseable := DescribeFiles(p, files, logger)
	SortDescriptors(descriptors)

	logger.Info("Discovered sources",
		logging.Field{Key: "directory", Value: dir},
		logging.Field{Key: logging.FieldCount, Value: len(descriptors)},
		logging.Field{Key: "unparseable", Value: len(unparseable)})

	return descriptors, unparseable, nil
}

// SortDescriptors orders descriptors chronologically, then by branch and path.
func SortDescriptors(descriptors []models.SourceDescriptor) {
	slices.SortStableFunc(descriptors, func(a, b models.SourceDescriptor) int {
		pa, pb := a.Period(), b.Period()
		if pa != pb {
			if pa.Before(pb) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.Branch, b.Branch); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
}

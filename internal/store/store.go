// Package store loads and saves department priority tables as YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/sales-consolidator/internal/fileutils"
	"fjacquet/sales-consolidator/internal/logging"
	"fjacquet/sales-consolidator/internal/models"

	"gopkg.in/yaml.v3"
)

// PriorityFile is the on-disk document. Aliases is optional.
type PriorityFile struct {
	Priorities map[string]int    `yaml:"priorities"`
	Aliases    map[string]string `yaml:"aliases,omitempty"`
}

// Table returns the priorities as a normalized PriorityTable.
func (f *PriorityFile) Table() models.PriorityTable {
	return models.NewPriorityTable(f.Priorities)
}

// Repository is implemented by PriorityStore and MockPriorityStore.
type Repository interface {
	Load() (*PriorityFile, error)
	Save(doc *PriorityFile) error
}

// PriorityStore reads and writes one priority file.
type PriorityStore struct {
	File   string
	logger logging.Logger
}

// NewPriorityStore creates a store for file.
func NewPriorityStore(file string, logger logging.Logger) *PriorityStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &PriorityStore{File: file, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "sales-consolidator", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load reads the priority file. A file that does not exist yields
// os.ErrNotExist. Both the documented layout ("priorities:" and "aliases:")
// and a bare department → priority map are accepted.
func (s *PriorityStore) Load() (*PriorityFile, error) {
	if s.File == "" {
		return nil, fmt.Errorf("no priority file configured: %w", os.ErrNotExist)
	}

	path, err := FindConfigFile(s.File)
	if err != nil {
		s.logger.Warn("Priority file not found", logging.Field{Key: logging.FieldFile, Value: s.File})
		return nil, fmt.Errorf("priority file %s: %w", s.File, err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path from user configuration
	if err != nil {
		return nil, fmt.Errorf("error reading priority file: %w", err)
	}

	var doc PriorityFile
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Priorities) > 0 {
		s.logger.Debug("Loaded priorities",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: logging.FieldCount, Value: len(doc.Priorities)})
		return &doc, nil
	}

	var flat map[string]int
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("error parsing priority file %s: %w", path, err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("priority file %s defines no priorities", path)
	}

	s.logger.Debug("Loaded priorities from flat map",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(flat)})
	return &PriorityFile{Priorities: flat}, nil
}

// Save writes doc to the store's file. Keys are written sorted.
func (s *PriorityStore) Save(doc *PriorityFile) error {
	if s.File == "" {
		return errors.New("no priority file configured")
	}
	if doc == nil {
		return errors.New("nothing to save")
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling priorities: %w", err)
	}
	if err := fileutils.WriteFile(s.File, data, 0600); err != nil {
		return err
	}

	s.logger.Info("Saved priorities",
		logging.Field{Key: logging.FieldFile, Value: s.File},
		logging.Field{Key: logging.FieldCount, Value: len(doc.Priorities)})
	return nil
}

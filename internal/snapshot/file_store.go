package snapshot

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"fjacquet/pdn-calc/internal/apperror"
	"fjacquet/pdn-calc/internal/fileutils"
	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/wagetable"
)

// DefaultFile is the snapshot location used when none is configured.
const DefaultFile = "data/regions_wages.json"

// FileStore keeps the snapshot in a local file.
type FileStore struct {
	path   string
	format Format
	logger logging.Logger
}

// NewFileStore creates a FileStore at path; the encoding follows the extension.
func NewFileStore(path string, logger logging.Logger) *FileStore {
	if path == "" {
		path = DefaultFile
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &FileStore{path: path, format: FormatForPath(path), logger: logger}
}

// Location returns the snapshot file path.
func (s *FileStore) Location() string {
	return s.path
}

// Load reads the snapshot file.
func (s *FileStore) Load(_ context.Context) (wagetable.Table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return wagetable.Table{}, &apperror.StorageError{Op: "load", Path: s.path, Err: apperror.ErrNotFound}
		}
		return wagetable.Table{}, &apperror.StorageError{Op: "load", Path: s.path, Err: err}
	}

	table, err := Decode(data, s.format)
	if err != nil {
		return wagetable.Table{}, &apperror.StorageError{Op: "load", Path: s.path, Err: err}
	}

	s.logger.Debug("Loaded snapshot",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, table.Len()))
	return table, nil
}

// Save overwrites the snapshot file, creating its directory if needed.
func (s *FileStore) Save(_ context.Context, table wagetable.Table) error {
	data, err := Encode(table, s.format)
	if err != nil {
		return &apperror.StorageError{Op: "save", Path: s.path, Err: err}
	}
	if err := fileutils.WriteFileAtomic(s.path, data, 0644); err != nil {
		return &apperror.StorageError{Op: "save", Path: s.path, Err: err}
	}

	s.logger.Debug("Saved snapshot",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, table.Len()))
	return nil
}

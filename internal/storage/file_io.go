package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aboiyar/AirBnB-clone/internal/model"
)

// Format is the encoding of a file store
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from the file extension. Anything that
// is not .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FileBackend keeps the whole mapping in one file as
// {"<Class>.<id>": {"__class__": ..., "id": ..., ...}, ...}
type FileBackend struct {
	path   string
	format Format
}

// NewFileBackend creates a backend for path
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path, format: FormatForPath(path)}
}

// Path returns the file the backend writes
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) load(ctx context.Context) ([]entry, error) {
	objects, err := FileImport(f.path, f.format)
	if err != nil {
		return nil, err
	}
	entries := make([]entry, 0, len(objects))
	for key, data := range objects {
		entries = append(entries, entry{Key: key, Data: data})
	}
	return entries, nil
}

func (f *FileBackend) persist(ctx context.Context, records []*model.Record) error {
	return FileExport(records, f.path, f.format)
}

func (f *FileBackend) close() error {
	return nil
}

// FileExport writes records to filename in the given format. The file is
// replaced atomically.
func FileExport(records []*model.Record, filename string, format Format) error {
	objects := make(map[string]any, len(records))
	for _, rec := range records {
		objects[rec.Key()] = rec.ToMap()
	}

	// Marshal the mapping to the specified format
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.Marshal(jsonValue(objects))
	case FormatYAML:
		data, err = yaml.Marshal(yamlValue(objects))
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// FileImport reads the mapping stored in filename. A missing or empty file
// is an empty mapping.
func FileImport(filename string, format Format) (map[string]map[string]any, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	objects := make(map[string]map[string]any)
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&objects)
	case FormatYAML:
		err = yaml.Unmarshal(data, &objects)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	return objects, nil
}

// Package storage persists hbnb records. One in-memory mapping keyed by
// "<Class>.<id>" is shared by every engine; an engine only knows how to load
// the whole mapping and how to write it back.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/aboiyar/AirBnB-clone/internal/config"
	"github.com/aboiyar/AirBnB-clone/internal/log"
	"github.com/aboiyar/AirBnB-clone/internal/model"
)

// Storage is what the console needs from the persistence layer.
type Storage interface {
	All() []*model.Record
	Get(key string) (*model.Record, bool)
	New(rec *model.Record) error
	Update(key string, fn func(rec *model.Record) (bool, error)) error
	Delete(key string) bool
	Destroy(key string) error
	Save() error
	Reload() error
	Close() error
}

// Driver names a storage engine
type Driver string

const (
	DriverFile   Driver = config.StorageFile
	DriverSQLite Driver = config.StorageSQLite
	DriverBadger Driver = config.StorageBadger
)

// entry is one stored record in serialised form, with the key it was
// stored under
type entry struct {
	Key  string
	Data map[string]any
}

// backend loads and writes the complete record set
type backend interface {
	load(ctx context.Context) ([]entry, error)
	persist(ctx context.Context, records []*model.Record) error
	close() error
}

// RecordStore implements Storage on top of one backend
type RecordStore struct {
	mapping
	driver  Driver
	backend backend
	logger  *log.Logger
}

// NewStorage opens the engine named by cfg.StorageType and loads its
// records.
func NewStorage(cfg *model.Config, logger *log.Logger) (*RecordStore, error) {
	if logger == nil {
		logger = log.Discard()
	}
	driver, err := validateDriver(cfg.StorageType)
	if err != nil {
		return nil, fmt.Errorf("invalid storage type '%s': %w", cfg.StorageType, err)
	}

	var b backend
	switch driver {
	case DriverFile:
		b = NewFileBackend(cfg.FilePath)
	case DriverSQLite:
		db := NewSQLiteDatabase(logger)
		// Construct the full path for the database file
		dataSourceName := filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)
		if err := db.Open(dataSourceName); err != nil {
			return nil, fmt.Errorf("failed to open database connection '%s': %w", dataSourceName, err)
		}
		if err := db.InitSchema(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
		b = NewSQLiteBackend(db)
	case DriverBadger:
		bb, err := OpenBadgerBackend(cfg.BadgerDir, false)
		if err != nil {
			return nil, err
		}
		b = bb
	}

	store := newRecordStore(driver, b, logger)
	if err := store.Reload(); err != nil {
		b.close()
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return store, nil
}

func newRecordStore(driver Driver, b backend, logger *log.Logger) *RecordStore {
	if logger == nil {
		logger = log.Discard()
	}
	return &RecordStore{
		driver:  driver,
		backend: b,
		logger:  logger,
	}
}

// Driver returns the engine in use
func (s *RecordStore) Driver() Driver {
	return s.driver
}

// All returns copies of every record in mapping order
func (s *RecordStore) All() []*model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Record, 0, len(s.order))
	for _, rec := range s.snapshot() {
		out = append(out, rec.Clone())
	}
	return out
}

// Get returns a copy of the record stored under key
func (s *RecordStore) Get(key string) (*model.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// New registers a record. It is not persisted until Save.
func (s *RecordStore) New(rec *model.Record) error {
	if err := validateRecord(rec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(rec.Clone())
	return nil
}

// Update runs fn on a copy of the record under key. When fn reports a
// change the copy replaces the stored record and the mapping is persisted;
// when fn fails or persisting fails the stored record is left as it was.
func (s *RecordStore) Update(key string, fn func(rec *model.Record) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.objects[key]
	if !ok {
		return NewNotFoundError(key)
	}

	next := current.Clone()
	changed, err := fn(next)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if next.Key() != key {
		return NewInvalidRecordError(key, "identity changed during update")
	}

	s.objects[key] = next
	if err := s.persistLocked(); err != nil {
		s.objects[key] = current
		return err
	}
	return nil
}

// Delete drops the record under key. It is not persisted until Save.
func (s *RecordStore) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remove(key)
}

// Destroy drops the record under key and persists the mapping. When
// persisting fails the record is put back where it was.
func (s *RecordStore) Destroy(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.objects[key]
	if !ok {
		return NewNotFoundError(key)
	}
	index := slices.Index(s.order, key)
	s.remove(key)
	if err := s.persistLocked(); err != nil {
		s.restore(current, index)
		return err
	}
	return nil
}

// Save writes the whole mapping through the backend
func (s *RecordStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persistLocked()
}

func (s *RecordStore) persistLocked() error {
	ctx := context.Background()
	records := s.snapshot()
	if err := s.backend.persist(ctx, records); err != nil {
		s.logger.Error(ctx, "Failed to save records", log.Fields{"driver": s.driver, "error": err})
		return fmt.Errorf("failed to save records: %w", err)
	}
	s.logger.Debug(ctx, "Records saved", log.Fields{"driver": s.driver, "records": len(records)})
	return nil
}

// Reload replaces the mapping with what the backend holds. Entries with an
// unknown class or a key that does not match their content are skipped.
func (s *RecordStore) Reload() error {
	ctx := context.Background()
	raw, err := s.backend.load(ctx)
	if err != nil {
		s.logger.Error(ctx, "Failed to load records", log.Fields{"driver": s.driver, "error": err})
		return err
	}

	records := make([]*model.Record, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, e := range raw {
		rec, err := model.FromMap(e.Data)
		if err == nil {
			err = validateRecord(rec)
		}
		if err == nil && e.Key != "" && e.Key != rec.Key() {
			err = NewInvalidRecordError(e.Key, "key does not match record "+rec.Key())
		}
		if err != nil {
			s.logger.Warn(ctx, "Skipping stored record", log.Fields{"driver": s.driver, "error": err})
			continue
		}
		if _, dup := seen[rec.Key()]; dup {
			continue
		}
		seen[rec.Key()] = struct{}{}
		records = append(records, rec)
	}

	s.mu.Lock()
	s.replace(records)
	s.mu.Unlock()

	s.logger.Info(ctx, "Records loaded", log.Fields{"driver": s.driver, "records": len(records)})
	return nil
}

// Close releases the backend
func (s *RecordStore) Close() error {
	if err := s.backend.close(); err != nil {
		return fmt.Errorf("failed to close %s storage: %w", s.driver, err)
	}
	return nil
}

func validateRecord(rec *model.Record) error {
	if rec == nil {
		return NewInvalidRecordError("", "nil record")
	}
	if !model.IsKnownClass(rec.Class) {
		return NewInvalidRecordError(rec.Key(), fmt.Sprintf("unknown class %q", rec.Class))
	}
	if rec.ID == "" {
		return NewInvalidRecordError(rec.Key(), "empty id")
	}
	return nil
}

// validateDriver checks if the provided engine name is supported
func validateDriver(driver string) (Driver, error) {
	switch Driver(driver) {
	case DriverFile, DriverSQLite, DriverBadger:
		return Driver(driver), nil
	default:
		return "", fmt.Errorf("unsupported storage driver: %s", driver)
	}
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aboiyar/AirBnB-clone/internal/log"
	"github.com/aboiyar/AirBnB-clone/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDatabase implements the Database interface for SQLite
type SQLiteDatabase struct {
	BaseDatabase
}

// NewSQLiteDatabase creates an unopened SQLite database
func NewSQLiteDatabase(logger *log.Logger) *SQLiteDatabase {
	if logger == nil {
		logger = log.Discard()
	}
	return &SQLiteDatabase{BaseDatabase: BaseDatabase{logger: logger}}
}

// Open opens a connection to the SQLite database
func (s *SQLiteDatabase) Open(dataSourceName string) error {
	s.logger.Info(context.Background(), "Opening SQLite database", log.Fields{"dbPath": filepath.Base(dataSourceName)})

	// Ensure the directory for the database file exists
	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		s.logger.Error(context.Background(), "Failed to create database directory", log.Fields{"error": err, "directory": dbDir})
		return fmt.Errorf("failed to create database directory '%s': %w", dbDir, err)
	}

	db, err := sql.Open("sqlite3", dataSourceName+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		s.logger.Error(context.Background(), "Failed to open SQLite database", log.Fields{"error": err})
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// A single connection keeps the transaction and the queries it issues together
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		db.Close()
		s.logger.Error(context.Background(), "Failed to set SQLite synchronous pragma", log.Fields{"error": err})
		return fmt.Errorf("failed to set SQLite synchronous pragma: %w", err)
	}

	// Verify the connection
	if err := db.Ping(); err != nil {
		db.Close()
		s.logger.Error(context.Background(), "Failed to verify database connection", log.Fields{"error": err})
		return fmt.Errorf("failed to verify database connection: %w", err)
	}

	s.db = db
	s.logger.Info(context.Background(), "SQLite database opened successfully", nil)
	return nil
}

// Close closes the connection to the SQLite database
func (s *SQLiteDatabase) Close() error {
	s.logger.Info(context.Background(), "Closing SQLite database", nil)
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error(context.Background(), "Failed to close SQLite database", log.Fields{"error": err})
			return fmt.Errorf("failed to close SQLite database: %w", err)
		}
		s.db = nil
	}
	return nil
}

// SQLiteBackend stores one row per record in the records table
type SQLiteBackend struct {
	db Database
}

// NewSQLiteBackend wraps an opened database with an initialised schema
func NewSQLiteBackend(db Database) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (s *SQLiteBackend) load(ctx context.Context) ([]entry, error) {
	rows, err := s.db.Query(`SELECT store_key, class, id, created_at, updated_at, attributes FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var entries []entry
	for rows.Next() {
		var key, class, id, created, updated, attributes string
		if err := rows.Scan(&key, &class, &id, &created, &updated, &attributes); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		data, err := decodeObject([]byte(attributes))
		if err != nil {
			return nil, fmt.Errorf("failed to decode attributes of %s: %w", key, err)
		}
		if data == nil {
			data = make(map[string]any)
		}
		data[model.AttrClass] = class
		data[model.AttrID] = id
		data[model.AttrCreatedAt] = created
		data[model.AttrUpdatedAt] = updated
		entries = append(entries, entry{Key: key, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return entries, nil
}

// persist replaces every row in one transaction
func (s *SQLiteBackend) persist(ctx context.Context, records []*model.Record) error {
	if err := s.db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := s.db.Exec(`DELETE FROM records`); err != nil {
		s.db.Rollback()
		return fmt.Errorf("failed to clear records: %w", err)
	}
	for i, rec := range records {
		attrs, err := encodeAttributes(rec)
		if err != nil {
			s.db.Rollback()
			return err
		}
		_, err = s.db.Exec(
			`INSERT INTO records (store_key, class, id, created_at, updated_at, attributes, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.Key(), rec.Class, rec.ID, model.FormatTime(rec.CreatedAt), model.FormatTime(rec.UpdatedAt), string(attrs), i,
		)
		if err != nil {
			s.db.Rollback()
			return fmt.Errorf("failed to insert %s: %w", rec.Key(), err)
		}
	}

	if err := s.db.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) close() error {
	return s.db.Close()
}

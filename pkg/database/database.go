package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const MemoryPath = ":memory:"

// Database holds the GORM database instance
type Database struct {
	conn   *gorm.DB
	logger *slog.Logger
}

// Option is the functional options pattern for Database
type Option func(*Database) error

// New creates a new Database instance with options
func New(opts ...Option) (*Database, error) {
	db := &Database{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(db); err != nil {
			return nil, err
		}
	}
	if db.conn == nil {
		if err := WithPath(MemoryPath)(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func WithLogger(l *slog.Logger) Option {
	return func(db *Database) error {
		if l != nil {
			db.logger = l
		}
		return nil
	}
}

// WithPath opens the SQLite database at path. An empty path or ":memory:"
// keeps the journal in memory for the life of the process.
func WithPath(path string) Option {
	return func(db *Database) error {
		if path == "" {
			path = MemoryPath
		}

		if path != MemoryPath {
			dir := filepath.Dir(path)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory %s: %w", dir, err)
			}

			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("failed to stat data directory %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("data path %s is not a directory", dir)
			}
		}

		conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w (path: %s)", err, path)
		}

		// a pooled second connection to ":memory:" would see an empty database
		if path == MemoryPath {
			sqlDB, err := conn.DB()
			if err != nil {
				return fmt.Errorf("failed to access connection pool: %w", err)
			}
			sqlDB.SetMaxOpenConns(1)
		}

		db.conn = conn
		db.logger.Info("database connected", "path", path)
		return nil
	}
}

// Get returns the underlying GORM database instance
func (d *Database) Get() *gorm.DB {
	return d.conn
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.conn == nil {
		return nil
	}
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

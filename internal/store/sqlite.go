package store

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

// OpenSQLite opens (creating if needed) the SQLite file behind dsn. The
// store is small and write-light, so slow-query logging is tuned tighter
// than gorm's default.
func OpenSQLite(dsn string) *DB {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create sqlite dir %s: %v", dir, err)
		}
	}

	gormLogger := logger.New(log.New(os.Stdout, "gorm: ", log.LstdFlags), logger.Config{
		SlowThreshold:             250 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		log.Fatalf("open sqlite %s: %v", dsn, err)
	}
	return &DB{DB: gdb}
}

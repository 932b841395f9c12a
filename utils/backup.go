package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"
)

// BackupResult contains information about a backup operation
type BackupResult struct {
	BackupPath string    `json:"backup_path"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
}

// BackupDatabase creates a backup of the SQLite database using VACUUM INTO.
// This creates a consistent, defragmented copy of the database.
func BackupDatabase(db *gorm.DB, dbPath string) (*BackupResult, error) {
	if dbPath == "" {
		dbPath = os.Getenv("DB_PATH")
		if dbPath == "" {
			dbPath = "data/socialstore.db"
		}
	}

	// Create backups directory
	backupDir := filepath.Join(filepath.Dir(dbPath), "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Generate timestamped backup filename
	timestamp := time.Now().Format("2006-01-02_150405")
	backupFilename := fmt.Sprintf("socialstore_%s.db", timestamp)
	backupPath := filepath.Join(backupDir, backupFilename)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	// VACUUM INTO creates a new database file with the contents of the
	// current database. Safe to run while the database is in use with WAL.
	_, err = sqlDB.Exec(fmt.Sprintf("VACUUM INTO '%s'", backupPath))
	if err != nil {
		return nil, fmt.Errorf("backup failed: %w", err)
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("backup created but could not stat it: %w", err)
	}

	return &BackupResult{
		BackupPath: backupPath,
		Size:       info.Size(),
		CreatedAt:  time.Now(),
	}, nil
}

package storage

import (
	"fmt"
	"os"
	"time"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// DefaultMaxBackups is the backup rotation depth used when the
	// configured value is missing or nonsense
	DefaultMaxBackups = 4
	// BackupInterval is how often the automatic backup runs
	BackupInterval = 7 * 24 * time.Hour
)

// BackupPath returns the path to a backup file with the given rotation
// number. Backup files are named <file>.bak.N; lower numbers are more
// recent (.bak.1 is the newest backup).
func BackupPath(storagePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storagePath, BackupSuffix, n)
}

// rotateBackups shifts existing backup files to make room for a new
// backup: .bak.1 -> .bak.2 and so on, deleting the oldest. Missing
// files along the way are fine.
func rotateBackups(storagePath string, maxBackups int) error {
	if err := os.Remove(BackupPath(storagePath, maxBackups)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := maxBackups - 1; i >= 1; i-- {
		current := BackupPath(storagePath, i)
		next := BackupPath(storagePath, i+1)
		if err := os.Rename(current, next); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// CreateBackup rotates existing backups and copies the current storage
// file to .bak.1. If the storage file doesn't exist, no backup is
// created and no error is returned.
func CreateBackup(storagePath string, maxBackups int) error {
	if maxBackups < 1 {
		maxBackups = DefaultMaxBackups
	}

	if _, err := os.Stat(storagePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(storagePath, maxBackups); err != nil {
		return err
	}

	sourceFile, err := os.Open(storagePath)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(BackupPath(storagePath, 1))
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return nil
}

// BackupIfDue creates a backup only when the newest existing backup is
// older than BackupInterval (or no backup exists yet). Returns whether
// a backup was made. Called opportunistically on startup so the weekly
// cadence holds without any background timer.
func BackupIfDue(storagePath string, maxBackups int) (bool, error) {
	info, err := os.Stat(BackupPath(storagePath, 1))
	if err == nil && time.Since(info.ModTime()) < BackupInterval {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	if err := CreateBackup(storagePath, maxBackups); err != nil {
		return false, err
	}
	return true, nil
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number int    // The rotation number (1 is most recent)
	Path   string // The full path to the backup file
}

// ListBackups returns available backup files sorted by recency.
// Returns an empty slice if no backups exist.
func ListBackups(storagePath string, maxBackups int) []BackupInfo {
	if maxBackups < 1 {
		maxBackups = DefaultMaxBackups
	}

	var backups []BackupInfo
	for i := 1; i <= maxBackups; i++ {
		path := BackupPath(storagePath, i)
		if _, err := os.Stat(path); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: path})
		}
	}
	return backups
}

// RestoreBackup restores a backup file to the main storage file.
// Creates a backup of the current state first for safety.
func RestoreBackup(storagePath string, backupNum, maxBackups int) error {
	if maxBackups < 1 {
		maxBackups = DefaultMaxBackups
	}
	if backupNum < 1 || backupNum > maxBackups {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", backupNum, maxBackups)
	}

	backupPath := BackupPath(storagePath, backupNum)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", backupNum)
		}
		return err
	}

	if err := CreateBackup(storagePath, maxBackups); err != nil {
		return err
	}

	sourceFile, err := os.Open(backupPath)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(storagePath)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return nil
}

// =============================================================================
// PINs to PasswordSafe Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Backup of an existing target file before it is overwritten
//   - Creation of the target file
//
// BACKUP STRATEGY:
//   - The existing file is moved to "<name>.bak", replacing an older backup
//   - When a rename is impossible (e.g. cross-device), copy and delete
//   - A missing file needs no backup
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// BackupSuffix is appended to the name of a backed up file.
const BackupSuffix = ".bak"

// =============================================================================
// FILE BACKUP
// =============================================================================

// BackupFile moves an existing file out of the way.
//
// PARAMETERS:
//   - path: The file about to be overwritten.
//
// RETURNS:
//   - The backup path, or "" if path did not exist.
//   - An error if the backup cannot be made.
func BackupFile(path string) (string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	backupPath := path + BackupSuffix

	if err := os.Rename(path, backupPath); err != nil {
		// If rename fails (e.g., cross-device), try copy and delete.
		if err := copyFile(path, backupPath); err != nil {
			return "", fmt.Errorf("failed to copy file to backup: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return backupPath, nil
}

// CreateFile creates or truncates the file at path for writing.
func CreateFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

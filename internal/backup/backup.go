// Package backup manages timestamped copies of the haven data store,
// for both the single-file SQLite backend and the JSON collection
// directory.
package backup

import (
	"archive/zip"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/haven-app/haven/internal/logger"
)

const (
	// MaxBackups is the number of backups kept before rotation
	MaxBackups = 14
	// BackupDirName is the directory backups live in, next to the data path
	BackupDirName = "backups"
	// BackupFilePrefix is the prefix for backup files
	BackupFilePrefix = "haven-"
	// BackupFileSuffix marks a SQLite database backup
	BackupFileSuffix = ".db"
	// BackupArchiveSuffix marks a zipped JSON collection backup
	BackupArchiveSuffix = ".zip"
)

// Info describes a single backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, rotates, and restores backups. The data path
// may be a SQLite database file or a JSON collection directory; the
// backup format follows from which one it is.
type Manager struct {
	dataPath  string
	backupDir string
}

func NewManager(dataPath string) *Manager {
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(filepath.Dir(dataPath), BackupDirName),
	}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// CreateBackup writes a new backup and rotates old ones past the
// retention limit. It returns the path of the new backup.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// skipRotation prevents recursive backup creation during restore.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	info, err := os.Stat(m.dataPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("data path does not exist: %s", m.dataPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat data path: %w", err)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	suffix := BackupFileSuffix
	if info.IsDir() {
		suffix = BackupArchiveSuffix
	}

	backupPath, err := m.uniqueBackupPath(suffix)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		err = m.backupCollections(backupPath)
	} else {
		err = m.backupDatabase(backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up data: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// Rotation failure should not undo a successful backup.
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// uniqueBackupPath picks a timestamped filename, falling back to
// second precision and then a counter on collisions.
func (m *Manager) uniqueBackupPath(suffix string) (string, error) {
	timestamp := time.Now().Format("20060102-1504")
	path := filepath.Join(m.backupDir, BackupFilePrefix+timestamp+suffix)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	timestamp = time.Now().Format("20060102-150405")
	path = filepath.Join(m.backupDir, BackupFilePrefix+timestamp+suffix)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	for counter := 1; counter <= 100; counter++ {
		name := fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, timestamp, counter, suffix)
		path = filepath.Join(m.backupDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

// backupDatabase prefers VACUUM INTO for a consistent copy and falls
// back to a plain file copy where VACUUM INTO is unavailable.
func (m *Manager) backupDatabase(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dataPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		srcDB.Close()
		return copyFile(m.dataPath, destPath)
	}
	return nil
}

// backupCollections zips the collection files at the top of the data
// directory into destPath.
func (m *Manager) backupCollections(destPath string) error {
	names, err := filepath.Glob(filepath.Join(m.dataPath, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list collection files: %w", err)
	}
	if len(names) == 0 {
		return fmt.Errorf("no collection files found in %s", m.dataPath)
	}
	sort.Strings(names)

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range names {
		if err := addArchiveFile(zw, name); err != nil {
			zw.Close()
			return fmt.Errorf("failed to archive %s: %w", filepath.Base(name), err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return f.Sync()
}

func addArchiveFile(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

// ListBackups returns all backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, BackupFilePrefix) {
			continue
		}
		if !strings.HasSuffix(name, BackupFileSuffix) && !strings.HasSuffix(name, BackupArchiveSuffix) {
			continue
		}

		timestamp, ok := parseBackupTimestamp(name)
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseBackupTimestamp reads the timestamp out of a backup filename,
// tolerating an optional collision counter after the time portion.
func parseBackupTimestamp(name string) (time.Time, bool) {
	stamp := strings.TrimPrefix(name, BackupFilePrefix)
	stamp = strings.TrimSuffix(stamp, BackupFileSuffix)
	stamp = strings.TrimSuffix(stamp, BackupArchiveSuffix)

	parts := strings.Split(stamp, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 && isDigits(last) {
			stamp = strings.Join(parts[:len(parts)-1], "-")
		}
	}

	if t, err := time.Parse("20060102-1504", stamp); err == nil {
		return t, true
	}
	if t, err := time.Parse("20060102-150405", stamp); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the live data with a backup. The current data
// is backed up first, and the swap is done with a rename.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := verifyBackup(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	isArchive := strings.HasSuffix(backupPath, BackupArchiveSuffix)
	if info, err := os.Stat(m.dataPath); err == nil {
		if info.IsDir() != isArchive {
			return fmt.Errorf("backup type does not match data path %s", m.dataPath)
		}
		currentBackup, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to back up current data before restore: %w", err)
		}
		logger.Info("Backed up current data before restore", "path", filepath.Base(currentBackup))
	}

	if isArchive {
		return m.restoreCollections(backupPath)
	}
	return m.restoreDatabase(backupPath)
}

func (m *Manager) restoreDatabase(backupPath string) error {
	tempPath := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.dataPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tempPath, "error", removeErr)
		}
		return fmt.Errorf("failed to restore database: %w", err)
	}

	return nil
}

// restoreCollections extracts the archive into a staging directory and
// swaps it in as the new data directory.
func (m *Manager) restoreCollections(backupPath string) error {
	tempDir := m.dataPath + ".restore.tmp"
	if err := os.RemoveAll(tempDir); err != nil {
		return fmt.Errorf("failed to clear staging directory: %w", err)
	}
	if err := os.MkdirAll(tempDir, 0700); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	r, err := zip.OpenReader(backupPath)
	if err != nil {
		os.RemoveAll(tempDir)
		return fmt.Errorf("failed to open archive: %w", err)
	}
	for _, f := range r.File {
		// Collection archives hold flat files only.
		if f.Name != filepath.Base(f.Name) || f.FileInfo().IsDir() {
			continue
		}
		if err := extractArchiveFile(f, filepath.Join(tempDir, f.Name)); err != nil {
			r.Close()
			os.RemoveAll(tempDir)
			return fmt.Errorf("failed to extract %s: %w", f.Name, err)
		}
	}
	r.Close()

	if err := os.RemoveAll(m.dataPath); err != nil {
		os.RemoveAll(tempDir)
		return fmt.Errorf("failed to clear data directory: %w", err)
	}
	if err := os.Rename(tempDir, m.dataPath); err != nil {
		return fmt.Errorf("failed to restore data directory: %w", err)
	}
	return nil
}

func extractArchiveFile(f *zip.File, dst string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return err
	}
	return out.Sync()
}

func verifyBackup(path string) error {
	if strings.HasSuffix(path, BackupArchiveSuffix) {
		return verifyArchive(path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func verifyArchive(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if strings.HasSuffix(f.Name, ".json") {
			return nil
		}
	}
	return fmt.Errorf("archive contains no collection files")
}

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

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

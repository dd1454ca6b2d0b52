package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haven-app/haven/internal/storage"
)

func setupDatabase(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "haven.db")
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	return dbPath
}

func TestCreateAndListBackups(t *testing.T) {
	dbPath := setupDatabase(t)
	mgr := NewManager(dbPath)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	if backups[0].Path != path {
		t.Errorf("listed path = %s, want %s", backups[0].Path, path)
	}
	if backups[0].Size == 0 {
		t.Error("backup size is 0")
	}
}

func TestCreateBackupWithoutDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup() without a database succeeded, want error")
	}
}

func TestListBackupsEmpty(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "haven.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups, want 0", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupDatabase(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	// Lose the live database, then restore.
	if err := os.Remove(dbPath); err != nil {
		t.Fatalf("failed to remove database: %v", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup() failed: %v", err)
	}

	// The restored file must load as a valid store again.
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() after restore failed: %v", err)
	}
	if _, err := store.GetSettings(); err != nil {
		t.Errorf("GetSettings() after restore failed: %v", err)
	}
	store.Close()
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	dbPath := setupDatabase(t)
	mgr := NewManager(dbPath)

	badPath := filepath.Join(filepath.Dir(dbPath), "bad.db")
	if err := os.WriteFile(badPath, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to write bad backup: %v", err)
	}

	if err := mgr.RestoreBackup(badPath); err == nil {
		t.Error("RestoreBackup() on garbage file succeeded, want error")
	}
	if err := mgr.RestoreBackup(filepath.Join(filepath.Dir(dbPath), "missing.db")); err == nil {
		t.Error("RestoreBackup() on missing file succeeded, want error")
	}
}

func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "haven")
	store := storage.NewJSONStore(dir)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	return dir
}

func TestCreateAndRestoreCollectionBackup(t *testing.T) {
	dir := setupDataDir(t)
	mgr := NewManager(dir)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}
	if filepath.Ext(path) != BackupArchiveSuffix {
		t.Fatalf("backup path = %s, want %s archive", path, BackupArchiveSuffix)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 1 || backups[0].Path != path {
		t.Fatalf("ListBackups() = %+v, want the new archive", backups)
	}

	// Lose the data directory, then restore.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("failed to remove data directory: %v", err)
	}

	if err := mgr.RestoreBackup(path); err != nil {
		t.Fatalf("RestoreBackup() failed: %v", err)
	}

	store := storage.NewJSONStore(dir)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() after restore failed: %v", err)
	}
	if _, err := store.GetSettings(); err != nil {
		t.Errorf("GetSettings() after restore failed: %v", err)
	}
}

func TestRestoreCollectionBackupKeepsSafetyCopy(t *testing.T) {
	dir := setupDataDir(t)
	mgr := NewManager(dir)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	// Restoring over a live directory backs it up first.
	if err := mgr.RestoreBackup(path); err != nil {
		t.Fatalf("RestoreBackup() failed: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("got %d backups after restore, want 2 (original plus safety copy)", len(backups))
	}
}

func TestRestoreRejectsInvalidArchive(t *testing.T) {
	dir := setupDataDir(t)
	mgr := NewManager(dir)

	badPath := filepath.Join(filepath.Dir(dir), "bad.zip")
	if err := os.WriteFile(badPath, []byte("not an archive"), 0600); err != nil {
		t.Fatalf("failed to write bad archive: %v", err)
	}

	if err := mgr.RestoreBackup(badPath); err == nil {
		t.Error("RestoreBackup() on garbage archive succeeded, want error")
	}
}

func TestRestoreRejectsMismatchedBackupType(t *testing.T) {
	// A database backup cannot be restored over a collection directory.
	dbPath := setupDatabase(t)
	dbBackup, err := NewManager(dbPath).CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	dir := setupDataDir(t)
	if err := NewManager(dir).RestoreBackup(dbBackup); err == nil {
		t.Error("RestoreBackup() of a database backup over a directory succeeded, want error")
	}
}

func TestParseBackupTimestamp(t *testing.T) {
	tests := []struct {
		name string
		want time.Time
		ok   bool
	}{
		{"haven-20260901-0830.db", time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC), true},
		{"haven-20260901-083015.db", time.Date(2026, 9, 1, 8, 30, 15, 0, time.UTC), true},
		{"haven-20260901-0830-2.db", time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC), true},
		{"haven-20260901-0830.zip", time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC), true},
		{"haven-not-a-timestamp.db", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBackupTimestamp(tt.name)
			if ok != tt.ok {
				t.Fatalf("parseBackupTimestamp(%q) ok = %t, want %t", tt.name, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseBackupTimestamp(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRotateBackups(t *testing.T) {
	dbPath := setupDatabase(t)
	mgr := NewManager(dbPath)

	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}

	// Seed more than MaxBackups with distinct timestamps.
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxBackups+3; i++ {
		name := BackupFilePrefix + base.AddDate(0, 0, i).Format("20060102-1504") + BackupFileSuffix
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to seed backup: %v", err)
		}
	}

	if err := mgr.rotateBackups(); err != nil {
		t.Fatalf("rotateBackups() failed: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != MaxBackups {
		t.Fatalf("got %d backups after rotation, want %d", len(backups), MaxBackups)
	}

	// The newest survive; the oldest three are gone.
	newest := base.AddDate(0, 0, MaxBackups+2)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, newest)
	}
	oldest := base.AddDate(0, 0, 3)
	if !backups[len(backups)-1].Timestamp.Equal(oldest) {
		t.Errorf("oldest kept backup = %v, want %v", backups[len(backups)-1].Timestamp, oldest)
	}
}

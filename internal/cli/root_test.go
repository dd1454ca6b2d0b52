package cli

import (
	"path/filepath"
	"testing"

	"github.com/haven-app/haven/internal/backup"
	"github.com/haven-app/haven/internal/storage"
)

func TestPerformAutomaticBackup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "haven.db")
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := &Context{Store: store}
	ctx.PerformAutomaticBackup()

	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d backups, want 1", len(backups))
	}
}

func TestPerformAutomaticBackupMissingData(t *testing.T) {
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	ctx := &Context{Store: store}

	// Must swallow the failure rather than interrupt the command.
	ctx.PerformAutomaticBackup()
}

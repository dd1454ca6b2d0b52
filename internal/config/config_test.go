package config

import (
	"testing"
)

func TestDataDirFromEnvironment(t *testing.T) {
	t.Setenv("HAVEN_DATA_DIR", "/srv/haven-data")

	cfg := New()
	if cfg.DataDir != "/srv/haven-data" {
		t.Errorf("DataDir = %q, want /srv/haven-data", cfg.DataDir)
	}
}

func TestDataDirDefault(t *testing.T) {
	t.Setenv("HAVEN_DATA_DIR", "")

	cfg := New()
	if cfg.DataDir == "" {
		t.Error("DataDir is empty, want a default under the user config dir")
	}
}

func TestGeminiAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := New()
	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("GeminiAPIKey = %q, want test-key", cfg.GeminiAPIKey)
	}
}

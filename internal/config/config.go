package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/haven-app/haven/internal/constants"
)

// Config carries environment-derived configuration. A .env file in
// the working directory is honored but optional.
type Config struct {
	GeminiAPIKey string
	DataDir      string
}

func New() *Config {
	_ = godotenv.Load()

	return &Config{
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		DataDir:      getEnv("HAVEN_DATA_DIR", defaultDataDir()),
	}
}

func defaultDataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "." + constants.AppName
	}
	return filepath.Join(configDir, constants.AppName)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

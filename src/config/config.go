package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	LogLevel         string
	AccountsPath     string
	MaxFileSizeBytes int64
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	}

	maxFileSizeBytesStr := getEnv("MAX_IMPORT_SIZE_BYTES", "10485760")
	maxFileSizeBytes, err := strconv.ParseInt(maxFileSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_IMPORT_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxFileSizeBytesStr, err)
		maxFileSizeBytes = 10 * 1024 * 1024
	}

	Cfg = &AppConfig{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		AccountsPath:     getEnv("ACCOUNTS_FILE", "accounts.yaml"),
		MaxFileSizeBytes: maxFileSizeBytes,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

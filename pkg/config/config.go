package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Log        LogConfig
	OCR        OCRConfig
	Storage    StorageConfig
	Extraction ExtractionConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type OCRConfig struct {
	TessdataPrefix string
	Languages      []string
}

type StorageConfig struct {
	AuditEnabled       bool
	AuditDir           string
	AuditRetentionDays int
}

type ExtractionConfig struct {
	Bank         string
	BatchWorkers int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		OCR: OCRConfig{
			TessdataPrefix: getEnv("TESSDATA_PREFIX", ""),
			Languages:      getEnvAsList("OCR_LANGUAGES", []string{"ukr", "eng"}),
		},
		Storage: StorageConfig{
			AuditEnabled:       getEnvAsBool("AUDIT_ENABLED", false),
			AuditDir:           getEnv("AUDIT_DIR", "./uploads"),
			AuditRetentionDays: getEnvAsInt("AUDIT_RETENTION_DAYS", 90),
		},
		Extraction: ExtractionConfig{
			Bank:         getEnv("STATEMENT_BANK", ""),
			BatchWorkers: getEnvAsInt("BATCH_WORKERS", 0),
		},
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.Log.Format)
	}

	if cfg.Storage.AuditEnabled && cfg.Storage.AuditDir == "" {
		return nil, fmt.Errorf("AUDIT_DIR is required when AUDIT_ENABLED is set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

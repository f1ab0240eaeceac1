// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
)

// Processing defaults.
const (
	DefaultWorkersValue        = 8
	DefaultMaxFileBytesValue   = 2_000_000
	DefaultMaxDocsPerCallValue = 100
	DefaultResultCacheValue    = 128
)

// Config holds all configuration for the shapegen binaries.
type Config struct {
	Workers      int    // SHAPEGEN_WORKERS, parallel file readers, default 8
	MaxFileBytes int    // SHAPEGEN_MAX_FILE_BYTES, inputs above this are skipped, default 2_000_000
	Format       string // SHAPEGEN_FORMAT, default "dts"
	Filter       string // SHAPEGEN_FILTER, jq expression applied before inference, default ""

	// MCP server limits
	MaxDocsPerCall      int // SHAPEGEN_MAX_DOCS_PER_CALL, default 100
	ResultCacheMaxItems int // SHAPEGEN_RESULT_CACHE_MAX_ITEMS, default 128

	// Logging configuration
	LogLevel      string // SHAPEGEN_LOG_LEVEL, default "info"
	LogFile       string // SHAPEGEN_LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // SHAPEGEN_LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // SHAPEGEN_LOG_MAX_BACKUPS, default 3
	LogMaxAgeDays int    // SHAPEGEN_LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // SHAPEGEN_LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Workers:      getEnvInt("SHAPEGEN_WORKERS", DefaultWorkersValue),
		MaxFileBytes: getEnvInt("SHAPEGEN_MAX_FILE_BYTES", DefaultMaxFileBytesValue),
		Format:       getEnvString("SHAPEGEN_FORMAT", "dts"),
		Filter:       getEnvString("SHAPEGEN_FILTER", ""),

		MaxDocsPerCall:      getEnvInt("SHAPEGEN_MAX_DOCS_PER_CALL", DefaultMaxDocsPerCallValue),
		ResultCacheMaxItems: getEnvInt("SHAPEGEN_RESULT_CACHE_MAX_ITEMS", DefaultResultCacheValue),

		LogLevel:      getEnvString("SHAPEGEN_LOG_LEVEL", "info"),
		LogFile:       getEnvString("SHAPEGEN_LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("SHAPEGEN_LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("SHAPEGEN_LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("SHAPEGEN_LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("SHAPEGEN_LOG_COMPRESS", true),
	}
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

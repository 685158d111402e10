package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type StorageBackend string

const (
	StorageBackendFile   StorageBackend = "file"
	StorageBackendRedis  StorageBackend = "redis"
	StorageBackendGCS    StorageBackend = "gcs"
	StorageBackendMySQL  StorageBackend = "mysql"
	StorageBackendSQLite StorageBackend = "sqlite"
)

// LedgerConfig holds the settings shared by the reconcile CLI and the admin server.
type LedgerConfig struct {
	Backend          StorageBackend
	DataDir          string
	RedisAddress     string
	RedisPrefix      string
	GCSBucket        string
	GCSPrefix        string
	SQLitePath       string
	PhoneCountryCode string
	HTTPPort         string
}

func init() {
	// Load env from .env
	godotenv.Load()
}

// AppBaseDir is APP_BASE_DIR when set (created if missing), else the working directory.
func AppBaseDir() string {
	if base := strings.TrimSpace(os.Getenv("APP_BASE_DIR")); base != "" {
		_ = os.MkdirAll(base, 0o755)
		return base
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func LoadLedgerConfig() LedgerConfig {
	dataDir := envOr("LEDGER_DATA_DIR", filepath.Join(AppBaseDir(), "data"))
	cfg := LedgerConfig{
		Backend:          StorageBackend(strings.ToLower(envOr("STORAGE_BACKEND", string(StorageBackendFile)))),
		DataDir:          dataDir,
		RedisAddress:     envOr("REDIS_ADDRESS", "localhost:6379"),
		RedisPrefix:      envOr("LEDGER_REDIS_PREFIX", "ledger"),
		GCSBucket:        os.Getenv("LEDGER_GCS_BUCKET"),
		GCSPrefix:        envOr("LEDGER_GCS_PREFIX", "data"),
		SQLitePath:       envOr("LEDGER_SQLITE_PATH", filepath.Join(dataDir, "ledger.db")),
		PhoneCountryCode: strings.ToUpper(envOr("PHONE_COUNTRY_CODE", "IN")),
		HTTPPort:         envOr("PORT", "8080"),
	}
	switch cfg.Backend {
	case StorageBackendFile, StorageBackendRedis, StorageBackendGCS, StorageBackendMySQL, StorageBackendSQLite:
	default:
		logg.WithField("backend", cfg.Backend).Warn("unknown STORAGE_BACKEND; using file")
		cfg.Backend = StorageBackendFile
	}
	return cfg
}

func envOr(key string, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

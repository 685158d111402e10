package store

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/billing_ledger/config"
)

// OpenBackend builds the backend selected by STORAGE_BACKEND.
func OpenBackend(ctx context.Context, cfg config.LedgerConfig) (Backend, error) {
	switch cfg.Backend {
	case config.StorageBackendRedis:
		client, err := config.ConnectRedisWithRetry(ctx, cfg.RedisAddress)
		if err != nil {
			return nil, err
		}
		return NewRedisBackend(client, cfg.RedisPrefix), nil
	case config.StorageBackendGCS:
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("LEDGER_GCS_BUCKET is required for the gcs backend")
		}
		client, err := config.GetStorageClient(ctx)
		if err != nil {
			return nil, err
		}
		return NewGCSBackend(client, cfg.GCSBucket, cfg.GCSPrefix), nil
	case config.StorageBackendMySQL:
		db, err := config.ConnectDatabaseWithRetry(ctx)
		if err != nil {
			return nil, err
		}
		return NewSQLBackend(db)
	case config.StorageBackendSQLite:
		db, err := config.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewSQLiteBackend(db)
	default:
		return NewFileBackend(cfg.DataDir), nil
	}
}

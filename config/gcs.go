package config

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var (
	gcsClient   *storage.Client
	gcsClientMu sync.Mutex
)

// GetStorageClient returns a Cloud Storage client for the gcs backend.
// It uses Application Default Credentials unless LEDGER_GCS_CREDENTIALS_JSON is provided.
func GetStorageClient(ctx context.Context) (*storage.Client, error) {
	gcsClientMu.Lock()
	defer gcsClientMu.Unlock()
	if gcsClient != nil {
		return gcsClient, nil
	}

	var (
		c   *storage.Client
		err error
	)
	if credJSON := os.Getenv("LEDGER_GCS_CREDENTIALS_JSON"); credJSON != "" {
		c, err = storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	} else {
		c, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("storage client is nil")
	}
	gcsClient = c
	log.Printf("cloud storage client ready")
	return gcsClient, nil
}

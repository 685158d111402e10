package store

import (
	"context"
	"errors"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/mmdatafocus/billing_ledger/models"
)

// GCSBackend keeps each collection as one object; object size and update time form the signature.
type GCSBackend struct {
	bucket *gcs.BucketHandle
	prefix string
}

func NewGCSBackend(client *gcs.Client, bucket string, prefix string) *GCSBackend {
	return &GCSBackend{bucket: client.Bucket(bucket), prefix: prefix}
}

func (b *GCSBackend) object(c Collection) *gcs.ObjectHandle {
	return b.bucket.Object(path.Join(b.prefix, c.FileName()))
}

func (b *GCSBackend) Load(ctx context.Context, c Collection) ([]byte, bool, error) {
	r, err := b.object(c).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}

func (b *GCSBackend) Save(ctx context.Context, c Collection, data []byte) error {
	w := b.object(c).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (b *GCSBackend) Stat(ctx context.Context, c Collection) (models.Signature, error) {
	attrs, err := b.object(c).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return models.Signature{}, nil
	}
	if err != nil {
		return models.Signature{}, err
	}
	return models.Signature{
		Exists:  true,
		Size:    attrs.Size,
		ModTime: attrs.Updated.UnixNano(),
	}, nil
}

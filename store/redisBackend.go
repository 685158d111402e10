package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each collection under <prefix>:<collection> with a companion
// hash <prefix>:<collection>:meta holding size and write time for change detection.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) key(c Collection) string {
	return b.prefix + ":" + string(c)
}

func (b *RedisBackend) metaKey(c Collection) string {
	return b.key(c) + ":meta"
}

func (b *RedisBackend) Load(ctx context.Context, c Collection) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, b.key(c)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}

func (b *RedisBackend) Save(ctx context.Context, c Collection, data []byte) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, b.key(c), data, 0)
		pipe.HSet(ctx, b.metaKey(c),
			"size", len(data),
			"mtime", time.Now().UnixNano(),
		)
		return nil
	})
	return err
}

func (b *RedisBackend) Stat(ctx context.Context, c Collection) (models.Signature, error) {
	meta, err := b.client.HGetAll(ctx, b.metaKey(c)).Result()
	if err != nil {
		return models.Signature{}, err
	}
	if len(meta) == 0 {
		// Written by something other than this backend: fall back to the raw key.
		n, err := b.client.StrLen(ctx, b.key(c)).Result()
		if err != nil {
			return models.Signature{}, err
		}
		if n == 0 {
			return models.Signature{}, nil
		}
		return models.Signature{Exists: true, Size: n}, nil
	}
	size, _ := strconv.ParseInt(meta["size"], 10, 64)
	mtime, _ := strconv.ParseInt(meta["mtime"], 10, 64)
	return models.Signature{Exists: true, Size: size, ModTime: mtime}, nil
}

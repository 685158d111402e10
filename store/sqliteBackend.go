package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mmdatafocus/billing_ledger/models"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS ledger_collections (
	name       TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	size       INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL DEFAULT 0
)`

// SQLiteBackend keeps every collection as one row of a local single-file database.
// updated_at is stored in unix nanoseconds.
type SQLiteBackend struct {
	db *sqlx.DB
}

type sqliteRow struct {
	Body      []byte `db:"body"`
	Size      int64  `db:"size"`
	UpdatedAt int64  `db:"updated_at"`
}

func NewSQLiteBackend(db *sqlx.DB) (*SQLiteBackend, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Load(ctx context.Context, c Collection) ([]byte, bool, error) {
	var row sqliteRow
	err := b.db.GetContext(ctx, &row, `SELECT body, size, updated_at FROM ledger_collections WHERE name = ?`, string(c))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return row.Body, true, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, c Collection, data []byte) error {
	_, err := b.db.ExecContext(ctx, `INSERT INTO ledger_collections (name, body, size, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, size = excluded.size, updated_at = excluded.updated_at`,
		string(c), data, len(data), time.Now().UnixNano())
	return err
}

func (b *SQLiteBackend) Stat(ctx context.Context, c Collection) (models.Signature, error) {
	var row sqliteRow
	err := b.db.GetContext(ctx, &row, `SELECT size, updated_at FROM ledger_collections WHERE name = ?`, string(c))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Signature{}, nil
	}
	if err != nil {
		return models.Signature{}, err
	}
	return models.Signature{Exists: true, Size: row.Size, ModTime: row.UpdatedAt}, nil
}

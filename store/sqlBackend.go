package store

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/billing_ledger/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLBackend stores every collection as one row of ledger_collections.
type SQLBackend struct {
	db *gorm.DB
}

func NewSQLBackend(db *gorm.DB) (*SQLBackend, error) {
	if err := db.AutoMigrate(&models.CollectionDocument{}); err != nil {
		return nil, err
	}
	return &SQLBackend{db: db}, nil
}

func (b *SQLBackend) Load(ctx context.Context, c Collection) ([]byte, bool, error) {
	var doc models.CollectionDocument
	err := b.db.WithContext(ctx).Where("name = ?", string(c)).Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return doc.Body, true, nil
}

func (b *SQLBackend) Save(ctx context.Context, c Collection, data []byte) error {
	doc := models.CollectionDocument{
		Name:      string(c),
		Body:      data,
		Size:      int64(len(data)),
		UpdatedAt: time.Now().UTC(),
	}
	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "size", "updated_at"}),
		}).
		Create(&doc).Error
}

func (b *SQLBackend) Stat(ctx context.Context, c Collection) (models.Signature, error) {
	var doc models.CollectionDocument
	err := b.db.WithContext(ctx).
		Select("name", "size", "updated_at").
		Where("name = ?", string(c)).
		Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Signature{}, nil
	}
	if err != nil {
		return models.Signature{}, err
	}
	return models.Signature{
		Exists:  true,
		Size:    doc.Size,
		ModTime: doc.UpdatedAt.UnixNano(),
	}, nil
}

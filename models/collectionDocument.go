package models

import "time"

// CollectionDocument is one whole collection stored as a row by the mysql backend.
type CollectionDocument struct {
	Name      string    `gorm:"primaryKey;size:64"`
	Body      []byte    `gorm:"type:longblob"`
	Size      int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"precision:6"`
}

func (CollectionDocument) TableName() string {
	return "ledger_collections"
}

// database/blobstore.go - GORM-backed key-value store for engine persistence
package database

import (
	"errors"

	"quizdash/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlobStore persists string keys to the user_blobs table. It satisfies the
// achievement engine's storage port.
type BlobStore struct {
	db *gorm.DB
}

func NewBlobStore(db *gorm.DB) *BlobStore {
	return &BlobStore{db: db}
}

func (s *BlobStore) Get(key string) (string, bool, error) {
	var blob models.UserBlob
	err := s.db.First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return blob.Value, true, nil
}

func (s *BlobStore) Set(key, value string) error {
	blob := models.UserBlob{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}

// models/blob.go - Key-value blobs backing achievement/streak persistence
package models

import "time"

// UserBlob is a single JSON-serialized value under a string key. The
// achievement engine owns two keys per user (achievements and streak) and
// treats them as independent writes.
type UserBlob struct {
	Key       string    `json:"key" gorm:"primaryKey;size:190"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserBlob) TableName() string {
	return "user_blobs"
}

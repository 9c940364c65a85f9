package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment kinds accepted on a moment.
const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaFile  = "file"
	MediaLink  = "link"
)

// Moment is a single user-authored story entry.
// LikesCount is a cached value; the likes table is the source of truth and
// the column only ever moves through atomic SQL updates in the like store.
type Moment struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	UserEmail  string    `gorm:"column:user_email" json:"user_email,omitempty"`
	Text       string    `gorm:"column:text;type:text" json:"text"`
	MediaURL   string    `gorm:"column:media_url" json:"media_url,omitempty"`
	MediaType  string    `gorm:"column:media_type" json:"media_type,omitempty"`
	LikesCount int       `gorm:"column:likes_count;not null;default:0" json:"likes_count"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Moment) TableName() string {
	return "moments"
}

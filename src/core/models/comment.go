package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MomentID  uuid.UUID  `gorm:"column:moment_id;type:uuid;not null;index" json:"moment_id"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	UserEmail string     `gorm:"column:user_email" json:"user_email,omitempty"`
	Text      string     `gorm:"column:text;type:text;not null" json:"text"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	EditedAt  *time.Time `gorm:"column:edited_at" json:"edited_at,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

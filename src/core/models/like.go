package models

import (
	"time"

	"github.com/google/uuid"
)

// Like records that a user liked a moment. The composite primary key is the
// uniqueness constraint: at most one like per (moment, user) pair.
type Like struct {
	MomentID  uuid.UUID `gorm:"column:moment_id;type:uuid;primaryKey" json:"moment_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}

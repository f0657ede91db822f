package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeStatus string

const (
	StatusLike    LikeStatus = "like"
	StatusDislike LikeStatus = "dislike"
)

// Like holds the single rating a user gave a video. The composite unique
// index makes repeat actions an upsert, never a second row.
type Like struct {
	ID        string     `gorm:"type:uuid;primary_key" json:"id"`
	VideoID   string     `gorm:"type:uuid;not null;uniqueIndex:idx_video_user" json:"video_id"`
	UserID    string     `gorm:"type:uuid;not null;uniqueIndex:idx_video_user" json:"user_id"`
	Status    LikeStatus `gorm:"type:varchar(7);not null" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

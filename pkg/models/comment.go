package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reply is an inline sub-record of a comment. Replies have no identity of
// their own and no independent deletion path.
type Reply struct {
	UserID string `json:"user_id,omitempty"`
	Text   string `json:"text"`
}

type Comment struct {
	ID          string                     `gorm:"type:uuid;primary_key" json:"id"`
	VideoID     string                     `gorm:"type:uuid;not null;index" json:"video_id"`
	UserID      string                     `gorm:"type:uuid;not null;index" json:"user_id"`
	CommentText string                     `gorm:"not null" json:"comment_text"`
	Replies     datatypes.JSONSlice[Reply] `json:"replies"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

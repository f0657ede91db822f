package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	VideoID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_video_user"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_video_user"`
	Status    string    `gorm:"type:varchar(7);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (m *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type SubscriptionModel struct {
	ID           string    `gorm:"type:uuid;primary_key"`
	SubscriberID string    `gorm:"type:uuid;not null;uniqueIndex:idx_subscriber_channel"`
	ChannelID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_subscriber_channel"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (m *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type ReplyDoc struct {
	UserID string `json:"user_id,omitempty"`
	Text   string `json:"text"`
}

type CommentModel struct {
	ID          string `gorm:"type:uuid;primary_key"`
	VideoID     string `gorm:"type:uuid;not null;index"`
	UserID      string `gorm:"type:uuid;not null;index"`
	CommentText string `gorm:"not null"`
	Replies     datatypes.JSONSlice[ReplyDoc]
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (m *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// ProfileRef maps the columns of the profiles table this service touches:
// channel lookups and the subscriber counter.
type ProfileRef struct {
	ID               string `gorm:"type:uuid;primary_key"`
	UserID           string `gorm:"type:uuid"`
	Title            string
	TotalSubscribers int
}

func (ProfileRef) TableName() string {
	return "profiles"
}

// VideoRef is a read-only view of the videos table for existence checks.
// DeletedAt keeps soft-deleted videos out of those checks.
type VideoRef struct {
	ID        string `gorm:"type:uuid;primary_key"`
	DeletedAt gorm.DeletedAt
}

func (VideoRef) TableName() string {
	return "videos"
}

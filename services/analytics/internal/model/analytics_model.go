package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VideoAnalyticsModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	VideoID   string    `gorm:"type:uuid;uniqueIndex;not null"`
	Views     int64     `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (VideoAnalyticsModel) TableName() string {
	return "video_analytics"
}

func (m *VideoAnalyticsModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type WatchEventModel struct {
	ID              string    `gorm:"type:uuid;primary_key"`
	VideoID         string    `gorm:"type:uuid;not null;index"`
	UserID          *string   `gorm:"type:uuid"`
	DurationSeconds int       `gorm:"not null"`
	Timestamp       time.Time `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (WatchEventModel) TableName() string {
	return "watch_events"
}

func (m *WatchEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type EngagementEventModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	VideoID   string    `gorm:"type:uuid;not null;index"`
	UserID    *string   `gorm:"type:uuid"`
	EventType string    `gorm:"type:varchar(10);not null"`
	Timestamp time.Time `gorm:"not null;index"`
	Details   datatypes.JSONMap
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (EngagementEventModel) TableName() string {
	return "engagement_events"
}

func (m *EngagementEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// VideoRef is a read-only view of the videos table. DeletedAt keeps
// soft-deleted videos out of existence checks and per-user listings.
type VideoRef struct {
	ID        string `gorm:"type:uuid;primary_key"`
	UserID    string `gorm:"type:uuid"`
	Title     string
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (VideoRef) TableName() string {
	return "videos"
}

// LikeRef is a read-only view of the likes table for live counts.
type LikeRef struct {
	ID      string `gorm:"type:uuid;primary_key"`
	VideoID string `gorm:"type:uuid"`
	Status  string
}

func (LikeRef) TableName() string {
	return "likes"
}

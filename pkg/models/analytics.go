package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EngagementType string

const (
	EngagementPause  EngagementType = "pause"
	EngagementResume EngagementType = "resume"
	EngagementSeek   EngagementType = "seek"
	EngagementHover  EngagementType = "hover"
)

// VideoAnalytics keeps the per-video view counter. Created lazily on the
// first recorded event; the counter only ever increments, via a storage-side
// expression. Likes and dislikes live in the likes table and are counted at
// read time.
type VideoAnalytics struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	VideoID   string    `gorm:"type:uuid;uniqueIndex;not null" json:"video_id"`
	Views     int64     `gorm:"default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (a *VideoAnalytics) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// WatchEvent is one viewing session's reported duration. Append-only.
type WatchEvent struct {
	ID              string    `gorm:"type:uuid;primary_key" json:"id"`
	VideoID         string    `gorm:"type:uuid;not null;index" json:"video_id"`
	UserID          *string   `gorm:"type:uuid" json:"user_id"`
	DurationSeconds int       `gorm:"not null" json:"duration_seconds"`
	Timestamp       time.Time `gorm:"not null;index" json:"timestamp"`
	CreatedAt       time.Time `json:"created_at"`
}

func (w *WatchEvent) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

// EngagementEvent is one recorded player interaction. Append-only.
type EngagementEvent struct {
	ID        string            `gorm:"type:uuid;primary_key" json:"id"`
	VideoID   string            `gorm:"type:uuid;not null;index" json:"video_id"`
	EventType EngagementType    `gorm:"type:varchar(10);not null" json:"event_type"`
	Timestamp time.Time         `gorm:"not null;index" json:"timestamp"`
	Details   datatypes.JSONMap `json:"details"`
	UserID    *string           `gorm:"type:uuid" json:"user_id"`
	CreatedAt time.Time         `json:"created_at"`
}

func (e *EngagementEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

type DurationBucket string

const (
	DurationShort    DurationBucket = "short"     // 0-4 minutes
	DurationMedium   DurationBucket = "medium"    // 4-20 minutes
	DurationLong     DurationBucket = "long"      // 20-60 minutes
	DurationVeryLong DurationBucket = "very_long" // 60+ minutes
)

type Video struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID       string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string         `gorm:"type:varchar(255)" json:"title"`
	Description  string         `json:"description"`
	Visibility   Visibility     `gorm:"type:varchar(10);default:'public'" json:"visibility"`
	Duration     DurationBucket `gorm:"type:varchar(20);default:'short'" json:"duration"`
	VideoURL     string         `gorm:"type:varchar(500)" json:"video_url"`
	ThumbnailURL string         `gorm:"type:varchar(500)" json:"thumbnail_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

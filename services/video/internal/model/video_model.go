package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoModel struct {
	ID           string         `gorm:"type:uuid;primary_key"`
	UserID       string         `gorm:"type:uuid;not null;index"`
	Title        string         `gorm:"type:varchar(255)"`
	Description  string         `gorm:"type:text"`
	Visibility   string         `gorm:"type:varchar(10);default:'public'"`
	Duration     string         `gorm:"type:varchar(20);default:'short'"`
	VideoURL     string         `gorm:"type:varchar(500)"`
	ThumbnailURL string         `gorm:"type:varchar(500)"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (VideoModel) TableName() string {
	return "videos"
}

func (m *VideoModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

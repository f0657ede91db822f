package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileModel struct {
	ID               string    `gorm:"type:uuid;primary_key"`
	UserID           string    `gorm:"type:uuid;uniqueIndex;not null"`
	Title            string    `gorm:"type:varchar(100)"`
	Image            string    `gorm:"type:varchar(500)"`
	Description      string    `gorm:"type:varchar(255)"`
	Location         string    `gorm:"type:varchar(100)"`
	TotalSubscribers int       `gorm:"default:0"`
	CreatedAt        time.Time `gorm:""`
	UpdatedAt        time.Time `gorm:""`
}

func (ProfileModel) TableName() string {
	return "profiles"
}

func (p *ProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

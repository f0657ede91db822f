package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is a user's public channel page. TotalSubscribers is maintained in
// the same transaction as subscription row mutations and never drops below 0.
type Profile struct {
	ID               string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID           string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Title            string    `gorm:"type:varchar(100)" json:"title"`
	Image            string    `gorm:"type:varchar(500)" json:"image"`
	Description      string    `gorm:"type:varchar(255)" json:"description"`
	Location         string    `gorm:"type:varchar(100)" json:"location"`
	TotalSubscribers int       `gorm:"default:0" json:"total_subscribers"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

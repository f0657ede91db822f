package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	Email     string `gorm:"uniqueIndex;not null"`
	Username  string
	Password  string `gorm:"not null"`
	Role      string `gorm:"type:varchar(20);default:'user'"`
	IsActive  bool   `gorm:"default:false"`
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

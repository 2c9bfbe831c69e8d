package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountModel struct {
	ID               string         `gorm:"type:uuid;primary_key" json:"id"`
	Email            string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone            string         `gorm:"type:varchar(32)" json:"phone"`
	Username         string         `gorm:"type:varchar(50)" json:"username"`
	PasswordHash     string         `json:"-"`
	Role             string         `gorm:"type:varchar(20);default:'user'" json:"role"`
	Status           string         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	AvatarURL        string         `gorm:"type:varchar(500)" json:"avatar_url"`
	VerifyCode       string         `gorm:"type:varchar(12)" json:"-"`
	VerifyCodeExpiry *time.Time     `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

func (a *AccountModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

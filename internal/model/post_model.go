package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"not null" json:"title"`
	Excerpt     string         `gorm:"type:varchar(500)" json:"excerpt"`
	Body        string         `gorm:"type:text" json:"body"`
	Tags        []string       `gorm:"serializer:json" json:"tags"`
	Category    string         `gorm:"type:varchar(20);index" json:"category"`
	AuthorID    string         `gorm:"type:uuid;not null;index" json:"author_id"`
	Status      string         `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

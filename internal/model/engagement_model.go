package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	AccountID string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_account_post" json:"account_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_account_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type BookmarkModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	AccountID string    `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_account_post" json:"account_id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_account_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (BookmarkModel) TableName() string {
	return "bookmarks"
}

func (b *BookmarkModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

type FollowModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	FollowerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FolloweeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (FollowModel) TableName() string {
	return "follows"
}

func (f *FollowModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

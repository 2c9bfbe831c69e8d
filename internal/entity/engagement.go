package entity

import "time"

type Like struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Bookmark struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Follow struct {
	ID         string    `json:"id"`
	FollowerID string    `json:"follower_id"`
	FolloweeID string    `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToggleResult reports the outcome of a set-membership toggle.
type ToggleResult struct {
	Added bool  `json:"added"`
	Count int64 `json:"count"`
}

package entity

import "time"

// Comment belongs to exactly one post. Threading is single-level: a reply
// carries the id of a top-level comment, and replies to replies are
// flattened onto that same parent.
type Comment struct {
	ID        string     `json:"id"`
	PostID    string     `json:"post_id"`
	AuthorID  string     `json:"author_id"`
	ParentID  *string    `json:"parent_id,omitempty"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Replies   []*Comment `json:"replies,omitempty"`
}

func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

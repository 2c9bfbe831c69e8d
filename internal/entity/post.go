package entity

import (
	"time"

	"inkwell/pkg/apperr"
)

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
	PostBanned    PostStatus = "banned"
)

type PostCategory string

const (
	CategoryTechnology PostCategory = "technology"
	CategoryLifestyle  PostCategory = "lifestyle"
	CategoryTravel     PostCategory = "travel"
	CategoryFood       PostCategory = "food"
	CategoryOpinion    PostCategory = "opinion"
	CategoryOther      PostCategory = "other"
)

func (c PostCategory) Valid() bool {
	switch c {
	case CategoryTechnology, CategoryLifestyle, CategoryTravel, CategoryFood, CategoryOpinion, CategoryOther:
		return true
	}
	return false
}

// Post is a blog article. Slug and AuthorID are immutable once set.
// Invariant maintained by every transition below:
// IsPublished == (Status == published) and PublishedAt != nil iff published.
type Post struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Excerpt     string       `json:"excerpt,omitempty"`
	Body        string       `json:"body"`
	Tags        []string     `json:"tags,omitempty"`
	Category    PostCategory `json:"category"`
	AuthorID    string       `json:"author_id"`
	Status      PostStatus   `json:"status"`
	IsPublished bool         `json:"is_published"`
	PublishedAt *time.Time   `json:"published_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Publish transitions the post into published. Republishing an already
// published post is a no-op; the original PublishedAt is kept. The caller is
// responsible for the banned-post role check before calling.
func (p *Post) Publish(now time.Time) {
	if p.Status == PostPublished {
		return
	}
	p.Status = PostPublished
	p.IsPublished = true
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}

// Unpublish returns a published post to draft.
func (p *Post) Unpublish() error {
	if p.Status != PostPublished {
		return apperr.New(apperr.KindConflict, "post is not published")
	}
	p.Status = PostDraft
	p.IsPublished = false
	p.PublishedAt = nil
	return nil
}

// Ban is a moderation override reachable from any state.
func (p *Post) Ban() error {
	if p.Status == PostBanned {
		return apperr.New(apperr.KindConflict, "post is already banned")
	}
	p.Status = PostBanned
	p.IsPublished = false
	p.PublishedAt = nil
	return nil
}

// Unban restores a banned post to draft. Republishing is a separate,
// explicit action.
func (p *Post) Unban() error {
	if p.Status != PostBanned {
		return apperr.New(apperr.KindConflict, "post is not banned")
	}
	p.Status = PostDraft
	p.IsPublished = false
	p.PublishedAt = nil
	return nil
}

// Archive shelves a post. Banned posts stay banned until explicitly unbanned.
func (p *Post) Archive() error {
	if p.Status == PostBanned {
		return apperr.New(apperr.KindConflict, "post is banned")
	}
	if p.Status == PostArchived {
		return apperr.New(apperr.KindConflict, "post is already archived")
	}
	p.Status = PostArchived
	p.IsPublished = false
	p.PublishedAt = nil
	return nil
}

// Engageable reports whether the post accepts likes, bookmarks and comments.
func (p *Post) Engageable() bool {
	return p.Status == PostPublished
}

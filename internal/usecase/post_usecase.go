package usecase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
)

type CreatePostInput struct {
	Title    string
	Excerpt  string
	Body     string
	Tags     []string
	Category entity.PostCategory
}

type UpdatePostInput struct {
	Title    *string
	Excerpt  *string
	Body     *string
	Tags     []string
	Category *entity.PostCategory
}

type PostUseCase interface {
	Create(authorID string, in CreatePostInput) (*entity.Post, error)
	Update(actor entity.CallContext, postID string, in UpdatePostInput) (*entity.Post, error)
	GetBySlug(viewer *entity.CallContext, slug string) (*entity.Post, error)
	ListPublished(filter persistent.PostFilter, limit, offset int) ([]*entity.Post, error)
	ListOwn(authorID string, limit, offset int) ([]*entity.Post, error)
	ListModeration(filter persistent.PostFilter, limit, offset int) ([]*entity.Post, error)
}

type postUseCase struct {
	postRepo persistent.PostRepository
	logger   *logger.Logger
}

func NewPostUseCase(postRepo persistent.PostRepository, log *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		logger:   log,
	}
}

// Create stores a new draft. The slug is derived from the title once and
// never changes afterwards, even if the title does.
func (uc *postUseCase) Create(authorID string, in CreatePostInput) (*entity.Post, error) {
	if in.Title == "" {
		return nil, apperr.New(apperr.KindValidation, "title is required")
	}
	if in.Body == "" {
		return nil, apperr.New(apperr.KindValidation, "body is required")
	}
	if in.Category == "" {
		in.Category = entity.CategoryOther
	}
	if !in.Category.Valid() {
		return nil, apperr.New(apperr.KindValidation, "unknown category")
	}

	postSlug, err := uc.uniqueSlug(in.Title)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		Slug:     postSlug,
		Title:    in.Title,
		Excerpt:  in.Excerpt,
		Body:     in.Body,
		Tags:     dedupeTags(in.Tags),
		Category: in.Category,
		AuthorID: authorID,
		Status:   entity.PostDraft,
	}

	if err := uc.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update edits post content. Only the author may edit; slug, author and
// status are untouchable here — status moves through the moderation actions.
func (uc *postUseCase) Update(actor entity.CallContext, postID string, in UpdatePostInput) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != actor.AccountID {
		return nil, apperr.New(apperr.KindInsufficientRole, "only the author may edit a post")
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperr.New(apperr.KindValidation, "title is required")
		}
		post.Title = *in.Title
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.Body != nil {
		if *in.Body == "" {
			return nil, apperr.New(apperr.KindValidation, "body is required")
		}
		post.Body = *in.Body
	}
	if in.Tags != nil {
		post.Tags = dedupeTags(in.Tags)
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, apperr.New(apperr.KindValidation, "unknown category")
		}
		post.Category = *in.Category
	}

	if err := uc.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetBySlug returns the post when the viewer may see it. Unpublished posts
// are visible to their author and to moderators only; everyone else gets a
// plain not-found.
func (uc *postUseCase) GetBySlug(viewer *entity.CallContext, slugValue string) (*entity.Post, error) {
	post, err := uc.postRepo.GetBySlug(slugValue)
	if err != nil {
		return nil, err
	}

	if post.IsPublished {
		return post, nil
	}
	if viewer != nil && (viewer.AccountID == post.AuthorID || viewer.Role.IsModerator()) {
		return post, nil
	}
	return nil, apperr.New(apperr.KindNotFound, "post not found")
}

func (uc *postUseCase) ListPublished(filter persistent.PostFilter, limit, offset int) ([]*entity.Post, error) {
	return uc.postRepo.List(filter.WithStatus(entity.PostPublished), limit, offset)
}

func (uc *postUseCase) ListOwn(authorID string, limit, offset int) ([]*entity.Post, error) {
	return uc.postRepo.List(persistent.PostFilter{}.WithAuthor(authorID), limit, offset)
}

func (uc *postUseCase) ListModeration(filter persistent.PostFilter, limit, offset int) ([]*entity.Post, error) {
	return uc.postRepo.List(filter, limit, offset)
}

func (uc *postUseCase) uniqueSlug(title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		return "", apperr.New(apperr.KindValidation, "title produces an empty slug")
	}

	exists, err := uc.postRepo.SlugExists(base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}
	// Collision: disambiguate with a short random suffix.
	return fmt.Sprintf("%s-%s", base, uuid.New().String()[:8]), nil
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

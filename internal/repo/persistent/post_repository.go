package persistent

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inkwell/internal/entity"
	"inkwell/internal/model"
	"inkwell/pkg/apperr"
)

// PostFilter is the closed set of predicates the listing endpoints compose.
// Nil fields are not applied.
type PostFilter struct {
	Status   *entity.PostStatus
	Category *entity.PostCategory
	AuthorID *string
	Tag      *string
	Search   *string
	IDs      []string
}

func (f PostFilter) WithStatus(s entity.PostStatus) PostFilter {
	f.Status = &s
	return f
}

func (f PostFilter) WithCategory(c entity.PostCategory) PostFilter {
	f.Category = &c
	return f
}

func (f PostFilter) WithAuthor(id string) PostFilter {
	f.AuthorID = &id
	return f
}

func (f PostFilter) WithTag(tag string) PostFilter {
	f.Tag = &tag
	return f
}

func (f PostFilter) WithSearch(text string) PostFilter {
	f.Search = &text
	return f
}

func (f PostFilter) WithIDs(ids []string) PostFilter {
	f.IDs = ids
	return f
}

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	GetBySlug(slug string) (*entity.Post, error)
	SlugExists(slug string) (bool, error)
	Update(post *entity.Post) error
	Delete(id string) error
	DeleteMany(ids []string) (int64, error)
	List(filter PostFilter, limit, offset int) ([]*entity.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Create(postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindConflict, "slug already taken")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to create post", err)
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, notFoundOr(err, "post not found")
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) GetBySlug(slug string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("slug = ?", slug).First(&postModel).Error; err != nil {
		return nil, notFoundOr(err, "post not found")
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.PostModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "store read failed", err)
	}
	return count > 0, nil
}

func (r *postRepository) Update(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Save(postModel).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to update post", err)
	}
	return nil
}

func (r *postRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&model.PostModel{})
	if res.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete post", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "post not found")
	}
	return nil
}

// DeleteMany removes the given posts best effort and reports how many rows
// were actually affected.
func (r *postRepository) DeleteMany(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Where("id IN ?", ids).Delete(&model.PostModel{})
	if res.Error != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to delete posts", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *postRepository) List(filter PostFilter, limit, offset int) ([]*entity.Post, error) {
	query := r.db.Model(&model.PostModel{}).Order("created_at DESC")

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Tag != nil {
		// Tags are stored as a JSON array
		query = query.Where("tags::jsonb @> ?", fmt.Sprintf(`[%q]`, *filter.Tag))
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		query = query.Where("title ILIKE ? OR excerpt ILIKE ?", pattern, pattern)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var postModels []model.PostModel
	if err := query.Find(&postModels).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list posts", err)
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

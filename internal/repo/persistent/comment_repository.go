package persistent

import (
	"gorm.io/gorm"

	"inkwell/internal/entity"
	"inkwell/internal/model"
	"inkwell/pkg/apperr"
)

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(id string) (*entity.Comment, error)
	Update(comment *entity.Comment) error
	Delete(id string) error
	ListByPost(postID string) ([]*entity.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.Create(commentModel).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to create comment", err)
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *commentRepository) GetByID(id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.Where("id = ?", id).First(&commentModel).Error; err != nil {
		return nil, notFoundOr(err, "comment not found")
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) Update(comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.Save(commentModel).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to update comment", err)
	}
	return nil
}

func (r *commentRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&model.CommentModel{})
	if res.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete comment", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "comment not found")
	}
	return nil
}

// ListByPost returns top-level comments in posting order with their replies
// nested under them.
func (r *commentRepository) ListByPost(postID string) ([]*entity.Comment, error) {
	var commentModels []model.CommentModel
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&commentModels).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list comments", err)
	}

	byID := make(map[string]*entity.Comment, len(commentModels))
	var topLevel []*entity.Comment
	for i := range commentModels {
		c := ToCommentEntity(&commentModels[i])
		byID[c.ID] = c
		if c.IsTopLevel() {
			topLevel = append(topLevel, c)
		}
	}
	for i := range commentModels {
		c := byID[commentModels[i].ID]
		if c.ParentID == nil {
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return topLevel, nil
}

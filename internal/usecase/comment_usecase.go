package usecase

import (
	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
	"inkwell/pkg/queue"
)

type CommentUseCase interface {
	Create(actorID, postID, body string, parentID *string) (*entity.Comment, error)
	Update(actor entity.CallContext, commentID, body string) (*entity.Comment, error)
	Delete(actor entity.CallContext, commentID string) error
	ListByPost(postID string) ([]*entity.Comment, error)
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	postRepo    persistent.PostRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	postRepo persistent.PostRepository,
	queueClient *queue.Client,
	log *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		queueClient: queueClient,
		logger:      log,
	}
}

// Create adds a comment to a published post. Threading is single-level: a
// reply to a reply is attached to the top-level parent instead.
func (uc *commentUseCase) Create(actorID, postID, body string, parentID *string) (*entity.Comment, error) {
	if body == "" {
		return nil, apperr.New(apperr.KindValidation, "comment body is required")
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !post.Engageable() {
		return nil, apperr.New(apperr.KindNotFound, "post not found")
	}

	if parentID != nil {
		parent, err := uc.commentRepo.GetByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperr.New(apperr.KindNotFound, "comment not found")
		}
		// Flatten: replies always hang off a top-level comment.
		if parent.ParentID != nil {
			parentID = parent.ParentID
		}
	}

	comment := &entity.Comment{
		PostID:   postID,
		AuthorID: actorID,
		ParentID: parentID,
		Body:     body,
	}
	if err := uc.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	if post.AuthorID != actorID && uc.queueClient != nil {
		go func() {
			task := map[string]interface{}{
				"type":         "comment",
				"account_id":   post.AuthorID,
				"commenter_id": actorID,
				"post_id":      postID,
			}
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("Failed to publish comment notification task: %v", err)
			}
		}()
	}

	return comment, nil
}

// Update edits a comment body. Only the owner may edit.
func (uc *commentUseCase) Update(actor entity.CallContext, commentID, body string) (*entity.Comment, error) {
	if body == "" {
		return nil, apperr.New(apperr.KindValidation, "comment body is required")
	}

	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actor.AccountID {
		return nil, apperr.New(apperr.KindInsufficientRole, "only the author may edit a comment")
	}

	comment.Body = body
	if err := uc.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. Owner, admin and super_admin may delete.
func (uc *commentUseCase) Delete(actor entity.CallContext, commentID string) error {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actor.AccountID && !actor.Role.IsModerator() {
		return apperr.New(apperr.KindInsufficientRole, "insufficient role")
	}
	return uc.commentRepo.Delete(commentID)
}

func (uc *commentUseCase) ListByPost(postID string) ([]*entity.Comment, error) {
	if _, err := uc.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	return uc.commentRepo.ListByPost(postID)
}

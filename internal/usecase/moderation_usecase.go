package usecase

import (
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
)

// BulkResult reports how many posts a best-effort bulk action actually
// changed. Items that failed a guard are skipped, not reported individually.
type BulkResult struct {
	Requested int   `json:"requested"`
	Affected  int64 `json:"affected"`
}

// ModerationUseCase drives the post state machine:
// draft -> published -> archived/banned, with role-scoped transition rights.
type ModerationUseCase interface {
	Publish(actor entity.CallContext, postID string) (*entity.Post, error)
	Unpublish(actor entity.CallContext, postID string) (*entity.Post, error)
	Archive(actor entity.CallContext, postID string) (*entity.Post, error)
	Ban(actor entity.CallContext, postID string) (*entity.Post, error)
	Unban(actor entity.CallContext, postID string) (*entity.Post, error)
	Delete(actor entity.CallContext, postID string) error

	BulkPublish(actor entity.CallContext, postIDs []string) (BulkResult, error)
	BulkUnpublish(actor entity.CallContext, postIDs []string) (BulkResult, error)
	BulkArchive(actor entity.CallContext, postIDs []string) (BulkResult, error)
	BulkDelete(actor entity.CallContext, postIDs []string) (BulkResult, error)
}

type moderationUseCase struct {
	postRepo    persistent.PostRepository
	accountRepo persistent.AccountRepository
	logger      *logger.Logger
	now         func() time.Time
}

func NewModerationUseCase(
	postRepo persistent.PostRepository,
	accountRepo persistent.AccountRepository,
	log *logger.Logger,
) ModerationUseCase {
	return &moderationUseCase{
		postRepo:    postRepo,
		accountRepo: accountRepo,
		logger:      log,
		now:         time.Now,
	}
}

// Publish moves a draft or archived post into published. A banned post may
// only be republished by a super_admin; a ban is not an admin's to reverse.
func (uc *moderationUseCase) Publish(actor entity.CallContext, postID string) (*entity.Post, error) {
	return uc.mutate(actor, postID, uc.applyPublish)
}

func (uc *moderationUseCase) applyPublish(actor entity.CallContext, post *entity.Post) error {
	if post.Status == entity.PostBanned && actor.Role != entity.RoleSuperAdmin {
		return apperr.New(apperr.KindInsufficientRole, "only a super admin may publish a banned post")
	}
	post.Publish(uc.now())
	return nil
}

func (uc *moderationUseCase) Unpublish(actor entity.CallContext, postID string) (*entity.Post, error) {
	return uc.mutate(actor, postID, func(_ entity.CallContext, post *entity.Post) error {
		return post.Unpublish()
	})
}

// Archive retires a post. The author may archive their own; a moderator may
// archive others' subject to the same rank rule as ban.
func (uc *moderationUseCase) Archive(actor entity.CallContext, postID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	if err := uc.checkOwnerOrModerator(actor, post); err != nil {
		return nil, err
	}

	if err := post.Archive(); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Update(post); err != nil {
		return nil, err
	}
	uc.logger.Info("Post %s moved to %s by %s", post.ID, post.Status, actor.AccountID)
	return post, nil
}

func (uc *moderationUseCase) Ban(actor entity.CallContext, postID string) (*entity.Post, error) {
	return uc.mutate(actor, postID, func(_ entity.CallContext, post *entity.Post) error {
		return post.Ban()
	})
}

// Unban restores a banned post to draft; republishing stays a separate,
// explicit action.
func (uc *moderationUseCase) Unban(actor entity.CallContext, postID string) (*entity.Post, error) {
	return uc.mutate(actor, postID, func(_ entity.CallContext, post *entity.Post) error {
		return post.Unban()
	})
}

// mutate loads the post, runs the moderator and rank guards, applies the
// transition and persists the result.
func (uc *moderationUseCase) mutate(actor entity.CallContext, postID string, apply func(entity.CallContext, *entity.Post) error) (*entity.Post, error) {
	if !actor.Role.IsModerator() {
		return nil, apperr.New(apperr.KindInsufficientRole, "insufficient role")
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	if err := uc.checkAuthorRank(actor, post); err != nil {
		return nil, err
	}

	if err := apply(actor, post); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Update(post); err != nil {
		return nil, err
	}
	uc.logger.Info("Post %s moved to %s by %s", post.ID, post.Status, actor.AccountID)
	return post, nil
}

// checkAuthorRank enforces the asymmetry rule: an admin may not act on a
// post authored by a super_admin.
func (uc *moderationUseCase) checkAuthorRank(actor entity.CallContext, post *entity.Post) error {
	if actor.Role == entity.RoleSuperAdmin {
		return nil
	}

	author, err := uc.accountRepo.GetByID(post.AuthorID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			// Orphaned post: no rank to defer to.
			return nil
		}
		return err
	}
	if !actor.Role.Outranks(author.Role) {
		return apperr.New(apperr.KindInsufficientRole, "cannot moderate a super admin's post")
	}
	return nil
}

// checkOwnerOrModerator admits the post's author unconditionally; anyone
// else must be a moderator who outranks the author.
func (uc *moderationUseCase) checkOwnerOrModerator(actor entity.CallContext, post *entity.Post) error {
	if post.AuthorID == actor.AccountID {
		return nil
	}
	if !actor.Role.IsModerator() {
		return apperr.New(apperr.KindInsufficientRole, "insufficient role")
	}
	return uc.checkAuthorRank(actor, post)
}

// Delete removes a post. The author may delete their own; a moderator may
// delete others' subject to the same rank rule as ban.
func (uc *moderationUseCase) Delete(actor entity.CallContext, postID string) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}

	if err := uc.checkOwnerOrModerator(actor, post); err != nil {
		return err
	}

	return uc.postRepo.Delete(postID)
}

func (uc *moderationUseCase) BulkPublish(actor entity.CallContext, postIDs []string) (BulkResult, error) {
	return uc.bulkMutate(actor, postIDs, uc.applyPublish)
}

func (uc *moderationUseCase) BulkUnpublish(actor entity.CallContext, postIDs []string) (BulkResult, error) {
	return uc.bulkMutate(actor, postIDs, func(_ entity.CallContext, post *entity.Post) error {
		return post.Unpublish()
	})
}

func (uc *moderationUseCase) BulkArchive(actor entity.CallContext, postIDs []string) (BulkResult, error) {
	return uc.bulkMutate(actor, postIDs, func(_ entity.CallContext, post *entity.Post) error {
		return post.Archive()
	})
}

// bulkMutate applies the transition to each post best effort and reports the
// count actually changed.
func (uc *moderationUseCase) bulkMutate(actor entity.CallContext, postIDs []string, apply func(entity.CallContext, *entity.Post) error) (BulkResult, error) {
	result := BulkResult{Requested: len(postIDs)}
	if !actor.Role.IsModerator() {
		return result, apperr.New(apperr.KindInsufficientRole, "insufficient role")
	}
	if len(postIDs) == 0 {
		return result, nil
	}

	posts, err := uc.postRepo.List(persistent.PostFilter{}.WithIDs(postIDs), 0, 0)
	if err != nil {
		return result, err
	}

	for _, post := range posts {
		if err := uc.checkAuthorRank(actor, post); err != nil {
			continue
		}
		if err := apply(actor, post); err != nil {
			continue
		}
		if err := uc.postRepo.Update(post); err != nil {
			uc.logger.Error("Bulk update failed for post %s: %v", post.ID, err)
			continue
		}
		result.Affected++
	}
	return result, nil
}

func (uc *moderationUseCase) BulkDelete(actor entity.CallContext, postIDs []string) (BulkResult, error) {
	result := BulkResult{Requested: len(postIDs)}
	if !actor.Role.IsModerator() {
		return result, apperr.New(apperr.KindInsufficientRole, "insufficient role")
	}
	if len(postIDs) == 0 {
		return result, nil
	}

	posts, err := uc.postRepo.List(persistent.PostFilter{}.WithIDs(postIDs), 0, 0)
	if err != nil {
		return result, err
	}

	var allowed []string
	for _, post := range posts {
		if err := uc.checkAuthorRank(actor, post); err != nil {
			continue
		}
		allowed = append(allowed, post.ID)
	}

	affected, err := uc.postRepo.DeleteMany(allowed)
	if err != nil {
		return result, err
	}
	result.Affected = affected
	return result, nil
}

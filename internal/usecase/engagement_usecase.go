package usecase

import (
	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
	"inkwell/pkg/queue"
)

// EngagementUseCase implements the like/bookmark/follow toggles. Every
// toggle reports whether the membership was added or removed, plus the new
// cardinality of the set.
type EngagementUseCase interface {
	ToggleLike(actorID, postID string) (entity.ToggleResult, error)
	ToggleBookmark(actorID, postID string) (entity.ToggleResult, error)
	ToggleFollow(followerID, followeeID string) (entity.ToggleResult, error)

	LikedPosts(actorID string, limit, offset int) ([]*entity.Post, error)
	BookmarkedPosts(actorID string, limit, offset int) ([]*entity.Post, error)
	Following(accountID string) ([]string, error)
	Followers(accountID string) ([]string, error)
}

type engagementUseCase struct {
	engagementRepo persistent.EngagementRepository
	postRepo       persistent.PostRepository
	accountRepo    persistent.AccountRepository
	queueClient    *queue.Client
	logger         *logger.Logger
}

func NewEngagementUseCase(
	engagementRepo persistent.EngagementRepository,
	postRepo persistent.PostRepository,
	accountRepo persistent.AccountRepository,
	queueClient *queue.Client,
	log *logger.Logger,
) EngagementUseCase {
	return &engagementUseCase{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
		accountRepo:    accountRepo,
		queueClient:    queueClient,
		logger:         log,
	}
}

func (uc *engagementUseCase) ToggleLike(actorID, postID string) (entity.ToggleResult, error) {
	post, err := uc.engageablePost(postID)
	if err != nil {
		return entity.ToggleResult{}, err
	}

	added, err := uc.engagementRepo.ToggleLike(actorID, postID)
	if err != nil {
		return entity.ToggleResult{}, err
	}
	count, err := uc.engagementRepo.LikeCount(postID)
	if err != nil {
		return entity.ToggleResult{}, err
	}

	if added && post.AuthorID != actorID {
		uc.notify(map[string]interface{}{
			"type":       "like",
			"account_id": post.AuthorID,
			"liker_id":   actorID,
			"post_id":    postID,
		})
	}

	return entity.ToggleResult{Added: added, Count: count}, nil
}

func (uc *engagementUseCase) ToggleBookmark(actorID, postID string) (entity.ToggleResult, error) {
	if _, err := uc.engageablePost(postID); err != nil {
		return entity.ToggleResult{}, err
	}

	added, err := uc.engagementRepo.ToggleBookmark(actorID, postID)
	if err != nil {
		return entity.ToggleResult{}, err
	}
	count, err := uc.engagementRepo.BookmarkCount(postID)
	if err != nil {
		return entity.ToggleResult{}, err
	}
	return entity.ToggleResult{Added: added, Count: count}, nil
}

// ToggleFollow flips the follower relation. Following yourself is an error
// in its own right, never a silent no-op.
func (uc *engagementUseCase) ToggleFollow(followerID, followeeID string) (entity.ToggleResult, error) {
	if followerID == followeeID {
		return entity.ToggleResult{}, apperr.New(apperr.KindValidation, "cannot follow yourself")
	}

	if _, err := uc.accountRepo.GetByID(followeeID); err != nil {
		return entity.ToggleResult{}, err
	}

	added, err := uc.engagementRepo.ToggleFollow(followerID, followeeID)
	if err != nil {
		return entity.ToggleResult{}, err
	}
	count, err := uc.engagementRepo.FollowerCount(followeeID)
	if err != nil {
		return entity.ToggleResult{}, err
	}

	if added {
		uc.notify(map[string]interface{}{
			"type":        "follow",
			"account_id":  followeeID,
			"follower_id": followerID,
		})
	}

	return entity.ToggleResult{Added: added, Count: count}, nil
}

func (uc *engagementUseCase) LikedPosts(actorID string, limit, offset int) ([]*entity.Post, error) {
	ids, err := uc.engagementRepo.LikedPostIDs(actorID, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*entity.Post{}, nil
	}
	return uc.postRepo.List(persistent.PostFilter{}.WithIDs(ids).WithStatus(entity.PostPublished), 0, 0)
}

func (uc *engagementUseCase) BookmarkedPosts(actorID string, limit, offset int) ([]*entity.Post, error) {
	ids, err := uc.engagementRepo.BookmarkedPostIDs(actorID, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*entity.Post{}, nil
	}
	return uc.postRepo.List(persistent.PostFilter{}.WithIDs(ids).WithStatus(entity.PostPublished), 0, 0)
}

func (uc *engagementUseCase) Following(accountID string) ([]string, error) {
	return uc.engagementRepo.FollowingIDs(accountID)
}

func (uc *engagementUseCase) Followers(accountID string) ([]string, error) {
	return uc.engagementRepo.FollowerIDs(accountID)
}

// engageablePost resolves the target and hides unpublished posts behind a
// not-found, matching public visibility.
func (uc *engagementUseCase) engageablePost(postID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !post.Engageable() {
		return nil, apperr.New(apperr.KindNotFound, "post not found")
	}
	return post, nil
}

func (uc *engagementUseCase) notify(task map[string]interface{}) {
	if uc.queueClient == nil {
		return
	}
	go func() {
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("Failed to publish notification task: %v", err)
		}
	}()
}

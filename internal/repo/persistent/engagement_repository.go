package persistent

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkwell/internal/model"
	"inkwell/pkg/apperr"
)

// EngagementRepository implements the like/bookmark/follow toggles. Each
// toggle is a single insert-if-absent (ON CONFLICT DO NOTHING) followed by a
// delete when the row already existed, so two racing toggles never leave the
// membership set inconsistent.
type EngagementRepository interface {
	ToggleLike(accountID, postID string) (bool, error)
	LikeCount(postID string) (int64, error)
	IsLiked(accountID, postID string) (bool, error)
	LikedPostIDs(accountID string, limit, offset int) ([]string, error)

	ToggleBookmark(accountID, postID string) (bool, error)
	BookmarkCount(postID string) (int64, error)
	BookmarkedPostIDs(accountID string, limit, offset int) ([]string, error)

	ToggleFollow(followerID, followeeID string) (bool, error)
	FollowerCount(accountID string) (int64, error)
	FollowingIDs(accountID string) ([]string, error)
	FollowerIDs(accountID string) ([]string, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) ToggleLike(accountID, postID string) (bool, error) {
	added := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.LikeModel{AccountID: accountID, PostID: postID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			added = true
			return nil
		}
		return tx.Where("account_id = ? AND post_id = ?", accountID, postID).
			Delete(&model.LikeModel{}).Error
	})
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to toggle like", err)
	}
	return added, nil
}

func (r *engagementRepository) LikeCount(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.LikeModel{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to count likes", err)
	}
	return count, nil
}

func (r *engagementRepository) IsLiked(accountID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("account_id = ? AND post_id = ?", accountID, postID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to check like", err)
	}
	return count > 0, nil
}

func (r *engagementRepository) LikedPostIDs(accountID string, limit, offset int) ([]string, error) {
	var ids []string
	query := r.db.Model(&model.LikeModel{}).
		Where("account_id = ?", accountID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Pluck("post_id", &ids).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list liked posts", err)
	}
	return ids, nil
}

func (r *engagementRepository) ToggleBookmark(accountID, postID string) (bool, error) {
	added := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.BookmarkModel{AccountID: accountID, PostID: postID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			added = true
			return nil
		}
		return tx.Where("account_id = ? AND post_id = ?", accountID, postID).
			Delete(&model.BookmarkModel{}).Error
	})
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to toggle bookmark", err)
	}
	return added, nil
}

func (r *engagementRepository) BookmarkCount(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.BookmarkModel{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to count bookmarks", err)
	}
	return count, nil
}

func (r *engagementRepository) BookmarkedPostIDs(accountID string, limit, offset int) ([]string, error) {
	var ids []string
	query := r.db.Model(&model.BookmarkModel{}).
		Where("account_id = ?", accountID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Pluck("post_id", &ids).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list bookmarks", err)
	}
	return ids, nil
}

func (r *engagementRepository) ToggleFollow(followerID, followeeID string) (bool, error) {
	added := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.FollowModel{FollowerID: followerID, FolloweeID: followeeID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			added = true
			return nil
		}
		return tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&model.FollowModel{}).Error
	})
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to toggle follow", err)
	}
	return added, nil
}

func (r *engagementRepository) FollowerCount(accountID string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.FollowModel{}).Where("followee_id = ?", accountID).Count(&count).Error; err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "failed to count followers", err)
	}
	return count, nil
}

func (r *engagementRepository) FollowingIDs(accountID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.FollowModel{}).
		Where("follower_id = ?", accountID).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list following", err)
	}
	return ids, nil
}

func (r *engagementRepository) FollowerIDs(accountID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.FollowModel{}).
		Where("followee_id = ?", accountID).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list followers", err)
	}
	return ids, nil
}

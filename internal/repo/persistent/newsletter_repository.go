package persistent

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkwell/internal/entity"
	"inkwell/internal/model"
	"inkwell/pkg/apperr"
)

type NewsletterRepository interface {
	// Subscribe adds the email and reports false when it was already
	// subscribed.
	Subscribe(email string) (bool, error)
	Unsubscribe(email string) error
	List(limit, offset int) ([]*entity.NewsletterSubscription, error)
}

type newsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) Subscribe(email string) (bool, error) {
	// Resubscribing after an unsubscribe revives the soft-deleted row.
	var existing model.NewsletterSubscriptionModel
	err := r.db.Unscoped().Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.DeletedAt.Valid {
			if err := r.db.Unscoped().Model(&existing).Update("deleted_at", nil).Error; err != nil {
				return false, apperr.Wrap(apperr.KindInternal, "failed to subscribe", err)
			}
			return true, nil
		}
		return false, nil
	}

	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.NewsletterSubscriptionModel{Email: email})
	if res.Error != nil {
		return false, apperr.Wrap(apperr.KindInternal, "failed to subscribe", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *newsletterRepository) Unsubscribe(email string) error {
	// Succeeds whether or not the email was subscribed.
	err := r.db.Where("email = ?", email).Delete(&model.NewsletterSubscriptionModel{}).Error
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to unsubscribe", err)
	}
	return nil
}

func (r *newsletterRepository) List(limit, offset int) ([]*entity.NewsletterSubscription, error) {
	var models []model.NewsletterSubscriptionModel
	query := r.db.Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list subscriptions", err)
	}

	subs := make([]*entity.NewsletterSubscription, len(models))
	for i := range models {
		subs[i] = ToNewsletterEntity(&models[i])
	}
	return subs, nil
}

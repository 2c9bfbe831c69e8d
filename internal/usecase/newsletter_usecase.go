package usecase

import (
	"strings"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
)

type NewsletterUseCase interface {
	Subscribe(email string) (Outcome, error)
	Unsubscribe(email string) error
	ListSubscribers(limit, offset int) ([]*entity.NewsletterSubscription, error)
}

type newsletterUseCase struct {
	newsletterRepo persistent.NewsletterRepository
	logger         *logger.Logger
}

func NewNewsletterUseCase(newsletterRepo persistent.NewsletterRepository, log *logger.Logger) NewsletterUseCase {
	return &newsletterUseCase{
		newsletterRepo: newsletterRepo,
		logger:         log,
	}
}

// Subscribe is idempotent; resubscribing an address reports
// OutcomeAlreadyInState rather than an error.
func (uc *newsletterUseCase) Subscribe(email string) (Outcome, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", apperr.New(apperr.KindValidation, "a valid email is required")
	}

	added, err := uc.newsletterRepo.Subscribe(email)
	if err != nil {
		return "", err
	}
	if !added {
		return OutcomeAlreadyInState, nil
	}
	return OutcomeApplied, nil
}

// Unsubscribe succeeds whether or not the address was subscribed, so the
// response can't be used to probe the subscriber list.
func (uc *newsletterUseCase) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperr.New(apperr.KindValidation, "a valid email is required")
	}
	return uc.newsletterRepo.Unsubscribe(email)
}

func (uc *newsletterUseCase) ListSubscribers(limit, offset int) ([]*entity.NewsletterSubscription, error) {
	return uc.newsletterRepo.List(limit, offset)
}

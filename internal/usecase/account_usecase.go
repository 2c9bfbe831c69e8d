package usecase

import (
	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
)

// AccountUseCase drives the admin side of the account lifecycle:
// pending -> approved/rejected/suspended, with re-approval allowed.
type AccountUseCase interface {
	ListPending(limit, offset int) ([]*entity.Account, error)
	Approve(actor entity.CallContext, accountID string) (Outcome, error)
	Reject(actor entity.CallContext, accountID string) (Outcome, error)
	Suspend(actor entity.CallContext, accountID string) (Outcome, error)
	SetRole(actor entity.CallContext, accountID string, role entity.Role) error
	Delete(actor entity.CallContext, accountID string) error
}

type accountUseCase struct {
	accountRepo persistent.AccountRepository
	logger      *logger.Logger
}

func NewAccountUseCase(accountRepo persistent.AccountRepository, log *logger.Logger) AccountUseCase {
	return &accountUseCase{
		accountRepo: accountRepo,
		logger:      log,
	}
}

func (uc *accountUseCase) ListPending(limit, offset int) ([]*entity.Account, error) {
	return uc.accountRepo.ListByStatus(entity.AccountPending, limit, offset)
}

// Approve is idempotent: re-approving an approved account reports
// OutcomeAlreadyInState with no error.
func (uc *accountUseCase) Approve(actor entity.CallContext, accountID string) (Outcome, error) {
	return uc.transition(actor, accountID, func(a *entity.Account) bool { return a.Approve() })
}

func (uc *accountUseCase) Reject(actor entity.CallContext, accountID string) (Outcome, error) {
	return uc.transition(actor, accountID, func(a *entity.Account) bool { return a.Reject() })
}

func (uc *accountUseCase) Suspend(actor entity.CallContext, accountID string) (Outcome, error) {
	return uc.transition(actor, accountID, func(a *entity.Account) bool { return a.Suspend() })
}

func (uc *accountUseCase) transition(actor entity.CallContext, accountID string, apply func(*entity.Account) bool) (Outcome, error) {
	if !actor.Role.IsModerator() {
		return "", apperr.New(apperr.KindInsufficientRole, "insufficient role")
	}

	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return "", err
	}

	// Admins cannot change a super_admin account's lifecycle.
	if !actor.Role.Outranks(account.Role) {
		return "", apperr.New(apperr.KindInsufficientRole, "insufficient role")
	}

	if !apply(account) {
		return OutcomeAlreadyInState, nil
	}

	if err := uc.accountRepo.Update(account); err != nil {
		return "", err
	}
	uc.logger.Info("Account %s moved to %s by %s", account.ID, account.Status, actor.AccountID)
	return OutcomeApplied, nil
}

func (uc *accountUseCase) SetRole(actor entity.CallContext, accountID string, role entity.Role) error {
	if actor.Role != entity.RoleSuperAdmin {
		return apperr.New(apperr.KindInsufficientRole, "insufficient role")
	}
	if !role.Valid() {
		return apperr.New(apperr.KindValidation, "invalid role")
	}

	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return err
	}

	account.Role = role
	return uc.accountRepo.Update(account)
}

// Delete removes an account. Only super_admin may remove admin or
// super_admin accounts.
func (uc *accountUseCase) Delete(actor entity.CallContext, accountID string) error {
	if !actor.Role.IsModerator() {
		return apperr.New(apperr.KindInsufficientRole, "insufficient role")
	}

	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if account.Role.IsModerator() && actor.Role != entity.RoleSuperAdmin {
		return apperr.New(apperr.KindInsufficientRole, "insufficient role")
	}

	return uc.accountRepo.Delete(accountID)
}

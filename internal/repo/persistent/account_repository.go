package persistent

import (
	"errors"

	"gorm.io/gorm"

	"inkwell/internal/entity"
	"inkwell/internal/model"
	"inkwell/pkg/apperr"
)

type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByEmail(email string) (*entity.Account, error)
	GetByIdentifier(identifier string) (*entity.Account, error)
	Update(account *entity.Account) error
	Delete(id string) error
	ListByStatus(status entity.AccountStatus, limit, offset int) ([]*entity.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *entity.Account) error {
	accountModel := ToAccountModel(account)
	if err := r.db.Create(accountModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindConflict, "account already exists")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to create account", err)
	}
	*account = *ToAccountEntity(accountModel)
	return nil
}

func (r *accountRepository) GetByID(id string) (*entity.Account, error) {
	var accountModel model.AccountModel
	if err := r.db.Where("id = ?", id).First(&accountModel).Error; err != nil {
		return nil, notFoundOr(err, "account not found")
	}
	return ToAccountEntity(&accountModel), nil
}

func (r *accountRepository) GetByEmail(email string) (*entity.Account, error) {
	var accountModel model.AccountModel
	if err := r.db.Where("email = ?", email).First(&accountModel).Error; err != nil {
		return nil, notFoundOr(err, "account not found")
	}
	return ToAccountEntity(&accountModel), nil
}

// GetByIdentifier resolves an account by email, phone or username.
func (r *accountRepository) GetByIdentifier(identifier string) (*entity.Account, error) {
	var accountModel model.AccountModel
	err := r.db.
		Where("email = ?", identifier).
		Or("phone <> '' AND phone = ?", identifier).
		Or("username <> '' AND username = ?", identifier).
		First(&accountModel).Error
	if err != nil {
		return nil, notFoundOr(err, "account not found")
	}
	return ToAccountEntity(&accountModel), nil
}

func (r *accountRepository) Update(account *entity.Account) error {
	accountModel := ToAccountModel(account)
	if err := r.db.Save(accountModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindConflict, "account already exists")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to update account", err)
	}
	return nil
}

func (r *accountRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&model.AccountModel{})
	if res.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete account", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "account not found")
	}
	return nil
}

func (r *accountRepository) ListByStatus(status entity.AccountStatus, limit, offset int) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	query := r.db.Where("status = ?", string(status)).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&accountModels).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list accounts", err)
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = ToAccountEntity(&accountModels[i])
	}
	return accounts, nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.KindNotFound, msg)
	}
	return apperr.Wrap(apperr.KindInternal, "store read failed", err)
}

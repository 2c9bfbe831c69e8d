package usecase

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
	"inkwell/pkg/queue"
	"inkwell/pkg/s3"
	"inkwell/pkg/token"
)

type AuthUseCase interface {
	Register(email, username, phone, password string) (*entity.Account, error)
	VerifyEmail(email, code string) error
	Login(identifier, password string) (*entity.Account, string, string, error)
	Refresh(refreshToken string) (string, error)
	ForgotPassword(email string) error
	ResetPassword(email, code, newPassword string) error
	GetAccount(accountID string) (*entity.Account, error)
	UpdateProfile(accountID string, username, phone *string) (*entity.Account, error)
	UploadAvatar(accountID string, fileReader io.Reader, fileKey, contentType string) (*entity.Account, error)
}

type authUseCase struct {
	accountRepo persistent.AccountRepository
	tokens      *token.Service
	s3Client    *s3.Client
	queueClient *queue.Client
	logger      *logger.Logger
	bcryptCost  int
	verifyTTL   time.Duration
}

func NewAuthUseCase(
	accountRepo persistent.AccountRepository,
	tokens *token.Service,
	s3Client *s3.Client,
	queueClient *queue.Client,
	log *logger.Logger,
	bcryptCost int,
	verifyTTL time.Duration,
) AuthUseCase {
	return &authUseCase{
		accountRepo: accountRepo,
		tokens:      tokens,
		s3Client:    s3Client,
		queueClient: queueClient,
		logger:      log,
		bcryptCost:  bcryptCost,
		verifyTTL:   verifyTTL,
	}
}

// Register creates a pending account and dispatches a one-time code to its
// email. The HTTP layer replies with the same message whether or not the
// email was free; the Conflict error here is for internal use and tests.
func (uc *authUseCase) Register(email, username, phone, password string) (*entity.Account, error) {
	if email == "" && phone == "" {
		return nil, apperr.New(apperr.KindValidation, "email or phone is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	code, err := generateVerifyCode()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to generate code", err)
	}

	account := &entity.Account{
		Email:        email,
		Username:     username,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		Status:       entity.AccountPending,
	}
	account.SetVerifyCode(code, time.Now().Add(uc.verifyTTL))

	if err := uc.accountRepo.Create(account); err != nil {
		return nil, err
	}

	uc.dispatchCode(account.Email, code, "verify")
	return account, nil
}

// VerifyEmail approves the account when the submitted code matches an
// unexpired one. The code is single-use either way the check goes wrong.
func (uc *authUseCase) VerifyEmail(email, code string) error {
	account, err := uc.accountRepo.GetByEmail(email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return apperr.New(apperr.KindValidation, "invalid or expired code")
		}
		return err
	}

	if !account.VerifyCodeMatches(code, time.Now()) {
		return apperr.New(apperr.KindValidation, "invalid or expired code")
	}

	account.Approve()
	return uc.accountRepo.Update(account)
}

// Login authenticates an approved account. Unknown identity, wrong password
// and blocked lifecycle status all produce the same error so callers cannot
// probe which accounts exist; the real reason goes to the server log only.
func (uc *authUseCase) Login(identifier, password string) (*entity.Account, string, string, error) {
	invalid := apperr.New(apperr.KindUnauthenticated, "invalid credentials")

	account, err := uc.accountRepo.GetByIdentifier(identifier)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, "", "", invalid
		}
		return nil, "", "", err
	}

	if account.PasswordHash == "" {
		return nil, "", "", invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", invalid
	}

	if !account.CanAuthenticate() {
		uc.logger.Warn("Login blocked for account %s with status %s", account.ID, account.Status)
		return nil, "", "", invalid
	}

	access, err := uc.tokens.IssueAccessToken(account.ID, string(account.Role))
	if err != nil {
		return nil, "", "", apperr.Wrap(apperr.KindInternal, "failed to issue token", err)
	}
	refresh, err := uc.tokens.IssueRefreshToken(account.ID)
	if err != nil {
		return nil, "", "", apperr.Wrap(apperr.KindInternal, "failed to issue token", err)
	}

	return account, access, refresh, nil
}

// Refresh trades a valid refresh token for a new access token. The account
// must still be approved at refresh time.
func (uc *authUseCase) Refresh(refreshToken string) (string, error) {
	claims, err := uc.tokens.Verify(refreshToken, token.AudienceRefresh)
	if err != nil {
		return "", err
	}

	account, err := uc.accountRepo.GetByID(claims.AccountID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return "", apperr.New(apperr.KindUnauthenticated, "invalid token")
		}
		return "", err
	}
	if !account.CanAuthenticate() {
		return "", apperr.New(apperr.KindNotApproved, "account is not approved")
	}

	return uc.tokens.IssueAccessToken(account.ID, string(account.Role))
}

// ForgotPassword arms a reset code when the account exists. It reports
// success either way; the distinction would be an enumeration oracle.
func (uc *authUseCase) ForgotPassword(email string) error {
	account, err := uc.accountRepo.GetByEmail(email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	code, err := generateVerifyCode()
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to generate code", err)
	}

	account.SetVerifyCode(code, time.Now().Add(uc.verifyTTL))
	if err := uc.accountRepo.Update(account); err != nil {
		return err
	}

	uc.dispatchCode(account.Email, code, "reset")
	return nil
}

func (uc *authUseCase) ResetPassword(email, code, newPassword string) error {
	account, err := uc.accountRepo.GetByEmail(email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return apperr.New(apperr.KindValidation, "invalid or expired code")
		}
		return err
	}

	if !account.VerifyCodeMatches(code, time.Now()) {
		return apperr.New(apperr.KindValidation, "invalid or expired code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), uc.bcryptCost)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	account.PasswordHash = string(hash)
	account.ClearVerifyCode()
	return uc.accountRepo.Update(account)
}

func (uc *authUseCase) GetAccount(accountID string) (*entity.Account, error) {
	return uc.accountRepo.GetByID(accountID)
}

func (uc *authUseCase) UpdateProfile(accountID string, username, phone *string) (*entity.Account, error) {
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	if username != nil {
		account.Username = *username
	}
	if phone != nil {
		account.Phone = *phone
	}

	if err := uc.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (uc *authUseCase) UploadAvatar(accountID string, fileReader io.Reader, fileKey, contentType string) (*entity.Account, error) {
	avatarURL, err := uc.s3Client.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to upload avatar", err)
	}

	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	account.AvatarURL = avatarURL
	if err := uc.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (uc *authUseCase) dispatchCode(email, code, purpose string) {
	if uc.queueClient == nil {
		return
	}
	go func() {
		task := map[string]interface{}{
			"type":  purpose,
			"email": email,
			"code":  code,
		}
		if err := uc.queueClient.PublishMailTask(task); err != nil {
			uc.logger.Error("Failed to publish %s mail task: %v", purpose, err)
		}
	}()
}

func generateVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

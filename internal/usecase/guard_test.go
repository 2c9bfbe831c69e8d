package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"inkwell/internal/entity"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
	"inkwell/pkg/token"
)

func newGuardFixture(t *testing.T) (*fakeAccountRepo, *token.Service, *Guard) {
	t.Helper()
	repo := newFakeAccountRepo()
	tokens := token.NewService("test-secret", time.Hour, 24*time.Hour)
	return repo, tokens, NewGuard(tokens, repo, logger.New())
}

func TestAuthorize_ApprovedAccount(t *testing.T) {
	repo, tokens, guard := newGuardFixture(t)
	account := seedAccount(t, repo, "user@test.dev", entity.RoleUser, entity.AccountApproved)

	access, err := tokens.IssueAccessToken(account.ID, string(account.Role))
	assert.NoError(t, err)

	cc, err := guard.Authorize("Bearer " + access)

	assert.NoError(t, err)
	assert.Equal(t, account.ID, cc.AccountID)
	assert.Equal(t, entity.RoleUser, cc.Role)
}

func TestAuthorize_MalformedHeader(t *testing.T) {
	_, _, guard := newGuardFixture(t)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "token-without-scheme"} {
		_, err := guard.Authorize(header)
		assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated), "header %q", header)
	}
}

func TestAuthorize_RefreshTokenRejected(t *testing.T) {
	repo, tokens, guard := newGuardFixture(t)
	account := seedAccount(t, repo, "user@test.dev", entity.RoleUser, entity.AccountApproved)

	refresh, err := tokens.IssueRefreshToken(account.ID)
	assert.NoError(t, err)

	_, err = guard.Authorize("Bearer " + refresh)

	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}

func TestAuthorize_DeletedAccount(t *testing.T) {
	repo, tokens, guard := newGuardFixture(t)
	account := seedAccount(t, repo, "user@test.dev", entity.RoleUser, entity.AccountApproved)

	access, err := tokens.IssueAccessToken(account.ID, string(account.Role))
	assert.NoError(t, err)
	assert.NoError(t, repo.Delete(account.ID))

	_, err = guard.Authorize("Bearer " + access)

	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}

func TestAuthorize_NonApprovedStatusBlocked(t *testing.T) {
	repo, tokens, guard := newGuardFixture(t)

	for _, status := range []entity.AccountStatus{entity.AccountPending, entity.AccountRejected, entity.AccountSuspended} {
		account := seedAccount(t, repo, string(status)+"@test.dev", entity.RoleUser, status)
		access, err := tokens.IssueAccessToken(account.ID, string(account.Role))
		assert.NoError(t, err)

		_, err = guard.Authorize("Bearer " + access)
		assert.True(t, apperr.IsKind(err, apperr.KindNotApproved), "status %s", status)
	}
}

func TestAuthorize_StoredRoleWinsOverTokenRole(t *testing.T) {
	repo, tokens, guard := newGuardFixture(t)
	account := seedAccount(t, repo, "user@test.dev", entity.RoleAdmin, entity.AccountApproved)

	// Token minted while the account was still a plain user.
	access, err := tokens.IssueAccessToken(account.ID, string(entity.RoleUser))
	assert.NoError(t, err)

	cc, err := guard.Authorize("Bearer " + access)

	assert.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, cc.Role)
}

func TestRequireRole(t *testing.T) {
	repo, tokens, guard := newGuardFixture(t)
	account := seedAccount(t, repo, "user@test.dev", entity.RoleUser, entity.AccountApproved)

	access, err := tokens.IssueAccessToken(account.ID, string(account.Role))
	assert.NoError(t, err)

	_, err = guard.RequireRole("Bearer "+access, entity.RoleAdmin, entity.RoleSuperAdmin)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientRole))

	cc, err := guard.RequireRole("Bearer "+access, entity.RoleUser)
	assert.NoError(t, err)
	assert.Equal(t, account.ID, cc.AccountID)
}

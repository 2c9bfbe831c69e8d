package usecase

import (
	"strings"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/logger"
	"inkwell/pkg/token"
)

// Guard resolves a bearer token into a CallContext. It is a pure gate: it
// reads the credential store and never mutates anything.
type Guard struct {
	tokens      *token.Service
	accountRepo persistent.AccountRepository
	logger      *logger.Logger
}

func NewGuard(tokens *token.Service, accountRepo persistent.AccountRepository, log *logger.Logger) *Guard {
	return &Guard{
		tokens:      tokens,
		accountRepo: accountRepo,
		logger:      log,
	}
}

// Authorize verifies the Authorization header value and loads the account
// behind it. The account must exist and be approved; the role in the token
// is ignored in favor of the stored one, so a role change takes effect
// without waiting out old tokens.
func (g *Guard) Authorize(header string) (entity.CallContext, error) {
	bearer, ok := extractBearer(header)
	if !ok {
		return entity.CallContext{}, apperr.New(apperr.KindUnauthenticated, "missing or malformed authorization header")
	}

	claims, err := g.tokens.Verify(bearer, token.AudienceAccess)
	if err != nil {
		return entity.CallContext{}, err
	}

	account, err := g.accountRepo.GetByID(claims.AccountID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return entity.CallContext{}, apperr.New(apperr.KindUnauthenticated, "account not found")
		}
		return entity.CallContext{}, err
	}

	if account.Status != entity.AccountApproved {
		g.logger.Warn("Blocked request from %s account %s", account.Status, account.ID)
		return entity.CallContext{}, apperr.New(apperr.KindNotApproved, "account is not approved")
	}

	return entity.CallContext{
		AccountID: account.ID,
		Role:      account.Role,
		Status:    account.Status,
	}, nil
}

// RequireRole layers a role check on top of Authorize.
func (g *Guard) RequireRole(header string, allowed ...entity.Role) (entity.CallContext, error) {
	cc, err := g.Authorize(header)
	if err != nil {
		return entity.CallContext{}, err
	}
	for _, role := range allowed {
		if cc.Role == role {
			return cc, nil
		}
	}
	return entity.CallContext{}, apperr.New(apperr.KindInsufficientRole, "insufficient role")
}

func extractBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.HasPrefix(header, prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

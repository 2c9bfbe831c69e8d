package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inkwell/pkg/apperr"
)

const (
	Issuer = "inkwell"

	// Audience tags keep access and refresh tokens from standing in for
	// each other.
	AudienceAccess  = "access"
	AudienceRefresh = "refresh"
)

type Claims struct {
	AccountID string `json:"account_id"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(secretKey string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secretKey:  []byte(secretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) IssueAccessToken(accountID, role string) (string, error) {
	return s.issue(accountID, role, AudienceAccess, s.accessTTL)
}

func (s *Service) IssueRefreshToken(accountID string) (string, error) {
	return s.issue(accountID, "", AudienceRefresh, s.refreshTTL)
}

func (s *Service) issue(accountID, role, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Verify parses token and checks signature, issuer, audience and expiry.
// Every expected failure comes back as an Unauthenticated error.
func (s *Service) Verify(tokenString, expectedAudience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(expectedAudience),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthenticated, "invalid token", err)
	}
	if !token.Valid {
		return nil, apperr.New(apperr.KindUnauthenticated, "invalid token")
	}
	return claims, nil
}

package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
)

// authClaims carries the role alongside the standard registered claims.
type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// tokenService signs and verifies HS256 JWTs. The secret and validity
// windows are fixed at construction; there is no ambient global state.
type tokenService struct {
	secret     []byte
	issuer     string
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewTokenService creates a token service with the given signing secret,
// issuer and validity windows.
func NewTokenService(secret string, issuer string, sessionTTL, resetTTL time.Duration) portssvc.TokenSvcFacade {
	return &tokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// IssueToken produces a signed session token binding subject id and role.
func (s *tokenService) IssueToken(userID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := authClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// IssueResetToken produces a short-lived password reset token. It carries no
// role claim, so it cannot pass session verification.
func (s *tokenService) IssueResetToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken validates a session token and extracts the principal.
// Malformed, forged and expired tokens all surface as ErrUnauthenticated.
func (s *tokenService) VerifyToken(tokenString string) (*domain.Principal, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: token is not valid", apperrors.ErrUnauthenticated)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: subject missing from token", apperrors.ErrUnauthenticated)
	}
	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role in token", apperrors.ErrUnauthenticated)
	}

	return &domain.Principal{UserID: claims.Subject, Role: role}, nil
}

// VerifyResetToken validates a reset token and returns its subject id.
func (s *tokenService) VerifyResetToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: invalid reset token", apperrors.ErrUnauthenticated)
	}
	return claims.Subject, nil
}

func (s *tokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}
	return s.secret, nil
}

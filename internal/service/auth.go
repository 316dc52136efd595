package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/ownitpro/omgsystems/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidAccessCode = errors.New("Invalid access code")
	ErrInvalidToken      = errors.New("invalid portal token")
)

type portalClaims struct {
	ClientName  string `json:"clientName,omitempty"`
	ClientEmail string `json:"clientEmail,omitempty"`
	jwt.RegisteredClaims
}

// PortalAuthService exchanges a portal access code for a signed session
// token and validates tokens on later requests.
type PortalAuthService struct {
	portalRepo repository.PortalRepository
	secret     []byte
	expiry     time.Duration
}

func NewPortalAuthService(portalRepo repository.PortalRepository, secret string, expiry time.Duration) *PortalAuthService {
	return &PortalAuthService{
		portalRepo: portalRepo,
		secret:     []byte(secret),
		expiry:     expiry,
	}
}

// HashAccessCode produces the bcrypt hash stored on the portal record.
func HashAccessCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash access code: %w", err)
	}
	return string(hash), nil
}

// Authenticate verifies the access code against the portal's stored hash and
// returns a signed session token. An unknown portal and a wrong code are
// indistinguishable to the caller.
func (s *PortalAuthService) Authenticate(portalID, accessCode string) (string, error) {
	portal, err := s.portalRepo.ByID(portalID)
	if errors.Is(err, repository.ErrPortalNotFound) {
		return "", ErrInvalidAccessCode
	}
	if err != nil {
		return "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(portal.AccessCodeHash), []byte(accessCode))
	if err != nil {
		return "", ErrInvalidAccessCode
	}

	now := time.Now()
	claims := portalClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   portal.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	if portal.ClientName != nil {
		claims.ClientName = *portal.ClientName
	}
	if portal.ClientEmail != nil {
		claims.ClientEmail = *portal.ClientEmail
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign portal token: %w", err)
	}

	return signed, nil
}

// ParseToken validates a session token and returns the portal session it
// carries.
func (s *PortalAuthService) ParseToken(tokenString string) (*model.PortalSession, error) {
	claims := &portalClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &model.PortalSession{
		PortalID:    claims.Subject,
		ClientName:  claims.ClientName,
		ClientEmail: claims.ClientEmail,
	}, nil
}

package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	RoleOwner      = "owner"
	RoleSuperadmin = "superadmin"
)

// Claims represents JWT claims. Owner tokens carry the establishment and the
// server side session; superadmin tokens only carry the username as subject.
type Claims struct {
	EstablishmentID int64  `json:"establishmentId,omitempty"`
	Slug            string `json:"slug,omitempty"`
	SessionID       string `json:"sid,omitempty"`
	Role            string `json:"role"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token with its expiry
type IssuedToken struct {
	AccessToken string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// JWTService handles JWT operations
type JWTService struct {
	secret           []byte
	ownerExpiry      time.Duration
	superadminExpiry time.Duration
}

var (
	signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
		return token.SignedString(secret)
	}
	now = time.Now
)

// NewJWTService creates a new JWT service
func NewJWTService(secret string, ownerExpiry, superadminExpiry time.Duration) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		ownerExpiry:      ownerExpiry,
		superadminExpiry: superadminExpiry,
	}
}

// OwnerExpiry is the lifetime of owner tokens and their sessions
func (s *JWTService) OwnerExpiry() time.Duration {
	return s.ownerExpiry
}

// GenerateOwnerToken issues a token for an establishment owner bound to a session
func (s *JWTService) GenerateOwnerToken(establishmentID int64, slug, sessionID string) (*IssuedToken, error) {
	claims := &Claims{
		EstablishmentID: establishmentID,
		Slug:            slug,
		SessionID:       sessionID,
		Role:            RoleOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(establishmentID, 10),
		},
	}
	return s.sign(claims, s.ownerExpiry)
}

// GenerateSuperadminToken issues a console token for the platform operator
func (s *JWTService) GenerateSuperadminToken(username string) (*IssuedToken, error) {
	claims := &Claims{
		Role: RoleSuperadmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: username,
		},
	}
	return s.sign(claims, s.superadminExpiry)
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *JWTService) sign(claims *Claims, expiry time.Duration) (*IssuedToken, error) {
	issuedAt := now()
	expiresAt := issuedAt.Add(expiry)
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	claims.IssuedAt = jwt.NewNumericDate(issuedAt)
	claims.NotBefore = jwt.NewNumericDate(issuedAt.Add(-time.Second))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := signJWTToken(token, s.secret)
	if err != nil {
		return nil, err
	}
	return &IssuedToken{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

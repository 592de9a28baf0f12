package token

import (
	"errors"
	"time"

	usecase "shopfolders/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and validates JWT tokens.
type JWTManager struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTManager constructs a manager with the provided secret and expiration.
func NewJWTManager(secret string, expiration time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		expiration: expiration,
		issuer:     issuer,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

// Claims represents token claims.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Generate creates a signed JWT carrying the user id as both subject and the
// uid claim.
func (m *JWTManager) Generate(userID string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and validates the token returning the user id when valid.
// Signing algorithm and issuer are enforced by the parser, not by the claims.
func (m *JWTManager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.UserID != "" {
		return claims.UserID, nil
	}
	return claims.Subject, nil
}

func (m *JWTManager) keyFunc(*jwt.Token) (any, error) {
	return m.secret, nil
}

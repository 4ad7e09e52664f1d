package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-stockledger/pkg/config"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Claims represents the JWT claims structure shared by access and refresh tokens.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates the session token pair. Access and refresh
// tokens are signed with separate secrets so one cannot stand in for the other.
type TokenManager struct {
	cfg config.JWTConfig
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{cfg: cfg}
}

// GenerateAccessToken creates the short-lived session token.
func (m *TokenManager) GenerateAccessToken(userID uuid.UUID, username, email string) (string, error) {
	return m.generate(userID, username, email, m.cfg.AccessTTL, m.cfg.Secret)
}

// GenerateRefreshToken creates the longer-lived refresh token and reports its expiry.
func (m *TokenManager) GenerateRefreshToken(userID uuid.UUID, username, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.cfg.RefreshTTL)
	token, err := m.generate(userID, username, email, m.cfg.RefreshTTL, m.cfg.RefreshSecret)
	return token, expiresAt, err
}

func (m *TokenManager) generate(userID uuid.UUID, username, email string, ttl time.Duration, secret string) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    m.cfg.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken parses and validates a session token.
func (m *TokenManager) ValidateAccessToken(tokenString string) (*Claims, error) {
	return m.validate(tokenString, m.cfg.Secret)
}

// ValidateRefreshToken parses and validates a refresh token.
func (m *TokenManager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return m.validate(tokenString, m.cfg.RefreshSecret)
}

func (m *TokenManager) validate(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

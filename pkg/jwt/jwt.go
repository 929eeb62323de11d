package jwt

import (
	"errors"
	"time"

	"medisafe/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// superAdminSubject replaces the user id in token store keys of the configured super admin
const superAdminSubject = "superadmin"

// Subject identifies who a token is issued to
type Subject struct {
	UserID     uuid.UUID
	Username   string
	Email      string
	Role       string
	SuperAdmin bool
}

type Claims struct {
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	SuperAdmin bool      `json:"super_admin,omitempty"`
	TokenType  TokenType `json:"token_type"`
	TokenID    string    `json:"token_id"`
	jwt.RegisteredClaims
}

// TokenSubject rebuilds the token subject from the claims
func (c *Claims) TokenSubject() Subject {
	return Subject{
		UserID:     c.UserID,
		Username:   c.Username,
		Email:      c.Email,
		Role:       c.Role,
		SuperAdmin: c.SuperAdmin,
	}
}

// StoreKey is the token store key of this token, e.g. access_token:<user id>:<token id>
func (c *Claims) StoreKey() string {
	return StoreKey(c.TokenType, c.TokenSubject(), c.TokenID)
}

// StoreKey builds the key under which a live token id is kept
func StoreKey(tokenType TokenType, subject Subject, tokenID string) string {
	owner := subject.UserID.String()
	if subject.SuperAdmin {
		owner = superAdminSubject
	}
	return string(tokenType) + "_token:" + owner + ":" + tokenID
}

type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

func (s *JWTService) GenerateAccessToken(subject Subject) (string, string, error) {
	return s.generate(subject, AccessToken, s.config.AccessExpiry)
}

func (s *JWTService) GenerateRefreshToken(subject Subject) (string, string, error) {
	return s.generate(subject, RefreshToken, s.config.RefreshExpiry)
}

func (s *JWTService) generate(subject Subject, tokenType TokenType, expiry time.Duration) (string, string, error) {
	tokenID := uuid.New().String()
	now := time.Now()
	claims := Claims{
		UserID:     subject.UserID,
		Username:   subject.Username,
		Email:      subject.Email,
		Role:       subject.Role,
		SuperAdmin: subject.SuperAdmin,
		TokenType:  tokenType,
		TokenID:    tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}

func (s *JWTService) GetRefreshExpiry() time.Duration {
	return s.config.RefreshExpiry
}

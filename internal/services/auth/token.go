package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/edulinkhq/enroll-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenCodec signs and verifies both token classes. Access and refresh tokens
// use independent secrets, algorithms and TTLs: a leaked access secret never
// compromises refresh tokens and vice versa.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

func NewTokenCodec(cfg Config) *TokenCodec {
	return &TokenCodec{
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
	}
}

// AccessTTL returns the configured access token lifetime
func (c *TokenCodec) AccessTTL() time.Duration {
	return c.accessTTL
}

// IssueAccess mints a stateless HS256 access token for the given user
func (c *TokenCodec) IssueAccess(userID string) (string, error) {
	now := time.Now()
	claims := &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.accessSecret)
}

// IssueRefresh mints an HS512 refresh token carrying a fresh jti, which is
// the join key to the server-side RefreshToken record.
func (c *TokenCodec) IssueRefresh(userID string) (token, tokenID string, expiresAt time.Time, err error) {
	now := time.Now()
	tokenID = uuid.NewString()
	expiresAt = now.Add(c.refreshTTL)
	claims := &models.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.refreshSecret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return token, tokenID, expiresAt, nil
}

// DecodeAccess verifies an access token's signature and expiry
func (c *TokenCodec) DecodeAccess(tokenString string) (*models.AccessClaims, error) {
	claims := &models.AccessClaims{}
	if err := c.decode(tokenString, claims, c.accessSecret, jwt.SigningMethodHS256.Alg()); err != nil {
		return nil, err
	}
	return claims, nil
}

// DecodeRefresh verifies a refresh token's signature and expiry
func (c *TokenCodec) DecodeRefresh(tokenString string) (*models.RefreshClaims, error) {
	claims := &models.RefreshClaims{}
	if err := c.decode(tokenString, claims, c.refreshSecret, jwt.SigningMethodHS512.Alg()); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *TokenCodec) decode(tokenString string, claims jwt.Claims, secret []byte, alg string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != alg {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token claims")
	}
	return nil
}

// HashToken returns the SHA-256 hex digest stored in place of a raw token
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

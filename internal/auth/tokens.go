// Package auth issues and verifies the signed access and refresh tokens used
// to authorize API requests. Verification is a pure function of the signed
// payload and the current time; no server-side session state exists.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"quill/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer    = "quill-api"
	audience  = "quill-client"
	accessTTL = 15 * time.Minute
)

// Claims is the identity payload carried by both token kinds. Nothing in it
// is secret.
type Claims struct {
	UserID   uint
	Email    string
	Username string
}

// TokenManager signs and verifies HS256 tokens.
type TokenManager struct {
	secret []byte

	// TTLs are fields so tests can shrink them; production code uses the
	// values set by NewTokenManager.
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewTokenManager creates a manager with a fixed 15-minute access lifetime and
// the configured refresh lifetime.
func NewTokenManager(secret string, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

// IssueTokens signs an access and a refresh token from the same identity
// payload.
func (m *TokenManager) IssueTokens(user *models.User) (access, refresh string, err error) {
	access, err = m.sign(user, m.AccessTTL, false)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.sign(user, m.RefreshTTL, true)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// IssueAccessToken signs a new access token only; used by the refresh flow,
// which does not rotate refresh tokens.
func (m *TokenManager) IssueAccessToken(user *models.User) (string, error) {
	return m.sign(user, m.AccessTTL, false)
}

func (m *TokenManager) sign(user *models.User, ttl time.Duration, isRefresh bool) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"email":    user.Email,
		"username": user.Username,
		"iss":      issuer,
		"aud":      audience,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(),
	}
	if isRefresh {
		claims["typ"] = "refresh"
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// VerifyAccess validates an access token and returns its identity claims.
func (m *TokenManager) VerifyAccess(tokenString string) (*Claims, error) {
	claims, typ, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if typ == "refresh" {
		return nil, fmt.Errorf("refresh token presented as access token")
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token and returns its identity claims.
func (m *TokenManager) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, typ, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if typ != "refresh" {
		return nil, fmt.Errorf("not a refresh token")
	}
	return claims, nil
}

func (m *TokenManager) parse(tokenString string) (*Claims, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		if err == nil {
			err = fmt.Errorf("invalid token")
		}
		return nil, "", err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "", fmt.Errorf("invalid token claims")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, "", fmt.Errorf("missing subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, "", fmt.Errorf("invalid user ID in token: %w", err)
	}

	claims := &Claims{UserID: uint(userID)}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}

	typ, _ := mapClaims["typ"].(string)
	return claims, typ, nil
}

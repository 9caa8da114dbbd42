package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the "role" claim.
const (
	RoleDeliveryDriver = "DELIVERY_DRIVER"
	RoleChef           = "CHEF"
	RoleHeadChef       = "HEAD_CHEF"
)

var ErrInvalidToken = errors.New("invalid token")

// ValidRole reports whether role is one of the kitchen roles.
func ValidRole(role string) bool {
	switch role {
	case RoleDeliveryDriver, RoleChef, RoleHeadChef:
		return true
	}
	return false
}

// Claims is the token payload. The subject is the actor id recorded on ledger
// changes and order dispatches.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and validates HMAC tokens.
type Manager struct {
	secret   []byte
	validity time.Duration
}

func NewManager(secret string, validity time.Duration) *Manager {
	if validity <= 0 {
		validity = time.Hour
	}
	return &Manager{secret: []byte(secret), validity: validity}
}

// GenerateToken issues a token for subject with the given role.
func (m *Manager) GenerateToken(subject, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

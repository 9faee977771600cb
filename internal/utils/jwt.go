package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens are valid for 30 days, matching the dashboard session policy.
const tokenTTL = 30 * 24 * time.Hour

var jwtSecret []byte

// SetJWTSecret configures the signing secret. Must be called once at startup
// before any token is generated or validated.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// Claims are the JWT claims carried by dashboard session tokens.
type Claims struct {
	UserID     int64  `json:"id"`
	CustomerID string `json:"customerId"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a signed session token for a customer account.
func GenerateJWT(userID int64, customerID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:     userID,
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateJWT parses and verifies a session token and returns its claims.
func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

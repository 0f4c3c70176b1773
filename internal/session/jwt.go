// Package session issues and validates the signed cookie that identifies a
// logged-in carrier. The cookie never carries the upstream bearer token;
// that lives in the session store keyed by the JTI, so logout revokes it in
// one place.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/uniewms/carrierboard/internal/freight"
)

// Claims are the JWT claims in the session cookie.
type Claims struct {
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	WarehouseCode string `json:"warehouse_code,omitempty"`
	CarrierID     string `json:"carrier_id,omitempty"`
	IsSubUser     bool   `json:"is_sub_user,omitempty"`
	jwt.RegisteredClaims
}

// DefaultTTL is the default session lifetime.
const DefaultTTL = 24 * time.Hour

// GenerateToken creates a session JWT for a logged-in carrier with a unique
// JTI. The JTI is returned alongside so the caller can key the session row.
func GenerateToken(secret string, user freight.User, ttl time.Duration) (token, jti string, err error) {
	jti, err = generateJTI()
	if err != nil {
		return "", "", fmt.Errorf("generating JTI: %w", err)
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}

	claims := Claims{
		Email:         user.Email,
		Name:          user.Name,
		WarehouseCode: user.WarehouseCode,
		CarrierID:     user.FreightCarrierID,
		IsSubUser:     user.IsSubUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("signing token: %w", err)
	}
	return signed, jti, nil
}

// ValidateToken parses and validates a session JWT, returning the claims.
func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// generateJTI creates a random token ID.
func generateJTI() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer tag stamped into every token.
const Issuer = "loanconv"

// MinKeyBytes is the minimum HMAC-SHA256 key length (RFC 7518 §3.2).
const MinKeyBytes = 32

var (
	ErrKeyTooShort  = errors.New("signing key is shorter than the HS256 minimum")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims is the signed claim set. Scope carries the caller's role and
// permission names as a single space-separated string.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Generate signs a new token for the given subject. The jti is a fresh
// UUID so each token can be revoked individually.
func Generate(email, scope, signerKey string, accessSeconds int) (string, error) {
	if len(signerKey) < MinKeyBytes {
		return "", ErrKeyTooShort
	}

	now := time.Now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(accessSeconds) * time.Second)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(signerKey))
}

// Verify checks the token's signature and its effective expiration.
//
// In the refresh window (refreshWindow=true) the expiration is recomputed
// as issueTime + refreshSeconds instead of the token's own exp claim, so a
// short-lived access token stays eligible for refresh and logout after its
// stated expiry. Revocation is checked by the caller against the jti.
func Verify(tokenString, signerKey string, refreshWindow bool, refreshSeconds int) (*Claims, error) {
	if len(signerKey) < MinKeyBytes {
		return nil, ErrKeyTooShort
	}

	// Expiration is validated below against the effective window, so the
	// parser must not reject on the exp claim itself.
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(signerKey), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil || claims.ID == "" {
		return nil, ErrTokenInvalid
	}

	expiresAt := claims.ExpiresAt.Time
	if refreshWindow {
		expiresAt = claims.IssuedAt.Time.Add(time.Duration(refreshSeconds) * time.Second)
	}
	if !expiresAt.After(time.Now()) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

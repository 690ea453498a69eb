package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, malformed input, expiry.
var ErrInvalidToken = errors.New("invalid token")

const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type Claims struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies the two token kinds. They are structurally
// identical; only the secret and lifetime differ.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     AccessTokenTTL,
		refreshTTL:    RefreshTokenTTL,
	}
}

func (i *Issuer) IssueAccessToken(email, userID string) (string, error) {
	return i.sign(email, userID, i.accessSecret, i.accessTTL)
}

func (i *Issuer) IssueRefreshToken(email, userID string) (string, error) {
	return i.sign(email, userID, i.refreshSecret, i.refreshTTL)
}

// IssuePair mints a matching access/refresh token pair for the same identity.
func (i *Issuer) IssuePair(email, userID string) (access string, refresh string, err error) {
	access, err = i.IssueAccessToken(email, userID)
	if err != nil {
		return "", "", err
	}

	refresh, err = i.IssueRefreshToken(email, userID)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func (i *Issuer) VerifyAccessToken(tokenStr string) (*Claims, error) {
	return i.parseAndValidate(tokenStr, i.accessSecret)
}

func (i *Issuer) VerifyRefreshToken(tokenStr string) (*Claims, error) {
	return i.parseAndValidate(tokenStr, i.refreshSecret)
}

// Renew verifies a refresh token and re-issues both tokens carrying the
// same identity claims. Tokens are self-contained: no store lookup happens
// here, a renewed pair is valid even if the user row is gone.
func (i *Issuer) Renew(refreshToken string) (access string, refresh string, err error) {
	claims, err := i.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", "", err
	}

	return i.IssuePair(claims.Email, claims.UserID)
}

func (i *Issuer) sign(email, userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (i *Issuer) parseAndValidate(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256
		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

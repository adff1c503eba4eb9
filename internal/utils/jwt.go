package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/postboard/api/internal/config"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims is the payload of both token kinds. Subject holds the user id and,
// for refresh tokens, ID holds the token id tracked in the database.
type Claims struct {
	Kind TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string { return c.Subject }

// Signer mints and parses HS256 tokens. Access and refresh tokens use
// separate secrets.
type Signer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

func NewSigner(cfg *config.JWTConfig) *Signer {
	return &Signer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessExpire,
		refreshTTL:    cfg.RefreshExpire,
		issuer:        cfg.Issuer,
		now:           time.Now,
	}
}

// SetClock replaces the time source used for issuing and validating tokens.
func (s *Signer) SetClock(now func() time.Time) {
	s.now = now
}

// SignAccess returns an access token for userID and its expiry.
func (s *Signer) SignAccess(userID string) (string, time.Time, error) {
	return s.sign(KindAccess, userID, "", s.accessTTL, s.accessSecret)
}

// SignRefresh returns a refresh token carrying tokenID as its jti.
func (s *Signer) SignRefresh(userID, tokenID string) (string, time.Time, error) {
	return s.sign(KindRefresh, userID, tokenID, s.refreshTTL, s.refreshSecret)
}

func (s *Signer) sign(kind TokenKind, userID, tokenID string, ttl time.Duration, secret []byte) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *Signer) ParseAccess(tokenString string) (*Claims, error) {
	return s.parse(tokenString, KindAccess, s.accessSecret)
}

// ParseRefresh validates signature, expiry and kind. It does not consult the
// active token set.
func (s *Signer) ParseRefresh(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString, KindRefresh, s.refreshSecret)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *Signer) parse(tokenString string, kind TokenKind, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Kind != kind || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

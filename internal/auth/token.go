package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dom/members-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)

// Claims is the signed payload of a session token.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Subject is what a verified token tells us about its bearer.
type Subject struct {
	ID   uuid.UUID
	Role domain.Role
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for issuing and verifying.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// TTL is the lifetime baked into every issued token.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) Issue(subject Subject) (string, error) {
	now := s.now()
	claims := Claims{
		Role: subject.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and decodes the subject. Every failure
// is either ErrExpiredToken or ErrMalformedToken.
func (s *TokenService) Verify(tokenString string) (Subject, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Subject{}, ErrExpiredToken
		}
		return Subject{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Subject{}, fmt.Errorf("%w: bad subject", ErrMalformedToken)
	}
	if !claims.Role.IsValid() {
		return Subject{}, fmt.Errorf("%w: bad role", ErrMalformedToken)
	}

	return Subject{ID: id, Role: claims.Role}, nil
}

package auth

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"lms/internal/errors"
	"lms/internal/model"
)

// AccessTokenExpiry is the duration for which access tokens are valid.
const AccessTokenExpiry = 30 * time.Minute

// Claims represents JWT claims. Subject carries the username; Role is
// embedded so handlers can gate without a DB round-trip when they only
// need the role.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed bearer tokens. Tokens are
// stateless: nothing is persisted at issuance and verification is a pure
// function of the token, the secret, and the clock.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

// Generate issues an access token for the user with a fixed TTL.
func (s *JWTService) Generate(user *model.User) (string, error) {
	return s.GenerateWithTTL(user, AccessTokenExpiry)
}

// GenerateWithTTL issues an access token expiring ttl from now.
func (s *JWTService) GenerateWithTTL(user *model.User, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// Expired tokens map to errors.ErrTokenExpired; anything else that fails
// to parse or verify maps to errors.ErrTokenInvalid.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithTimeFunc(s.now))
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.ErrTokenInvalid
	}

	return claims, nil
}

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lms/internal/errors"
	"lms/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     model.RoleUser,
	}
}

func TestJWTService_GenerateVerify(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Generate(testUser())
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_Expired(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewJWTService("test-secret").WithClock(func() time.Time { return issued })

	token, err := svc.GenerateWithTTL(testUser(), 30*time.Minute)
	assert.NoError(t, err)

	// still valid just before expiry
	svc.WithClock(func() time.Time { return issued.Add(29 * time.Minute) })
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	svc.WithClock(func() time.Time { return issued.Add(31 * time.Minute) })
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, errors.ErrTokenExpired)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Generate(testUser())
	assert.NoError(t, err)

	// mutate one character of the payload segment
	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[3] == 'A' {
		payload[3] = 'B'
	} else {
		payload[3] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, errors.ErrTokenInvalid)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").Generate(testUser())
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").Verify(token)
	assert.ErrorIs(t, err, errors.ErrTokenInvalid)
}

func TestJWTService_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret")
	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, errors.ErrTokenInvalid)
}

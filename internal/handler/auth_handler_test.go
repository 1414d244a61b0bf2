package handler

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"lms/internal/model"
)

func TestRegisterRequest_RoleValidation(t *testing.T) {
	v := validator.New()
	base := RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	}

	t.Run("omitted role is valid", func(t *testing.T) {
		assert.NoError(t, v.Struct(base))
	})

	t.Run("admin role is accepted", func(t *testing.T) {
		req := base
		req.Role = model.RoleAdmin
		assert.NoError(t, v.Struct(req))
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		req := base
		req.Role = model.Role("SUPERUSER")
		assert.Error(t, v.Struct(req))
	})
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lms/internal/model"
)

func TestAuthorize(t *testing.T) {
	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	user := &model.User{ID: 2, Role: model.RoleUser}

	assert.True(t, IsAdmin(admin))
	assert.False(t, IsAdmin(user))
	assert.False(t, IsAdmin(nil))

	assert.True(t, CanModify(admin, 99), "admin may modify any resource")
	assert.True(t, CanModify(user, 2), "owner may modify own resource")
	assert.False(t, CanModify(user, 3))
	assert.False(t, CanModify(nil, 2))
}

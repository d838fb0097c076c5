package services

import (
	"testing"

	"repaircafe_server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanManageUsers(t *testing.T) {
	tests := []struct {
		name  string
		actor *models.User
		want  bool
	}{
		{"active admin", &models.User{ID: 1, IsAdmin: true, IsActive: true}, true},
		{"disabled admin", &models.User{ID: 1, IsAdmin: true, IsActive: false}, false},
		{"active operator", &models.User{ID: 2, IsAdmin: false, IsActive: true}, false},
		{"no user", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageUsers(tt.actor))
		})
	}
}

func TestCanDeleteUser(t *testing.T) {
	admin := &models.User{ID: 1, IsAdmin: true, IsActive: true}

	// Deleting yourself is rejected regardless of role
	assert.False(t, CanDeleteUser(admin, admin.ID))
	assert.True(t, CanDeleteUser(admin, 2))

	operator := &models.User{ID: 3, IsAdmin: false, IsActive: true}
	assert.False(t, CanDeleteUser(operator, 2))
}

func TestCanEditAdminFlag(t *testing.T) {
	admin := &models.User{ID: 1, IsAdmin: true, IsActive: true}

	// Self promotion/demotion is never allowed
	assert.False(t, CanEditAdminFlag(admin, admin.ID))
	assert.True(t, CanEditAdminFlag(admin, 2))
	assert.False(t, CanEditAdminFlag(nil, 2))
}

package services

import (
	"fmt"
	"testing"
	"time"

	"repaircafe_server/internal/db"
	"repaircafe_server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminFixture(t *testing.T) *models.User {
	t.Helper()
	user := models.User{
		Username: fmt.Sprintf("test-admin-%d", time.Now().UnixNano()),
		Password: "admin-secret",
		IsAdmin:  true,
		IsActive: true,
	}
	require.NoError(t, db.GetDB().Create(&user).Error)
	t.Cleanup(func() {
		db.GetDB().Delete(&user)
	})
	return &user
}

func TestUserManagement(t *testing.T) {
	if err := db.Initialize(); err != nil {
		t.Skipf("Database not available for testing: %v", err)
	}
	defer db.Close()

	service := NewUserService()
	admin := adminFixture(t)

	// Operators cannot manage users
	operator := &models.User{ID: admin.ID + 1000, IsAdmin: false, IsActive: true}
	_, err := service.ListUsers(operator)
	assert.Equal(t, ErrPermissionDenied, err)

	// Disabled admins cannot manage users either
	disabled := &models.User{ID: admin.ID + 1001, IsAdmin: true, IsActive: false}
	_, err = service.ListUsers(disabled)
	assert.Equal(t, ErrPermissionDenied, err)

	// Create an operator account
	created, err := service.CreateUser(&CreateUserRequest{
		Username:  fmt.Sprintf("test-operator-%d", time.Now().UnixNano()),
		Password:  "operator-secret",
		FirstName: "Test",
		LastName:  "Operator",
		IsAdmin:   false,
	}, admin)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.GetDB().Delete(created)
	})
	assert.True(t, created.IsActive)
	assert.False(t, created.IsAdmin)
	assert.False(t, created.IsStaff)
	assert.True(t, created.CheckPassword("operator-secret"))

	// Several accounts can be logged out at the same time; cleared tokens
	// are stored as NULL so the unique index on the token column never
	// collides between them
	require.NoError(t, admin.GenerateToken(time.Hour))
	require.NoError(t, db.GetDB().Save(admin).Error)
	require.NoError(t, created.GenerateToken(time.Hour))
	require.NoError(t, db.GetDB().Save(created).Error)
	admin.ClearToken()
	require.NoError(t, db.GetDB().Save(admin).Error)
	created.ClearToken()
	require.NoError(t, db.GetDB().Save(created).Error)

	// Duplicate usernames are rejected with a field message
	_, err = service.CreateUser(&CreateUserRequest{
		Username: created.Username,
		Password: "whatever",
	}, admin)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "username")

	// Promoting another account works and syncs the staff flag
	promote := true
	edited, err := service.EditUser(created.ID, &EditUserRequest{IsAdmin: &promote}, admin)
	require.NoError(t, err)
	assert.True(t, edited.IsAdmin)
	assert.True(t, edited.IsStaff)

	// Editing your own account never touches the admin flag
	demote := false
	edited, err = service.EditUser(admin.ID, &EditUserRequest{IsAdmin: &demote}, admin)
	require.NoError(t, err)
	assert.True(t, edited.IsAdmin, "self-demotion must be ignored")

	// Self-delete is always rejected with the specific error
	err = service.DeleteUser(admin.ID, admin)
	assert.Equal(t, ErrSelfDeleteForbidden, err)

	// Deleting someone else works
	require.NoError(t, service.DeleteUser(created.ID, admin))
	_, err = service.GetUser(admin, created.ID)
	assert.Equal(t, ErrNotFound, err)

	// Deleting an unknown id reports not found
	err = service.DeleteUser(created.ID, admin)
	assert.Equal(t, ErrNotFound, err)
}

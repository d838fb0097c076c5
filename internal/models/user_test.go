package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncRoleFlags(t *testing.T) {
	t.Run("staff mirrors admin for ordinary accounts", func(t *testing.T) {
		user := User{IsAdmin: true, IsStaff: false}
		user.SyncRoleFlags()
		assert.True(t, user.IsStaff)

		user = User{IsAdmin: false, IsStaff: true}
		user.SyncRoleFlags()
		assert.False(t, user.IsStaff)
	})

	t.Run("superusers always carry both flags", func(t *testing.T) {
		user := User{IsSuperuser: true, IsAdmin: false, IsStaff: false}
		user.SyncRoleFlags()
		assert.True(t, user.IsAdmin)
		assert.True(t, user.IsStaff)
	})
}

func TestIsOperator(t *testing.T) {
	assert.True(t, (&User{IsAdmin: false}).IsOperator())
	assert.False(t, (&User{IsAdmin: true}).IsOperator())
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Jamie Visser", (&User{Username: "jamie", FirstName: "Jamie", LastName: "Visser"}).FullName())
	assert.Equal(t, "Jamie", (&User{Username: "jamie", FirstName: "Jamie"}).FullName())
	assert.Equal(t, "jamie", (&User{Username: "jamie"}).FullName())
}

func TestSetPasswordAndCheck(t *testing.T) {
	user := User{Username: "jamie"}
	require.NoError(t, user.SetPassword("workshop-secret"))

	assert.NotEqual(t, "workshop-secret", user.Password)
	assert.True(t, user.CheckPassword("workshop-secret"))
	assert.False(t, user.CheckPassword("wrong-password"))
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "admin", (&User{IsAdmin: true}).RoleString())
	assert.Equal(t, "operator", (&User{}).RoleString())
}

func TestTokenLifecycle(t *testing.T) {
	user := User{Username: "jamie"}
	assert.False(t, user.IsTokenValid())

	require.NoError(t, user.GenerateToken(1))
	// Lifetime of 1ns has already passed
	assert.False(t, user.IsTokenValid())

	require.NoError(t, user.GenerateToken(time.Hour))
	assert.True(t, user.IsTokenValid())
	require.NotNil(t, user.Token)
	assert.Len(t, *user.Token, 64)

	user.ClearToken()
	assert.False(t, user.IsTokenValid())
	assert.Nil(t, user.Token)
}

func TestAbsentTokensAreNull(t *testing.T) {
	// The token column carries a unique index. Fresh and logged-out
	// accounts must therefore carry NULL, never "", or the second such
	// row would collide on the index.
	first := User{Username: "front-desk"}
	second := User{Username: "repair-bench"}
	assert.Nil(t, first.Token)
	assert.Nil(t, second.Token)

	require.NoError(t, first.GenerateToken(time.Hour))
	require.NoError(t, second.GenerateToken(time.Hour))
	assert.NotEqual(t, *first.Token, *second.Token)

	first.ClearToken()
	second.ClearToken()
	assert.Nil(t, first.Token)
	assert.Nil(t, second.Token)
}

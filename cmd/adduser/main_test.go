package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUser(t *testing.T) {
	user, err := newUser("  Admin@Example.com ", " Admin ", "password123", true)
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, "Admin", user.FullName)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func TestNewUser_Invalid(t *testing.T) {
	_, err := newUser("", "", "password123", true)
	assert.Error(t, err)

	_, err = newUser("not-an-email", "", "password123", true)
	assert.Error(t, err)

	_, err = newUser("a@b.c", "", "short", true)
	assert.Error(t, err)
}

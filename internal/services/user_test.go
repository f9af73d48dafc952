package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPassword(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.Register(context.Background(), &RegisterRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice@example.com")

	_, err := env.users.Register(context.Background(), &RegisterRequest{
		FirstName: "Other",
		LastName:  "Alice",
		Email:     "alice@example.com",
		Password:  "different",
	})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")

	user, err := env.users.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	_, err = env.users.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad password, got %v", err)
	}

	_, err = env.users.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown email, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com")

	newName := "Alicia"
	updated, err := env.users.UpdateProfile(ctx, alice.ID, &UpdateProfileRequest{FirstName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "User", updated.LastName, "omitted fields keep their value")

	newPassword := "rotated456"
	updated, err = env.users.UpdateProfile(ctx, alice.ID, &UpdateProfileRequest{Password: &newPassword})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("rotated456")))

	_, err = env.users.UpdateProfile(ctx, 9999, &UpdateProfileRequest{FirstName: &newName})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

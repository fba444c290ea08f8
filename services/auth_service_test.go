package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-nepal/services"
	"hotel-nepal/store/memory"
	"hotel-nepal/utils"
	"hotel-nepal/validation"
)

func newAuthService(t *testing.T) (*services.AuthService, *utils.TokenManager) {
	t.Helper()
	tokens := utils.NewTokenManager("test-secret", 24*time.Hour)
	return services.NewAuthService(memory.New("").Users(), tokens, validation.DefaultPasswordPolicy()), tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, tokens := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, services.RegisterRequest{
		Name: "Ram Bahadur Thapa", Email: "Ram@Example.com", Password: "Secret1", Phone: "+977 9800000001",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ram", u.FirstName)
	assert.Equal(t, "Bahadur Thapa", u.LastName)
	assert.Equal(t, "ram@example.com", u.Email)

	_, err = svc.Register(ctx, services.RegisterRequest{FirstName: "Ram", Email: "ram@example.com", Password: "Secret1"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	token, pub, err := svc.Login(ctx, services.LoginRequest{Email: "ram@example.com", Password: "Secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, pub.ID)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "ram@example.com", claims.Email)

	profile, err := svc.Profile(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ram", profile.FirstName)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAuthService_LoginFailuresAreUniform(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, services.RegisterRequest{FirstName: "Gita", Email: "gita@example.com", Password: "Secret1"})
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, services.LoginRequest{Email: "gita@example.com", Password: "Wrong11"})
	_, _, unknownEmail := svc.Login(ctx, services.LoginRequest{Email: "nobody@example.com", Password: "Secret1"})

	assert.ErrorIs(t, wrongPassword, services.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	for req, msg := range map[services.RegisterRequest]string{
		{Email: "a@b.com", Password: "Secret1"}:                             "Name, email and password are required",
		{FirstName: "A", Email: "not-an-email", Password: "Secret1"}:        "Please provide a valid email address",
		{FirstName: "A", Email: "a@b.com", Password: "Ab1"}:                 "Password must be at least 6 characters long",
		{FirstName: "A", Email: "a@b.com", Password: "secret1"}:             "Password must contain at least one uppercase letter",
		{FirstName: "A", Email: "a@b.com", Password: "Secret1", Phone: "x"}: "Please provide a valid phone number",
	} {
		_, err := svc.Register(context.Background(), req)
		var verr *validation.Error
		require.True(t, errors.As(err, &verr), "%+v", req)
		assert.Equal(t, msg, verr.Message)
	}
}

func TestAuthService_UpdateProfileAndDelete(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, services.RegisterRequest{FirstName: "Hari", Email: "hari@example.com", Password: "Secret1"})
	require.NoError(t, err)

	blank := " "
	_, err = svc.UpdateProfile(ctx, u.ID, services.ProfileUpdateRequest{FirstName: &blank})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "First name cannot be empty", verr.Message)

	phone, last, pw := "+977 9811111111", "Prasad", "Changed9"
	updated, err := svc.UpdateProfile(ctx, u.ID, services.ProfileUpdateRequest{LastName: &last, Phone: &phone, Password: &pw})
	require.NoError(t, err)
	assert.Equal(t, "Hari", updated.FirstName, "absent fields are kept")
	assert.Equal(t, "Prasad", updated.LastName)
	assert.Equal(t, phone, updated.Phone)

	_, _, err = svc.Login(ctx, services.LoginRequest{Email: "hari@example.com", Password: "Secret1"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, services.LoginRequest{Email: "hari@example.com", Password: "Changed9"})
	require.NoError(t, err)

	deleted, err := svc.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, deleted.ID)

	_, err = svc.DeleteUser(ctx, u.ID)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	_, err = svc.UpdateProfile(ctx, u.ID, services.ProfileUpdateRequest{LastName: &last})
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

package service

import (
	"context"
	"testing"
	"time"

	"moveasy-api/internal/models"
	"moveasy-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-for-tests"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   sub,
		"email": sub + "@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestAdminService_VerifyToken(t *testing.T) {
	expired := validClaims("u1")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	noExp := validClaims("u1")
	delete(noExp, "exp")
	noSub := validClaims("u1")
	delete(noSub, "sub")

	tests := []struct {
		name         string
		secret       string
		token        string
		expectedUser string
		expectedErr  error
	}{
		{name: "valid", secret: testSecret, token: signToken(t, testSecret, validClaims("u1")), expectedUser: "u1"},
		{name: "not configured", secret: "", token: signToken(t, testSecret, validClaims("u1")), expectedErr: ErrAuthNotConfigured},
		{name: "missing", secret: testSecret, token: "", expectedErr: ErrUnauthorized},
		{name: "wrong secret", secret: testSecret, token: signToken(t, "other", validClaims("u1")), expectedErr: ErrUnauthorized},
		{name: "expired", secret: testSecret, token: signToken(t, testSecret, expired), expectedErr: ErrUnauthorized},
		{name: "no expiry", secret: testSecret, token: signToken(t, testSecret, noExp), expectedErr: ErrUnauthorized},
		{name: "no subject", secret: testSecret, token: signToken(t, testSecret, noSub), expectedErr: ErrUnauthorized},
		{name: "garbage", secret: testSecret, token: "not.a.jwt", expectedErr: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAdminService(tt.secret, new(MockProfileStore))

			id, err := svc.VerifyToken(tt.token)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedUser, id.UserID)
			assert.Equal(t, "u1@example.com", id.Email)
		})
	}
}

func TestAdminService_Check(t *testing.T) {
	profiles := new(MockProfileStore)
	profiles.On("GetUserProfile", mock.Anything, "admin-id").Return(&models.UserProfile{ID: "admin-id", UserType: "admin"}, nil)
	profiles.On("GetUserProfile", mock.Anything, "tenant-id").Return(&models.UserProfile{ID: "tenant-id", UserType: "tenant"}, nil)
	profiles.On("GetUserProfile", mock.Anything, "ghost-id").Return(nil, repository.ErrNotFound)

	svc := NewAdminService(testSecret, profiles)
	ctx := context.Background()

	check, err := svc.Check(ctx, signToken(t, testSecret, validClaims("admin-id")))
	require.NoError(t, err)
	assert.True(t, check.Success)
	assert.True(t, check.IsAdmin)
	assert.Equal(t, "admin-id@example.com", check.User.Email)
	assert.Equal(t, "admin", check.User.Profile.UserType)

	check, err = svc.Check(ctx, signToken(t, testSecret, validClaims("tenant-id")))
	require.NoError(t, err)
	assert.False(t, check.IsAdmin)

	_, err = svc.Check(ctx, signToken(t, testSecret, validClaims("ghost-id")))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAdminService_RequireAdmin(t *testing.T) {
	profiles := new(MockProfileStore)
	profiles.On("GetUserProfile", mock.Anything, "admin-id").Return(&models.UserProfile{ID: "admin-id", UserType: "admin"}, nil)
	profiles.On("GetUserProfile", mock.Anything, "tenant-id").Return(&models.UserProfile{ID: "tenant-id", UserType: "tenant"}, nil)
	profiles.On("GetUserProfile", mock.Anything, "ghost-id").Return(nil, repository.ErrNotFound)

	svc := NewAdminService(testSecret, profiles)
	ctx := context.Background()

	id, err := svc.RequireAdmin(ctx, signToken(t, testSecret, validClaims("admin-id")))
	require.NoError(t, err)
	assert.Equal(t, "admin-id", id.UserID)

	_, err = svc.RequireAdmin(ctx, signToken(t, testSecret, validClaims("tenant-id")))
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.RequireAdmin(ctx, signToken(t, testSecret, validClaims("ghost-id")))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAdminService_ListUsers(t *testing.T) {
	profiles := new(MockProfileStore)
	profiles.On("ListUserProfiles", mock.Anything).Return([]models.UserProfile{{ID: "a"}, {ID: "b"}}, nil).Once()
	profiles.On("ListUserProfiles", mock.Anything).Return(nil, assert.AnError).Once()

	svc := NewAdminService(testSecret, profiles)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.ListUsers(context.Background())
	assert.Error(t, err)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"moveasy-api/internal/models"
	"moveasy-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// ErrAuthNotConfigured is returned when no token secret is configured.
var ErrAuthNotConfigured = errors.New("service: token verification is not configured")

// ProfileStore loads application user profiles
type ProfileStore interface {
	GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	ListUserProfiles(ctx context.Context) ([]models.UserProfile, error)
}

// Identity is the verified subject of an access token.
type Identity struct {
	UserID string
	Email  string
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AdminService verifies Supabase access tokens and resolves admin rights
type AdminService struct {
	secret   []byte
	profiles ProfileStore
}

// NewAdminService creates a new admin service. secret is the project's JWT secret.
func NewAdminService(secret string, profiles ProfileStore) *AdminService {
	return &AdminService{secret: []byte(secret), profiles: profiles}
}

// VerifyToken checks the HS256 signature and expiry of an access token.
func (s *AdminService) VerifyToken(tokenString string) (Identity, error) {
	if len(s.secret) == 0 {
		return Identity{}, ErrAuthNotConfigured
	}
	if tokenString == "" {
		return Identity{}, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}

	return Identity{UserID: claims.Subject, Email: claims.Email}, nil
}

// Check verifies the token and reports whether its user is an admin.
func (s *AdminService) Check(ctx context.Context, tokenString string) (models.AdminCheck, error) {
	id, err := s.VerifyToken(tokenString)
	if err != nil {
		return models.AdminCheck{}, err
	}

	profile, err := s.profiles.GetUserProfile(ctx, id.UserID)
	if err != nil {
		return models.AdminCheck{}, fmt.Errorf("service: failed to get user profile: %w", err)
	}

	return models.AdminCheck{
		Success: true,
		IsAdmin: profile.IsAdmin(),
		User: models.AdminUser{
			ID:      id.UserID,
			Email:   id.Email,
			Profile: *profile,
		},
	}, nil
}

// RequireAdmin verifies the token and fails with ErrUnauthorized unless its user is
// an admin.
func (s *AdminService) RequireAdmin(ctx context.Context, tokenString string) (Identity, error) {
	check, err := s.Check(ctx, tokenString)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Identity{}, fmt.Errorf("%w: no profile", ErrUnauthorized)
		}
		return Identity{}, err
	}
	if !check.IsAdmin {
		return Identity{}, fmt.Errorf("%w: admin access required", ErrUnauthorized)
	}
	return Identity{UserID: check.User.ID, Email: check.User.Email}, nil
}

// ListUsers returns every user profile.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	profiles, err := s.profiles.ListUserProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list user profiles: %w", err)
	}
	return profiles, nil
}

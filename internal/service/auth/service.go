// Package auth implements signup, login and profile lookup on top of the
// users table. Passwords are stored as salted SHA-256 digests; sessions are
// signed JWTs the API layer carries in a cookie or bearer header.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/store"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/utils"
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, constants.ErrEmailAlreadyTaken
	} else if !errors.Is(err, constants.ErrDBNotFound) {
		return nil, fmt.Errorf("store.GetUserByEmail: %w", err)
	}

	user := &domain.User{
		ID:               uuid.NewString(),
		Email:            email,
		FullName:         strings.TrimSpace(req.FullName),
		SubscriptionTier: domain.TierFree,
	}
	if err := user.UserPassword.Init(req.Password); err != nil {
		return nil, fmt.Errorf("init password: %w", err)
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("store.CreateUser: %w", err)
	}

	token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{UserID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &domain.AuthResponse{User: user, AuthToken: token}, nil
}

func (s *Service) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrBadCredentials
		}
		return nil, fmt.Errorf("store.GetUserByEmail: %w", err)
	}

	if err := user.UserPassword.Validate(req.Password); err != nil {
		return nil, err
	}

	token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{UserID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &domain.AuthResponse{User: user, AuthToken: token}, nil
}

// Profile returns the user with their current-month scan usage against the
// tier quota.
func (s *Service) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrUnauthorized
		}
		return nil, fmt.Errorf("store.GetUserByID: %w", err)
	}

	tier := user.SubscriptionTier
	if !domain.ValidTier(tier) {
		tier = domain.TierFree
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	count, err := s.store.CountScansSince(ctx, userID, monthStart)
	if err != nil {
		return nil, fmt.Errorf("store.CountScansSince: %w", err)
	}

	return &domain.Profile{
		User:         user,
		MonthlyScans: count,
		MonthlyLimit: domain.MonthlyQuota[tier],
	}, nil
}

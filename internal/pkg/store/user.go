package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
)

var userColumns = []string{
	"id", "email", "full_name", "password_hash", "password_salt",
	"subscription_tier", "api_usage_count", "created_at", "updated_at",
}

func (s *store) CreateUser(ctx context.Context, user *domain.User) error {
	query := builder().Insert(tableUsers).
		Columns("id", "email", "full_name", "password_hash", "password_salt", "subscription_tier").
		Values(user.ID, user.Email, user.FullName, user.Hash, user.Salt, user.SubscriptionTier)

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return fmt.Errorf("insert user: %w", wrapErr(err))
	}

	return nil
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := builder().Select(userColumns...).
		From(tableUsers).
		Where(sq.Eq{"email": email})

	var selected domain.User
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := builder().Select(userColumns...).
		From(tableUsers).
		Where(sq.Eq{"id": id})

	var selected domain.User
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) UpdateUserTier(ctx context.Context, userID string, tier domain.SubscriptionTier) error {
	query := builder().Update(tableUsers).
		Set("subscription_tier", tier).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return fmt.Errorf("update tier: %w", wrapErr(err))
	}

	return nil
}

// IncrementAPIUsage bumps the usage counter in a single statement so
// concurrent requests never lose increments.
func (s *store) IncrementAPIUsage(ctx context.Context, userID string) error {
	query := builder().Update(tableUsers).
		Set("api_usage_count", sq.Expr("api_usage_count + 1")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return fmt.Errorf("increment usage: %w", wrapErr(err))
	}

	return nil
}

package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
)

var apiKeyColumns = []string{
	"api_key", "key_id", "plan", "request_limit_per_minute",
	"active", "label", "created_at", "last_used_at",
}

func (s *store) InsertAPIKey(ctx context.Context, record *domain.APIKeyRecord) error {
	query := builder().Insert(tableAPIKeys).
		Columns("api_key", "key_id", "plan", "request_limit_per_minute", "active", "label").
		Values(record.APIKey, record.KeyID, record.Plan, record.RequestLimitPerMinute, record.Active, record.Label)

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return fmt.Errorf("insert api key: %w", wrapErr(err))
	}

	return nil
}

func (s *store) ListAPIKeys(ctx context.Context) ([]*domain.APIKeyRecord, error) {
	query := builder().Select(apiKeyColumns...).
		From(tableAPIKeys).
		OrderBy("created_at desc")

	var selected []*domain.APIKeyRecord
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

// GetActiveAPIKey authorizes a raw key and touches last_used_at in the same
// statement. The touch is the only mutation an authorization check performs.
func (s *store) GetActiveAPIKey(ctx context.Context, rawKey string) (*domain.APIKeyRecord, error) {
	query := builder().Update(tableAPIKeys).
		Set("last_used_at", sq.Expr("now()")).
		Where(sq.And{
			sq.Eq{"api_key": rawKey},
			sq.Eq{"active": true},
		}).
		Suffix("RETURNING " + strings.Join(apiKeyColumns, ", "))

	var selected domain.APIKeyRecord
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}
